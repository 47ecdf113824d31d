package nxn

import (
	"fmt"
	"sync"

	"github.com/gorgonia/qttt/game"
)

var (
	NoMove = game.Single(-1)

	Cross  = game.Player(game.Black)
	Nought = game.Player(game.White)
)

var _ game.State = &Board{}

// Board is a NxN tic-tac-toe board. A player wins by filling a whole row, column or main diagonal.
type Board struct {
	sync.Mutex
	board []game.Colour
	n     int

	nextToMove game.Player
	history    []game.PlayerMove
}

// New creates a new, empty NxN board.
func New(n int) *Board {
	return &Board{
		board:   make([]game.Colour, n*n),
		history: make([]game.PlayerMove, 0, n*n),
		n:       n,
	}
}

// TicTacToe creates a new 3x3 board.
func TicTacToe() *Board { return New(3) }

func (g *Board) Format(s fmt.State, c rune) {
	for i, c := range g.board {
		if i%g.n == 0 {
			fmt.Fprint(s, "⎢ ")
		}
		fmt.Fprintf(s, "%s ", c)
		if (i+1)%g.n == 0 {
			fmt.Fprint(s, "⎥\n")
		}
	}
}

func (g *Board) BoardSize() (int, int) { return g.n, g.n }
func (g *Board) Board() []game.Colour  { return g.board }
func (g *Board) ActionSpace() int      { return g.n * g.n }

// Index converts a (row, col) pair into a row-major cell index.
func (g *Board) Index(row, col int) game.Single { return game.Single(row*g.n + col) }

// RowCol converts a row-major cell index into a (row, col) pair.
func (g *Board) RowCol(s game.Single) (row, col int) { return int(s) / g.n, int(s) % g.n }

// At returns the colour at (row, col).
func (g *Board) At(row, col int) game.Colour { return g.board[row*g.n+col] }

func (g *Board) SetToMove(p game.Player) { g.Lock(); g.nextToMove = p; g.Unlock() }

func (g *Board) ToMove() game.Player { return g.nextToMove }

func (g *Board) LastMove() game.PlayerMove {
	if len(g.history) > 0 {
		return g.history[len(g.history)-1]
	}
	return game.PlayerMove{Player: game.Player(game.None), Single: NoMove}
}

func (g *Board) MoveNumber() int { return len(g.history) }

// Check returns true if the move targets an empty cell on the board.
func (g *Board) Check(m game.PlayerMove) bool {
	if m.Single.IsPass() || m.Single < 0 {
		return false
	}
	if int(m.Single) >= len(g.board) {
		return false
	}
	if g.board[int(m.Single)] != game.None {
		return false
	}
	return true
}

// Apply places the move if it is legal. An illegal move leaves the board untouched.
func (g *Board) Apply(m game.PlayerMove) game.State {
	if !g.Check(m) {
		return g // no change to the state
	}
	g.Lock()
	g.place(m)
	g.Unlock()
	return g
}

// Place writes p's mark at (row, col). The cell must be empty: placing onto an occupied cell is a bug in the caller.
func (g *Board) Place(row, col int, p game.Player) {
	m := game.PlayerMove{Player: p, Single: g.Index(row, col)}
	if row < 0 || row >= g.n || col < 0 || col >= g.n || !g.Check(m) {
		panic(fmt.Sprintf("cannot place %v at (%d, %d)", p, row, col))
	}
	g.Lock()
	g.place(m)
	g.Unlock()
}

func (g *Board) place(m game.PlayerMove) {
	g.board[int(m.Single)] = game.Colour(m.Player)
	g.history = append(g.history, m)
	g.nextToMove = m.Player.Opponent()
}

// Ended checks if the game has ended. If it has, who is the winner?
func (g *Board) Ended() (ended bool, winner game.Player) {
	if g.IsWin(Cross) {
		return true, Cross
	}
	if g.IsWin(Nought) {
		return true, Nought
	}
	if g.IsFull() {
		return true, game.Player(game.None)
	}
	return false, game.Player(game.None)
}

// IsFull returns true when no cell is empty.
func (g *Board) IsFull() bool {
	for _, c := range g.board {
		if c == game.None {
			return false
		}
	}
	return true
}

// IsDraw returns true when the board is full and nobody has won.
func (g *Board) IsDraw() bool {
	return g.IsFull() && !g.IsWin(Cross) && !g.IsWin(Nought)
}

func (g *Board) Reset() {
	for i := range g.board {
		g.board[i] = game.None
	}
	g.history = g.history[:0]
}

func (g *Board) Eq(other game.State) bool {
	ot, ok := other.(*Board)
	if !ok {
		return false
	}
	if len(g.board) != len(ot.board) {
		return false
	}
	for i := range g.board {
		if g.board[i] != ot.board[i] {
			return false
		}
	}
	return true
}

func (g *Board) Clone() game.State {
	retVal := New(g.n)
	g.Lock()
	copy(retVal.board, g.board)
	retVal.history = append(retVal.history, g.history...)
	retVal.nextToMove = g.nextToMove
	g.Unlock()
	return retVal
}

// IsWin returns true if p holds every cell of a row, a column or one of the two main diagonals.
func (g *Board) IsWin(p game.Player) bool {
	colour := game.Colour(p)
	if colour == game.None {
		return false
	}
	n := g.n

	for i := 0; i < n; i++ {
		if g.line(i*n, 1, colour) { // row i
			return true
		}
		if g.line(i, n, colour) { // col i
			return true
		}
	}
	if g.line(0, n+1, colour) {
		return true
	}
	return g.line(n-1, n-1, colour)
}

// line checks the n cells starting at start, stepping by stride.
func (g *Board) line(start, stride int, colour game.Colour) bool {
	for i, idx := 0, start; i < g.n; i, idx = i+1, idx+stride {
		if g.board[idx] != colour {
			return false
		}
	}
	return true
}

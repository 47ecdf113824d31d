package nxn

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gorgonia/qttt/game"
	"github.com/stretchr/testify/assert"
)

var (
	X = game.Colour(Cross)
	O = game.Colour(Nought)
	Z = game.None
)

// lines returns the cell indices of all 2N+2 winning lines of an NxN board.
func lines(n int) [][]int {
	var retVal [][]int
	for i := 0; i < n; i++ {
		row := make([]int, n)
		col := make([]int, n)
		for j := 0; j < n; j++ {
			row[j] = i*n + j
			col[j] = j*n + i
		}
		retVal = append(retVal, row, col)
	}
	diag := make([]int, n)
	anti := make([]int, n)
	for i := 0; i < n; i++ {
		diag[i] = i*n + i
		anti[i] = i*n + n - 1 - i
	}
	return append(retVal, diag, anti)
}

func TestTicTacToe(t *testing.T) {
	TTT := TicTacToe()
	TTT.board = []game.Colour{
		X, O, X,
		O, X, O,
		O, O, X,
	}
	if !TTT.IsWin(Cross) {
		t.Error("expected X to be winner")
	}
	if ended, _ := TTT.Ended(); !ended {
		t.Error("expected game to be ended")
	}
	if TTT.IsDraw() {
		t.Error("a won board is not a draw even when it is full")
	}

	TTT.board = []game.Colour{
		X, O, O,
		X, O, X,
		O, X, X,
	}
	if !TTT.IsWin(Nought) {
		t.Error("expected O to be winner")
	}
	if TTT.IsWin(Cross) {
		t.Error("X has not won")
	}
}

func TestIsWinEveryLine(t *testing.T) {
	for _, n := range []int{1, 3, 4, 5} {
		for _, p := range []game.Player{Cross, Nought} {
			for li, line := range lines(n) {
				g := New(n)
				for k, idx := range line {
					if k == len(line)-1 {
						if n > 1 && g.IsWin(p) {
							t.Errorf("n=%d line %d: partial line must not win", n, li)
						}
					}
					g.board[idx] = game.Colour(p)
				}
				if !g.IsWin(p) {
					t.Errorf("n=%d line %d: expected %v to win\n%s", n, li, p, g)
				}
				if g.IsWin(p.Opponent()) {
					t.Errorf("n=%d line %d: %v did not play", n, li, p.Opponent())
				}
			}
		}
	}
}

func TestIsWinMixedLine(t *testing.T) {
	g := New(4)
	g.board = []game.Colour{
		X, X, X, O,
		Z, Z, Z, Z,
		Z, Z, Z, Z,
		Z, Z, Z, Z,
	}
	assert.False(t, g.IsWin(Cross))
	assert.False(t, g.IsWin(Nought))
	assert.False(t, g.IsWin(game.Player(game.None)), "an empty line is not a win")
}

func TestDraw(t *testing.T) {
	// alternating moves that fill the board without three in a row
	moves := []struct {
		row, col int
		p        game.Player
	}{
		{0, 0, Cross}, {0, 1, Nought}, {0, 2, Cross},
		{1, 1, Nought}, {1, 0, Cross}, {1, 2, Nought},
		{2, 1, Cross}, {2, 0, Nought}, {2, 2, Cross},
	}
	g := TicTacToe()
	for i, m := range moves {
		if g.IsFull() {
			t.Fatalf("board full after %d moves", i)
		}
		g.Place(m.row, m.col, m.p)
		if i < len(moves)-1 {
			if ended, winner := g.Ended(); ended {
				t.Fatalf("game ended early at move %d. Winner %v\n%s", i, winner, g)
			}
		}
	}
	assert.False(t, g.IsWin(Cross))
	assert.False(t, g.IsWin(Nought))
	assert.True(t, g.IsFull())
	assert.True(t, g.IsDraw())
	ended, winner := g.Ended()
	assert.True(t, ended)
	assert.Equal(t, game.Player(game.None), winner)
}

func TestIsDrawIffFullAndNoWinner(t *testing.T) {
	boards := [][]game.Colour{
		{X, O, X, X, O, O, O, X, X},
		{X, X, X, O, O, X, X, O, O},
		{X, O, Z, Z, Z, Z, Z, Z, Z},
		{O, O, O, X, X, Z, X, Z, Z},
	}
	for i, b := range boards {
		g := TicTacToe()
		copy(g.board, b)
		want := g.IsFull() && !g.IsWin(Cross) && !g.IsWin(Nought)
		if got := g.IsDraw(); got != want {
			t.Errorf("board %d: IsDraw %t, expected %t\n%s", i, got, want, g)
		}
	}
}

func TestPlace(t *testing.T) {
	g := New(3)
	g.Place(1, 2, Cross)
	assert.Equal(t, X, g.At(1, 2))
	assert.Equal(t, Nought, g.ToMove())
	assert.Equal(t, 1, g.MoveNumber())
	assert.True(t, g.LastMove().Eq(game.PlayerMove{Player: Cross, Single: 5}))

	assert.Panics(t, func() { g.Place(1, 2, Nought) }, "placing onto an occupied cell is a caller bug")
	assert.Panics(t, func() { g.Place(3, 0, Nought) })
}

func TestApplyIllegal(t *testing.T) {
	g := New(3)
	g.Apply(game.PlayerMove{Player: Cross, Single: 4})
	before := append([]game.Colour(nil), g.Board()...)

	g.Apply(game.PlayerMove{Player: Nought, Single: 4})
	g.Apply(game.PlayerMove{Player: Nought, Single: 9})
	g.Apply(game.PlayerMove{Player: Nought, Single: NoMove})
	if diff := cmp.Diff(before, g.Board()); diff != "" {
		t.Errorf("illegal moves changed the board (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, g.MoveNumber())
}

func TestResetCloneEq(t *testing.T) {
	g := New(3)
	g.Place(0, 0, Cross)
	g.Place(2, 2, Nought)

	c := g.Clone()
	assert.True(t, g.Eq(c))
	c.Apply(game.PlayerMove{Player: Cross, Single: 4})
	assert.False(t, g.Eq(c), "clone must not share cells with the original")

	g.Reset()
	if diff := cmp.Diff(make([]game.Colour, 9), g.Board()); diff != "" {
		t.Errorf("reset board not empty (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, g.MoveNumber())
	assert.Equal(t, NoMove, g.LastMove().Single)
}

func TestIndexRowCol(t *testing.T) {
	g := New(5)
	for i := 0; i < g.ActionSpace(); i++ {
		r, c := g.RowCol(game.Single(i))
		assert.Equal(t, i/5, r)
		assert.Equal(t, i%5, c)
		assert.Equal(t, game.Single(i), g.Index(r, c))
	}
}

func TestFormat(t *testing.T) {
	g := TicTacToe()
	g.Place(0, 0, Cross)
	g.Place(1, 1, Nought)
	expected := "⎢ X · · ⎥\n⎢ · O · ⎥\n⎢ · · · ⎥\n"
	assert.Equal(t, expected, fmt.Sprintf("%s", g))
}

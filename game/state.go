package game

import (
	"fmt"
)

type Colour int32

const (
	None Colour = iota
	Black
	White
)

func (cl Colour) Format(s fmt.State, c rune) {
	switch c {
	case 'v': // used in debug
		switch cl {
		case None:
			fmt.Fprint(s, "None")
		case Black:
			fmt.Fprint(s, "Black")
		case White:
			fmt.Fprint(s, "White")
		}
	case 's': // used in board games
		fmt.Fprint(s, cl.Mark())
	}
}

// Mark returns the single character used to draw the colour on a board.
func (cl Colour) Mark() string {
	switch cl {
	case Black:
		return "X"
	case White:
		return "O"
	}
	return "·"
}

// Player represents a player. It's also a colour.
type Player Colour

func (p Player) Format(s fmt.State, c rune) { Colour(p).Format(s, c) }

// Mark returns "X" or "O".
func (p Player) Mark() string { return Colour(p).Mark() }

// Opponent returns the other player. None has no opponent.
func (p Player) Opponent() Player {
	switch Colour(p) {
	case Black:
		return Player(White)
	case White:
		return Player(Black)
	}
	panic("Unreachable")
}

// PlayerMove is a tuple indicating the player and the move to be made.
type PlayerMove struct {
	Player
	Single
}

// Eq returns true if both are equal
func (p PlayerMove) Eq(other PlayerMove) bool {
	return p.Player == other.Player && p.Single == other.Single
}

func (p PlayerMove) Format(s fmt.State, c rune) { fmt.Fprintf(s, "%v@%d", p.Player, p.Single) }

// Single represents a cell as a single number, utilized in a rowmajor fashion.
// On a NxN board:
//		- 0 represents the top left
//		- N-1 represents the top right
//		- N represents (1, 0)
// 		- -1 represents "no move"
type Single int32

// IsPass returns true when the Single does not name a cell.
func (c Single) IsPass() bool { return c == -1 }

// State is any game that implements these and are able to report back
type State interface {
	// These methods represent the game state
	BoardSize() (int, int) // returns the board size
	Board() []Colour       // returns the board state
	ActionSpace() int      // returns the number of permissible actions
	ToMove() Player        // returns the next player to move
	MoveNumber() int       // returns count of moves so far that led to this point.
	LastMove() PlayerMove  // returns the last move that was made

	// Meta-game stuff
	Ended() (ended bool, winner Player) // has the game ended? if yes, then who's the winner?

	// interactions
	SetToMove(Player)         // set the next player to move
	Check(m PlayerMove) bool  // check if the placement is legal
	Apply(m PlayerMove) State // should return a State. The required side effect is the NextToMove has to change.
	Reset()                   // reset state

	// generics
	Eq(other State) bool
	Clone() State
}

// MetaState is the state of whatever is hosting a game: a training run or a play session.
type MetaState interface {
	Name() string // name of the game
	GameNumber() int
	State() State
}

package gtp

import (
	"testing"

	"github.com/gorgonia/qttt"
	"github.com/gorgonia/qttt/game/nxn"
	"github.com/gorgonia/qttt/qtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *qttt.Session {
	tbl := qtable.New(9)
	tbl.Ensure("X........")
	tbl.Set("X........", 4, 1)
	tbl.Freeze()
	s, err := qttt.NewSession(tbl, qttt.SessionConfig{
		Mode:        qttt.HumanVsAI,
		Human:       nxn.Cross,
		HumanStarts: true,
	})
	require.NoError(t, err)
	return s
}

func Test_General(t *testing.T) {
	assert := assert.New(t)
	e := New(newSession(t), "xx", "1", nil)
	var x string

	ch, ret := e.Start()
	ch <- "version"
	x = <-ret
	assert.Equal("= 1\n\n", x)

	ch <- "known_command hello"
	x = <-ret
	assert.Equal("= false\n\n", x)

	ch <- "known_command name"
	x = <-ret
	assert.Equal("= true\n\n", x)

	ch <- "completelyUnheardOfCommand xxx"
	x = <-ret
	assert.Equal("? Unknown command \"completelyunheardofcommand\"\n\n", x)

	ch <- "7 protocol_version"
	x = <-ret
	assert.Equal("= 7 2\n\n", x)

	ch <- "quit"
	x = <-ret
	assert.Equal("= \n\n", x)
	_, open := <-ret
	assert.False(open, "engine should stop after quit")
}

func TestPlay(t *testing.T) {
	assert := assert.New(t)
	e := New(newSession(t), "qttt", "1", nil)
	var x string

	x, _ = e.Exec("genmove")
	assert.Equal("= \n\n", x, "not the AI's turn: ignored")

	x, _ = e.Exec("play 0 0")
	assert.Equal("= continue\n\n", x)

	x, _ = e.Exec("play 0 1")
	assert.Equal("= \n\n", x, "not the human's turn: ignored")

	x, _ = e.Exec("2 genmove")
	assert.Equal("= 2 continue 1 1\n\n", x)

	x, _ = e.Exec("play 1 1")
	assert.Equal("= \n\n", x, "occupied: ignored")

	x, _ = e.Exec("showboard")
	assert.Equal("= \n⎢ X · · ⎥\n⎢ · O · ⎥\n⎢ · · · ⎥\n\n\n", x)

	x, _ = e.Exec("final_status")
	assert.Equal("= continue\n\n", x)

	x, _ = e.Exec("play a 1")
	assert.Contains(x, "? Unable to parse row")

	x, _ = e.Exec("play 1")
	assert.Equal("? Not enough arguments for \"play\"\n\n", x)

	x, _ = e.Exec("clear_board")
	assert.Equal("= \n\n", x)
	assert.Equal(0, e.Game().State().MoveNumber())
}

func TestStuckAI(t *testing.T) {
	assert := assert.New(t)
	s := newSession(t)
	e := New(s, "qttt", "1", nil)

	// unseen states are all zeros, so the AI goes for cell 0, which is taken
	e.Exec("play 0 0")
	e.Exec("genmove") // O at the centre
	e.Exec("play 0 1")
	x, _ := e.Exec("genmove")
	assert.Equal("= \n\n", x, "greedy move into an occupied cell is ignored")

	// the AI is stuck, so the turn stays with it. The human cannot move.
	x, _ = e.Exec("play 0 2")
	assert.Equal("= \n\n", x)
	assert.False(s.Ended())
}

func TestBoardSize(t *testing.T) {
	e := New(newSession(t), "qttt", "1", nil)
	x, _ := e.Exec("boardsize 3")
	assert.Equal(t, "= \n\n", x)
	x, _ = e.Exec("boardsize 5")
	assert.Equal(t, "? unacceptable size. Board size is fixed at 3x3\n\n", x)
}

func TestListCommands(t *testing.T) {
	e := New(newSession(t), "qttt", "1", nil)
	x, _ := e.Exec("list_commands")
	assert.Contains(t, x, "genmove\n")
	assert.Contains(t, x, "play\n")
	x, _ = e.Exec("   # just a comment")
	assert.Equal(t, "", x)
}

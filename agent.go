package qttt

import (
	"github.com/gorgonia/qttt/game"
)

// An Agent is one side of a self-play game. Both agents of a Trainer share the same policy and table;
// they only differ in the mark they play.
type Agent struct {
	Player game.Player

	// Statistics
	Wins float32
	Loss float32
	Draw float32

	name   string
	moves  int
	wasted int
}

func newAgent(name string, p game.Player) *Agent {
	return &Agent{
		Player: p,
		name:   name,
	}
}

// Name returns "A" or "B".
func (a *Agent) Name() string { return a.name }

// Moves returns the number of turns the agent has taken, wasted ones included.
func (a *Agent) Moves() int { return a.moves }

// Wasted returns the number of turns in which the agent picked an occupied cell.
func (a *Agent) Wasted() int { return a.wasted }

func (a *Agent) resetStats() {
	a.Wins = 0
	a.Loss = 0
	a.Draw = 0
	a.moves = 0
	a.wasted = 0
}

package qttt

import (
	"github.com/gorgonia/qttt/game"
	"github.com/gorgonia/qttt/qtable"
)

// Learner applies the one-step Q-learning update to a table.
type Learner struct {
	Table          *qtable.Table
	LearningRate   float32
	DiscountFactor float32
}

// Update moves Q(s, a) towards reward + γ·max Q(next, ·) and returns the temporal-difference error.
// Both s and next must already have entries in the table.
func (l *Learner) Update(s game.Key, a game.Single, reward float32, next game.Key) (tdError float32) {
	bestNext := l.Table.BestAction(next)
	tdTarget := reward + l.DiscountFactor*l.Table.Get(next, bestNext)
	q := l.Table.Get(s, a)
	tdError = tdTarget - q
	l.Table.Set(s, a, q+l.LearningRate*tdError)
	return tdError
}

// Reward returns the reward for a finished move from the point of view of learner.
func Reward(ended bool, winner, learner game.Player) float32 {
	switch {
	case !ended, winner == game.Player(game.None):
		return 0
	case winner == learner:
		return 1
	default:
		return -1
	}
}

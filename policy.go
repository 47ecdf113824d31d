package qttt

import (
	"math/rand"

	"github.com/gorgonia/qttt/game"
	"github.com/gorgonia/qttt/qtable"
)

// EpsilonGreedy picks a uniformly random action with probability equal to the exploration rate,
// and the greedy action from the table otherwise.
//
// Unless MaskIllegal is set, occupied cells are not filtered out.
// Picking one is the caller's problem.
type EpsilonGreedy struct {
	Table       *qtable.Table
	MaskIllegal bool

	r *rand.Rand
}

// NewEpsilonGreedy creates a policy over t that draws from r.
func NewEpsilonGreedy(t *qtable.Table, r *rand.Rand, maskIllegal bool) *EpsilonGreedy {
	return &EpsilonGreedy{
		Table:       t,
		MaskIllegal: maskIllegal,
		r:           r,
	}
}

// SelectAction selects an action for the state k. The table must hold an entry for k.
func (p *EpsilonGreedy) SelectAction(k game.Key, explorationRate float32) game.Single {
	if p.r.Float32() < explorationRate {
		if p.MaskIllegal {
			return p.randomLegal(k)
		}
		return game.Single(p.r.Intn(p.Table.ActionSpace()))
	}
	if p.MaskIllegal {
		return p.Table.BestLegalAction(k)
	}
	return p.Table.BestAction(k)
}

func (p *EpsilonGreedy) randomLegal(k game.Key) game.Single {
	legal := make([]game.Single, 0, k.Len())
	for i := 0; i < k.Len(); i++ {
		if k.Empty(i) {
			legal = append(legal, game.Single(i))
		}
	}
	if len(legal) == 0 {
		return game.Single(-1)
	}
	return legal[p.r.Intn(len(legal))]
}

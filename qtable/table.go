// Package qtable holds the action values learned by tabular Q-learning.
package qtable

import (
	"github.com/chewxy/math32"
	"github.com/gorgonia/qttt/game"
	"github.com/pkg/errors"
)

// Table maps a state key to one value per action. Entries are created lazily and zeroed,
// including the values of actions that are illegal in that state.
//
// A Table has a single writer. Once frozen it may be read freely.
type Table struct {
	actionSpace int
	entries     map[game.Key][]float32
	frozen      bool
}

// New creates an empty table for states with actionSpace actions each.
func New(actionSpace int) *Table {
	return &Table{
		actionSpace: actionSpace,
		entries:     make(map[game.Key][]float32),
	}
}

func (t *Table) ActionSpace() int { return t.actionSpace }

// Len returns the number of states seen so far.
func (t *Table) Len() int { return len(t.entries) }

// Freeze makes the table read only.
func (t *Table) Freeze()      { t.frozen = true }
func (t *Table) Frozen() bool { return t.frozen }

// Ensure creates a zeroed entry for k if there is none. It is idempotent.
func (t *Table) Ensure(k game.Key) {
	if _, ok := t.entries[k]; ok {
		return
	}
	if t.frozen {
		panic(errors.Errorf("cannot add state %q to a frozen table", k))
	}
	t.entries[k] = make([]float32, t.actionSpace)
}

// Lookup returns the entry for k. The returned slice must not be modified.
func (t *Table) Lookup(k game.Key) ([]float32, bool) {
	v, ok := t.entries[k]
	return v, ok
}

// Get returns the value of action a in state k.
func (t *Table) Get(k game.Key, a game.Single) float32 { return t.entry(k)[a] }

// Set overwrites the value of action a in state k.
func (t *Table) Set(k game.Key, a game.Single, v float32) {
	if t.frozen {
		panic(errors.Errorf("cannot write state %q action %d to a frozen table", k, a))
	}
	t.entry(k)[a] = v
}

// BestAction returns the action with the highest value in state k. Ties go to the lowest index.
func (t *Table) BestAction(k game.Key) game.Single {
	return game.Single(argmax(t.entry(k), nil))
}

// BestLegalAction is like BestAction, but only considers the cells that are empty in k.
// It returns -1 if there are none.
func (t *Table) BestLegalAction(k game.Key) game.Single {
	return game.Single(argmax(t.entry(k), k.Empty))
}

// Range calls fn for every entry until fn returns false.
func (t *Table) Range(fn func(k game.Key, v []float32) bool) {
	for k, v := range t.entries {
		if !fn(k, v) {
			return
		}
	}
}

func (t *Table) entry(k game.Key) []float32 {
	v, ok := t.entries[k]
	if !ok {
		panic(errors.Errorf("no table entry for state %q", k))
	}
	return v
}

// Greedy returns the best action for k among the allowed ones, treating an unseen state as all zeros.
// It never writes to the table.
func Greedy(t *Table, k game.Key, legalOnly bool) game.Single {
	v, ok := t.Lookup(k)
	if !ok {
		v = make([]float32, t.actionSpace)
	}
	if legalOnly {
		return game.Single(argmax(v, k.Empty))
	}
	return game.Single(argmax(v, nil))
}

// argmax returns the index of the first maximum. If allowed is not nil, only the indices it allows are considered.
func argmax(a []float32, allowed func(int) bool) int {
	var retVal = -1
	var max float32 = math32.Inf(-1)
	for i := range a {
		if allowed != nil && !allowed(i) {
			continue
		}
		if a[i] > max || retVal < 0 {
			max = a[i]
			retVal = i
		}
	}
	return retVal
}

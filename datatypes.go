package qttt

import (
	"bytes"
	"fmt"

	"github.com/gorgonia/qttt/game"
	"github.com/gorgonia/qttt/game/nxn"
)

// Config configures a training run. It is fixed for the duration of the run.
type Config struct {
	Name      string
	BoardSize int // N, for a NxN board

	ExplorationRate  float32 // initial probability of a random move
	ExplorationDecay float32 // multiplied into the exploration rate once per episode
	LearningRate     float32
	DiscountFactor   float32
	Episodes         int

	Learner     game.Player // the label whose win is rewarded with +1
	FirstToMove game.Player // who opens every self-play episode

	// MaskIllegal restricts both random and greedy choices to empty cells.
	// When false, an agent may pick an occupied cell and waste its turn.
	MaskIllegal bool

	Seed int64 // 0 seeds from the clock

	// extensions
	OutputEncoder OutputEncoder
}

// DefaultConfig returns the configuration used for a 5x5 board: a fully random start,
// decaying by 0.995 per episode over 1000 episodes.
func DefaultConfig(boardSize int) Config {
	return Config{
		Name:             fmt.Sprintf("%dx%d Tic-Tac-Toe", boardSize, boardSize),
		BoardSize:        boardSize,
		ExplorationRate:  1.0,
		ExplorationDecay: 0.995,
		LearningRate:     0.1,
		DiscountFactor:   0.9,
		Episodes:         1000,
		Learner:          nxn.Nought,
		FirstToMove:      nxn.Nought,
	}
}

// IsValid returns true if the configuration can be used for training.
func (conf Config) IsValid() bool { return conf.Validate() == nil }

// Validate reports every problem with the configuration.
func (conf Config) Validate() error {
	var errs manyErr
	bad := func(field, reason string) { errs = append(errs, ConfigError{Field: field, Reason: reason}) }

	if conf.BoardSize < 1 {
		bad("BoardSize", fmt.Sprintf("must be positive, got %d", conf.BoardSize))
	}
	if conf.ExplorationRate < 0 || conf.ExplorationRate > 1 {
		bad("ExplorationRate", fmt.Sprintf("must be in [0, 1], got %v", conf.ExplorationRate))
	}
	if conf.ExplorationRate == 0 && !conf.MaskIllegal {
		// a greedy agent that picks a taken cell picks it again forever
		bad("ExplorationRate", "greedy-only training (rate 0) requires MaskIllegal")
	}
	if conf.ExplorationDecay <= 0 || conf.ExplorationDecay > 1 {
		bad("ExplorationDecay", fmt.Sprintf("must be in (0, 1], got %v", conf.ExplorationDecay))
	}
	if conf.LearningRate <= 0 || conf.LearningRate > 1 {
		bad("LearningRate", fmt.Sprintf("must be in (0, 1], got %v", conf.LearningRate))
	}
	if conf.DiscountFactor < 0 || conf.DiscountFactor > 1 {
		bad("DiscountFactor", fmt.Sprintf("must be in [0, 1], got %v", conf.DiscountFactor))
	}
	if conf.Episodes < 0 {
		bad("Episodes", fmt.Sprintf("must not be negative, got %d", conf.Episodes))
	}
	if !isMark(conf.Learner) {
		bad("Learner", fmt.Sprintf("must be X or O, got %v", conf.Learner))
	}
	if !isMark(conf.FirstToMove) {
		bad("FirstToMove", fmt.Sprintf("must be X or O, got %v", conf.FirstToMove))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isMark(p game.Player) bool { return p == nxn.Cross || p == nxn.Nought }

// ConfigError is a single invalid configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (err ConfigError) Error() string { return fmt.Sprintf("invalid %s: %s", err.Field, err.Reason) }

type manyErr []error

func (err manyErr) Error() string {
	var buf bytes.Buffer
	for i, e := range err {
		if i > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(e.Error())
	}
	return buf.String()
}

func (err manyErr) Unwrap() []error { return err }

// OutputEncoder encodes the entire meta state as whatever.
//
// An example OutputEncoder is the GifEncoder. Another example would be a logger.
type OutputEncoder interface {
	Encode(ms game.MetaState) error
	Flush() error
}

// Transition is a single step of experience. It is consumed by the Learner as soon as it is made.
type Transition struct {
	Player game.Player
	State  game.Key
	Action game.Single
	Reward float32
	Next   game.Key
}

// Wasted returns true if the action targeted an occupied cell and the state did not change.
func (t Transition) Wasted() bool { return t.State == t.Next }

// Outcome is what a single move in a play session led to.
type Outcome int

const (
	Continue Outcome = iota
	HumanWins
	AIWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case HumanWins:
		return "humanWins"
	case AIWins:
		return "aiWins"
	case Draw:
		return "draw"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Mode is the kind of game a Session hosts.
type Mode int

const (
	HumanVsAI Mode = iota
	AIVsAI
)

// SessionConfig is what the launcher hands to a play session.
type SessionConfig struct {
	Name        string
	Mode        Mode
	Human       game.Player // the human's mark. In AIVsAI mode this is the mark that opens every game.
	HumanStarts bool

	// MaskIllegal makes the AI pick the best empty cell instead of the best cell.
	MaskIllegal bool
}

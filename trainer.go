package qttt

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/chewxy/math32"
	"github.com/gorgonia/qttt/game"
	"github.com/gorgonia/qttt/game/nxn"
	"github.com/gorgonia/qttt/qtable"
	"github.com/pkg/errors"
	"gorgonia.org/vecf32"
)

// Trainer fills a value table by letting two agents play against each other.
// Agent A plays the Learner mark, agent B the other one.
type Trainer struct {
	Statistics
	A, B *Agent

	r       *rand.Rand
	board   *nxn.Board
	table   *qtable.Table
	policy  *EpsilonGreedy
	learner *Learner
	enc     OutputEncoder
	conf    Config

	// state
	rate          float32 // current exploration rate
	episode       int
	currentPlayer *Agent
	state         game.Key
	tdErrors      []float32

	buf    bytes.Buffer
	logger *log.Logger
}

// NewTrainer validates conf and creates a Trainer with an empty table.
func NewTrainer(conf Config) (*Trainer, error) {
	if err := conf.Validate(); err != nil {
		return nil, errors.WithMessage(err, "unable to set up training")
	}
	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if conf.Name == "" {
		conf.Name = "UNKNOWN GAME"
	}

	r := rand.New(rand.NewSource(seed))
	board := nxn.New(conf.BoardSize)
	table := qtable.New(board.ActionSpace())
	retVal := &Trainer{
		Statistics: makeStatistics(),
		A:          newAgent("A", conf.Learner),
		B:          newAgent("B", conf.Learner.Opponent()),

		r:      r,
		board:  board,
		table:  table,
		policy: NewEpsilonGreedy(table, r, conf.MaskIllegal),
		learner: &Learner{
			Table:          table,
			LearningRate:   conf.LearningRate,
			DiscountFactor: conf.DiscountFactor,
		},
		enc:  conf.OutputEncoder,
		conf: conf,
		rate: conf.ExplorationRate,
	}
	retVal.logger = log.New(&retVal.buf, "", log.Ltime)
	return retVal, nil
}

// Table returns the table being trained.
func (t *Trainer) Table() *qtable.Table { return t.table }

// ExplorationRate returns the exploration rate the next episode will use.
func (t *Trainer) ExplorationRate() float32 { return t.rate }

func (t *Trainer) Name() string      { return t.conf.Name }
func (t *Trainer) GameNumber() int   { return t.episode }
func (t *Trainer) State() game.State { return t.board }

// Train runs the configured number of episodes and freezes the table.
func (t *Trainer) Train() (*qtable.Table, error) {
	if err := t.Learn(t.conf.Episodes); err != nil {
		return nil, err
	}
	t.table.Freeze()
	return t.table, nil
}

// Learn plays episodes self-play games, updating the table after every turn.
func (t *Trainer) Learn(episodes int) error {
	if t.table.Frozen() {
		return errors.New("cannot learn into a frozen table")
	}
	t.buf.Reset()
	t.A.resetStats()
	t.B.resetStats()

	every := episodes / 10
	if every == 0 {
		every = 1
	}
	for e := 0; e < episodes; e++ {
		t.logger.Printf("Episode %d. Exploration rate %v", t.episode, t.rate)
		t.logger.SetPrefix("\t")
		winner, _ := t.Episode(false)
		t.logger.Printf("Winner %v", winner)
		t.logger.SetPrefix("")
		if (e+1)%every == 0 {
			log.Printf("%s: episode %d/%d. States %d. Exploration rate %.5f", t.conf.Name, e+1, episodes, t.table.Len(), t.rate)
		}
	}
	log.Printf("A (%s) wins %v, loss %v, draw %v\nB (%s) wins %v, loss %v, draw %v",
		t.A.Player.Mark(), t.A.Wins, t.A.Loss, t.A.Draw,
		t.B.Player.Mark(), t.B.Wins, t.B.Loss, t.B.Draw)

	if t.enc != nil {
		if err := t.enc.Flush(); err != nil {
			return errors.WithMessage(err, "unable to flush output encoder")
		}
	}
	return nil
}

// Episode plays one self-play game from an empty board and decays the exploration rate once.
// If record is true the transitions of the game are returned.
func (t *Trainer) Episode(record bool) (winner game.Player, transitions []Transition) {
	t.board.Reset()
	t.state = EncodeState(t.board.Board())
	t.table.Ensure(t.state)
	if t.A.Player == t.conf.FirstToMove {
		t.currentPlayer = t.A
	} else {
		t.currentPlayer = t.B
	}
	t.board.SetToMove(t.currentPlayer.Player)
	t.tdErrors = t.tdErrors[:0]

	var ended bool
	var moves, wasted int
	for !ended {
		var tr Transition
		var tdError float32
		tr, tdError, ended, winner = t.turn()
		t.tdErrors = append(t.tdErrors, math32.Abs(tdError))
		moves++
		if tr.Wasted() {
			wasted++
			t.logger.Printf("%v wasted a turn on %d", tr.Player, tr.Action)
		} else {
			t.logger.Printf("%v played %d", tr.Player, tr.Action)
		}
		if record {
			transitions = append(transitions, tr)
		}
	}

	switch {
	case winner == game.Player(game.None):
		t.A.Draw++
		t.B.Draw++
	case winner == t.A.Player:
		t.A.Wins++
		t.B.Loss++
	case winner == t.B.Player:
		t.B.Wins++
		t.A.Loss++
	}

	t.Statistics.record(EpisodeStats{
		Winner:          winner,
		Moves:           moves,
		Wasted:          wasted,
		ExplorationRate: t.rate,
		MeanTDError:     vecf32.Sum(t.tdErrors) / float32(len(t.tdErrors)),
	})
	t.rate *= t.conf.ExplorationDecay
	t.episode++
	return winner, transitions
}

// turn lets the current player pick an action, applies it if the cell is empty and updates the table.
// Picking an occupied cell wastes the turn: the state stays the same and is learned against itself.
func (t *Trainer) turn() (tr Transition, tdError float32, ended bool, winner game.Player) {
	mover := t.currentPlayer
	action := t.policy.SelectAction(t.state, t.rate)
	tr = Transition{
		Player: mover.Player,
		State:  t.state,
		Action: action,
		Next:   t.state,
	}

	move := game.PlayerMove{Player: mover.Player, Single: action}
	if t.board.Check(move) {
		t.board.Apply(move)
		switch {
		case t.board.IsWin(mover.Player):
			ended, winner = true, mover.Player
		case t.board.IsDraw():
			ended = true
		}
		tr.Next = EncodeState(t.board.Board())
		t.table.Ensure(tr.Next)
		if t.enc != nil {
			if err := t.enc.Encode(t); err != nil {
				t.logger.Printf("Unable to encode move %v: %v", move, err)
			}
		}
	} else {
		mover.wasted++
	}
	mover.moves++

	tr.Reward = Reward(ended, winner, t.conf.Learner)
	tdError = t.learner.Update(tr.State, tr.Action, tr.Reward, tr.Next)
	t.state = tr.Next
	t.switchPlayer()
	return tr, tdError, ended, winner
}

func (t *Trainer) switchPlayer() {
	switch t.currentPlayer {
	case t.A:
		t.currentPlayer = t.B
	case t.B:
		t.currentPlayer = t.A
	}
}

// Log writes the log of the last call to Learn.
func (t *Trainer) Log(w io.Writer) {
	fmt.Fprint(w, t.buf.String())
}

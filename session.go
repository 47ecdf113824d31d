package qttt

import (
	"fmt"
	"sync"

	"github.com/gorgonia/qttt/game"
	"github.com/gorgonia/qttt/game/nxn"
	"github.com/gorgonia/qttt/qtable"
	"github.com/pkg/errors"
)

// Session hosts interactive games against a trained table. The table is only ever read.
type Session struct {
	sync.Mutex
	conf  SessionConfig
	table *qtable.Table
	board *nxn.Board

	human, ai game.Player
	toMove    game.Player
	ended     bool
	message   string
	games     int
}

// NewSession starts a game on a fresh board sized for table. If the AI is to open, it moves at once.
func NewSession(table *qtable.Table, conf SessionConfig) (*Session, error) {
	if !isMark(conf.Human) {
		return nil, errors.WithMessage(ConfigError{Field: "Human", Reason: fmt.Sprintf("must be X or O, got %v", conf.Human)}, "unable to start session")
	}
	n := sqrt(table.ActionSpace())
	if n*n != table.ActionSpace() {
		return nil, errors.Errorf("table with %d actions does not fit a square board", table.ActionSpace())
	}
	if conf.Name == "" {
		conf.Name = fmt.Sprintf("%dx%d Tic-Tac-Toe", n, n)
	}

	s := &Session{
		conf:  conf,
		table: table,
		board: nxn.New(n),
		human: conf.Human,
		ai:    conf.Human.Opponent(),
	}
	switch {
	case conf.Mode == AIVsAI:
		// both sides are played by the table. The "human" mark opens.
		s.toMove = conf.Human
	case conf.HumanStarts:
		s.toMove = s.human
	default:
		s.toMove = s.ai
	}
	s.board.SetToMove(s.toMove)
	if conf.Mode == HumanVsAI && s.toMove == s.ai {
		s.aiMove()
	}
	return s, nil
}

func (s *Session) Name() string      { return s.conf.Name }
func (s *Session) GameNumber() int   { return s.games }

// State returns a copy of the board, safe to read while the session plays on.
func (s *Session) State() game.State {
	s.Lock()
	defer s.Unlock()
	return s.board.Clone()
}

// Mode returns the kind of game hosted.
func (s *Session) Mode() Mode { return s.conf.Mode }

// Human returns the human's mark.
func (s *Session) Human() game.Player { return s.human }

// AI returns the AI's mark.
func (s *Session) AI() game.Player { return s.ai }

// ToMove returns the mark that moves next.
func (s *Session) ToMove() game.Player {
	s.Lock()
	defer s.Unlock()
	return s.toMove
}

// Ended returns true once the current game has been won or drawn.
func (s *Session) Ended() bool {
	s.Lock()
	defer s.Unlock()
	return s.ended
}

// Message returns who won, or that the game was drawn. It is empty while the game is on.
func (s *Session) Message() string {
	s.Lock()
	defer s.Unlock()
	return s.message
}

// HumanMove places the human's mark at (row, col). The attempt is ignored, and false returned,
// when it is not the human's turn, the game is over or the cell is taken or off the board.
func (s *Session) HumanMove(row, col int) (Outcome, bool) {
	s.Lock()
	defer s.Unlock()
	n, _ := s.board.BoardSize()
	if s.conf.Mode != HumanVsAI || s.ended || s.toMove != s.human {
		return Continue, false
	}
	if row < 0 || row >= n || col < 0 || col >= n {
		return Continue, false
	}
	move := game.PlayerMove{Player: s.human, Single: s.board.Index(row, col)}
	if !s.board.Check(move) {
		return Continue, false
	}
	s.board.Apply(move)

	switch {
	case s.board.IsWin(s.human):
		s.end(fmt.Sprintf("Player %s wins!", s.human.Mark()))
		return HumanWins, true
	case s.board.IsDraw():
		s.end("It's a draw!")
		return Draw, true
	}
	s.toMove = s.ai
	return Continue, true
}

// AIMove plays the greedy move from the table for whoever the AI is to move.
// An unseen state is treated as all zeros. The move is ignored, and false returned,
// if it is not an AI's turn, the game is over, or the greedy cell is taken.
func (s *Session) AIMove() (Outcome, bool) {
	s.Lock()
	defer s.Unlock()
	return s.aiMove()
}

func (s *Session) aiMove() (Outcome, bool) {
	if s.ended || (s.conf.Mode == HumanVsAI && s.toMove != s.ai) {
		return Continue, false
	}
	mover := s.toMove
	k := EncodeState(s.board.Board())
	action := qtable.Greedy(s.table, k, s.conf.MaskIllegal)
	move := game.PlayerMove{Player: mover, Single: action}
	if !s.board.Check(move) {
		return Continue, false
	}
	s.board.Apply(move)

	switch {
	case s.board.IsWin(mover):
		s.end(fmt.Sprintf("AI (%s) wins!", mover.Mark()))
		return AIWins, true
	case s.board.IsDraw():
		s.end("It's a draw!")
		return Draw, true
	}
	s.toMove = mover.Opponent()
	return Continue, true
}

func (s *Session) end(msg string) {
	s.ended = true
	s.message = msg
}

// Reset clears the board for a new game. The human's mark always moves first after a reset;
// in AIVsAI mode that is the opening mark.
func (s *Session) Reset() {
	s.Lock()
	defer s.Unlock()
	s.board.Reset()
	s.ended = false
	s.message = ""
	s.games++
	s.toMove = s.human
	s.board.SetToMove(s.toMove)
	if s.conf.Mode == HumanVsAI && s.toMove == s.ai {
		s.aiMove()
	}
}

func sqrt(a int) int {
	if a == 0 || a == 1 {
		return a
	}
	start := 1
	end := a / 2
	var retVal int
	for start <= end {
		mid := (start + end) / 2
		sq := mid * mid
		if sq == a {
			return mid
		}
		if sq < a {
			start = mid + 1
			retVal = mid
		} else {
			end = mid - 1
		}
	}
	return retVal
}

package qttt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gorgonia/qttt/game"
	"github.com/gorgonia/qttt/game/nxn"
	"github.com/stretchr/testify/assert"
)

const (
	None  = game.None
	Black = game.Black
	White = game.White
)

func TestEncodeState(t *testing.T) {
	board := []game.Colour{
		White, None, Black,
		None, White, None,
		None, None, Black,
	}
	k := EncodeState(board)
	assert.Equal(t, game.Key("O.X.O...X"), k)
	assert.Equal(t, k, EncodeState(board), "encoding must be deterministic")
	if diff := cmp.Diff(board, DecodeState(k, nil)); diff != "" {
		t.Errorf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeStateOrderSensitive(t *testing.T) {
	a := []game.Colour{Black, White, None, None}
	b := []game.Colour{White, Black, None, None}
	assert.NotEqual(t, EncodeState(a), EncodeState(b))
}

// TestEncodeStateInjective walks every reachable 3x3 board and checks that no two different boards share a key.
func TestEncodeStateInjective(t *testing.T) {
	seen := make(map[game.Key][]game.Colour)
	g := nxn.TicTacToe()

	var walk func(p game.Player)
	walk = func(p game.Player) {
		k := EncodeState(g.Board())
		if prev, ok := seen[k]; ok {
			if diff := cmp.Diff(prev, g.Board()); diff != "" {
				t.Fatalf("collision on %q (-first +second):\n%s", k, diff)
			}
		} else {
			seen[k] = append([]game.Colour(nil), g.Board()...)
		}
		if ended, _ := g.Ended(); ended {
			return
		}
		for i, c := range g.Board() {
			if c != game.None {
				continue
			}
			g.Board()[i] = game.Colour(p)
			walk(p.Opponent())
			g.Board()[i] = game.None
		}
	}
	walk(nxn.Cross)

	// 5478 legal positions of tic-tac-toe when X opens
	assert.Equal(t, 5478, len(seen))
}

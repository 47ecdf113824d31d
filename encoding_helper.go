package qttt

import (
	"strings"

	"github.com/gorgonia/qttt/game"
)

// EncodeState encodes the full contents of a board, cell by cell in row-major order, into a key.
// Boards with the same contents always produce the same key, and different contents always produce different keys.
func EncodeState(a []game.Colour) game.Key {
	var buf strings.Builder
	buf.Grow(len(a))
	for _, c := range a {
		buf.WriteByte(game.CellByte(c))
	}
	return game.Key(buf.String())
}

// DecodeState is the inverse of EncodeState.
func DecodeState(k game.Key, prealloc []game.Colour) []game.Colour {
	if len(prealloc) != k.Len() {
		prealloc = make([]game.Colour, k.Len())
	}
	for i := range prealloc {
		prealloc[i] = k.At(i)
	}
	return prealloc
}

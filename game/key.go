package game

// Key is the canonical encoding of a board's full contents. It is used as a map key for the value table.
//
// Each cell takes exactly one byte, in row-major order:
//		- '.' for an empty cell
//		- 'X' for Black
//		- 'O' for White
type Key string

const (
	emptyCell = '.'
	blackCell = 'X'
	whiteCell = 'O'
)

// CellByte returns the byte a colour is encoded as in a Key.
func CellByte(c Colour) byte {
	switch c {
	case Black:
		return blackCell
	case White:
		return whiteCell
	}
	return emptyCell
}

// At returns the colour of the ith cell.
func (k Key) At(i int) Colour {
	switch k[i] {
	case blackCell:
		return Black
	case whiteCell:
		return White
	}
	return None
}

// Empty returns true if the ith cell is empty.
func (k Key) Empty(i int) bool { return k[i] == emptyCell }

// Len is the number of cells encoded.
func (k Key) Len() int { return len(k) }

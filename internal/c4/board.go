// Package c4 implements the Connect Four rules: a generic token board,
// two-player matches, and a one-player variant against a bot opponent.
package c4

// Direction is one of the eight compass neighbors of a cell.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 4) % 8
}

// Token is a placed value together with its position.
type Token[T comparable] struct {
	Row    int
	Column int
	Value  T
}

// Board is a width x height grid of optional tokens. Row 0 is the top row.
type Board[T comparable] struct {
	width  int
	height int
	cells  []*Token[T]
	placed int
}

// NewBoard creates an empty board.
func NewBoard[T comparable](width, height int) *Board[T] {
	return &Board[T]{
		width:  width,
		height: height,
		cells:  make([]*Token[T], width*height),
	}
}

// Width returns the number of columns.
func (b *Board[T]) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board[T]) Height() int {
	return b.height
}

// Placed returns how many tokens are on the board.
func (b *Board[T]) Placed() int {
	return b.placed
}

// Full reports whether every cell holds a token.
func (b *Board[T]) Full() bool {
	return b.placed == b.width*b.height
}

// Get returns the token at the given position, or nil when the cell is
// empty or out of bounds.
func (b *Board[T]) Get(row, column int) *Token[T] {
	index, ok := b.index(row, column)
	if !ok {
		return nil
	}
	return b.cells[index]
}

// Set places a value at the given position. Out-of-bounds positions are
// ignored.
func (b *Board[T]) Set(row, column int, value T) {
	index, ok := b.index(row, column)
	if !ok {
		return
	}
	if b.cells[index] == nil {
		b.placed++
	}
	b.cells[index] = &Token[T]{Row: row, Column: column, Value: value}
}

// Fill places the same value in every cell.
func (b *Board[T]) Fill(value T) {
	for row := 0; row < b.height; row++ {
		for column := 0; column < b.width; column++ {
			b.Set(row, column, value)
		}
	}
}

// Neighbor returns the token adjacent to the given position in the given
// direction, or nil when that cell is empty or off the board.
func (b *Board[T]) Neighbor(row, column int, direction Direction) *Token[T] {
	switch direction {
	case North:
		return b.Get(row-1, column)
	case NorthEast:
		return b.Get(row-1, column+1)
	case East:
		return b.Get(row, column+1)
	case SouthEast:
		return b.Get(row+1, column+1)
	case South:
		return b.Get(row+1, column)
	case SouthWest:
		return b.Get(row+1, column-1)
	case West:
		return b.Get(row, column-1)
	default:
		return b.Get(row-1, column-1)
	}
}

// CountInDirection returns the length of the run of equal values starting
// at the given position and walking in one direction. An empty start cell
// counts zero.
func (b *Board[T]) CountInDirection(row, column int, direction Direction) int {
	token := b.Get(row, column)
	if token == nil {
		return 0
	}
	neighbor := b.Neighbor(row, column, direction)
	if neighbor != nil && neighbor.Value == token.Value {
		return 1 + b.CountInDirection(neighbor.Row, neighbor.Column, direction)
	}
	return 1
}

// CountInBidirection returns the length of the run of equal values passing
// through the given position along the axis of the given direction.
func (b *Board[T]) CountInBidirection(row, column int, direction Direction) int {
	count := b.CountInDirection(row, column, direction) +
		b.CountInDirection(row, column, direction.Opposite())
	if count == 0 {
		return 0
	}
	// The start cell was counted once per direction.
	return count - 1
}

func (b *Board[T]) index(row, column int) (int, bool) {
	if row < 0 || row >= b.height || column < 0 || column >= b.width {
		return 0, false
	}
	return row*b.width + column, true
}

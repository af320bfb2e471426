package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

const (
	MinBoardSize = 3
	MaxBoardSize = 6
	MinWinLength = 3
)

// Board is an n×n grid of marks plus a counter of empty cells.
// The counter is kept in sync by Place and Clear and is never recomputed.
//
// A Board is not safe for concurrent use: searches mutate it in place and
// rely on every placement being undone by the same call stack.
type Board struct {
	size      int
	winLength int
	cells     []Mark
	free      int
}

// NewBoard returns an empty board. The size must be within [3,6] and the
// win length within [3,size].
func NewBoard(size, winLength int) (*Board, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return nil, fmt.Errorf("%w: board size %d is outside [%d,%d]",
			apperror.ErrInvalidConfiguration, size, MinBoardSize, MaxBoardSize)
	}

	if winLength < MinWinLength || winLength > size {
		return nil, fmt.Errorf("%w: win length %d is outside [%d,%d]",
			apperror.ErrInvalidConfiguration, winLength, MinWinLength, size)
	}

	return &Board{
		size:      size,
		winLength: winLength,
		cells:     make([]Mark, size*size),
		free:      size * size,
	}, nil
}

// NewBoardFromCells builds a board from its flat row-major wire form, where
// every cell is "X", "O" or "".
func NewBoardFromCells(size, winLength int, cells []string) (*Board, error) {
	board, err := NewBoard(size, winLength)
	if err != nil {
		return nil, err
	}

	if len(cells) != size*size {
		return nil, fmt.Errorf("%w: expected %d cells, got %d",
			apperror.ErrInvalidConfiguration, size*size, len(cells))
	}

	for i, value := range cells {
		mark, ok := ParseMark(value)
		if !ok {
			return nil, fmt.Errorf("%w: unknown mark %q at cell %d", apperror.ErrInvalidConfiguration, value, i)
		}

		if mark == MarkEmpty {
			continue
		}

		if err = board.Place(i/size, i%size, mark); err != nil {
			return nil, err
		}
	}

	return board, nil
}

func (that *Board) Size() int {
	return that.size
}

func (that *Board) WinLength() int {
	return that.winLength
}

func (that *Board) FreeCount() int {
	return that.free
}

func (that *Board) IsFull() bool {
	return that.free == 0
}

func (that *Board) InRange(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

// At returns the mark at (row, col). Out-of-range cells read as empty.
func (that *Board) At(row, col int) Mark {
	if !that.InRange(row, col) {
		return MarkEmpty
	}

	return that.cells[row*that.size+col]
}

// Place puts mark into an empty cell.
func (that *Board) Place(row, col int, mark Mark) error {
	if !that.InRange(row, col) {
		return fmt.Errorf("%w: cell [%d,%d] is out of range", apperror.ErrInvalidMove, row, col)
	}

	if !mark.IsPlayer() {
		return fmt.Errorf("%w: mark %d cannot be placed", apperror.ErrInvalidMove, mark)
	}

	idx := row*that.size + col
	if that.cells[idx] != MarkEmpty {
		return fmt.Errorf("%w: cell [%d,%d] is already occupied", apperror.ErrInvalidMove, row, col)
	}

	that.cells[idx] = mark
	that.free--

	return nil
}

// Clear empties a cell previously filled by Place.
func (that *Board) Clear(row, col int) error {
	if !that.InRange(row, col) {
		return fmt.Errorf("%w: cell [%d,%d] is out of range", apperror.ErrInvalidMove, row, col)
	}

	idx := row*that.size + col
	if that.cells[idx] == MarkEmpty {
		return fmt.Errorf("%w: cell [%d,%d] is already empty", apperror.ErrInvalidMove, row, col)
	}

	that.cells[idx] = MarkEmpty
	that.free++

	return nil
}

// Turn returns the side to move, assuming X always moves first.
func (that *Board) Turn() Mark {
	if (that.size*that.size-that.free)%2 == 0 {
		return MarkX
	}

	return MarkO
}

func (that *Board) Clone() *Board {
	cells := make([]Mark, len(that.cells))
	copy(cells, that.cells)

	return &Board{
		size:      that.size,
		winLength: that.winLength,
		cells:     cells,
		free:      that.free,
	}
}

// Cells returns the flat row-major wire form of the board.
func (that *Board) Cells() []string {
	out := make([]string, len(that.cells))
	for i, mark := range that.cells {
		out[i] = mark.String()
	}

	return out
}

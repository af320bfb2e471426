package tictactoe

import "github.com/rocketscienceinc/tictactoe-solver/internal/entity"

type direction struct {
	dRow, dCol int
}

// axes are scanned in this order: horizontal, vertical, main diagonal, anti diagonal.
var axes = [4][2]direction{
	{{0, 1}, {0, -1}},
	{{-1, 0}, {1, 0}},
	{{1, 1}, {-1, -1}},
	{{-1, 1}, {1, -1}},
}

// Evaluate checks the line state around a cell that was just played with mark.
// It is a local check anchored at (row, col) and is only valid right after a
// placement there.
func Evaluate(board *entity.Board, row, col int, mark entity.Mark) entity.Result {
	maxSum := 0

	for _, axis := range axes {
		sum := run(board, row, col, axis[0], mark) + run(board, row, col, axis[1], mark) + 1
		if sum == board.WinLength() {
			return entity.WinFor(mark)
		}

		if sum > maxSum {
			maxSum = sum
		}
	}

	if board.IsFull() {
		return entity.Draw()
	}

	return entity.Ongoing(maxSum + 1)
}

// run counts consecutive cells holding mark, starting next to (row, col).
func run(board *entity.Board, row, col int, dir direction, mark entity.Mark) int {
	count := 0
	for r, c := row+dir.dRow, col+dir.dCol; board.InRange(r, c) && board.At(r, c) == mark; r, c = r+dir.dRow, c+dir.dCol {
		count++
	}

	return count
}

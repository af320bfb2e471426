package tictactoe

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// WinScore is the base magnitude of a terminal win. It is scaled by the
// remaining depth and always exceeds any heuristic score.
const WinScore = 100

// searcher runs one fixed-depth alpha-beta search over a board it mutates in place.
// The engine is the maximizing side.
type searcher struct {
	board      *entity.Board
	engine     entity.Mark
	opponent   entity.Mark
	depthLimit int

	// tree is nil when diagnostics are off.
	tree  *DecisionTree
	nodes int
}

// search scores the position reached by the move at (row, col).
// maximizing tells whose turn it is now, so the mark that produced the
// position is the opponent's when maximizing and the engine's otherwise.
func (that *searcher) search(row, col, alpha, beta int, maximizing bool, depth int, node NodeID) (int, error) {
	that.nodes++

	mover := that.engine
	if maximizing {
		mover = that.opponent
	}

	result := Evaluate(that.board, row, col, mover)

	if result.IsTerminal() {
		value := that.terminalValue(result, depth)
		that.stamp(node, alpha, beta, value)

		return value, nil
	}

	if depth >= that.depthLimit {
		value := result.Score
		if mover == that.opponent {
			value = -value
		}
		that.stamp(node, alpha, beta, value)

		return value, nil
	}

	if maximizing {
		return that.maximize(alpha, beta, depth, node)
	}

	return that.minimize(alpha, beta, depth, node)
}

func (that *searcher) maximize(alpha, beta, depth int, node NodeID) (int, error) {
	value := math.MinInt
	size := that.board.Size()

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if that.board.At(row, col) != entity.MarkEmpty {
				continue
			}

			child, err := that.descend(row, col, that.engine, alpha, beta, false, depth+1, node, MinChild)
			if err != nil {
				return 0, err
			}

			value = max(value, child)
			alpha = max(alpha, value)

			if value >= beta {
				that.stamp(node, alpha, beta, value)
				return value, nil
			}
		}
	}

	that.stamp(node, alpha, beta, value)

	return value, nil
}

func (that *searcher) minimize(alpha, beta, depth int, node NodeID) (int, error) {
	value := math.MaxInt
	size := that.board.Size()

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if that.board.At(row, col) != entity.MarkEmpty {
				continue
			}

			child, err := that.descend(row, col, that.opponent, alpha, beta, true, depth+1, node, MaxChild)
			if err != nil {
				return 0, err
			}

			value = min(value, child)
			beta = min(beta, value)

			if value <= alpha {
				that.stamp(node, alpha, beta, value)
				return value, nil
			}
		}
	}

	that.stamp(node, alpha, beta, value)

	return value, nil
}

// descend places mark at (row, col), searches the resulting position and
// clears the cell again on every return path.
func (that *searcher) descend(
	row, col int, mark entity.Mark, alpha, beta int, maximizing bool, depth int, parent NodeID, polarity Polarity,
) (value int, err error) {
	if err = that.board.Place(row, col, mark); err != nil {
		return 0, fmt.Errorf("failed to place search move: %w", err)
	}

	defer func() {
		if clearErr := that.board.Clear(row, col); clearErr != nil && err == nil {
			err = fmt.Errorf("failed to undo search move: %w", clearErr)
		}
	}()

	child := NoNode
	if that.tree != nil && parent != NoNode {
		child = that.tree.Attach(parent, polarity, row, col, mark)
	}

	return that.search(row, col, alpha, beta, maximizing, depth, child)
}

func (that *searcher) terminalValue(result entity.Result, depth int) int {
	scale := that.depthLimit - depth + 1

	switch result.Winner() {
	case that.engine:
		return WinScore * scale
	case that.opponent:
		return -WinScore * scale
	default:
		return 0
	}
}

func (that *searcher) stamp(node NodeID, alpha, beta, value int) {
	if that.tree == nil || node == NoNode {
		return
	}

	that.tree.Stamp(node, alpha, beta, value)
}

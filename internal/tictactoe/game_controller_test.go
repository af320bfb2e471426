package tictactoe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// fullDepth searches a 3x3 board to the end of the game.
const fullDepth = 9

func mustEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()

	engine, err := NewEngine(opts...)
	require.NoError(t, err)

	return engine
}

func TestNewEngine(t *testing.T) {
	t.Run("Uses the default depth limit", func(t *testing.T) {
		engine := mustEngine(t)

		assert.Equal(t, DefaultDepthLimit, engine.DepthLimit())
	})

	t.Run("Rejects a non-positive depth limit", func(t *testing.T) {
		engine, err := NewEngine(WithDepthLimit(0))

		require.ErrorIs(t, err, apperror.ErrInvalidConfiguration)
		assert.Nil(t, engine)
	})
}

func TestEngine_BestMove(t *testing.T) {
	t.Run("Takes the winning move", func(t *testing.T) {
		// Given: X at (0,0),(0,1) and O at (1,0), X to move
		board := mustBoard(t, 3, 3,
			"X", "X", "",
			"O", "", "",
			"", "", "",
		)
		engine := mustEngine(t)

		// When: asking for the best move
		decision, err := engine.BestMove(board, entity.MarkX)
		require.NoError(t, err)

		// Then: X completes the top row
		assert.Equal(t, entity.PlayerX, decision.Mark)
		assert.Equal(t, 0, decision.Row)
		assert.Equal(t, 2, decision.Col)
		assert.Equal(t, WinScore*DefaultDepthLimit, decision.Value)

		// And: the move is classified as a win for X
		require.NoError(t, board.Place(decision.Row, decision.Col, entity.MarkX))
		outcome, err := ClassifyMove(board, decision.Row, decision.Col, entity.MarkX)
		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeWinA, outcome)
	})

	t.Run("Blocks the opponent's immediate win", func(t *testing.T) {
		// Given: O threatens the middle row and X has no win of its own
		board := mustBoard(t, 3, 3,
			"X", "", "",
			"O", "O", "",
			"", "X", "",
		)
		engine := mustEngine(t, WithDepthLimit(2))

		// When: asking for the best move two plies deep
		decision, err := engine.BestMove(board, entity.MarkX)
		require.NoError(t, err)

		// Then: X blocks at (1,2); every other move loses to O
		assert.Equal(t, 1, decision.Row)
		assert.Equal(t, 2, decision.Col)
		assert.Greater(t, decision.Value, -WinScore)
		assert.Equal(t, -WinScore, decision.Candidates[0].Value)
	})

	t.Run("Depth cutoff after the engine's move scores the engine's run", func(t *testing.T) {
		// Given: an empty board and a one-ply search
		board := mustBoard(t, 3, 3)
		engine := mustEngine(t, WithDepthLimit(1))

		// When: asking for the best move
		decision, err := engine.BestMove(board, entity.MarkX)
		require.NoError(t, err)

		// Then: every cell scores a lone run of one, plus one; the first cell wins the tie
		require.Len(t, decision.Candidates, 9)
		for _, candidate := range decision.Candidates {
			assert.Equal(t, 2, candidate.Value)
		}
		assert.Equal(t, 0, decision.Row)
		assert.Equal(t, 0, decision.Col)
	})

	t.Run("Depth cutoff after the opponent's reply is negated", func(t *testing.T) {
		board := mustBoard(t, 3, 3)
		engine := mustEngine(t, WithDepthLimit(2))

		decision, err := engine.BestMove(board, entity.MarkX)
		require.NoError(t, err)

		assert.Equal(t, -2, decision.Value)
		assert.Equal(t, 0, decision.Row)
		assert.Equal(t, 0, decision.Col)
	})

	t.Run("Plays O when X has moved", func(t *testing.T) {
		// Given: X took the centre
		board := mustBoard(t, 3, 3,
			"", "", "",
			"", "X", "",
			"", "", "",
		)
		engine := mustEngine(t, WithDepthLimit(fullDepth))

		// When: asking without naming a side
		decision, err := engine.BestMove(board, entity.MarkEmpty)
		require.NoError(t, err)

		// Then: O answers in a corner, the only non-losing reply
		assert.Equal(t, entity.PlayerO, decision.Mark)
		assert.Contains(t, []int{0, 2}, decision.Row)
		assert.Contains(t, []int{0, 2}, decision.Col)
		assert.Equal(t, 0, decision.Value)
	})

	t.Run("Leaves the board untouched", func(t *testing.T) {
		board := mustBoard(t, 4, 3,
			"X", "", "", "",
			"", "O", "", "",
			"", "", "", "",
			"", "", "", "",
		)
		before := board.Clone()
		engine := mustEngine(t, WithDepthLimit(4), WithDiagnostics(true))

		_, err := engine.BestMove(board, entity.MarkX)
		require.NoError(t, err)

		assert.Equal(t, before, board)
	})

	t.Run("Error on full board", func(t *testing.T) {
		// Given: a full board
		board := mustBoard(t, 3, 3,
			"X", "O", "X",
			"X", "O", "O",
			"O", "X", "X",
		)
		engine := mustEngine(t)

		// When: asking for a move
		decision, err := engine.BestMove(board, entity.MarkX)

		// Then: ErrNoMoveAvailable is returned
		require.ErrorIs(t, err, apperror.ErrNoMoveAvailable)
		assert.Nil(t, decision)
	})
}

func TestEngine_BestMove_Side(t *testing.T) {
	// Given: both sides threaten a row and parity gives the move to X
	board := mustBoard(t, 3, 3,
		"X", "X", "",
		"O", "O", "",
		"", "", "",
	)
	require.Equal(t, entity.MarkX, board.Turn())
	engine := mustEngine(t)

	t.Run("Searches for the requested side", func(t *testing.T) {
		// When: asking for O's move
		decision, err := engine.BestMove(board, entity.MarkO)
		require.NoError(t, err)

		// Then: O completes the middle row instead of blocking
		assert.Equal(t, entity.PlayerO, decision.Mark)
		assert.Equal(t, 1, decision.Row)
		assert.Equal(t, 2, decision.Col)
		assert.Equal(t, WinScore*DefaultDepthLimit, decision.Value)
	})

	t.Run("Falls back to parity without a side", func(t *testing.T) {
		decision, err := engine.BestMove(board, entity.MarkEmpty)
		require.NoError(t, err)

		assert.Equal(t, entity.PlayerX, decision.Mark)
		assert.Equal(t, 0, decision.Row)
		assert.Equal(t, 2, decision.Col)
	})
}

func TestEngine_BestMoveAtDepth(t *testing.T) {
	engine := mustEngine(t)

	t.Run("Overrides the engine depth limit for one call", func(t *testing.T) {
		// Given: an engine with the default depth and an empty board
		board := mustBoard(t, 3, 3)

		// When: searching a single ply
		decision, err := engine.BestMoveAtDepth(board, entity.MarkX, 1)
		require.NoError(t, err)

		// Then: the one-ply heuristic values are returned
		assert.Equal(t, 1, decision.DepthLimit)
		require.Len(t, decision.Candidates, 9)
		for _, candidate := range decision.Candidates {
			assert.Equal(t, 2, candidate.Value)
		}
		assert.Equal(t, DefaultDepthLimit, engine.DepthLimit())
	})

	t.Run("Rejects a non-positive depth limit", func(t *testing.T) {
		decision, err := engine.BestMoveAtDepth(mustBoard(t, 3, 3), entity.MarkX, 0)

		require.ErrorIs(t, err, apperror.ErrInvalidConfiguration)
		assert.Nil(t, decision)
	})
}

func TestEngine_BestMove_Trace(t *testing.T) {
	t.Run("Records one root per candidate", func(t *testing.T) {
		// Given: the winning-move position searched one ply deep with diagnostics
		board := mustBoard(t, 3, 3,
			"X", "X", "",
			"O", "", "",
			"", "", "",
		)
		engine := mustEngine(t, WithDepthLimit(1), WithDiagnostics(true))

		// When: asking for the best move
		decision, err := engine.BestMove(board, entity.MarkX)
		require.NoError(t, err)

		// Then: the trace lists each root with its move below it
		lines := strings.Split(decision.Trace, "\n")
		require.GreaterOrEqual(t, len(lines), 6)
		assert.Equal(t, "(alpha; beta; value)", lines[0])
		assert.Equal(t, "(-inf; +inf; 100)", lines[1])
		assert.Equal(t, "   (100), [0,2] - x", lines[2])
		assert.Equal(t, "", lines[3])
		assert.Equal(t, "(100; +inf; 3)", lines[4])
		assert.Equal(t, "   (3), [1,1] - x", lines[5])
		assert.Equal(t, 6, strings.Count(decision.Trace, "(-inf; +inf;")+strings.Count(decision.Trace, "(100; +inf;"))
	})

	t.Run("No trace without diagnostics", func(t *testing.T) {
		board := mustBoard(t, 3, 3)
		engine := mustEngine(t, WithDepthLimit(2))

		decision, err := engine.BestMove(board, entity.MarkX)
		require.NoError(t, err)

		assert.Empty(t, decision.Trace)
		assert.Positive(t, decision.Nodes)
	})
}

func TestEngine_SelfPlay(t *testing.T) {
	// Given: an empty 3x3 board and an engine searching to the end of the game
	board := mustBoard(t, 3, 3)
	engine := mustEngine(t, WithDepthLimit(fullDepth))

	outcome := entity.OutcomeContinue
	for outcome == entity.OutcomeContinue {
		// When: both sides are played by the engine
		mark := board.Turn()

		decision, err := engine.BestMove(board, mark)
		require.NoError(t, err)

		require.NoError(t, board.Place(decision.Row, decision.Col, mark))

		outcome, err = ClassifyMove(board, decision.Row, decision.Col, mark)
		require.NoError(t, err)
	}

	// Then: optimal play on both sides ends in a draw
	assert.Equal(t, entity.OutcomeDraw, outcome)
	assert.True(t, board.IsFull())
}

func TestEngine_NeverLoses(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive game walk")
	}

	engine := mustEngine(t, WithDepthLimit(fullDepth))

	lost := map[entity.Mark]entity.Outcome{
		entity.MarkX: entity.OutcomeWinB,
		entity.MarkO: entity.OutcomeWinA,
	}

	// walk tries every opponent reply and lets the engine answer each one.
	var walk func(t *testing.T, board *entity.Board, engineMark entity.Mark)
	walk = func(t *testing.T, board *entity.Board, engineMark entity.Mark) {
		if board.Turn() == engineMark {
			decision, err := engine.BestMove(board, engineMark)
			require.NoError(t, err)

			require.NoError(t, board.Place(decision.Row, decision.Col, engineMark))
			defer func() { require.NoError(t, board.Clear(decision.Row, decision.Col)) }()

			outcome, err := ClassifyMove(board, decision.Row, decision.Col, engineMark)
			require.NoError(t, err)
			if outcome != entity.OutcomeContinue {
				return
			}

			walk(t, board, engineMark)
			return
		}

		opponent := engineMark.Opponent()
		for row := 0; row < board.Size(); row++ {
			for col := 0; col < board.Size(); col++ {
				if board.At(row, col) != entity.MarkEmpty {
					continue
				}

				require.NoError(t, board.Place(row, col, opponent))

				outcome, err := ClassifyMove(board, row, col, opponent)
				require.NoError(t, err)
				require.NotEqual(t, lost[engineMark], outcome, "engine %s lost: %v", engineMark, board.Cells())

				if outcome == entity.OutcomeContinue {
					walk(t, board, engineMark)
				}

				require.NoError(t, board.Clear(row, col))
			}
		}
	}

	for _, engineMark := range []entity.Mark{entity.MarkX, entity.MarkO} {
		t.Run("engine plays "+engineMark.String(), func(t *testing.T) {
			walk(t, mustBoard(t, 3, 3), engineMark)
		})
	}
}

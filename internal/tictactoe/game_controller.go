package tictactoe

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// DefaultDepthLimit keeps a 3x3 search instant. Above 7 on larger boards the
// search grows intractable; there is no time box inside the engine.
const DefaultDepthLimit = 7

// Decision is the outcome of one BestMove call.
type Decision struct {
	Row        int                `json:"row"`
	Col        int                `json:"col"`
	Value      int                `json:"value"`
	Mark       string             `json:"mark"`
	DepthLimit int                `json:"depth_limit"`
	Candidates []entity.Candidate `json:"candidates"`
	Nodes      int                `json:"nodes"`
	Elapsed    time.Duration      `json:"elapsed"`
	Trace      string             `json:"trace,omitempty"`
}

type Option func(engine *Engine)

func WithDepthLimit(depth int) Option {
	return func(engine *Engine) {
		engine.depthLimit = depth
	}
}

// WithDiagnostics turns on decision tree recording; the rendered tree is
// returned in Decision.Trace.
func WithDiagnostics(enabled bool) Option {
	return func(engine *Engine) {
		engine.diagnostics = enabled
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(engine *Engine) {
		if logger != nil {
			engine.logger = logger
		}
	}
}

// Engine picks moves with a fixed-depth alpha-beta search.
// It holds no per-search state and can be shared, but a single board must
// never be searched by two calls at once.
type Engine struct {
	depthLimit  int
	diagnostics bool
	logger      *slog.Logger
}

func NewEngine(opts ...Option) (*Engine, error) {
	engine := &Engine{
		depthLimit: DefaultDepthLimit,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(engine)
	}

	if engine.depthLimit < 1 {
		return nil, fmt.Errorf("%w: depth limit %d must be positive", apperror.ErrInvalidConfiguration, engine.depthLimit)
	}

	return engine, nil
}

func (that *Engine) DepthLimit() int {
	return that.depthLimit
}

// BestMove searches every empty cell for mark with the engine's depth limit.
// See BestMoveAtDepth.
func (that *Engine) BestMove(board *entity.Board, mark entity.Mark) (*Decision, error) {
	return that.BestMoveAtDepth(board, mark, that.depthLimit)
}

// BestMoveAtDepth searches every empty cell for mark and returns the one with
// the strictly greatest value; the first one found wins ties. An empty mark
// means the side to move by parity (X moves first).
// The board is left exactly as it was passed in.
func (that *Engine) BestMoveAtDepth(board *entity.Board, mark entity.Mark, depthLimit int) (*Decision, error) {
	if depthLimit < 1 {
		return nil, fmt.Errorf("%w: depth limit %d must be positive", apperror.ErrInvalidConfiguration, depthLimit)
	}

	if board.IsFull() {
		return nil, apperror.ErrNoMoveAvailable
	}

	log := that.logger.With("method", "BestMove")

	if !mark.IsPlayer() {
		mark = board.Turn()
	}

	search := &searcher{
		board:      board,
		engine:     mark,
		opponent:   mark.Opponent(),
		depthLimit: depthLimit,
	}

	if that.diagnostics {
		search.tree = NewDecisionTree()
	}

	start := time.Now()

	decision := &Decision{
		Row:        -1,
		Col:        -1,
		Value:      math.MinInt,
		Mark:       mark.String(),
		DepthLimit: depthLimit,
		Candidates: make([]entity.Candidate, 0, board.FreeCount()),
	}

	alpha, beta := math.MinInt, math.MaxInt
	size := board.Size()

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if board.At(row, col) != entity.MarkEmpty {
				continue
			}

			root := NoNode
			if search.tree != nil {
				root = search.tree.NewRoot()
			}

			value, err := search.descend(row, col, mark, alpha, beta, false, 1, root, MinChild)
			if err != nil {
				return nil, fmt.Errorf("failed to search cell [%d,%d]: %w", row, col, err)
			}

			if search.tree != nil {
				search.tree.Stamp(root, alpha, beta, value)
			}

			decision.Candidates = append(decision.Candidates, entity.Candidate{Row: row, Col: col, Value: value})

			if decision.Row < 0 || value > decision.Value {
				decision.Row, decision.Col, decision.Value = row, col, value
			}

			alpha = max(alpha, value)
		}
	}

	decision.Nodes = search.nodes
	decision.Elapsed = time.Since(start)

	if search.tree != nil {
		decision.Trace = search.tree.String()
		search.tree.Reset()
	}

	log.Debug("best move selected",
		"mark", decision.Mark,
		"row", decision.Row,
		"col", decision.Col,
		"value", decision.Value,
		"depth_limit", decision.DepthLimit,
		"nodes", decision.Nodes,
		"elapsed", decision.Elapsed,
	)

	return decision, nil
}

// ClassifyMove reports the outcome of the move mark just made at (row, col).
func ClassifyMove(board *entity.Board, row, col int, mark entity.Mark) (entity.Outcome, error) {
	if !board.InRange(row, col) {
		return "", fmt.Errorf("%w: cell [%d,%d] is out of range", apperror.ErrInvalidMove, row, col)
	}

	if !mark.IsPlayer() || board.At(row, col) != mark {
		return "", fmt.Errorf("%w: cell [%d,%d] does not hold %q", apperror.ErrInvalidMove, row, col, mark.String())
	}

	return Evaluate(board, row, col, mark).Outcome(), nil
}

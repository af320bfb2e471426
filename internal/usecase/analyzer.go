package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-solver/internal/service"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type reportRepo interface {
	Save(ctx context.Context, report *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
}

type botService interface {
	MakeTurn(board *entity.Board, mark entity.Mark, depthLimit int) (*service.Turn, error)
}

type moveEngine interface {
	BestMoveAtDepth(board *entity.Board, mark entity.Mark, depthLimit int) (*tictactoe.Decision, error)
	DepthLimit() int
}

// Analysis is a best move plus the id of its stored report, if any.
type Analysis struct {
	Decision *tictactoe.Decision
	ReportID string
}

// Analyzer answers the two questions an external game loop asks the solver:
// which move to play, and what a played move did to the game.
// Every call builds its own board, so concurrent calls never share one.
type Analyzer struct {
	logger *slog.Logger

	engine     moveEngine
	bot        botService
	reportRepo reportRepo
}

// NewAnalyzer returns an Analyzer. With a nil reportRepo no reports are kept.
func NewAnalyzer(logger *slog.Logger, engine moveEngine, reportRepo reportRepo) *Analyzer {
	return &Analyzer{
		logger:     logger.With("component", "analyzer"),
		engine:     engine,
		bot:        service.NewBotService(engine),
		reportRepo: reportRepo,
	}
}

func (that *Analyzer) BestMove(ctx context.Context, position entity.Position) (*Analysis, error) {
	log := that.logger.With("method", "BestMove")

	board, err := entity.NewBoardFromCells(position.Size, position.WinLength, position.Board)
	if err != nil {
		return nil, fmt.Errorf("failed to build board: %w", err)
	}

	mark, err := position.Side()
	if err != nil {
		return nil, fmt.Errorf("failed to read side to move: %w", err)
	}

	depthLimit := position.DepthLimit
	if depthLimit == 0 {
		depthLimit = that.engine.DepthLimit()
	}

	decision, err := that.engine.BestMoveAtDepth(board, mark, depthLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to find best move: %w", err)
	}

	log.Info("best move found",
		"size", position.Size,
		"win_length", position.WinLength,
		"mark", decision.Mark,
		"depth_limit", decision.DepthLimit,
		"row", decision.Row,
		"col", decision.Col,
		"nodes", decision.Nodes,
		"elapsed", decision.Elapsed,
	)

	analysis := &Analysis{Decision: decision}

	if that.reportRepo == nil {
		return analysis, nil
	}

	// a lost report must not cost the caller its move
	reportID, err := that.saveReport(ctx, position, decision)
	if err != nil {
		log.Error("failed to save report", "error", err)
		return analysis, nil
	}

	analysis.ReportID = reportID

	return analysis, nil
}

// Classify reports the outcome of the move already present at (row, col).
func (that *Analyzer) Classify(_ context.Context, position entity.Position, row, col int) (entity.Outcome, error) {
	board, err := entity.NewBoardFromCells(position.Size, position.WinLength, position.Board)
	if err != nil {
		return "", fmt.Errorf("failed to build board: %w", err)
	}

	outcome, err := tictactoe.ClassifyMove(board, row, col, board.At(row, col))
	if err != nil {
		return "", fmt.Errorf("failed to classify move: %w", err)
	}

	return outcome, nil
}

// Play applies the engine's best move to position and returns the new board.
func (that *Analyzer) Play(_ context.Context, position entity.Position) (*service.Turn, error) {
	board, err := entity.NewBoardFromCells(position.Size, position.WinLength, position.Board)
	if err != nil {
		return nil, fmt.Errorf("failed to build board: %w", err)
	}

	mark, err := position.Side()
	if err != nil {
		return nil, fmt.Errorf("failed to read side to move: %w", err)
	}

	turn, err := that.bot.MakeTurn(board, mark, position.DepthLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to play: %w", err)
	}

	that.logger.Debug("engine played",
		"mark", turn.Mark,
		"row", turn.Row,
		"col", turn.Col,
		"outcome", turn.Outcome,
	)

	return turn, nil
}

func (that *Analyzer) Report(ctx context.Context, id string) (*entity.Report, error) {
	if that.reportRepo == nil {
		return nil, fmt.Errorf("reports are disabled: %w", apperror.ErrNotFound)
	}

	report, err := that.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return report, nil
}

func (that *Analyzer) saveReport(ctx context.Context, position entity.Position, decision *tictactoe.Decision) (string, error) {
	reportID, err := pkg.GenerateReportID()
	if err != nil {
		return "", fmt.Errorf("failed to generate report id: %w", err)
	}

	report := &entity.Report{
		ID:         reportID,
		Position:   position,
		DepthLimit: decision.DepthLimit,
		Mark:       decision.Mark,
		Row:        decision.Row,
		Col:        decision.Col,
		Value:      decision.Value,
		Candidates: decision.Candidates,
		Nodes:      decision.Nodes,
		Elapsed:    decision.Elapsed,
		Trace:      decision.Trace,
		CreatedAt:  time.Now().UTC(),
	}

	if err = that.reportRepo.Save(ctx, report); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	return reportID, nil
}

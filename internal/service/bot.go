package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

// Turn is the engine's move applied to a board.
type Turn struct {
	Row     int            `json:"row"`
	Col     int            `json:"col"`
	Mark    string         `json:"mark"`
	Value   int            `json:"value"`
	Outcome entity.Outcome `json:"outcome"`
	Board   []string       `json:"board"`
}

type moveEngine interface {
	BestMoveAtDepth(board *entity.Board, mark entity.Mark, depthLimit int) (*tictactoe.Decision, error)
	DepthLimit() int
}

type BotService interface {
	MakeTurn(board *entity.Board, mark entity.Mark, depthLimit int) (*Turn, error)
}

type botService struct {
	engine moveEngine
}

func NewBotService(engine moveEngine) BotService {
	return &botService{
		engine: engine,
	}
}

// MakeTurn plays the engine's best move for mark on board and classifies the
// result. The board keeps the move. An empty mark plays the side to move by
// parity and a zero depthLimit uses the engine's own.
func (that *botService) MakeTurn(board *entity.Board, mark entity.Mark, depthLimit int) (*Turn, error) {
	if !mark.IsPlayer() {
		mark = board.Turn()
	}

	if depthLimit == 0 {
		depthLimit = that.engine.DepthLimit()
	}

	decision, err := that.engine.BestMoveAtDepth(board, mark, depthLimit)
	if err != nil {
		return nil, fmt.Errorf("bot failed to choose a move: %w", err)
	}

	if err = board.Place(decision.Row, decision.Col, mark); err != nil {
		return nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	outcome, err := tictactoe.ClassifyMove(board, decision.Row, decision.Col, mark)
	if err != nil {
		return nil, fmt.Errorf("bot failed to classify turn: %w", err)
	}

	return &Turn{
		Row:     decision.Row,
		Col:     decision.Col,
		Mark:    mark.String(),
		Value:   decision.Value,
		Outcome: outcome,
		Board:   board.Cells(),
	}, nil
}

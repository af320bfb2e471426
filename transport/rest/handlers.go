package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/service"
	"github.com/rocketscienceinc/tictactoe-solver/internal/usecase"
)

const maxBodyBytes = 1 << 16

type analyzer interface {
	BestMove(ctx context.Context, position entity.Position) (*usecase.Analysis, error)
	Classify(ctx context.Context, position entity.Position, row, col int) (entity.Outcome, error)
	Play(ctx context.Context, position entity.Position) (*service.Turn, error)
	Report(ctx context.Context, id string) (*entity.Report, error)
}

type BestMoveResponse struct {
	Row        int                `json:"row"`
	Col        int                `json:"col"`
	Mark       string             `json:"mark"`
	Value      int                `json:"value"`
	Candidates []entity.Candidate `json:"candidates"`
	Nodes      int                `json:"nodes"`
	ElapsedMS  int64              `json:"elapsed_ms"`
	ReportID   string             `json:"report_id,omitempty"`
}

type ClassifyRequest struct {
	entity.Position
	Row int `json:"row"`
	Col int `json:"col"`
}

type ClassifyResponse struct {
	Outcome entity.Outcome `json:"outcome"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handlers struct {
	logger   *slog.Logger
	analyzer analyzer
}

func NewHandlers(logger *slog.Logger, analyzer analyzer) *Handlers {
	return &Handlers{
		logger:   logger.With("component", "rest"),
		analyzer: analyzer,
	}
}

// Routes registers every endpoint on a new mux.
func (that *Handlers) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", that.Ping)
	mux.HandleFunc("POST /api/v1/best-move", that.BestMove)
	mux.HandleFunc("POST /api/v1/classify", that.Classify)
	mux.HandleFunc("POST /api/v1/play", that.Play)
	mux.HandleFunc("GET /api/v1/reports/{id}", that.Report)

	return mux
}

func (that *Handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

func (that *Handlers) BestMove(w http.ResponseWriter, r *http.Request) {
	var position entity.Position
	if err := decode(w, r, &position); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	analysis, err := that.analyzer.BestMove(r.Context(), position)
	if err != nil {
		that.writeError(w, "BestMove", err)
		return
	}

	decision := analysis.Decision
	that.writeJSON(w, http.StatusOK, BestMoveResponse{
		Row:        decision.Row,
		Col:        decision.Col,
		Mark:       decision.Mark,
		Value:      decision.Value,
		Candidates: decision.Candidates,
		Nodes:      decision.Nodes,
		ElapsedMS:  decision.Elapsed.Milliseconds(),
		ReportID:   analysis.ReportID,
	})
}

func (that *Handlers) Classify(w http.ResponseWriter, r *http.Request) {
	var request ClassifyRequest
	if err := decode(w, r, &request); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	outcome, err := that.analyzer.Classify(r.Context(), request.Position, request.Row, request.Col)
	if err != nil {
		that.writeError(w, "Classify", err)
		return
	}

	that.writeJSON(w, http.StatusOK, ClassifyResponse{Outcome: outcome})
}

func (that *Handlers) Play(w http.ResponseWriter, r *http.Request) {
	var position entity.Position
	if err := decode(w, r, &position); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	turn, err := that.analyzer.Play(r.Context(), position)
	if err != nil {
		that.writeError(w, "Play", err)
		return
	}

	that.writeJSON(w, http.StatusOK, turn)
}

func (that *Handlers) Report(w http.ResponseWriter, r *http.Request) {
	report, err := that.analyzer.Report(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, "Report", err)
		return
	}

	that.writeJSON(w, http.StatusOK, report)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	return decoder.Decode(dst)
}

func (that *Handlers) writeError(w http.ResponseWriter, method string, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrInvalidMove), errors.Is(err, apperror.ErrInvalidConfiguration):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrNoMoveAvailable):
		status = http.StatusConflict
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

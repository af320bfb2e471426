package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

// Position is the wire form of a board: flat row-major cells of "X", "O" or "".
// Turn names the side to search for; empty means the side to move by parity.
// A zero DepthLimit leaves the engine's own limit in place.
type Position struct {
	Size       int      `json:"size"`
	WinLength  int      `json:"win_length"`
	Board      []string `json:"board"`
	Turn       string   `json:"turn,omitempty"`
	DepthLimit int      `json:"depth_limit,omitempty"`
}

// Side parses Turn.
func (that Position) Side() (Mark, error) {
	mark, ok := ParseMark(that.Turn)
	if !ok {
		return MarkEmpty, fmt.Errorf("%w: unknown turn %q", apperror.ErrInvalidConfiguration, that.Turn)
	}

	return mark, nil
}

// Candidate is the value the search returned for one first move.
// Candidates searched after a better one may carry upper bounds only.
type Candidate struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

// Report is the diagnostic record of one best-move search.
type Report struct {
	ID         string        `json:"id"`
	Position   Position      `json:"position"`
	DepthLimit int           `json:"depth_limit"`
	Mark       string        `json:"mark"`
	Row        int           `json:"row"`
	Col        int           `json:"col"`
	Value      int           `json:"value"`
	Candidates []Candidate   `json:"candidates"`
	Nodes      int           `json:"nodes"`
	Elapsed    time.Duration `json:"elapsed"`
	Trace      string        `json:"trace,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

package entity

// ResultKind tags a line evaluation.
type ResultKind uint8

const (
	ResultOngoing ResultKind = iota
	ResultWinA
	ResultWinB
	ResultDraw
)

// Result is the outcome of evaluating the cell that was just played.
// Score is only meaningful for ResultOngoing and is a relative ranking
// signal, never comparable with terminal results.
type Result struct {
	Kind  ResultKind
	Score int
}

func WinFor(mark Mark) Result {
	if mark == MarkX {
		return Result{Kind: ResultWinA}
	}

	return Result{Kind: ResultWinB}
}

func Draw() Result {
	return Result{Kind: ResultDraw}
}

func Ongoing(score int) Result {
	return Result{Kind: ResultOngoing, Score: score}
}

func (that Result) IsTerminal() bool {
	return that.Kind != ResultOngoing
}

// Winner returns the mark that won, or MarkEmpty for draws and ongoing games.
func (that Result) Winner() Mark {
	switch that.Kind {
	case ResultWinA:
		return MarkX
	case ResultWinB:
		return MarkO
	default:
		return MarkEmpty
	}
}

// Outcome collapses the heuristic case into OutcomeContinue.
func (that Result) Outcome() Outcome {
	switch that.Kind {
	case ResultWinA:
		return OutcomeWinA
	case ResultWinB:
		return OutcomeWinB
	case ResultDraw:
		return OutcomeDraw
	default:
		return OutcomeContinue
	}
}

// Outcome is what an external caller sees after a move.
type Outcome string

const (
	OutcomeWinA     Outcome = "win_x"
	OutcomeWinB     Outcome = "win_o"
	OutcomeDraw     Outcome = "draw"
	OutcomeContinue Outcome = "continue"
)

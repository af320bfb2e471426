package entity

const (
	PlayerX   = "X"
	PlayerO   = "O"
	EmptyCell = ""
)

// Mark is the content of a single cell.
type Mark int8

const (
	MarkEmpty Mark = iota
	MarkX
	MarkO
)

// Opponent returns the other player's mark. The empty mark has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkEmpty
	}
}

func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

func (that Mark) String() string {
	switch that {
	case MarkX:
		return PlayerX
	case MarkO:
		return PlayerO
	default:
		return EmptyCell
	}
}

// ParseMark converts the wire representation ("X", "O" or "") into a Mark.
func ParseMark(value string) (Mark, bool) {
	switch value {
	case PlayerX, "x":
		return MarkX, true
	case PlayerO, "o":
		return MarkO, true
	case EmptyCell:
		return MarkEmpty, true
	default:
		return MarkEmpty, false
	}
}

package tictactoe

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// NodeID addresses a node inside a DecisionTree arena.
type NodeID int32

const NoNode NodeID = -1

// Polarity selects one of the two child slots of a node.
type Polarity uint8

const (
	// MaxChild holds the continuation where the maximizing side moves next.
	MaxChild Polarity = iota
	// MinChild holds the continuation where the minimizing side moves next.
	MinChild
)

// Node is one explored position.
//
// A node keeps only the most recently explored child of each polarity.
// Earlier siblings are overwritten in place, so the tree is a partial trace
// of the search and not a full search tree.
type Node struct {
	Alpha int
	Beta  int
	Value int

	// HasMove is false for the synthetic per-candidate roots.
	HasMove bool
	Row     int
	Col     int
	Mark    entity.Mark

	children [2]NodeID
}

func (that *Node) Child(polarity Polarity) NodeID {
	return that.children[polarity]
}

func (that *Node) IsLeaf() bool {
	return that.children[MaxChild] == NoNode && that.children[MinChild] == NoNode
}

// DecisionTree is an arena of diagnostic nodes recorded during one BestMove call.
type DecisionTree struct {
	nodes []Node
	roots []NodeID
	free  []NodeID
}

func NewDecisionTree() *DecisionTree {
	return &DecisionTree{}
}

func (that *DecisionTree) alloc() NodeID {
	if n := len(that.free); n > 0 {
		id := that.free[n-1]
		that.free = that.free[:n-1]
		that.nodes[id] = Node{children: [2]NodeID{NoNode, NoNode}}

		return id
	}

	that.nodes = append(that.nodes, Node{children: [2]NodeID{NoNode, NoNode}})

	return NodeID(len(that.nodes) - 1)
}

// recycle hands the subtrees below id back to the free list.
func (that *DecisionTree) recycle(id NodeID) {
	for _, child := range that.nodes[id].children {
		if child == NoNode {
			continue
		}

		that.recycle(child)
		that.free = append(that.free, child)
	}
}

// NewRoot adds a synthetic root without a move.
func (that *DecisionTree) NewRoot() NodeID {
	id := that.alloc()
	that.roots = append(that.roots, id)

	return id
}

// Attach returns the child of parent in the given slot, recording the move it
// represents. An existing child in that slot is reused: its fields are reset
// and its old subtree goes back to the free list.
func (that *DecisionTree) Attach(parent NodeID, polarity Polarity, row, col int, mark entity.Mark) NodeID {
	id := that.nodes[parent].children[polarity]
	if id == NoNode {
		id = that.alloc()
		that.nodes[parent].children[polarity] = id
	} else {
		that.recycle(id)
	}

	that.nodes[id] = Node{
		HasMove:  true,
		Row:      row,
		Col:      col,
		Mark:     mark,
		children: [2]NodeID{NoNode, NoNode},
	}

	return id
}

func (that *DecisionTree) Stamp(id NodeID, alpha, beta, value int) {
	node := &that.nodes[id]
	node.Alpha = alpha
	node.Beta = beta
	node.Value = value
}

func (that *DecisionTree) Node(id NodeID) *Node {
	return &that.nodes[id]
}

func (that *DecisionTree) Roots() []NodeID {
	return that.roots
}

// Len returns the number of live nodes.
func (that *DecisionTree) Len() int {
	return len(that.nodes) - len(that.free)
}

// Reset releases every node.
func (that *DecisionTree) Reset() {
	that.nodes = nil
	that.roots = nil
	that.free = nil
}

// Render writes every root as an indented listing: maximizing continuation
// first, then the node, then the minimizing continuation.
// The output is a developer report, not an interchange format.
func (that *DecisionTree) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString("(alpha; beta; value)\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, root := range that.roots {
		that.render(bw, root, 0)
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush tree: %w", err)
	}

	return nil
}

// String renders the tree; errors cannot happen on a strings.Builder.
func (that *DecisionTree) String() string {
	var sb strings.Builder
	_ = that.Render(&sb)

	return sb.String()
}

func (that *DecisionTree) render(w *bufio.Writer, id NodeID, level int) {
	if id == NoNode {
		return
	}

	node := that.Node(id)

	that.render(w, node.children[MaxChild], level+1)

	w.WriteString(strings.Repeat("   ", level))
	w.WriteString(formatNode(node))
	w.WriteByte('\n')

	that.render(w, node.children[MinChild], level+1)
}

func formatNode(node *Node) string {
	if node.IsLeaf() && node.HasMove {
		return fmt.Sprintf("(%s), [%d,%d] - %s", bound(node.Value), node.Row, node.Col, markLabel(node.Mark))
	}

	line := fmt.Sprintf("(%s; %s; %s)", bound(node.Alpha), bound(node.Beta), bound(node.Value))
	if node.HasMove {
		line += fmt.Sprintf(", [%d,%d] -> %s", node.Row, node.Col, markLabel(node.Mark))
	}

	return line
}

func bound(value int) string {
	switch value {
	case math.MinInt:
		return "-inf"
	case math.MaxInt:
		return "+inf"
	default:
		return strconv.Itoa(value)
	}
}

func markLabel(mark entity.Mark) string {
	return strings.ToLower(mark.String())
}

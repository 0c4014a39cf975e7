package search

import (
	"github.com/samber/lo"

	"github.com/domino14/tumble/move"
)

// NodeID indexes a node in its Tree's arena.
type NodeID int32

const (
	RootID   NodeID = 0
	noParent NodeID = -1
	noWinner        = -1
)

// Node is one position in the search tree: the position reached by playing
// its move from the parent's position. Score is from the point of view of
// the player who made that move.
type Node struct {
	mv        move.Move
	parent    NodeID
	children  []NodeID
	byMove    map[string]NodeID
	score     int
	forbidden bool
	winner    int
}

func (n *Node) Move() move.Move    { return n.mv }
func (n *Node) Parent() NodeID     { return n.parent }
func (n *Node) Children() []NodeID { return n.children }
func (n *Node) Score() int         { return n.score }
func (n *Node) Forbidden() bool    { return n.forbidden }
func (n *Node) NumChildren() int   { return len(n.children) }
func (n *Node) IsRoot() bool       { return n.parent == noParent }

// Winner is the player recorded as winning at this node, or -1.
func (n *Node) Winner() int { return n.winner }

// Tree owns every node built for one turn. Parents are referred to by
// index, so a node never holds a pointer back up the tree.
type Tree struct {
	nodes []Node
	depth int
}

func NewTree() *Tree {
	t := &Tree{}
	t.nodes = append(t.nodes, Node{parent: noParent, winner: noWinner})
	return t
}

// Node returns the node with the given id. The pointer is only good until
// the tree grows again.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

func (t *Tree) Root() *Node {
	return t.Node(RootID)
}

// Depth is the ply depth the tree was built to.
func (t *Tree) Depth() int { return t.depth }

// Size is the number of nodes allocated, including any that were discarded
// by pruning.
func (t *Tree) Size() int { return len(t.nodes) }

// Child looks up the child of id reached by the move string s.
func (t *Tree) Child(id NodeID, s string) (NodeID, bool) {
	c, ok := t.nodes[id].byMove[s]
	return c, ok
}

func (t *Tree) addChild(parent NodeID, m move.Move, score int) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{mv: m, parent: parent, score: score, winner: noWinner})
	p := &t.nodes[parent]
	if p.byMove == nil {
		p.byMove = make(map[string]NodeID)
	}
	p.children = append(p.children, id)
	p.byMove[m.String()] = id
	return id
}

func (t *Tree) dropChildren(id NodeID) {
	n := &t.nodes[id]
	n.children = nil
	n.byMove = nil
}

// Line returns the move strings leading from the root to id.
func (t *Tree) Line(id NodeID) []string {
	var line []string
	for ; id != RootID && id != noParent; id = t.nodes[id].parent {
		line = append(line, t.nodes[id].mv.String())
	}
	for i, j := 0, len(line)-1; i < j; i, j = i+1, j-1 {
		line[i], line[j] = line[j], line[i]
	}
	return line
}

// GetBest returns the highest-scoring child of id, or nil if it has none.
// Forbidden children lead into positions where the player to move there
// can win at once, so they are only considered if nothing else is left.
// Scores are not backed up the tree; skipping forbidden children is the
// only way a forced win found one ply down steers its ancestor away.
// Ties go to the child created first.
func (t *Tree) GetBest(id NodeID) *Node {
	children := t.nodes[id].children
	if len(children) == 0 {
		return nil
	}
	candidates := lo.Filter(children, func(c NodeID, _ int) bool {
		return !t.nodes[c].forbidden
	})
	if len(candidates) == 0 {
		candidates = children
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if t.nodes[c].score > t.nodes[best].score {
			best = c
		}
	}
	return t.Node(best)
}

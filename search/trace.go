package search

import (
	"io"

	"gopkg.in/yaml.v3"
)

type traceNode struct {
	Move      string      `yaml:"move,omitempty"`
	Score     int         `yaml:"score"`
	Forbidden bool        `yaml:"forbidden,omitempty"`
	Winner    *int        `yaml:"winner,omitempty"`
	Children  []traceNode `yaml:"children,omitempty"`
}

func (t *Tree) trace(id NodeID) traceNode {
	n := t.Node(id)
	tn := traceNode{Score: n.score, Forbidden: n.forbidden}
	if id != RootID {
		tn.Move = n.mv.String()
	}
	if n.winner != noWinner {
		w := n.winner
		tn.Winner = &w
	}
	for _, c := range n.children {
		tn.Children = append(tn.Children, t.trace(c))
	}
	return tn
}

// WriteYAML dumps the tree as one YAML document. Discarded children are
// not included.
func (t *Tree) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t.trace(RootID)); err != nil {
		return err
	}
	return enc.Close()
}

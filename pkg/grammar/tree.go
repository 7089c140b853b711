package grammar

import "fmt"

// Node is a rule-tagged span of the source. Nodes are immutable once the
// parse that produced them returns.
type Node struct {
	rule     Rule
	start    int
	end      int
	children []*Node
}

// Rule reports the rule that produced the node.
func (n *Node) Rule() Rule { return n.rule }

// StartByte is the inclusive byte offset where the node begins.
func (n *Node) StartByte() int { return n.start }

// EndByte is the exclusive byte offset where the node ends.
func (n *Node) EndByte() int { return n.end }

func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th child or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns the node's children. Callers must not modify the slice.
func (n *Node) Children() []*Node { return n.children }

// Utf8Text returns the source text covered by the node.
func (n *Node) Utf8Text(source []byte) string {
	if n.start < 0 || n.end > len(source) || n.start > n.end {
		return ""
	}
	return string(source[n.start:n.end])
}

func (n *Node) String() string {
	return fmt.Sprintf("%s[%d..%d]", n.rule, n.start, n.end)
}

// Tree is the ordered forest produced by a successful parse.
type Tree struct {
	nodes []*Node
}

// Nodes returns the top-level nodes in source order.
func (t *Tree) Nodes() []*Node { return t.nodes }

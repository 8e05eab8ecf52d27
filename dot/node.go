// Package dot renders the debug graphs (parse tree, unoptimized and
// optimized AST) as Graphviz source, and optionally shells out to the
// `dot` binary to produce an SVG.
//
// The node-numbering counter is a field on Digraph rather than a
// package-level mutable static, so that rendering two graphs in one
// process - as a test suite routinely does - cannot make them interfere.
package dot

import "strings"

// Node is one vertex of a debug graph: a label plus an ordered list of
// children.
type Node struct {
	label    string
	children []*Node
}

// NewNode creates a leaf node with the given label. Backslashes, double
// quotes, newlines and tabs in the label are escaped so the generated dot
// source stays well-formed; other control characters are kept as they are.
func NewNode(label string) *Node {
	return &Node{label: escapeLabel(label)}
}

// Add appends a child and returns the node, for fluent construction.
func (n *Node) Add(child *Node) *Node {
	n.children = append(n.children, child)
	return n
}

// Label returns the node's (already-escaped) label text.
func (n *Node) Label() string {
	return n.label
}

// Children returns the node's children, in render order.
func (n *Node) Children() []*Node {
	return n.children
}

func escapeLabel(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)
	return r.Replace(s)
}

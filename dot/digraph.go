package dot

import (
	"fmt"
	"strings"
)

// Digraph is a Graphviz directed graph built from a Node tree. The node
// counter lives here, as a field, instead of the package-level mutable
// static the node-numbering scheme was ported from - see the package doc.
type Digraph struct {
	root    *Node
	counter int
}

// New wraps root as a renderable directed graph.
func New(root *Node) *Digraph {
	return &Digraph{root: root}
}

// String renders the full "digraph { ... }" Graphviz source.
func (d *Digraph) String() string {
	var b strings.Builder
	b.WriteString("digraph {\n")
	d.render(&b, d.root)
	b.WriteString("}")
	return b.String()
}

// render emits node n and recurses into its children, returning n's own
// generated node name.
func (d *Digraph) render(b *strings.Builder, n *Node) string {
	d.counter++
	name := fmt.Sprintf("node%d", d.counter)

	fmt.Fprintf(b, "%s [label=\"%s\"];\n", name, n.label)

	for _, child := range n.children {
		childName := fmt.Sprintf("node%d", d.counter+1)
		fmt.Fprintf(b, "%s -> %s;\n", name, childName)
		d.render(b, child)
	}

	return name
}

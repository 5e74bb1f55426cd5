package model

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
)

// WriteDOT writes a Graphviz rendering: one record-shaped node per class
// labeled with its properties, one edge per association, and one
// generalization edge (hollow arrowhead) per declared superclass.
// Dangling targets get a bare node so their edges stay drawable.
func (m *Model) WriteDOT(w io.Writer) error {
	g := graph.New(graph.StringHash, graph.Directed())

	for _, c := range m.Classes {
		if err := g.AddVertex(c.Name,
			graph.VertexAttribute("shape", "record"),
			graph.VertexAttribute("label", nodeLabel(c)),
		); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return err
		}
	}

	ensure := func(name string) error {
		err := g.AddVertex(name, graph.VertexAttribute("shape", "record"))
		if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return err
		}
		return nil
	}

	for _, c := range m.Classes {
		for _, a := range c.Associations {
			if a.Target == "" {
				continue
			}
			if err := ensure(a.Target); err != nil {
				return err
			}
			err := g.AddEdge(c.Name, a.Target,
				graph.EdgeAttribute("label", strings.TrimSpace(edgeQualifier(a))))
			if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return err
			}
		}
		if c.Superclass != "" {
			if err := ensure(c.Superclass); err != nil {
				return err
			}
			err := g.AddEdge(c.Name, c.Superclass,
				graph.EdgeAttribute("arrowhead", "empty"))
			if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return err
			}
		}
	}

	return draw.DOT(g, w)
}

func nodeLabel(c *Class) string {
	var b strings.Builder
	b.WriteString("{")
	b.WriteString(c.Name)
	if len(c.Properties) > 0 {
		b.WriteString("|")
		for _, p := range c.Properties {
			fmt.Fprintf(&b, "%s: %s\\l", p.Name, propertyType(p))
		}
	}
	b.WriteString("}")
	return b.String()
}

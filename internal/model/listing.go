package model

import (
	"fmt"
	"io"
	"strings"
)

// WriteListing writes the declaration-ordered textual rendering: for each
// class its name, optional superclass, properties and associations, in
// that order.
func (m *Model) WriteListing(w io.Writer) error {
	for i, c := range m.Classes {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		header := "class " + c.Name
		if c.Superclass != "" {
			header += " extends " + c.Superclass
		}
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
		for _, p := range c.Properties {
			if _, err := fmt.Fprintf(w, "  property %s: %s\n", p.Name, propertyType(p)); err != nil {
				return err
			}
		}
		for _, a := range c.Associations {
			if a.Target == "" {
				continue
			}
			if _, err := fmt.Fprintf(w, "  association -> %s%s\n", a.Target, edgeQualifier(a)); err != nil {
				return err
			}
		}
	}
	return nil
}

func propertyType(p Property) string {
	if p.Signed {
		return p.Type + " signed"
	}
	return p.Type
}

func edgeQualifier(a Association) string {
	var b strings.Builder
	if a.Multiplicity != "" {
		fmt.Fprintf(&b, " [%s]", a.Multiplicity)
	}
	if a.DependsOn != "" {
		fmt.Fprintf(&b, " depending on %s", a.DependsOn)
	}
	return b.String()
}

package model

// Property is a scalar field owned by a class, in declaration order.
type Property struct {
	Name   string
	Type   string
	Signed bool
}

// Association is a named edge from its owning class to another class.
// Target is a class name, not a resolved reference: forward and dangling
// targets are legal (a redefinition base may be declared after the edge
// that references it).
type Association struct {
	Source       *Class
	Target       string
	Multiplicity string
	DependsOn    string
}

// Class is one entity of the output graph. Superclass is the name of a
// redefined base, resolved by name and allowed to dangle.
type Class struct {
	Name         string
	Superclass   string
	Properties   []Property
	Associations []Association
}

// LastProperty returns the most recently declared property, or nil.
func (c *Class) LastProperty() *Property {
	if len(c.Properties) == 0 {
		return nil
	}
	return &c.Properties[len(c.Properties)-1]
}

// RemoveLastProperty drops the most recently declared property.
func (c *Class) RemoveLastProperty() {
	if len(c.Properties) > 0 {
		c.Properties = c.Properties[:len(c.Properties)-1]
	}
}

// Model is the ordered class collection. Order is scope-closure order:
// children are finalized before their ancestors.
type Model struct {
	Classes []*Class
}

// Add appends a finalized class.
func (m *Model) Add(c *Class) {
	m.Classes = append(m.Classes, c)
}

// Lookup returns the class with the given name, or nil.
func (m *Model) Lookup(name string) *Class {
	for _, c := range m.Classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

package hierarchy

import (
	"github.com/cbtools/cbgraph/internal/copybook"
	"github.com/cbtools/cbgraph/internal/importer"
	"github.com/cbtools/cbgraph/internal/model"
)

// scope pairs a partially built class with the copybook level it was
// opened at. Level and class are pushed and popped together.
type scope struct {
	level int
	class *model.Class
}

// Builder reconstructs nested record structure from the flat,
// level-numbered bundle stream and emits the class model. A Builder holds
// reduction state and must not be shared between inputs.
type Builder struct {
	scopes []scope
	out    *model.Model
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{out: &model.Model{}}
}

// Add reduces one bundle: close every scope at the bundle's level or
// deeper, then either record a property on the current scope or open a
// new class scope.
func (b *Builder) Add(imp *importer.Imported) {
	b.closeScopes(imp.Level)

	if !imp.IsClass() {
		if imp.IsFiller() {
			// fillers count for level bookkeeping only
			return
		}
		if top := b.top(); top != nil {
			top.Properties = append(top.Properties, model.Property{
				Name:   imp.Name,
				Type:   string(imp.TypeKind),
				Signed: imp.TypeSigned,
			})
		}
		return
	}

	b.openClass(imp)
}

// closeScopes finalizes every open scope whose level is >= the incoming
// level: a sibling-or-shallower item proves those subtrees are complete.
func (b *Builder) closeScopes(level int) {
	for len(b.scopes) > 0 && level <= b.scopes[len(b.scopes)-1].level {
		top := b.scopes[len(b.scopes)-1]
		b.scopes = b.scopes[:len(b.scopes)-1]
		b.out.Add(top.class)
	}
}

// openClass pushes the bundle's class as a new scope. Outside the root
// case it first records how the new class relates to its owner: a plain
// nested group becomes an association edge; redefinition of the owner's
// most recent property extracts a shared base class which is stacked above
// the redefining class so that the following fields populate the base.
func (b *Builder) openClass(imp *importer.Imported) {
	owner := b.top()
	if owner == nil {
		b.push(imp.Level, &model.Class{Name: imp.Name, Superclass: imp.Redefines})
		return
	}

	if imp.Redefines == "" {
		owner.Associations = append(owner.Associations, model.Association{
			Source:       owner,
			Target:       imp.Name,
			Multiplicity: imp.Multiplicity(),
			DependsOn:    imp.OccursDependsOn,
		})
		b.push(imp.Level, &model.Class{Name: imp.Name})
		return
	}

	sub := &model.Class{Name: imp.Name, Superclass: imp.Redefines}
	last := owner.LastProperty()
	if last == nil || last.Name != imp.Redefines {
		// Redefinition of anything but the immediately preceding field:
		// no extraction, the superclass reference is left dangling.
		b.push(imp.Level, sub)
		return
	}

	owner.RemoveLastProperty()
	owner.Associations = append(owner.Associations, model.Association{
		Source: owner,
		Target: imp.Redefines,
	})
	b.push(imp.Level, sub)
	b.push(imp.Level, &model.Class{Name: imp.Redefines})
}

// Finish flushes the remaining open scopes, root last, and returns the
// model. The builder must not be reused afterwards.
func (b *Builder) Finish() *model.Model {
	for len(b.scopes) > 0 {
		top := b.scopes[len(b.scopes)-1]
		b.scopes = b.scopes[:len(b.scopes)-1]
		b.out.Add(top.class)
	}
	return b.out
}

func (b *Builder) push(level int, c *model.Class) {
	b.scopes = append(b.scopes, scope{level: level, class: c})
}

func (b *Builder) top() *model.Class {
	if len(b.scopes) == 0 {
		return nil
	}
	return b.scopes[len(b.scopes)-1].class
}

// Build imports every record and reduces the resulting bundles into a
// model. The first failing record aborts the whole conversion.
func Build(records []*copybook.Record) (*model.Model, error) {
	b := NewBuilder()
	for _, rec := range records {
		imp, err := importer.Import(rec)
		if err != nil {
			return nil, err
		}
		b.Add(imp)
	}
	return b.Finish(), nil
}

package importer

import "fmt"

// TypeKind is the logical type classification of an elementary field.
type TypeKind string

const (
	TypeString  TypeKind = "string"
	TypeInteger TypeKind = "integer"
	TypeFloat   TypeKind = "float"
)

// Imported is the normalized attribute bundle extracted from one record.
// CompLevel and RawValue are captured for completeness but not consumed by
// the hierarchy builder.
type Imported struct {
	Level             int
	Name              string // empty for filler
	Redefines         string
	Sign              string
	OccursAmount      int
	OccursMax         int
	OccursDependsOn   string
	TypeKind          TypeKind // empty when the record is a group
	TypeLength        int
	TypeSigned        bool
	TypeDecimalLength int
	CompLevel         int
	RawValue          int
}

// IsFiller reports whether the record had no data name.
func (i *Imported) IsFiller() bool {
	return i.Name == ""
}

// IsClass reports whether the record opens a nesting scope: it is named
// but carries no scalar type.
func (i *Imported) IsClass() bool {
	return !i.IsFiller() && i.TypeKind == ""
}

// Multiplicity renders the occurs clause as "amount" or "amount..max".
// It is empty when amount and max are both zero.
func (i *Imported) Multiplicity() string {
	if i.OccursAmount+i.OccursMax == 0 {
		return ""
	}
	if i.OccursMax != 0 {
		return fmt.Sprintf("%d..%d", i.OccursAmount, i.OccursMax)
	}
	return fmt.Sprintf("%d", i.OccursAmount)
}

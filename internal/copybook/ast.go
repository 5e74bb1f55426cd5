package copybook

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// RecordKind identifies the variant of a copybook record.
type RecordKind int

const (
	KindPlainField RecordKind = iota // ordinary data item (group or elementary)
	KindRenames                      // level-66 RENAMES entry
	KindValues                       // level-88 condition-name entry
)

func (k RecordKind) String() string {
	switch k {
	case KindPlainField:
		return "plain field"
	case KindRenames:
		return "renames"
	case KindValues:
		return "values"
	default:
		return "unknown"
	}
}

// Copybook is the parse result: an ordered stream of record entries.
type Copybook struct {
	Pos     lexer.Position
	Records []*Record `parser:"@@*"`
}

// Record is one period-terminated copybook entry. The name is absent for
// FILLER items and for unnamed elementary items.
type Record struct {
	Pos     lexer.Position
	Level   string    `parser:"@Int"`
	Name    *string   `parser:"( 'FILLER' | @Ident )?"`
	Options []*Option `parser:"@@* '.'"`
}

// Kind classifies the record variant. Level-88 entries are condition-name
// (values) records; entries carrying a RENAMES clause are renames records.
func (r *Record) Kind() RecordKind {
	if strings.TrimLeft(r.Level, "0") == "88" {
		return KindValues
	}
	for _, opt := range r.Options {
		if opt.Renames != nil {
			return KindRenames
		}
	}
	return KindPlainField
}

// IsFiller reports whether the record has no usable data name.
func (r *Record) IsFiller() bool {
	return r.Name == nil
}

// Option is the closed union of clause variants attached to a record.
// Exactly one branch is non-nil for a parsed option.
type Option struct {
	Pos       lexer.Position
	Redefines *RedefinesOption `parser:"@@"`
	Occurs    *OccursOption    `parser:"| @@"`
	Sign      *SignOption      `parser:"| @@"`
	Picture   *PictureOption   `parser:"| @@"`
	Usage     *UsageOption     `parser:"| @@"`
	Value     *ValueOption     `parser:"| @@"`
	Renames   *RenamesOption   `parser:"| @@"`
	Sync      *SyncOption      `parser:"| @@"`
	Just      *JustOption      `parser:"| @@"`
	Blank     *BlankOption     `parser:"| @@"`
}

// RedefinesOption names the sibling item this record overlays.
type RedefinesOption struct {
	Target string `parser:"'REDEFINES' @Ident"`
}

// OccursOption is a repetition clause. Amount and Max may be integer
// literals or data names; keys and indexes are parsed but not supported
// downstream.
type OccursOption struct {
	Pos       lexer.Position
	Amount    *Operand     `parser:"'OCCURS' @@"`
	Max       *Operand     `parser:"( 'TO' @@ )? 'TIMES'?"`
	DependsOn *string      `parser:"( 'DEPENDING' 'ON'? @Ident )?"`
	Keys      []*OccursKey `parser:"@@*"`
	Indexes   []string     `parser:"( 'INDEXED' 'BY'? @Ident ( ',' @Ident )* )?"`
}

// OccursKey is an ASCENDING/DESCENDING KEY sub-clause. Multiple fields
// must be comma-separated to keep them apart from the following clause.
type OccursKey struct {
	Order  string   `parser:"@( 'ASCENDING' | 'DESCENDING' ) 'KEY'? 'IS'?"`
	Fields []string `parser:"@Ident ( ',' @Ident )*"`
}

// Operand is an integer literal or a data-name reference.
type Operand struct {
	Number *string `parser:"@Int"`
	Name   *string `parser:"| @Ident"`
}

// SignOption records sign placement for a numeric item.
type SignOption struct {
	Placement string `parser:"'SIGN'? 'IS'? @( 'LEADING' | 'TRAILING' )"`
	Separate  bool   `parser:"@'SEPARATE'?"`
	Character bool   `parser:"@'CHARACTER'?"`
}

// PictureOption carries the raw picture character string. Format
// decomposes it into the canonical shape when possible.
type PictureOption struct {
	Pos lexer.Position
	Raw string `parser:"Pic @PicString"`
}

// UsageOption is a storage usage clause. Only COMP levels survive import;
// the remaining usages are recognized so they can be rejected by name.
type UsageOption struct {
	Comp    *string `parser:"'USAGE'? 'IS'? ( @( 'COMP' | 'COMP-1' | 'COMP-2' | 'COMP-3' | 'COMP-4' | 'COMP-5' | 'COMPUTATIONAL' | 'COMPUTATIONAL-1' | 'COMPUTATIONAL-2' | 'COMPUTATIONAL-3' | 'COMPUTATIONAL-4' | 'COMPUTATIONAL-5' )"`
	Binary  bool    `parser:"| @'BINARY'"`
	Packed  bool    `parser:"| @'PACKED-DECIMAL'"`
	Display bool    `parser:"| @'DISPLAY'"`
	Index   bool    `parser:"| @'INDEX' )"`
}

// CompLevel returns the numeric suffix of a COMP/COMPUTATIONAL usage,
// or 0 for the plain forms.
func (u *UsageOption) CompLevel() int {
	if u.Comp == nil {
		return 0
	}
	s := strings.ToUpper(*u.Comp)
	if i := strings.IndexByte(s, '-'); i >= 0 {
		if n, err := strconv.Atoi(s[i+1:]); err == nil {
			return n
		}
	}
	return 0
}

// ValueOption is a VALUE/VALUES clause with one or more literals.
type ValueOption struct {
	Pos      lexer.Position
	Literals []*Literal `parser:"( 'VALUE' 'IS'? | 'VALUES' 'ARE'? ) @@ ( ( 'THRU' | 'THROUGH' | ',' )? @@ )*"`
}

// Literal is a COBOL literal operand.
type Literal struct {
	Pos        lexer.Position
	Number     *string `parser:"@Int"`
	Decimal    *string `parser:"| @Decimal"`
	String     *string `parser:"| @String"`
	Figurative *string `parser:"| @( 'ZERO' | 'ZEROS' | 'ZEROES' | 'SPACE' | 'SPACES' | 'HIGH-VALUE' | 'HIGH-VALUES' | 'LOW-VALUE' | 'LOW-VALUES' | 'QUOTE' | 'QUOTES' )"`
}

// RenamesOption is a level-66 RENAMES clause.
type RenamesOption struct {
	From string  `parser:"'RENAMES' @Ident"`
	To   *string `parser:"( ( 'THRU' | 'THROUGH' ) @Ident )?"`
}

// SyncOption is a SYNCHRONIZED alignment clause.
type SyncOption struct {
	Keyword string `parser:"@( 'SYNC' | 'SYNCHRONIZED' )"`
	Side    string `parser:"@( 'LEFT' | 'RIGHT' )?"`
}

// JustOption is a JUSTIFIED clause.
type JustOption struct {
	Keyword string `parser:"@( 'JUST' | 'JUSTIFIED' ) 'RIGHT'?"`
}

// BlankOption is a BLANK WHEN ZERO clause.
type BlankOption struct {
	Keyword string `parser:"@'BLANK' 'WHEN'? ( 'ZERO' | 'ZEROS' | 'ZEROES' )"`
}

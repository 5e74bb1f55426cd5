package copybook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Copybook Parsing:
// - Records parse into level, optional name and option list
// - FILLER and unnamed items leave the name absent
// - Picture strings lex in their own mode (X(30), S9(5)V99, PICTURE IS ...)
// - Clause variants parse into exactly one branch of the option union
// - Keywords are case-insensitive
// - Comment lines and inline *> comments are stripped
// - Fixed layout cuts the sequence area, indicator column and area past 72
// - Kind() classifies level-88 and RENAMES records

func parseOne(t *testing.T, src string) *Record {
	t.Helper()
	records, err := NewParser().Parse("test.cpy", []byte(src))
	require.NoError(t, err)
	require.Len(t, records, 1)
	return records[0]
}

func TestParse_SimpleRecordStream(t *testing.T) {
	src := `
       01 CUSTOMER.
          05 CUST-NO PIC 9(5).
          05 CUST-NAME PIC X(30).
`
	records, err := NewParser().Parse("customer.cpy", []byte(src))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "01", records[0].Level)
	require.NotNil(t, records[0].Name)
	assert.Equal(t, "CUSTOMER", *records[0].Name)
	assert.Empty(t, records[0].Options)

	assert.Equal(t, "05", records[1].Level)
	require.NotNil(t, records[1].Name)
	assert.Equal(t, "CUST-NO", *records[1].Name)
	require.Len(t, records[1].Options, 1)
	require.NotNil(t, records[1].Options[0].Picture)
	assert.Equal(t, "9(5)", records[1].Options[0].Picture.Raw)

	require.NotNil(t, records[2].Options[0].Picture)
	assert.Equal(t, "X(30)", records[2].Options[0].Picture.Raw)
}

func TestParse_FillerHasNoName(t *testing.T) {
	rec := parseOne(t, `05 FILLER PIC X(3).`)
	assert.True(t, rec.IsFiller())
	assert.Nil(t, rec.Name)
	require.Len(t, rec.Options, 1)
	require.NotNil(t, rec.Options[0].Picture)
	assert.Equal(t, "X(3)", rec.Options[0].Picture.Raw)
}

func TestParse_PictureVariants(t *testing.T) {
	tests := []struct {
		name string
		src  string
		raw  string
	}{
		{name: "short keyword", src: `05 F PIC S9(5)V99.`, raw: "S9(5)V99"},
		{name: "long keyword", src: `05 F PICTURE X(10).`, raw: "X(10)"},
		{name: "keyword with IS", src: `05 F PICTURE IS 9(3).`, raw: "9(3)"},
		{name: "lowercase keyword", src: `05 f pic x(8).`, raw: "x(8)"},
		{name: "tab after keyword", src: "05 F PIC\tX(2).", raw: "X(2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := parseOne(t, tt.src)
			require.Len(t, rec.Options, 1)
			require.NotNil(t, rec.Options[0].Picture)
			assert.Equal(t, tt.raw, rec.Options[0].Picture.Raw)
		})
	}
}

func TestParse_RedefinesClause(t *testing.T) {
	rec := parseOne(t, `05 DETAIL REDEFINES PAYLOAD.`)
	require.Len(t, rec.Options, 1)
	require.NotNil(t, rec.Options[0].Redefines)
	assert.Equal(t, "PAYLOAD", rec.Options[0].Redefines.Target)
}

func TestParse_OccursClause(t *testing.T) {
	rec := parseOne(t, `05 LINE-ITEM OCCURS 1 TO 10 TIMES DEPENDING ON LINE-COUNT.`)
	require.Len(t, rec.Options, 1)
	oc := rec.Options[0].Occurs
	require.NotNil(t, oc)
	require.NotNil(t, oc.Amount.Number)
	assert.Equal(t, "1", *oc.Amount.Number)
	require.NotNil(t, oc.Max)
	require.NotNil(t, oc.Max.Number)
	assert.Equal(t, "10", *oc.Max.Number)
	require.NotNil(t, oc.DependsOn)
	assert.Equal(t, "LINE-COUNT", *oc.DependsOn)
}

func TestParse_OccursFixedCount(t *testing.T) {
	rec := parseOne(t, `05 MONTH-TOTAL OCCURS 12 TIMES PIC S9(7)V99.`)
	require.Len(t, rec.Options, 2)
	oc := rec.Options[0].Occurs
	require.NotNil(t, oc)
	require.NotNil(t, oc.Amount.Number)
	assert.Equal(t, "12", *oc.Amount.Number)
	assert.Nil(t, oc.Max)
	assert.Nil(t, oc.DependsOn)
	require.NotNil(t, rec.Options[1].Picture)
}

func TestParse_OccursIndexedAndKeyed(t *testing.T) {
	rec := parseOne(t, `05 TBL OCCURS 50 TIMES ASCENDING KEY IS TBL-KEY INDEXED BY TBL-IDX.`)
	oc := rec.Options[0].Occurs
	require.NotNil(t, oc)
	require.Len(t, oc.Keys, 1)
	assert.Equal(t, "ASCENDING", oc.Keys[0].Order)
	assert.Equal(t, []string{"TBL-KEY"}, oc.Keys[0].Fields)
	assert.Equal(t, []string{"TBL-IDX"}, oc.Indexes)
}

func TestParse_SignClause(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		placement string
		separate  bool
		character bool
	}{
		{name: "bare trailing", src: `05 AMT PIC S9(5) TRAILING.`, placement: "TRAILING"},
		{name: "sign is leading", src: `05 AMT PIC S9(5) SIGN IS LEADING.`, placement: "LEADING"},
		{name: "leading separate", src: `05 AMT PIC S9(5) SIGN LEADING SEPARATE.`, placement: "LEADING", separate: true},
		{name: "separate character", src: `05 AMT PIC S9(5) TRAILING SEPARATE CHARACTER.`, placement: "TRAILING", separate: true, character: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := parseOne(t, tt.src)
			var sign *SignOption
			for _, opt := range rec.Options {
				if opt.Sign != nil {
					sign = opt.Sign
				}
			}
			require.NotNil(t, sign)
			assert.Equal(t, tt.placement, sign.Placement)
			assert.Equal(t, tt.separate, sign.Separate)
			assert.Equal(t, tt.character, sign.Character)
		})
	}
}

func TestParse_UsageClause(t *testing.T) {
	rec := parseOne(t, `05 CTR PIC S9(4) USAGE IS COMP-3.`)
	var usage *UsageOption
	for _, opt := range rec.Options {
		if opt.Usage != nil {
			usage = opt.Usage
		}
	}
	require.NotNil(t, usage)
	require.NotNil(t, usage.Comp)
	assert.Equal(t, "COMP-3", *usage.Comp)
	assert.Equal(t, 3, usage.CompLevel())
}

func TestParse_ValueClause(t *testing.T) {
	rec := parseOne(t, `05 MAX-LINES PIC 9(3) VALUE 100.`)
	var value *ValueOption
	for _, opt := range rec.Options {
		if opt.Value != nil {
			value = opt.Value
		}
	}
	require.NotNil(t, value)
	require.Len(t, value.Literals, 1)
	require.NotNil(t, value.Literals[0].Number)
	assert.Equal(t, "100", *value.Literals[0].Number)
}

func TestParse_Level88IsValuesRecord(t *testing.T) {
	rec := parseOne(t, `88 IS-ACTIVE VALUE 1.`)
	assert.Equal(t, KindValues, rec.Kind())
}

func TestParse_RenamesRecord(t *testing.T) {
	rec := parseOne(t, `66 CUST-KEY RENAMES CUST-NO THRU CUST-NAME.`)
	assert.Equal(t, KindRenames, rec.Kind())
	require.Len(t, rec.Options, 1)
	ren := rec.Options[0].Renames
	require.NotNil(t, ren)
	assert.Equal(t, "CUST-NO", ren.From)
	require.NotNil(t, ren.To)
	assert.Equal(t, "CUST-NAME", *ren.To)
}

func TestParse_StripsComments(t *testing.T) {
	src := `
      * whole-line comment
       01 REC. *> trailing comment
          05 F PIC X.
`
	records, err := NewParser().Parse("test.cpy", []byte(src))
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.NotNil(t, records[0].Name)
	assert.Equal(t, "REC", *records[0].Name)
}

func TestParse_FixedLayout(t *testing.T) {
	src := "000100 01  INVOICE.\n" +
		"000200*    COMMENT LINE IN THE INDICATOR COLUMN\n" +
		"000300     05  INV-NO PIC 9(7).\n"

	records, err := NewParser(WithLayout(LayoutFixed)).Parse("invoice.cpy", []byte(src))
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.NotNil(t, records[0].Name)
	assert.Equal(t, "INVOICE", *records[0].Name)
	require.NotNil(t, records[1].Name)
	assert.Equal(t, "INV-NO", *records[1].Name)
}

func TestParse_FixedLayoutCutsIdentificationArea(t *testing.T) {
	// columns 73+ hold sequence text that must not reach the grammar
	line := "000100 01  SHORT-REC PIC X(4)."
	for len(line) < 72 {
		line += " "
	}
	line += "GARBAGE!"

	records, err := NewParser(WithLayout(LayoutFixed)).Parse("short.cpy", []byte(line))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Name)
	assert.Equal(t, "SHORT-REC", *records[0].Name)
}

func TestParse_ReportsSyntaxErrors(t *testing.T) {
	_, err := NewParser().Parse("bad.cpy", []byte(`05 NO-PERIOD PIC X(3)`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.cpy")
}

package copybook

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Layout selects the source reference format of the copybook text.
type Layout string

const (
	// LayoutFree treats every column as program text.
	LayoutFree Layout = "free"
	// LayoutFixed cuts the sequence area (columns 1-6) and anything past
	// column 72, and drops comment lines flagged in the indicator column.
	LayoutFixed Layout = "fixed"
)

// The picture character string is lexed in its own mode so that forms like
// X(30) or S9(5)V99 never collide with data names or integer literals.
// Rules with an Action must keep their groups non-capturing: the stateful
// lexer materializes every capture group of such rules, and a group that
// did not participate in the match has no valid bounds.
var copybookLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `\*>[^\n]*`},
		{Name: "Pic", Pattern: `(?i)PIC(?:TURE)?[ \t]+`, Action: lexer.Push("Picture")},
		{Name: "Ident", Pattern: `[0-9-]*[A-Za-z][A-Za-z0-9-]*`},
		{Name: "Decimal", Pattern: `[-+]?\d+\.\d+`},
		{Name: "Int", Pattern: `[-+]?\d+`},
		{Name: "String", Pattern: `("[^"]*")|('[^']*')`},
		{Name: "Punct", Pattern: `[().,]`},
		{Name: "Whitespace", Pattern: `[ \r\n\t]+`},
	},
	"Picture": {
		{Name: "PicWhitespace", Pattern: `[ \t]+`},
		{Name: "PicIs", Pattern: `(?i)IS[ \t]+`},
		{Name: "PicString", Pattern: `[^ \r\n\t.]+`, Action: lexer.Pop()},
	},
})

var copybookParser = participle.MustBuild[Copybook](
	participle.Lexer(copybookLexer),
	participle.Elide("Whitespace", "Comment", "PicWhitespace", "PicIs"),
	participle.CaseInsensitive("Ident"),
	participle.Unquote("String"),
	participle.UseLookahead(4),
)

// Parser turns copybook text into the record stream consumed by the
// importer. It is safe for reuse across inputs.
type Parser struct {
	layout Layout
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithLayout selects the source layout (free or fixed).
func WithLayout(layout Layout) ParserOption {
	return func(p *Parser) {
		if layout != "" {
			p.layout = layout
		}
	}
}

// NewParser creates a parser. The default layout is free format.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{layout: LayoutFree}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses copybook source into its ordered record stream.
func (p *Parser) Parse(name string, src []byte) ([]*Record, error) {
	normalized := normalizeSource(string(src), p.layout)
	cb, err := copybookParser.ParseString(name, normalized)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return cb.Records, nil
}

// normalizeSource strips comment lines and, for fixed layout, the sequence
// and identification areas, before the grammar sees the text.
func normalizeSource(src string, layout Layout) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if layout == LayoutFixed {
			line = cutFixedLine(line)
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "*") && !strings.HasPrefix(trimmed, "*>") {
			// full-line comment
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// cutFixedLine reduces a fixed-format line to its area B text. Lines whose
// indicator column marks a comment are blanked.
func cutFixedLine(line string) string {
	if len(line) <= 6 {
		return ""
	}
	switch line[6] {
	case '*', '/':
		return ""
	}
	body := line[7:]
	if len(body) > 65 {
		body = body[:65] // columns 8-72
	}
	return body
}

package copybook

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PictureClass is the logical category named by a picture's leading symbol.
type PictureClass int

const (
	PictureAlphabetic   PictureClass = iota // A...
	PictureAlphanumeric                     // X...
	PictureNumeric                          // 9... with optional S and V
)

// PictureFormat is the canonical decomposition of a picture string:
// leading type code plus digit counts either side of the decimal point.
type PictureFormat struct {
	Class    PictureClass
	Signed   bool
	Digits   int
	Decimals int
}

// ErrFreeFormPicture marks picture strings outside the canonical
// A/X/9(S,V) shapes, e.g. edited pictures with Z, B, P or currency signs.
var ErrFreeFormPicture = errors.New("free-form picture string")

// Format decomposes the picture character string. Free-form pictures are
// reported as errors so the importer can reject them by name.
func (p *PictureOption) Format() (*PictureFormat, error) {
	return parsePicture(p.Raw)
}

func parsePicture(raw string) (*PictureFormat, error) {
	s := strings.ToUpper(raw)
	if s == "" {
		return nil, fmt.Errorf("%w: empty picture", ErrFreeFormPicture)
	}

	f := &PictureFormat{}
	i := 0
	if s[0] == 'S' {
		f.Signed = true
		i++
		if i == len(s) {
			return nil, fmt.Errorf("%w: %q", ErrFreeFormPicture, raw)
		}
	}

	switch s[i] {
	case 'A':
		f.Class = PictureAlphabetic
	case 'X':
		f.Class = PictureAlphanumeric
	case '9':
		f.Class = PictureNumeric
	default:
		return nil, fmt.Errorf("%w: %q", ErrFreeFormPicture, raw)
	}
	if f.Signed && f.Class != PictureNumeric {
		return nil, fmt.Errorf("%w: %q", ErrFreeFormPicture, raw)
	}

	afterV := false
	for i < len(s) {
		sym := s[i]
		i++

		switch {
		case sym == 'V':
			if f.Class != PictureNumeric || afterV {
				return nil, fmt.Errorf("%w: %q", ErrFreeFormPicture, raw)
			}
			afterV = true
			continue
		case sym == '9':
			if f.Class != PictureNumeric {
				return nil, fmt.Errorf("%w: %q", ErrFreeFormPicture, raw)
			}
		case sym == 'A' || sym == 'X':
			if f.Class == PictureNumeric || afterV {
				return nil, fmt.Errorf("%w: %q", ErrFreeFormPicture, raw)
			}
		default:
			return nil, fmt.Errorf("%w: %q", ErrFreeFormPicture, raw)
		}

		count := 1
		if i < len(s) && s[i] == '(' {
			end := strings.IndexByte(s[i:], ')')
			if end < 0 {
				return nil, fmt.Errorf("%w: %q", ErrFreeFormPicture, raw)
			}
			n, err := strconv.Atoi(s[i+1 : i+end])
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrFreeFormPicture, raw)
			}
			count = n
			i += end + 1
		}

		if afterV {
			f.Decimals += count
		} else {
			f.Digits += count
		}
	}

	return f, nil
}

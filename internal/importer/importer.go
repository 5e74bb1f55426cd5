package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cbtools/cbgraph/internal/copybook"
)

// Import extracts the normalized attribute bundle from one record. Only
// plain field records are supported; renames and condition-name records
// fail with an unsupported-feature error naming the kind.
func Import(rec *copybook.Record) (*Imported, error) {
	switch rec.Kind() {
	case copybook.KindPlainField:
		return importPlainField(rec)
	case copybook.KindRenames:
		return nil, unsupported("renames record", rec)
	case copybook.KindValues:
		return nil, unsupported("level-88 condition record", rec)
	default:
		return nil, fmt.Errorf("%w: %s at %s", ErrUnknownRecord, rec.Kind(), rec.Pos)
	}
}

func importPlainField(rec *copybook.Record) (*Imported, error) {
	level, err := strconv.Atoi(rec.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid level number %q at %s: %w", rec.Level, rec.Pos, err)
	}

	imp := &Imported{Level: level}
	if !rec.IsFiller() {
		imp.Name = *rec.Name
	}

	for _, opt := range rec.Options {
		if err := applyOption(imp, opt, rec); err != nil {
			return nil, err
		}
	}
	return imp, nil
}

// applyOption dispatches one clause onto the bundle. Every branch of the
// option union is handled; recognized-but-unsupported clauses fail naming
// the clause, and the all-nil default is an upstream contract violation.
func applyOption(imp *Imported, opt *copybook.Option, rec *copybook.Record) error {
	switch {
	case opt.Redefines != nil:
		imp.Redefines = opt.Redefines.Target

	case opt.Occurs != nil:
		return applyOccurs(imp, opt.Occurs, rec)

	case opt.Sign != nil:
		imp.Sign = composeSign(opt.Sign)

	case opt.Picture != nil:
		return applyPicture(imp, opt.Picture, rec)

	case opt.Usage != nil:
		return applyUsage(imp, opt.Usage, rec)

	case opt.Value != nil:
		lits := opt.Value.Literals
		if len(lits) != 1 || lits[0].Number == nil {
			return unsupported("value literal", rec)
		}
		n, err := strconv.Atoi(*lits[0].Number)
		if err != nil {
			return fmt.Errorf("invalid integer literal %q at %s: %w", *lits[0].Number, opt.Value.Pos, err)
		}
		imp.RawValue = n

	case opt.Renames != nil:
		// unreachable for plain field records, kept for exhaustiveness
		return unsupported("renames clause", rec)

	case opt.Sync != nil:
		return unsupported("synchronized clause", rec)

	case opt.Just != nil:
		return unsupported("justified clause", rec)

	case opt.Blank != nil:
		return unsupported("blank when zero clause", rec)

	default:
		return fmt.Errorf("%w at %s", ErrUnknownOption, opt.Pos)
	}
	return nil
}

func applyOccurs(imp *Imported, oc *copybook.OccursOption, rec *copybook.Record) error {
	if len(oc.Keys) > 0 || len(oc.Indexes) > 0 {
		return unsupported("occurs keys/indexes", rec)
	}
	if oc.Amount.Number == nil {
		return unsupported("non-literal occurs amount", rec)
	}
	amount, err := strconv.Atoi(*oc.Amount.Number)
	if err != nil {
		return fmt.Errorf("invalid occurs amount %q at %s: %w", *oc.Amount.Number, oc.Pos, err)
	}
	imp.OccursAmount = amount

	if oc.Max != nil {
		if oc.Max.Number == nil {
			return unsupported("non-literal occurs upper bound", rec)
		}
		max, err := strconv.Atoi(*oc.Max.Number)
		if err != nil {
			return fmt.Errorf("invalid occurs upper bound %q at %s: %w", *oc.Max.Number, oc.Pos, err)
		}
		imp.OccursMax = max
	}
	if oc.DependsOn != nil {
		imp.OccursDependsOn = *oc.DependsOn
	}
	return nil
}

func applyPicture(imp *Imported, pic *copybook.PictureOption, rec *copybook.Record) error {
	format, err := pic.Format()
	if err != nil {
		if errors.Is(err, copybook.ErrFreeFormPicture) {
			return unsupported(fmt.Sprintf("picture string %q", pic.Raw), rec)
		}
		return err
	}
	switch format.Class {
	case copybook.PictureAlphabetic, copybook.PictureAlphanumeric:
		imp.TypeKind = TypeString
		imp.TypeLength = format.Digits
	default:
		imp.TypeSigned = format.Signed
		imp.TypeLength = format.Digits
		if format.Decimals == 0 {
			imp.TypeKind = TypeInteger
		} else {
			imp.TypeKind = TypeFloat
			imp.TypeDecimalLength = format.Decimals
		}
	}
	return nil
}

func applyUsage(imp *Imported, u *copybook.UsageOption, rec *copybook.Record) error {
	switch {
	case u.Comp != nil:
		imp.CompLevel = u.CompLevel()
	case u.Binary:
		return unsupported("binary usage", rec)
	case u.Packed:
		return unsupported("packed-decimal usage", rec)
	case u.Display:
		return unsupported("display usage", rec)
	case u.Index:
		return unsupported("index usage", rec)
	}
	return nil
}

// composeSign renders the sign clause as "leading"/"trailing" with
// optional "separate" and "character" qualifiers.
func composeSign(s *copybook.SignOption) string {
	parts := []string{strings.ToLower(s.Placement)}
	if s.Separate {
		parts = append(parts, "separate")
		if s.Character {
			parts = append(parts, "character")
		}
	}
	return strings.Join(parts, " ")
}

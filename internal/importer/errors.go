package importer

import (
	"errors"
	"fmt"

	"github.com/cbtools/cbgraph/internal/copybook"
)

var (
	// ErrUnsupportedFeature marks recognized but intentionally
	// unimplemented clauses and record kinds.
	ErrUnsupportedFeature = errors.New("feature not supported")

	// ErrUnknownOption marks an option outside the recognized closed set,
	// a contract violation by the upstream parser.
	ErrUnknownOption = errors.New("unknown option type")

	// ErrUnknownRecord marks a record variant outside the recognized set.
	ErrUnknownRecord = errors.New("unknown record type")
)

// unsupported builds an unsupported-feature error naming the clause and,
// where available, the owning record.
func unsupported(feature string, rec *copybook.Record) error {
	if rec == nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedFeature, feature)
	}
	if rec.Name != nil {
		return fmt.Errorf("%w: %s (in %s at %s)", ErrUnsupportedFeature, feature, *rec.Name, rec.Pos)
	}
	return fmt.Errorf("%w: %s (at %s)", ErrUnsupportedFeature, feature, rec.Pos)
}

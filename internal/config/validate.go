package config

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Validate checks a configuration for values the pipeline cannot work with.
func Validate(cfg *Config) error {
	switch cfg.Layout {
	case "free", "fixed":
	default:
		return fmt.Errorf("layout must be \"free\" or \"fixed\", got %q", cfg.Layout)
	}

	switch cfg.Output.Format {
	case "text", "dot", "json":
	default:
		return fmt.Errorf("output.format must be \"text\", \"dot\" or \"json\", got %q", cfg.Output.Format)
	}

	if len(cfg.Paths.Copybooks) == 0 {
		return fmt.Errorf("paths.copybooks must contain at least one pattern")
	}
	for _, pattern := range append(append([]string{}, cfg.Paths.Copybooks...), cfg.Paths.Ignore...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
	}
	return nil
}

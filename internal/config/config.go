package config

// Config is the complete cbgraph configuration. It can be loaded from
// .cbgraph/config.yml with environment variable overrides.
type Config struct {
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Layout string       `yaml:"layout" mapstructure:"layout"` // "free" or "fixed"
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// PathsConfig defines which copybook files directory arguments expand to.
type PathsConfig struct {
	Copybooks []string `yaml:"copybooks" mapstructure:"copybooks"` // glob patterns for copybooks
	Ignore    []string `yaml:"ignore" mapstructure:"ignore"`       // glob patterns to ignore
}

// OutputConfig defines rendering defaults.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "text", "dot" or "json"
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Copybooks: []string{
				"**/*.cpy",
				"**/*.cbl",
				"**/*.cob",
				"**/*.copybook",
			},
			Ignore: []string{
				".git/**",
				"node_modules/**",
				"vendor/**",
			},
		},
		Layout: "free",
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// Extensions extracts unique file extensions from the copybook patterns,
// with the leading dot (e.g. []string{".cpy", ".cbl"}).
func (c *Config) Extensions() []string {
	extMap := make(map[string]bool)
	for _, pattern := range c.Paths.Copybooks {
		if ext := extractExtension(pattern); ext != "" {
			extMap[ext] = true
		}
	}

	extensions := make([]string, 0, len(extMap))
	for ext := range extMap {
		extensions = append(extensions, ext)
	}
	return extensions
}

// extractExtension extracts the file extension from a glob pattern.
// Examples: "**/*.cpy" -> ".cpy", "*.cbl" -> ".cbl".
func extractExtension(pattern string) string {
	for i := len(pattern) - 1; i >= 1; i-- {
		if pattern[i] == '.' && pattern[i-1] == '*' {
			return pattern[i:]
		}
	}
	return ""
}

package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cbtools/cbgraph/internal/config"
	"github.com/cbtools/cbgraph/internal/convert"
	"github.com/cbtools/cbgraph/internal/copybook"
	"github.com/cbtools/cbgraph/internal/discovery"
)

var (
	formatFlag string
	outputFlag string
	layoutFlag string
	quietFlag  bool
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert [path...]",
	Short: "Convert copybooks into a class model",
	Long: `Convert parses one or more COBOL copybooks, reduces the level-numbered
record stream into a class model and renders it.

File arguments are read and concatenated into one record stream; directory
arguments expand to the copybook files found beneath them. With no
arguments the copybook is read from standard input.

Examples:
  # Convert a single copybook to a text listing
  cbgraph convert customer.cpy

  # Render a Graphviz diagram for a whole directory
  cbgraph convert --format dot --output model.dot ./copybooks

  # Convert fixed-format source from stdin
  cbgraph convert --layout fixed < customer.cpy
`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "output format: text, dot or json")
	convertCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "write output to file instead of stdout")
	convertCmd.Flags().StringVar(&layoutFlag, "layout", "", "source layout: free or fixed")
	convertCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "disable progress output")
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted! Cancelling conversion...")
		cancel()
	}()

	cfg, err := loadConvertConfig()
	if err != nil {
		return err
	}

	out, flush := bufferedOutput(outputFlag)

	conv := convert.New(
		convert.WithFormat(convert.Format(cfg.Output.Format)),
		convert.WithLayout(copybook.Layout(cfg.Layout)),
		convert.WithProgress(NewConvertProgressReporter(quietFlag)),
	)

	if len(args) == 0 {
		if err := conv.ConvertReader("stdin", os.Stdin, out); err != nil {
			return err
		}
		return flush()
	}

	paths, err := expandArgs(args, cfg)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return convert.ErrNoInput
	}
	if !quietFlag {
		log.Printf("Converting %d copybook file(s)", len(paths))
	}
	if err := conv.ConvertFiles(ctx, paths, out); err != nil {
		return err
	}
	return flush()
}

// loadConvertConfig loads the configuration and applies flag overrides.
func loadConvertConfig() (*config.Config, error) {
	rootDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if formatFlag != "" {
		cfg.Output.Format = formatFlag
	}
	if layoutFlag != "" {
		cfg.Layout = layoutFlag
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandArgs resolves directory arguments to the copybook files beneath
// them; plain file arguments pass through.
func expandArgs(args []string, cfg *config.Config) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		disc, err := discovery.New(arg, cfg.Paths.Copybooks, cfg.Paths.Ignore)
		if err != nil {
			return nil, fmt.Errorf("invalid copybook patterns: %w", err)
		}
		found, err := disc.Files()
		if err != nil {
			return nil, fmt.Errorf("discover copybooks in %s: %w", arg, err)
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

// bufferedOutput returns the rendering destination. An empty path means
// stdout; otherwise the rendering is buffered and flush replaces the file
// afterwards, so a failed conversion never disturbs an earlier output.
func bufferedOutput(path string) (io.Writer, func() error) {
	if path == "" {
		return os.Stdout, func() error { return nil }
	}
	buf := &bytes.Buffer{}
	return buf, func() error {
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		return nil
	}
}

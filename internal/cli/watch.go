package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cbtools/cbgraph/internal/config"
	"github.com/cbtools/cbgraph/internal/convert"
	"github.com/cbtools/cbgraph/internal/copybook"
	"github.com/cbtools/cbgraph/internal/discovery"
	"github.com/cbtools/cbgraph/internal/watcher"
)

var (
	watchOutputFlag string
	watchFormatFlag string
	watchLayoutFlag string
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Re-convert copybooks whenever they change",
	Long: `Watch converts the copybooks under a directory and then keeps watching
the directory tree, rewriting the output file whenever a copybook is
created, changed or removed.

Examples:
  cbgraph watch --output model.dot --format dot ./copybooks
`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchOutputFlag, "output", "o", "", "output file, rewritten on every change (required)")
	watchCmd.Flags().StringVarP(&watchFormatFlag, "format", "f", "", "output format: text, dot or json")
	watchCmd.Flags().StringVar(&watchLayoutFlag, "layout", "", "source layout: free or fixed")
	watchCmd.MarkFlagRequired("output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	rootDir := args[0]
	info, err := os.Stat(rootDir)
	if err != nil {
		return fmt.Errorf("stat %s: %w", rootDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", rootDir)
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if watchFormatFlag != "" {
		cfg.Output.Format = watchFormatFlag
	}
	if watchLayoutFlag != "" {
		cfg.Layout = watchLayoutFlag
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nStopping watcher...")
		cancel()
	}()

	conv := convert.New(
		convert.WithFormat(convert.Format(cfg.Output.Format)),
		convert.WithLayout(copybook.Layout(cfg.Layout)),
	)

	reconvert := func() {
		if err := convertTree(ctx, conv, rootDir, watchOutputFlag, cfg); err != nil {
			log.Printf("Conversion failed: %v", err)
		}
	}

	// initial conversion before the first change arrives
	reconvert()

	w, err := watcher.New([]string{rootDir}, cfg.Extensions())
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Stop()

	if err := w.Start(ctx, func(files []string) {
		log.Printf("Detected %d changed file(s), re-converting", len(files))
		reconvert()
	}); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	log.Printf("Watching %s, writing %s (press Ctrl+C to stop)", rootDir, watchOutputFlag)
	<-ctx.Done()
	return nil
}

// convertTree discovers every copybook under rootDir and replaces the
// output file with the freshly converted model. The previous output stays
// untouched when the conversion fails.
func convertTree(ctx context.Context, conv *convert.Converter, rootDir, outPath string, cfg *config.Config) error {
	disc, err := discovery.New(rootDir, cfg.Paths.Copybooks, cfg.Paths.Ignore)
	if err != nil {
		return fmt.Errorf("invalid copybook patterns: %w", err)
	}
	paths, err := disc.Files()
	if err != nil {
		return fmt.Errorf("discover copybooks: %w", err)
	}
	if len(paths) == 0 {
		return convert.ErrNoInput
	}

	out, flush := bufferedOutput(outPath)
	if err := conv.ConvertFiles(ctx, paths, out); err != nil {
		return err
	}
	if err := flush(); err != nil {
		return err
	}
	log.Printf("Converted %d copybook file(s) to %s", len(paths), outPath)
	return nil
}

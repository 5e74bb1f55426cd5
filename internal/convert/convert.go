package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cbtools/cbgraph/internal/copybook"
	"github.com/cbtools/cbgraph/internal/hierarchy"
	"github.com/cbtools/cbgraph/internal/model"
)

// Format selects the output rendering.
type Format string

const (
	FormatText Format = "text"
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// ErrNoInput is returned when there is nothing to convert: no files given
// or found, and nothing on standard input.
var ErrNoInput = errors.New("no input provided")

// ProgressReporter reports conversion progress.
type ProgressReporter interface {
	OnConvertStart(totalFiles int)
	OnFileParsed(processedFiles, totalFiles int, fileName string)
	OnConvertComplete(classCount int, duration time.Duration)
}

// Converter runs the pipeline: read inputs, parse the record stream,
// import and reduce it, render the model.
type Converter struct {
	parser   *copybook.Parser
	format   Format
	progress ProgressReporter
}

// Option configures a Converter.
type Option func(*Converter)

// WithFormat selects the output format.
func WithFormat(f Format) Option {
	return func(c *Converter) {
		if f != "" {
			c.format = f
		}
	}
}

// WithLayout selects the copybook source layout.
func WithLayout(layout copybook.Layout) Option {
	return func(c *Converter) {
		c.parser = copybook.NewParser(copybook.WithLayout(layout))
	}
}

// WithProgress configures progress reporting.
func WithProgress(p ProgressReporter) Option {
	return func(c *Converter) {
		c.progress = p
	}
}

// New creates a Converter. The default output is the text listing of
// free-format input.
func New(opts ...Option) *Converter {
	c := &Converter{
		parser: copybook.NewParser(),
		format: FormatText,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConvertFiles reads and concatenates the given copybook files into one
// record stream and writes the rendered model to w.
func (c *Converter) ConvertFiles(ctx context.Context, paths []string, w io.Writer) error {
	if len(paths) == 0 {
		return ErrNoInput
	}

	start := time.Now()
	if c.progress != nil {
		c.progress.OnConvertStart(len(paths))
	}

	var records []*copybook.Record
	for i, path := range paths {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		recs, err := c.parser.Parse(path, data)
		if err != nil {
			return err
		}
		records = append(records, recs...)

		if c.progress != nil {
			c.progress.OnFileParsed(i+1, len(paths), path)
		}
	}

	m, err := hierarchy.Build(records)
	if err != nil {
		return err
	}
	if err := c.render(m, w); err != nil {
		return err
	}
	if c.progress != nil {
		c.progress.OnConvertComplete(len(m.Classes), time.Since(start))
	}
	return nil
}

// ConvertReader converts a single stream, typically standard input. An
// empty stream is ErrNoInput.
func (c *Converter) ConvertReader(name string, r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return ErrNoInput
	}

	recs, err := c.parser.Parse(name, data)
	if err != nil {
		return err
	}
	m, err := hierarchy.Build(recs)
	if err != nil {
		return err
	}
	return c.render(m, w)
}

func (c *Converter) render(m *model.Model, w io.Writer) error {
	switch c.format {
	case FormatText:
		return m.WriteListing(w)
	case FormatDOT:
		return m.WriteDOT(w)
	case FormatJSON:
		return m.WriteJSON(w)
	default:
		return fmt.Errorf("unknown output format %q", c.format)
	}
}

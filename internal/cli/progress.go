package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ConvertProgressReporter reports conversion progress with a progress bar.
type ConvertProgressReporter struct {
	quiet   bool
	fileBar *progressbar.ProgressBar
}

// NewConvertProgressReporter creates a progress reporter. With quiet set,
// every callback is a no-op.
func NewConvertProgressReporter(quiet bool) *ConvertProgressReporter {
	return &ConvertProgressReporter{quiet: quiet}
}

func (c *ConvertProgressReporter) OnConvertStart(totalFiles int) {
	if c.quiet || totalFiles < 2 {
		return
	}
	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Parsing copybooks"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *ConvertProgressReporter) OnFileParsed(processedFiles, totalFiles int, fileName string) {
	if c.quiet || c.fileBar == nil {
		return
	}
	c.fileBar.Add(1)
}

func (c *ConvertProgressReporter) OnConvertComplete(classCount int, duration time.Duration) {
	if c.quiet {
		return
	}
	log.Printf("Converted %d classes in %.2fs", classCount, duration.Seconds())
}

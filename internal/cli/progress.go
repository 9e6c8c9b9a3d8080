package cli

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter implements splitter.ProgressReporter with a progress bar.
type CLIProgressReporter struct {
	quiet     bool
	bar       *progressbar.ProgressBar
	startTime time.Time
	written   int
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:     quiet,
		startTime: time.Now(),
	}
}

func (c *CLIProgressReporter) OnEmitStart(total int) {
	if c.quiet {
		return
	}
	c.written = 0
	c.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Writing files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnFileEmitted(path string) {
	if c.quiet {
		return
	}
	c.written++
	debugf("Wrote %s", filepath.Base(path))
	if c.bar != nil {
		c.bar.Add(1)
	}
}

func (c *CLIProgressReporter) OnEmitComplete() {
	if c.quiet {
		return
	}
	if c.bar != nil {
		c.bar.Finish()
		c.bar = nil
	}
	log.Printf("Wrote %d files in %.2fs", c.written, time.Since(c.startTime).Seconds())
}

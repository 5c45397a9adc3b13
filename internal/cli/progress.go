package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter shows archive probing as a progress bar.
type CLIProgressReporter struct {
	quiet  bool
	w      io.Writer
	bar    *progressbar.ProgressBar
	start  time.Time
	total  int
	probed int
}

// NewCLIProgressReporter creates a reporter that draws on w.
func NewCLIProgressReporter(w io.Writer, quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet: quiet,
		w:     w,
		start: time.Now(),
	}
}

func (c *CLIProgressReporter) OnProbeStart(total int) {
	c.total = total
	c.probed = 0
	if c.quiet || total == 0 {
		return
	}

	c.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(c.w),
		progressbar.OptionSetDescription("Probing archives"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("jars/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.w)
		}),
	)
}

func (c *CLIProgressReporter) OnProbed(archivePath string, matched bool) {
	c.probed++
	if c.bar != nil {
		c.bar.Add(1)
	}
}

func (c *CLIProgressReporter) OnProbeComplete(matches int) {
	if c.bar != nil {
		c.bar.Finish()
		c.bar = nil
	}
	if c.quiet {
		return
	}
	fmt.Fprintf(c.w, "✓ Probed %d of %d archives in %.1fs: %d match(es)\n",
		c.probed, c.total, time.Since(c.start).Seconds(), matches)
}

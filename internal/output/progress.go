package output

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// ConsoleProgress renders per-phase scan progress as a single updating
// bar. It implements the engine's progress listener; Increment is safe
// to call from concurrent scan workers because the underlying bar locks
// its own state.
type ConsoleProgress struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

// NewConsoleProgress returns a progress renderer writing to w. Pass
// os.Stderr so bar redraws never interleave with report output.
func NewConsoleProgress(w io.Writer) *ConsoleProgress {
	return &ConsoleProgress{w: w}
}

// SetTotal finishes the previous phase's bar and starts a fresh one.
func (p *ConsoleProgress) SetTotal(total int, phase string) {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription(phase),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

// Increment advances the current bar by n completed projects.
func (p *ConsoleProgress) Increment(n int) {
	if p.bar == nil {
		return
	}
	_ = p.bar.Add(n)
}

// Close finishes the current bar so the final redraw is cleared before
// the report prints.
func (p *ConsoleProgress) Close() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	p.bar = nil
}

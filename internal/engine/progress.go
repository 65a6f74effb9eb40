package engine

import "sync"

// ProgressListener receives scan progress events. Increment may be called
// from concurrent tasks; SetTotal and Close are only called from the
// orchestrating goroutine, between phases.
type ProgressListener interface {
	// SetTotal announces the next phase and the number of tasks it will run.
	SetTotal(total int, phase string)

	// Increment records n completed tasks of the current phase.
	Increment(n int)

	// Close releases the listener once the scan is over.
	Close()
}

// Progress tracks task completion across the current phase and forwards
// events to an optional listener. Incrementing before a total is set is
// safe; the count simply accumulates.
type Progress struct {
	mu       sync.Mutex
	phase    string
	total    int
	done     int
	listener ProgressListener
}

// NewProgress returns a Progress forwarding to listener. A nil listener
// keeps counting without forwarding.
func NewProgress(listener ProgressListener) *Progress {
	return &Progress{listener: listener}
}

// SetTotal starts a new phase: the done count resets and the listener is
// told what is coming.
func (p *Progress) SetTotal(total int, phase string) {
	p.mu.Lock()
	p.phase = phase
	p.total = total
	p.done = 0
	l := p.listener
	p.mu.Unlock()

	if l != nil {
		l.SetTotal(total, phase)
	}
}

// Increment records n completed tasks. Safe for concurrent use.
func (p *Progress) Increment(n int) {
	p.mu.Lock()
	p.done += n
	l := p.listener
	p.mu.Unlock()

	if l != nil {
		l.Increment(n)
	}
}

// Snapshot returns the current phase name and its done/total counts.
func (p *Progress) Snapshot() (phase string, done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase, p.done, p.total
}

// Close closes the listener, if any.
func (p *Progress) Close() {
	p.mu.Lock()
	l := p.listener
	p.mu.Unlock()

	if l != nil {
		l.Close()
	}
}

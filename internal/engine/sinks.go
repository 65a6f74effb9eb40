package engine

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pankaj-dahiya-devops/gcp-sentinel/internal/models"
)

// FindingSink accumulates findings from concurrent scan tasks. Findings
// only ever enter the report through a sink; tasks never share slices.
type FindingSink struct {
	mu    sync.Mutex
	items []models.Finding
}

// NewFindingSink returns an empty sink.
func NewFindingSink() *FindingSink {
	return &FindingSink{}
}

// Add appends findings to the sink. Safe for concurrent use.
func (s *FindingSink) Add(findings ...models.Finding) {
	if len(findings) == 0 {
		return
	}
	s.mu.Lock()
	s.items = append(s.items, findings...)
	s.mu.Unlock()
}

// Items returns a copy of everything collected so far.
func (s *FindingSink) Items() []models.Finding {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Finding, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of findings collected so far.
func (s *FindingSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// ErrorSink accumulates non-fatal scan errors and mirrors each record to
// the structured error log. Errors never abort the scan and never mix
// into the findings.
type ErrorSink struct {
	mu     sync.Mutex
	items  []models.ScanError
	logger *zap.Logger
}

// NewErrorSink returns a sink that writes every recorded error through
// logger. A nil logger is replaced with a no-op logger.
func NewErrorSink(logger *zap.Logger) *ErrorSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorSink{logger: logger}
}

// Record stores one error scoped to a phase and project, and optionally to
// a single resource. Safe for concurrent use.
func (s *ErrorSink) Record(phase ScanPhase, project, resource string, err error) {
	entry := models.ScanError{
		Phase:      string(phase),
		Project:    project,
		Resource:   resource,
		Message:    err.Error(),
		OccurredAt: time.Now().UTC(),
	}

	s.logger.Error("scan error",
		zap.String("phase", entry.Phase),
		zap.String("project", entry.Project),
		zap.String("resource", entry.Resource),
		zap.String("message", entry.Message),
	)

	s.mu.Lock()
	s.items = append(s.items, entry)
	s.mu.Unlock()
}

// Recordf is Record with a formatted message.
func (s *ErrorSink) Recordf(phase ScanPhase, project, resource, format string, args ...any) {
	s.Record(phase, project, resource, fmt.Errorf(format, args...))
}

// Items returns a copy of everything recorded so far.
func (s *ErrorSink) Items() []models.ScanError {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ScanError, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of errors recorded so far.
func (s *ErrorSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

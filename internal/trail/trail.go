// Package trail collects the diagnostic lines of a single sitemap run.
package trail

import (
	"fmt"
	"log"
	"sync"
)

// Trail is an ordered, append-only list of log lines.
// A nil *Trail discards everything.
type Trail struct {
	mu     sync.Mutex
	lines  []string
	logger *log.Logger
}

// New creates a trail, mirroring every line to logger if not nil
func New(logger *log.Logger) *Trail {
	return &Trail{logger: logger}
}

// Addf formats and appends a line
func (t *Trail) Addf(format string, args ...any) {
	if t == nil {
		return
	}

	line := fmt.Sprintf(format, args...)

	t.mu.Lock()
	t.lines = append(t.lines, line)
	t.mu.Unlock()

	if t.logger != nil {
		t.logger.Println(line)
	}
}

// Lines returns a copy of the lines appended so far
func (t *Trail) Lines() []string {
	if t == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	lines := make([]string, len(t.lines))
	copy(lines, t.lines)
	return lines
}

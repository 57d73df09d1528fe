package diagnostics

import (
	"sort"
	"sync"
)

// Collector accumulates diagnostics from every pipeline stage. It is the only
// shared mutable state in a build and supports concurrent append from the
// ingestion worker pool.
type Collector struct {
	mu      sync.Mutex
	entries []Diagnostic
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Append records one or more diagnostics. Safe for concurrent use.
func (c *Collector) Append(diags ...Diagnostic) {
	if len(diags) == 0 {
		return
	}
	c.mu.Lock()
	c.entries = append(c.entries, diags...)
	c.mu.Unlock()
}

// Warn is shorthand for appending a warning-severity diagnostic.
func (c *Collector) Warn(path string, code Code, message string) {
	c.Append(Diagnostic{Severity: SeverityWarning, Path: path, Code: code, Message: message})
}

// Error is shorthand for appending an error-severity diagnostic.
func (c *Collector) Error(path string, code Code, message string) {
	c.Append(Diagnostic{Severity: SeverityError, Path: path, Code: code, Message: message})
}

// Fatal is shorthand for appending a fatal-severity diagnostic.
func (c *Collector) Fatal(path string, code Code, message string) {
	c.Append(Diagnostic{Severity: SeverityFatal, Path: path, Code: code, Message: message})
}

// Len reports the number of collected diagnostics.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// HasFatal reports whether any fatal diagnostic was collected.
func (c *Collector) HasFatal() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.entries {
		if d.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// All returns a deterministic snapshot: severity descending, then path, code,
// and message. Parallel ingestion makes raw emission order unstable, so the
// snapshot is what every consumer (and the idempotence guarantee) relies on.
func (c *Collector) All() []Diagnostic {
	c.mu.Lock()
	snapshot := make([]Diagnostic, len(c.entries))
	copy(snapshot, c.entries)
	c.mu.Unlock()

	sort.SliceStable(snapshot, func(i, j int) bool {
		a, b := snapshot[i], snapshot[j]
		if a.Severity.rank() != b.Severity.rank() {
			return a.Severity.rank() > b.Severity.rank()
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Message < b.Message
	})
	return snapshot
}

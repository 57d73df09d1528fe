package diagnostics

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-sitegraph/internal/logging"
	"github.com/goliatone/go-sitegraph/internal/navigation"
	"github.com/goliatone/go-sitegraph/pkg/interfaces"
)

// ExitStatus is the build outcome derived from collected diagnostics.
type ExitStatus string

const (
	StatusSuccess ExitStatus = "success"
	StatusFailure ExitStatus = "failure"
)

// Report is the single structured output of a build run. Every diagnostic
// emitted anywhere in the pipeline appears exactly once, grouped by severity.
type Report struct {
	RunID              string           `json:"run_id" yaml:"run_id"`
	GeneratedAt        time.Time        `json:"generated_at" yaml:"generated_at"`
	DocumentsProcessed int              `json:"documents_processed" yaml:"documents_processed"`
	NavigationTree     *navigation.Node `json:"navigation_tree,omitempty" yaml:"navigation_tree,omitempty"`
	Warnings           []Diagnostic     `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors             []Diagnostic     `json:"errors,omitempty" yaml:"errors,omitempty"`
	Fatals             []Diagnostic     `json:"fatals,omitempty" yaml:"fatals,omitempty"`
	Summary            map[Code]int     `json:"summary" yaml:"summary"`
	StrictMode         bool             `json:"strict_mode" yaml:"strict_mode"`
	ExitStatus         ExitStatus       `json:"exit_status" yaml:"exit_status"`
}

// Diagnostics returns the grouped records as one severity-ordered sequence.
func (r *Report) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, 0, len(r.Fatals)+len(r.Errors)+len(r.Warnings))
	out = append(out, r.Fatals...)
	out = append(out, r.Errors...)
	out = append(out, r.Warnings...)
	return out
}

// Failed reports whether the run must be treated as a build failure.
func (r *Report) Failed() bool {
	return r.ExitStatus == StatusFailure
}

// ReporterOption configures a Reporter instance.
type ReporterOption func(*Reporter)

// WithLogger injects the logger used while assembling and writing reports.
func WithLogger(logger interfaces.Logger) ReporterOption {
	return func(r *Reporter) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock overrides the timestamp source, primarily for tests.
func WithClock(clock func() time.Time) ReporterOption {
	return func(r *Reporter) {
		if clock != nil {
			r.now = clock
		}
	}
}

// WithRunID pins the report run identifier, primarily for tests.
func WithRunID(id string) ReporterOption {
	return func(r *Reporter) {
		if strings.TrimSpace(id) != "" {
			r.runID = id
		}
	}
}

// Reporter assembles the terminal report. It is the only pipeline component
// that performs external I/O; everything upstream stays a pure transformation.
type Reporter struct {
	logger interfaces.Logger
	now    func() time.Time
	runID  string
}

// NewReporter constructs a reporter with a fresh run identifier.
func NewReporter(opts ...ReporterOption) *Reporter {
	r := &Reporter{
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.runID == "" {
		r.runID = uuid.NewString()
	}
	return r
}

// Build folds the collector into a report. Strict mode never changes which
// diagnostics are emitted; it only lowers the failure threshold so that
// error-grade findings (including escalated warnings) gate the build.
func (r *Reporter) Build(processed int, tree *navigation.Node, collector *Collector, strict bool) *Report {
	report := &Report{
		RunID:              r.runID,
		GeneratedAt:        r.now().UTC(),
		DocumentsProcessed: processed,
		NavigationTree:     tree,
		Summary:            map[Code]int{},
		StrictMode:         strict,
		ExitStatus:         StatusSuccess,
	}

	for _, diag := range collector.All() {
		report.Summary[diag.Code]++
		switch diag.Severity {
		case SeverityFatal:
			report.Fatals = append(report.Fatals, diag)
		case SeverityError:
			report.Errors = append(report.Errors, diag)
		default:
			report.Warnings = append(report.Warnings, diag)
		}
	}

	if len(report.Fatals) > 0 {
		report.ExitStatus = StatusFailure
	}
	if strict && (len(report.Errors) > 0 || len(report.Warnings) > 0) {
		report.ExitStatus = StatusFailure
	}

	r.logger.Info("report.assembled",
		"run_id", report.RunID,
		"documents", report.DocumentsProcessed,
		"warnings", len(report.Warnings),
		"errors", len(report.Errors),
		"fatals", len(report.Fatals),
		"exit_status", report.ExitStatus,
	)

	return report
}

// Write serializes the report to w in the requested format ("json" or "yaml").
func (r *Reporter) Write(w io.Writer, report *Report, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("diagnostics: encode report: %w", err)
		}
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("diagnostics: encode report: %w", err)
		}
	default:
		return fmt.Errorf("diagnostics: unsupported report format %q", format)
	}
	return nil
}

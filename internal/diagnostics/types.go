package diagnostics

// Severity grades how much a diagnostic compromises the build.
type Severity string

const (
	// SeverityWarning flags informational findings; the corpus still models
	// cleanly.
	SeverityWarning Severity = "warning"
	// SeverityError flags documents that had to be degraded or excluded.
	SeverityError Severity = "error"
	// SeverityFatal flags corpus-wide invariant violations; the build cannot
	// be trusted.
	SeverityFatal Severity = "fatal"
)

func (s Severity) rank() int {
	switch s {
	case SeverityFatal:
		return 2
	case SeverityError:
		return 1
	default:
		return 0
	}
}

// Code identifies the diagnostic kind. Codes are stable strings so report
// consumers can filter without parsing messages.
type Code string

const (
	// CodeParseError marks a front-matter block malformed beyond graceful
	// degradation; the document is excluded from every downstream stage.
	CodeParseError Code = "parse_error"
	// CodeMissingField marks a required front-matter field absence.
	CodeMissingField Code = "missing_field"
	// CodeInvalidCanonical marks a canonical URL that is present but not a
	// well-formed site-relative path.
	CodeInvalidCanonical Code = "invalid_canonical"
	// CodeDuplicatePath marks two documents claiming the same corpus path.
	CodeDuplicatePath Code = "duplicate_path"
	// CodeWeightFormat marks a nav_weight that does not parse as an integer.
	CodeWeightFormat Code = "weight_format"
	// CodeDateFormat marks a date that does not parse as ISO-8601.
	CodeDateFormat Code = "date_format"
	// CodeURLMismatch marks a declared canonical URL diverging from the
	// path-derived one.
	CodeURLMismatch Code = "url_mismatch"
	// CodeURLCollision marks two documents resolving to the same URL.
	CodeURLCollision Code = "url_collision"
	// CodeCycle marks a navigation hierarchy loop.
	CodeCycle Code = "cycle"
	// CodeBrokenLink marks an internal reference with no matching document.
	CodeBrokenLink Code = "broken_link"
	// CodeEncodingAnomaly marks mojibake detected in front-matter strings.
	// Values are reported, never rewritten.
	CodeEncodingAnomaly Code = "encoding_anomaly"
)

// Diagnostic is one validation finding. Instances are immutable after
// creation; they are only ever collected and reported.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	// Path names the offending document, empty for corpus-wide issues.
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Code    Code   `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

package documents

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-sitegraph/internal/diagnostics"
	"github.com/goliatone/go-sitegraph/internal/logging"
	"github.com/goliatone/go-sitegraph/pkg/interfaces"
)

// Builder converts raw parsed documents into validated model entities.
// Validation follows partial-failure semantics: a document missing a required
// field is rejected from navigation but kept for cross-reference checking, so
// one pass surfaces as many problems as possible. Only duplicate paths halt
// the build.
type Builder struct {
	logger interfaces.Logger
}

// Option configures a Builder instance.
type Option func(*Builder)

// WithLogger injects the logger used during model building.
func WithLogger(logger interfaces.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder constructs a document model builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build validates and coerces every raw document. The returned slice holds
// both accepted and rejected documents, ordered by path; rejected ones carry
// Accepted=false. A duplicate path emits a fatal diagnostic and returns
// ErrDuplicatePath.
func (b *Builder) Build(raw []*interfaces.Document, collector *diagnostics.Collector) ([]*Document, error) {
	seen := make(map[string]struct{}, len(raw))
	out := make([]*Document, 0, len(raw))

	for _, src := range raw {
		if src == nil {
			continue
		}
		if _, dup := seen[src.Path]; dup {
			collector.Fatal(src.Path, diagnostics.CodeDuplicatePath,
				fmt.Sprintf("path %q appears more than once in the corpus", src.Path))
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, src.Path)
		}
		seen[src.Path] = struct{}{}

		out = append(out, b.buildOne(src, collector))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out, nil
}

func (b *Builder) buildOne(src *interfaces.Document, collector *diagnostics.Collector) *Document {
	logger := logging.WithDocumentContext(b.logger, src.Path, "build")
	matter := src.FrontMatter
	accepted := true

	if err := validation.Validate(strings.TrimSpace(matter.Title), validation.Required); err != nil {
		collector.Error(src.Path, diagnostics.CodeMissingField, "title is required")
		accepted = false
	}

	canonical := strings.TrimSpace(matter.Canonical)
	if err := validation.Validate(canonical, validation.Required); err != nil {
		collector.Error(src.Path, diagnostics.CodeMissingField, "canonical is required")
		accepted = false
	} else if !isURLPath(canonical) {
		collector.Error(src.Path, diagnostics.CodeInvalidCanonical,
			fmt.Sprintf("canonical %q is not a well-formed URL path", canonical))
		accepted = false
	}

	weight, weightOK := coerceWeight(matter.NavWeight)
	switch {
	case matter.NavWeight == nil:
		collector.Error(src.Path, diagnostics.CodeMissingField, "nav_weight is required")
		accepted = false
	case !weightOK:
		// Degraded but non-fatal: the document stays navigable at weight 0.
		collector.Error(src.Path, diagnostics.CodeWeightFormat,
			fmt.Sprintf("nav_weight %v does not parse as an integer, defaulting to 0", matter.NavWeight))
		weight = 0
	}

	date, dateOK := coerceDate(matter.Date)
	if !dateOK {
		collector.Warn(src.Path, diagnostics.CodeDateFormat,
			fmt.Sprintf("date %q is not an ISO-8601 date", matter.Date))
	}

	b.scanEncoding(src.Path, matter, collector)

	doc := &Document{
		Path:         src.Path,
		Title:        strings.TrimSpace(matter.Title),
		CanonicalURL: canonical,
		NavWeight:    weight,
		Parent:       strings.TrimSpace(matter.Parent),
		Tags:         coerceTags(matter.Tags),
		Date:         date,
		License:      matter.License,
		Draft:        matter.Draft,
		Body:         src.Body,
		Checksum:     src.Checksum,
		LastModified: src.LastModified,
		Accepted:     accepted,
	}

	if !accepted {
		logger.Debug("document.rejected", "path", src.Path)
	}
	return doc
}

// scanEncoding flags mojibake in front-matter strings without rewriting the
// values; the report points at the anomaly, the corpus stays untouched.
func (b *Builder) scanEncoding(path string, matter interfaces.FrontMatter, collector *diagnostics.Collector) {
	fields := map[string]string{
		"title":   matter.Title,
		"license": matter.License,
	}
	for key, value := range matter.Custom {
		if s, ok := value.(string); ok {
			fields[key] = s
		}
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if hasEncodingAnomaly(fields[key]) {
			collector.Warn(path, diagnostics.CodeEncodingAnomaly,
				fmt.Sprintf("field %q contains suspect byte sequences (possible mis-encoded text)", key))
		}
	}
}

func isURLPath(value string) bool {
	if !strings.HasPrefix(value, "/") {
		return false
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return false
	}
	return parsed.Scheme == "" && parsed.Host == "" && parsed.Path == value
}

func coerceWeight(value any) (int, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// coerceTags normalizes the shapes seen in real corpora (scalar, list, mixed
// types) into a sorted, de-duplicated string set.
func coerceTags(value any) []string {
	var raw []string
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		raw = []string{v}
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			raw = append(raw, fmt.Sprint(item))
		}
	default:
		raw = []string{fmt.Sprint(v)}
	}

	set := make(map[string]struct{}, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		set[tag] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}

	out := make([]string, 0, len(set))
	for tag := range set {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func coerceDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, true
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

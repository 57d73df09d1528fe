// Package xref validates internal cross-references between documents.
package xref

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/goliatone/go-sitegraph/internal/diagnostics"
	"github.com/goliatone/go-sitegraph/internal/documents"
	"github.com/goliatone/go-sitegraph/internal/logging"
	"github.com/goliatone/go-sitegraph/internal/urls"
	"github.com/goliatone/go-sitegraph/pkg/interfaces"
)

// Corpus is the URL knowledge the validator checks references against.
type Corpus struct {
	// Known maps every effective canonical URL (normalized) to the owning
	// document path.
	Known map[string]string
	// ByPath maps document paths to their effective canonical URL.
	ByPath map[string]string
}

// ValidatorOption configures a Validator instance.
type ValidatorOption func(*Validator)

// WithLogger injects the logger used during validation.
func WithLogger(logger interfaces.Logger) ValidatorOption {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithDeriver overrides how file-style link targets (e.g. "../b/index.md")
// are mapped to URLs. Defaults to the standard path derivation without a
// base URL; the pipeline injects the configured resolver's derivation.
func WithDeriver(derive func(string) string) ValidatorOption {
	return func(v *Validator) {
		if derive != nil {
			v.derive = derive
		}
	}
}

// Validator scans document bodies for reference targets and checks that each
// one resolves to a known document or a recognized external pattern. It never
// halts the build: broken links are reported so the corpus can still be
// reviewed whole.
type Validator struct {
	logger interfaces.Logger
	derive func(string) string
}

// NewValidator constructs a cross-reference validator.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		logger: logging.NoOp(),
		derive: urls.NewResolver(urls.Config{}).Derive,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks every link in every document, including documents rejected
// by model validation, to surface as many issues as possible in one pass.
func (v *Validator) Validate(docs []*documents.Document, corpus Corpus, collector *diagnostics.Collector) {
	for _, doc := range docs {
		own := corpus.ByPath[doc.Path]
		if own == "" {
			own = v.derive(doc.Path)
		}
		logger := logging.WithDocumentContext(v.logger, doc.Path, "xref")

		for _, target := range doc.Links() {
			v.checkTarget(doc, own, target, corpus, collector, logger)
		}
	}
}

func (v *Validator) checkTarget(doc *documents.Document, own, target string, corpus Corpus, collector *diagnostics.Collector, logger interfaces.Logger) {
	target = strings.TrimSpace(target)
	if target == "" {
		return
	}

	parsed, err := url.Parse(target)
	if err != nil {
		collector.Error(doc.Path, diagnostics.CodeBrokenLink,
			fmt.Sprintf("target %q is not a parsable reference", target))
		return
	}

	// External references are out of scope; schemes and protocol-relative
	// targets are accepted as-is.
	if parsed.Scheme != "" || strings.HasPrefix(target, "//") {
		return
	}

	// Bare fragments anchor into the referencing document itself.
	if parsed.Path == "" {
		return
	}

	if v.resolves(parsed.Path, own, doc.Path, corpus) {
		return
	}

	logger.Debug("xref.broken", "target", target)
	collector.Error(doc.Path, diagnostics.CodeBrokenLink,
		fmt.Sprintf("target %q does not resolve to any document", target))
}

// resolves tries, in order: the target as a site URL (absolute or relative to
// the referencing document's canonical URL), then the target as a corpus file
// path relative to the referencing document's own file.
func (v *Validator) resolves(target, ownURL, ownPath string, corpus Corpus) bool {
	var candidate string
	if strings.HasPrefix(target, "/") {
		candidate = urls.NormalizeURL(target)
	} else {
		base := &url.URL{Path: ownURL}
		candidate = urls.NormalizeURL(base.ResolveReference(&url.URL{Path: target}).Path)
	}
	if _, ok := corpus.Known[candidate]; ok {
		return true
	}

	// File-style targets ("b/index.md", "../guide.md") are common in corpora
	// written for repository browsing; resolve them through URL derivation.
	if strings.Contains(path.Base(target), ".") {
		filePath := strings.TrimPrefix(target, "/")
		if !strings.HasPrefix(target, "/") {
			filePath = path.Join(path.Dir(ownPath), target)
		}
		derived := urls.NormalizeURL(v.derive(filePath))
		if _, ok := corpus.Known[derived]; ok {
			return true
		}
	}

	return false
}

package urls

import (
	"fmt"
	"path"
	"strings"

	slug "github.com/goliatone/go-slug"

	"github.com/goliatone/go-sitegraph/internal/diagnostics"
	"github.com/goliatone/go-sitegraph/internal/documents"
	"github.com/goliatone/go-sitegraph/internal/logging"
	"github.com/goliatone/go-sitegraph/pkg/interfaces"
)

// Resolution is the outcome of deriving a URL for one document.
type Resolution struct {
	Path            string
	DerivedURL      string
	DeclaredURL     string
	MatchesDeclared bool
}

// URLResolver lets callers override how document URLs are generated, e.g.
// with a route-template manager. The default derivation stays purely
// path-based.
type URLResolver interface {
	Resolve(doc *documents.Document) (string, error)
}

// Config configures URL derivation.
type Config struct {
	// BaseURL is prefixed to every derived URL ("" for root-hosted corpora).
	BaseURL string
}

// ResolverOption configures a Resolver instance.
type ResolverOption func(*Resolver)

// WithLogger injects the logger used during resolution.
func WithLogger(logger interfaces.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithURLResolver overrides the default path-based derivation.
func WithURLResolver(resolver URLResolver) ResolverOption {
	return func(r *Resolver) {
		if resolver != nil {
			r.override = resolver
		}
	}
}

// Resolver maps corpus paths to canonical site URLs. It is a pure
// transformation over path and configuration; diagnostics are the only
// output besides the derived values.
type Resolver struct {
	baseURL  string
	logger   interfaces.Logger
	override URLResolver
}

// NewResolver constructs a Resolver.
func NewResolver(cfg Config, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Derive computes the site URL implied by a corpus path: slugified segments,
// index basenames folded into their directory, extension stripped, base URL
// prefixed. Derived URLs always end in a trailing slash ("pretty URLs").
func (r *Resolver) Derive(docPath string) string {
	p := strings.Trim(path.Clean(strings.ReplaceAll(docPath, "\\", "/")), "/")
	p = strings.TrimSuffix(p, path.Ext(p))

	segments := []string{}
	for _, segment := range strings.Split(p, "/") {
		if segment == "" {
			continue
		}
		segments = append(segments, slugify(segment))
	}
	if n := len(segments); n > 0 {
		last := segments[n-1]
		if last == "index" || last == "_index" {
			segments = segments[:n-1]
		}
	}

	if len(segments) == 0 {
		return r.baseURL + "/"
	}
	return r.baseURL + "/" + strings.Join(segments, "/") + "/"
}

// Resolve derives the URL for one document and compares it against the
// declared canonical. The comparison tolerates trailing-slash differences;
// anything beyond that is a mismatch.
func (r *Resolver) Resolve(doc *documents.Document) Resolution {
	derived := ""
	if r.override != nil {
		if resolved, err := r.override.Resolve(doc); err == nil && strings.TrimSpace(resolved) != "" {
			derived = NormalizeURL(resolved)
		} else if err != nil {
			logging.WithDocumentContext(r.logger, doc.Path, "resolve").
				Warn("urls.override_failed", "error", err)
		}
	}
	if derived == "" {
		derived = r.Derive(doc.Path)
	}

	declared := strings.TrimSpace(doc.CanonicalURL)
	matches := declared == "" || NormalizeURL(declared) == NormalizeURL(derived)

	return Resolution{
		Path:            doc.Path,
		DerivedURL:      derived,
		DeclaredURL:     declared,
		MatchesDeclared: matches,
	}
}

// ResolveAll resolves every document and returns the corpus's canonical URL
// index (normalized URL to document path). Mismatches are warnings: corpora
// legitimately override canonicals for versioning or legacy redirects.
// Two documents resolving to the same effective URL is an error.
func (r *Resolver) ResolveAll(docs []*documents.Document, collector *diagnostics.Collector) map[string]string {
	index := make(map[string]string, len(docs))

	for _, doc := range docs {
		res := r.Resolve(doc)

		if !res.MatchesDeclared {
			collector.Warn(doc.Path, diagnostics.CodeURLMismatch,
				fmt.Sprintf("declared canonical %q differs from derived %q", res.DeclaredURL, res.DerivedURL))
		}

		effective := NormalizeURL(res.DerivedURL)
		if res.DeclaredURL != "" {
			effective = NormalizeURL(res.DeclaredURL)
		}

		if existing, ok := index[effective]; ok {
			collector.Error(doc.Path, diagnostics.CodeURLCollision,
				fmt.Sprintf("URL %q already claimed by %q", effective, existing))
			continue
		}
		index[effective] = doc.Path
	}

	return index
}

// EffectiveURL returns the URL a document is published under: the declared
// canonical when present, the derived URL otherwise.
func (r *Resolver) EffectiveURL(doc *documents.Document) string {
	if declared := strings.TrimSpace(doc.CanonicalURL); declared != "" {
		return NormalizeURL(declared)
	}
	return NormalizeURL(r.Derive(doc.Path))
}

// NormalizeURL canonicalizes a site URL for comparison: leading slash
// guaranteed, trailing slash guaranteed, interior cleaning applied.
func NormalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return "/"
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	u = path.Clean(u)
	if u == "/" || u == "." {
		return "/"
	}
	return u + "/"
}

func slugify(segment string) string {
	normalized, err := slug.Normalize(segment)
	if err != nil || normalized == "" {
		return strings.ToLower(segment)
	}
	return normalized
}

package urls

import (
	"testing"

	"github.com/goliatone/go-sitegraph/internal/diagnostics"
	"github.com/goliatone/go-sitegraph/internal/documents"
)

func TestDeriveSlugifiesSegments(t *testing.T) {
	r := NewResolver(Config{})

	cases := map[string]string{
		"guides/setup.md":  "/guides/setup/",
		"Guides/Setup.md":  "/guides/setup/",
		"a/index.md":       "/a/",
		"a/_index.md":      "/a/",
		"index.md":         "/",
		"deep/a/b/c.md":    "/deep/a/b/c/",
	}
	for input, want := range cases {
		if got := r.Derive(input); got != want {
			t.Fatalf("Derive(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDeriveAppliesBaseURL(t *testing.T) {
	r := NewResolver(Config{BaseURL: "/docs/"})

	if got := r.Derive("guides/setup.md"); got != "/docs/guides/setup/" {
		t.Fatalf("Derive = %q", got)
	}
	if got := r.Derive("index.md"); got != "/docs/" {
		t.Fatalf("Derive root = %q", got)
	}
}

func TestResolveMatchesDeclaredCanonical(t *testing.T) {
	r := NewResolver(Config{})
	doc := &documents.Document{Path: "guides/setup.md", CanonicalURL: "/guides/setup/"}

	res := r.Resolve(doc)
	if !res.MatchesDeclared {
		t.Fatalf("expected match, got %+v", res)
	}
}

func TestResolveToleratesTrailingSlashDifference(t *testing.T) {
	r := NewResolver(Config{})
	doc := &documents.Document{Path: "guides/setup.md", CanonicalURL: "/guides/setup"}

	if res := r.Resolve(doc); !res.MatchesDeclared {
		t.Fatalf("trailing slash must not count as a mismatch: %+v", res)
	}
}

func TestResolveAllWarnsOnMismatch(t *testing.T) {
	r := NewResolver(Config{})
	collector := diagnostics.NewCollector()

	index := r.ResolveAll([]*documents.Document{
		{Path: "guides/setup.md", CanonicalURL: "/legacy/setup/"},
	}, collector)

	all := collector.All()
	if len(all) != 1 || all[0].Code != diagnostics.CodeURLMismatch || all[0].Severity != diagnostics.SeverityWarning {
		t.Fatalf("diagnostics = %v, want one url_mismatch warning", all)
	}
	// The declared canonical wins in the index.
	if index["/legacy/setup/"] != "guides/setup.md" {
		t.Fatalf("index = %v", index)
	}
}

func TestResolveAllErrorsOnCollision(t *testing.T) {
	r := NewResolver(Config{})
	collector := diagnostics.NewCollector()

	r.ResolveAll([]*documents.Document{
		{Path: "a.md", CanonicalURL: "/same/"},
		{Path: "b.md", CanonicalURL: "/same/"},
	}, collector)

	found := false
	for _, d := range collector.All() {
		if d.Code == diagnostics.CodeURLCollision && d.Severity == diagnostics.SeverityError {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected url_collision error, got %v", collector.All())
	}
}

func TestEffectiveURLPrefersDeclared(t *testing.T) {
	r := NewResolver(Config{})

	declared := &documents.Document{Path: "a.md", CanonicalURL: "/custom/"}
	if got := r.EffectiveURL(declared); got != "/custom/" {
		t.Fatalf("EffectiveURL = %q", got)
	}

	derived := &documents.Document{Path: "a.md"}
	if got := r.EffectiveURL(derived); got != "/a/" {
		t.Fatalf("EffectiveURL = %q", got)
	}
}

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"":               "/",
		"/":              "/",
		"a/b":            "/a/b/",
		"/a/b/":          "/a/b/",
		"/a//b/../c/":    "/a/c/",
		"  /spaced/  ":   "/spaced/",
	}
	for input, want := range cases {
		if got := NormalizeURL(input); got != want {
			t.Fatalf("NormalizeURL(%q) = %q, want %q", input, got, want)
		}
	}
}

type staticResolver struct {
	url string
	err error
}

func (s staticResolver) Resolve(*documents.Document) (string, error) {
	return s.url, s.err
}

func TestResolveOverrideWins(t *testing.T) {
	r := NewResolver(Config{}, WithURLResolver(staticResolver{url: "/routed/here/"}))
	doc := &documents.Document{Path: "guides/setup.md"}

	if res := r.Resolve(doc); res.DerivedURL != "/routed/here/" {
		t.Fatalf("derived = %q, want override output", res.DerivedURL)
	}
}

func TestResolveOverrideFailureFallsBack(t *testing.T) {
	r := NewResolver(Config{}, WithURLResolver(staticResolver{err: errTest}))
	doc := &documents.Document{Path: "guides/setup.md"}

	if res := r.Resolve(doc); res.DerivedURL != "/guides/setup/" {
		t.Fatalf("derived = %q, want path-based fallback", res.DerivedURL)
	}
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "test error" }

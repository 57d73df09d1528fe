package markdown

import (
	"context"
	"reflect"
	"testing"
	"testing/fstest"
)

func corpusFS() fstest.MapFS {
	return fstest.MapFS{
		"index.md":            {Data: []byte("---\ntitle: Home\n---\nhome")},
		"guides/setup.md":     {Data: []byte("---\ntitle: Setup\n---\nsetup")},
		"guides/drafts/wip.md": {Data: []byte("draft body")},
		"assets/logo.png":     {Data: []byte{0x89, 0x50}},
		"notes.txt":           {Data: []byte("not markdown")},
	}
}

func TestDiscoverMatchesMarkdownOnly(t *testing.T) {
	loader := NewLoader(corpusFS(), LoaderConfig{Recursive: true})

	paths, err := loader.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []string{"guides/drafts/wip.md", "guides/setup.md", "index.md"}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
}

func TestDiscoverHonorsIgnorePatterns(t *testing.T) {
	loader := NewLoader(corpusFS(), LoaderConfig{
		Recursive: true,
		Ignore:    []string{"guides/drafts/**"},
	})

	paths, err := loader.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	for _, path := range paths {
		if path == "guides/drafts/wip.md" {
			t.Fatalf("ignored path leaked into discovery: %v", paths)
		}
	}
}

func TestDiscoverNonRecursiveStaysAtRoot(t *testing.T) {
	loader := NewLoader(corpusFS(), LoaderConfig{Recursive: false})

	paths, err := loader.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if !reflect.DeepEqual(paths, []string{"index.md"}) {
		t.Fatalf("paths = %v, want root files only", paths)
	}
}

func TestLoadFileParsesAndChecksums(t *testing.T) {
	loader := NewLoader(corpusFS(), LoaderConfig{Recursive: true})

	result, err := loader.LoadFile(context.Background(), "guides/setup.md")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if result.Document.FrontMatter.Title != "Setup" {
		t.Fatalf("title = %q", result.Document.FrontMatter.Title)
	}
	if len(result.Document.Checksum) == 0 {
		t.Fatalf("expected checksum to be populated")
	}
}

func TestLoadFileMissingPath(t *testing.T) {
	loader := NewLoader(corpusFS(), LoaderConfig{Recursive: true})

	if _, err := loader.LoadFile(context.Background(), "missing.md"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadAllReturnsSortedResults(t *testing.T) {
	loader := NewLoader(corpusFS(), LoaderConfig{Recursive: true})

	results, err := loader.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(results))
	}
	if results[0].Document.Path != "guides/drafts/wip.md" {
		t.Fatalf("first path = %q", results[0].Document.Path)
	}
}

func TestLoadFileCancelledContext(t *testing.T) {
	loader := NewLoader(corpusFS(), LoaderConfig{Recursive: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := loader.LoadFile(ctx, "index.md"); err == nil {
		t.Fatalf("expected context error")
	}
}

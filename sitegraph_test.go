package sitegraph

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"testing/fstest"
)

func testCorpus() fstest.MapFS {
	return fstest.MapFS{
		"index.md": {Data: []byte("---\ntitle: Home\ncanonical: /\nnav_weight: 1\n---\nWelcome. See [guides](/guides/).\n")},
		"guides/index.md": {Data: []byte("---\ntitle: Guides\ncanonical: /guides/\nnav_weight: 10\n---\nStart with [setup](/guides/setup/).\n")},
		"guides/setup.md": {Data: []byte("---\ntitle: Setup\ncanonical: /guides/setup/\nnav_weight: 20\n---\nbody\n")},
	}
}

func TestModuleBuildEndToEnd(t *testing.T) {
	module, err := New(Config{ContentDir: "ignored"}, WithFS(testCorpus()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	report, err := module.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if report.Failed() {
		t.Fatalf("expected success, diagnostics: %v", report.Diagnostics())
	}
	if report.DocumentsProcessed != 3 {
		t.Fatalf("documents = %d", report.DocumentsProcessed)
	}
	if report.NavigationTree == nil {
		t.Fatalf("missing navigation tree")
	}
}

func TestModuleRequiresContentDirWithoutFS(t *testing.T) {
	if _, err := New(Config{}); err != ErrContentDirRequired {
		t.Fatalf("err = %v, want ErrContentDirRequired", err)
	}
}

func TestModuleRejectsInvalidConfig(t *testing.T) {
	if _, err := New(Config{ContentDir: "content", WorkerCount: -2}); err == nil {
		t.Fatalf("expected config validation error")
	}
}

func TestModuleWriteReport(t *testing.T) {
	module, err := New(Config{ContentDir: "ignored"}, WithFS(testCorpus()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	report, err := module.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf bytes.Buffer
	if err := module.WriteReport(&buf, report); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if !strings.Contains(buf.String(), `"exit_status": "success"`) {
		t.Fatalf("report output = %s", buf.String())
	}
}

func TestModuleBuildDocumentsSyntheticCorpus(t *testing.T) {
	module, err := New(Config{ContentDir: "ignored"}, WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	raw := []*RawDocument{
		{Path: "a.md", FrontMatter: FrontMatter{Title: "A", Canonical: "/a/", NavWeight: 1}},
	}

	report, err := module.BuildDocuments(context.Background(), raw)
	if err != nil {
		t.Fatalf("BuildDocuments: %v", err)
	}
	if report.Failed() || report.DocumentsProcessed != 1 {
		t.Fatalf("report = %+v", report)
	}
}

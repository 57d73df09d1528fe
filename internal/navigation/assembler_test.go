package navigation

import (
	"errors"
	"testing"
)

func TestAssembleOrdersByWeightThenPath(t *testing.T) {
	entries := []Entry{
		{Path: "b/index.md", Title: "Beta", URL: "/b/", Weight: 20},
		{Path: "a/index.md", Title: "Alpha", URL: "/a/", Weight: 10},
		{Path: "c.md", Title: "Gamma", URL: "/c/", Weight: 5},
	}

	root, err := Assemble(entries)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(root.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(root.Children))
	}

	titles := []string{root.Children[0].Title, root.Children[1].Title, root.Children[2].Title}
	if titles[0] != "Gamma" || titles[1] != "Alpha" || titles[2] != "Beta" {
		t.Fatalf("order = %v", titles)
	}
}

func TestAssembleEqualWeightsBreakTiesLexically(t *testing.T) {
	entries := []Entry{
		{Path: "zebra.md", Title: "Zebra", URL: "/zebra/", Weight: 10},
		{Path: "apple.md", Title: "Apple", URL: "/apple/", Weight: 10},
	}

	root, err := Assemble(entries)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if root.Children[0].Title != "Apple" || root.Children[1].Title != "Zebra" {
		t.Fatalf("tie-break order = %q, %q", root.Children[0].Title, root.Children[1].Title)
	}
}

func TestAssembleIndexDocumentRepresentsDirectory(t *testing.T) {
	entries := []Entry{
		{Path: "guides/index.md", Title: "Guides", URL: "/guides/", Weight: 1},
		{Path: "guides/setup.md", Title: "Setup", URL: "/guides/setup/", Weight: 2},
	}

	root, err := Assemble(entries)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(root.Children))
	}
	guides := root.Children[0]
	if guides.Virtual {
		t.Fatalf("directory with an index document must not be virtual")
	}
	if guides.Title != "Guides" || guides.DocumentPath != "guides/index.md" {
		t.Fatalf("node = %+v", guides)
	}
	if len(guides.Children) != 1 || guides.Children[0].Title != "Setup" {
		t.Fatalf("guides children = %+v", guides.Children)
	}
}

func TestAssembleVirtualNodeForIndexlessDirectory(t *testing.T) {
	entries := []Entry{
		{Path: "guides/setup.md", Title: "Setup", URL: "/guides/setup/", Weight: 1},
	}

	root, err := Assemble(entries)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	guides := root.Children[0]
	if !guides.Virtual || guides.Title != "guides" {
		t.Fatalf("expected virtual grouping node, got %+v", guides)
	}
	if len(guides.Children) != 1 || guides.Children[0].Title != "Setup" {
		t.Fatalf("guides children = %+v", guides.Children)
	}
}

func TestAssembleParentOverrideRehomesLeaf(t *testing.T) {
	entries := []Entry{
		{Path: "reference/index.md", Title: "Reference", URL: "/reference/", Weight: 1},
		{Path: "misc/orphan.md", Title: "Orphan", URL: "/misc/orphan/", Weight: 2, Parent: "reference"},
	}

	root, err := Assemble(entries)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	var reference *Node
	for _, child := range root.Children {
		if child.Title == "Reference" {
			reference = child
		}
	}
	if reference == nil {
		t.Fatalf("reference node missing: %+v", root.Children)
	}
	if len(reference.Children) != 1 || reference.Children[0].Title != "Orphan" {
		t.Fatalf("override leaf not re-homed: %+v", reference.Children)
	}
}

func TestAssembleDetectsParentCycle(t *testing.T) {
	entries := []Entry{
		{Path: "a/index.md", Title: "A", URL: "/a/", Weight: 1, Parent: "a/b"},
		{Path: "a/b/index.md", Title: "B", URL: "/a/b/", Weight: 2},
	}

	if _, err := Assemble(entries); !errors.Is(err, ErrCycle) {
		t.Fatalf("err = %v, want ErrCycle", err)
	}
}

func TestAssembleEmptyCorpus(t *testing.T) {
	root, err := Assemble(nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if root == nil || len(root.Children) != 0 {
		t.Fatalf("expected empty root, got %+v", root)
	}
}

func TestAssembleUnderscoreIndexVariant(t *testing.T) {
	entries := []Entry{
		{Path: "docs/_index.md", Title: "Docs", URL: "/docs/", Weight: 1},
	}

	root, err := Assemble(entries)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if root.Children[0].Title != "Docs" || root.Children[0].Virtual {
		t.Fatalf("_index not treated as index: %+v", root.Children[0])
	}
}

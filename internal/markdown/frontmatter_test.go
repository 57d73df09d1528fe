package markdown

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseFrontMatterExtractsFields(t *testing.T) {
	source := []byte(`---
title: Atoms and Refs
canonical: /concurrency/atoms/
nav_weight: 30
tags:
  - clojure
  - concurrency
date: 2024-05-01
license: CC BY-SA 4.0
---
# Atoms

Body text here.
`)

	matter, body, present, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if !present {
		t.Fatalf("expected front matter to be detected")
	}
	if matter.Title != "Atoms and Refs" {
		t.Fatalf("title = %q", matter.Title)
	}
	if matter.Canonical != "/concurrency/atoms/" {
		t.Fatalf("canonical = %q", matter.Canonical)
	}
	if matter.License != "CC BY-SA 4.0" {
		t.Fatalf("license = %q", matter.License)
	}
	if got := string(body); got != "# Atoms\n\nBody text here.\n" {
		t.Fatalf("body = %q", got)
	}
	if matter.Raw["title"] != "Atoms and Refs" {
		t.Fatalf("raw title missing: %#v", matter.Raw)
	}
}

func TestParseFrontMatterMissingBlockDegrades(t *testing.T) {
	source := []byte("# Just a heading\n\nNo metadata at all.\n")

	matter, body, present, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if present {
		t.Fatalf("expected no front matter")
	}
	if matter.Title != "" {
		t.Fatalf("expected empty title, got %q", matter.Title)
	}
	if string(body) != string(source) {
		t.Fatalf("body should be the entire content, got %q", body)
	}
}

func TestParseFrontMatterUnterminatedBlockFails(t *testing.T) {
	source := []byte("---\ntitle: never closed\n")

	_, _, _, err := ParseFrontMatter(source)
	if !errors.Is(err, ErrUnterminatedFrontMatter) {
		t.Fatalf("err = %v, want ErrUnterminatedFrontMatter", err)
	}
}

func TestParseFrontMatterThematicBreakIsNotADelimiter(t *testing.T) {
	source := []byte("----\n\nA heading rule, not front matter.\n")

	_, body, present, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if present || string(body) != string(source) {
		t.Fatalf("longer dash runs must stay body content: present=%v body=%q", present, body)
	}
}

func TestParseFrontMatterKeepsCustomKeys(t *testing.T) {
	source := []byte("---\ntitle: X\nquiz_id: q-17\n---\nbody")

	matter, _, _, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if matter.Custom["quiz_id"] != "q-17" {
		t.Fatalf("custom keys lost: %#v", matter.Custom)
	}
}

func TestBuildDocumentCarriesMetadata(t *testing.T) {
	modified := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	doc, err := BuildDocument("guides/setup.md", []byte("---\ntitle: Setup\n---\ncontent"), modified)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}
	if doc.Path != "guides/setup.md" {
		t.Fatalf("path = %q", doc.Path)
	}
	if !doc.LastModified.Equal(modified) {
		t.Fatalf("last modified = %v", doc.LastModified)
	}
	if !doc.HasFrontMatter {
		t.Fatalf("expected front matter flag")
	}
	if !strings.Contains(string(doc.Body), "content") {
		t.Fatalf("body = %q", doc.Body)
	}
}

package interfaces

import "time"

// Document represents a raw Markdown file after front-matter extraction but
// before model validation. The struct is shared between the interfaces
// package and internal implementations so consumers can depend on a stable
// contract.
type Document struct {
	// Path is the slash-separated path relative to the corpus root. It is the
	// document's identity within a build.
	Path        string
	FrontMatter FrontMatter
	// Body holds the Markdown content following the closing front-matter
	// delimiter, byte-for-byte as authored.
	Body         []byte
	LastModified time.Time
	// Checksum stores a digest of the original file content (SHA-256) so
	// callers can detect changes without re-reading unchanged files.
	Checksum []byte
	// HasFrontMatter reports whether the source file carried a front-matter
	// block. Files without one degrade to an empty FrontMatter rather than
	// failing the build.
	HasFrontMatter bool
}

// FrontMatter models metadata extracted from a document's leading YAML block.
// NavWeight and Tags stay loosely typed on purpose: source corpora declare
// them in inconsistent shapes (string vs integer, scalar vs list) and the
// document builder owns the coercion into canonical types, emitting
// diagnostics instead of dropping malformed values silently.
type FrontMatter struct {
	Title     string         `yaml:"title" json:"title"`
	Canonical string         `yaml:"canonical" json:"canonical"`
	NavWeight any            `yaml:"nav_weight" json:"nav_weight"`
	Parent    string         `yaml:"parent" json:"parent"`
	Tags      any            `yaml:"tags" json:"tags"`
	Date      string         `yaml:"date" json:"date"`
	License   string         `yaml:"license" json:"license"`
	Draft     bool           `yaml:"draft" json:"draft"`
	Custom    map[string]any `yaml:",inline" json:"custom"`
	Raw       map[string]any `yaml:"-" json:"raw"`
}

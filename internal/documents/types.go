package documents

import (
	"sync"
	"time"

	"github.com/goliatone/go-sitegraph/internal/markdown"
)

// Document is the validated, immutable model entity for one corpus file.
// Transformations downstream never mutate a Document; they derive new
// structures (URL resolutions, navigation entries) from it.
type Document struct {
	// Path is the slash-separated corpus path and the document's identity.
	Path         string
	Title        string
	CanonicalURL string
	NavWeight    int
	// Parent optionally re-homes the document in the navigation hierarchy.
	Parent       string
	Tags         []string
	Date         time.Time
	License      string
	Draft        bool
	Body         []byte
	Checksum     []byte
	LastModified time.Time
	// Accepted reports whether the document passed required-field validation
	// and participates in navigation assembly. Rejected documents are still
	// cross-reference checked.
	Accepted bool

	linksOnce sync.Once
	links     []string
}

// Links lazily extracts reference targets from the body. Extraction runs at
// most once per document; callers receive a copy so the cached slice stays
// private.
func (d *Document) Links() []string {
	d.linksOnce.Do(func() {
		d.links = markdown.ExtractLinks(d.Body)
	})
	if len(d.links) == 0 {
		return nil
	}
	out := make([]string, len(d.links))
	copy(out, d.links)
	return out
}

// HasTag reports whether the normalized tag set contains tag.
func (d *Document) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

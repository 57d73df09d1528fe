package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-sitegraph/pkg/interfaces"
)

// ErrUnterminatedFrontMatter signals a front-matter block that opens with a
// `---` delimiter line but never closes. The underlying parser treats such
// input as plain content, so the check has to happen here.
var ErrUnterminatedFrontMatter = errors.New("markdown: unterminated front matter block")

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured front matter, the body
// without delimiters, and whether a front-matter block was present.
//
// A file with no front matter at all is not an error: it yields an empty
// front matter and the entire content as body so a partially annotated
// corpus still builds. A block that opens with `---` but is malformed or
// never terminated does fail, and the caller is expected to surface that as
// a per-document fatal diagnostic.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, bool, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, false, fmt.Errorf("parse frontmatter: %w", err)
	}

	present := len(body) != len(source)
	if !present && opensFrontMatterBlock(source) {
		return interfaces.FrontMatter{}, nil, false, fmt.Errorf("parse frontmatter: %w", ErrUnterminatedFrontMatter)
	}
	return envelopeToFrontMatter(meta), body, present, nil
}

// opensFrontMatterBlock reports whether the first line of source is exactly a
// `---` delimiter. Longer dash runs are Markdown thematic breaks, not
// front-matter openers.
func opensFrontMatterBlock(source []byte) bool {
	line, _, _ := bytes.Cut(source, []byte("\n"))
	return string(bytes.TrimRight(line, " \t\r")) == "---"
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content, and modification time. Coercion of loosely typed fields is
// intentionally deferred to the document model builder.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	matter, body, present, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		Path:           path,
		FrontMatter:    matter,
		Body:           body,
		LastModified:   modified,
		HasFrontMatter: present,
	}, nil
}

type frontMatterEnvelope struct {
	Title     string         `yaml:"title"`
	Canonical string         `yaml:"canonical"`
	NavWeight any            `yaml:"nav_weight"`
	Parent    string         `yaml:"parent"`
	Tags      any            `yaml:"tags"`
	Date      string         `yaml:"date"`
	License   string         `yaml:"license"`
	Draft     bool           `yaml:"draft"`
	Custom    map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+8)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Canonical != "" {
		raw["canonical"] = env.Canonical
	}
	if env.NavWeight != nil {
		raw["nav_weight"] = env.NavWeight
	}
	if env.Parent != "" {
		raw["parent"] = env.Parent
	}
	if env.Tags != nil {
		raw["tags"] = env.Tags
	}
	if env.Date != "" {
		raw["date"] = env.Date
	}
	if env.License != "" {
		raw["license"] = env.License
	}
	raw["draft"] = env.Draft

	return interfaces.FrontMatter{
		Title:     env.Title,
		Canonical: env.Canonical,
		NavWeight: env.NavWeight,
		Parent:    env.Parent,
		Tags:      env.Tags,
		Date:      env.Date,
		License:   env.License,
		Draft:     env.Draft,
		Custom:    cloneMap(env.Custom),
		Raw:       raw,
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}

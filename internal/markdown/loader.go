package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/goliatone/go-sitegraph/pkg/interfaces"
)

// LoaderConfig configures how Markdown files are discovered within a corpus root.
type LoaderConfig struct {
	// Pattern limits discovered files to those matching the supplied glob
	// (defaults to "**/*.md"). Double-star segments are supported.
	Pattern string
	// Ignore lists glob expressions for paths that must be skipped even when
	// they match Pattern (editor droppings, build output checked into the tree).
	Ignore []string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader turns filesystem paths into raw parsed documents.
type Loader struct {
	fs        fs.FS
	pattern   string
	ignore    []string
	recursive bool
}

// NewLoader constructs a Loader over the provided filesystem. The filesystem
// root is the corpus root; all returned paths are slash-separated and
// relative to it.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "**/*.md"
	}

	return &Loader{
		fs:        filesystem,
		pattern:   pattern,
		ignore:    append([]string(nil), cfg.Ignore...),
		recursive: cfg.Recursive,
	}
}

// DocumentResult carries the parsed document along with the raw source.
type DocumentResult struct {
	Document *interfaces.Document
	Source   []byte
}

// LoadFile reads and parses a single Markdown document.
func (l *Loader) LoadFile(ctx context.Context, path string) (*DocumentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel := filepath.ToSlash(filepath.Clean(path))

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	doc, err := BuildDocument(rel, data, info.ModTime())
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]

	return &DocumentResult{
		Document: doc,
		Source:   data,
	}, nil
}

// Discover walks the corpus and returns the sorted list of document paths
// matching the loader's pattern. Callers fan the result out to LoadFile;
// separating discovery from reading keeps the parallel ingestion pool simple.
func (l *Loader) Discover(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var paths []string

	walkErr := fs.WalkDir(l.fs, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if path == "." {
				return nil
			}
			if !l.recursive {
				return fs.SkipDir
			}
			if l.ignored(filepath.ToSlash(path) + "/") {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(path)
		if !l.matches(rel) || l.ignored(rel) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(paths)
	return paths, nil
}

// LoadAll discovers and loads every matching document sequentially. It exists
// for callers that do not need the pipeline's bounded worker pool.
func (l *Loader) LoadAll(ctx context.Context) ([]*DocumentResult, error) {
	paths, err := l.Discover(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*DocumentResult, 0, len(paths))
	for _, path := range paths {
		result, err := l.LoadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (l *Loader) matches(path string) bool {
	pattern := l.pattern
	var target string
	if strings.Contains(pattern, "/") {
		target = path
	} else {
		target = filepath.Base(path)
	}
	match, err := doublestar.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}

func (l *Loader) ignored(path string) bool {
	for _, pattern := range l.ignore {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		if match, err := doublestar.Match(pattern, strings.TrimSuffix(path, "/")); err == nil && match {
			return true
		}
	}
	return false
}

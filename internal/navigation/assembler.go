package navigation

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
)

// ErrCycle reports a navigation hierarchy that loops back into itself.
// A pure filesystem tree cannot cycle; the check guards parent overrides.
var ErrCycle = errors.New("navigation: hierarchy cycle detected")

// Assemble builds the navigation tree from the accepted document entries.
// Children at every level are sorted ascending by (weight, path) so the
// output is byte-identical across runs over an unchanged corpus.
//
// Directory levels that hold no index document of their own still produce a
// virtual grouping node, preserving hierarchy shape for corpora that only
// annotate leaves.
func Assemble(entries []Entry) (*Node, error) {
	b := &treeBuilder{containers: map[string]*container{}}
	b.ensure("")

	for i := range entries {
		entry := entries[i]
		entry.Path = strings.Trim(path.Clean(strings.ReplaceAll(entry.Path, "\\", "/")), "/")
		dir := normalizeDir(path.Dir(entry.Path))

		if isIndexPath(entry.Path) {
			c := b.ensure(dir)
			c.index = &entry
			if override := normalizeDir(entry.Parent); entry.Parent != "" {
				c.parentOverride = &override
			}
			continue
		}

		home := dir
		if entry.Parent != "" {
			home = normalizeDir(entry.Parent)
		}
		c := b.ensure(home)
		c.leaves = append(c.leaves, entry)
	}

	// Override targets may name directories nothing lives in directly; they
	// still need containers before attachment.
	for _, key := range b.keys() {
		if c := b.containers[key]; c.parentOverride != nil {
			b.ensure(*c.parentOverride)
		}
	}

	if err := b.detectCycles(); err != nil {
		return nil, err
	}

	b.attach()
	return b.build(b.containers[""]), nil
}

type container struct {
	path           string
	index          *Entry
	parentOverride *string
	leaves         []Entry
	children       []*container
}

func (c *container) parent() (string, bool) {
	if c.path == "" {
		return "", false
	}
	if c.parentOverride != nil {
		return *c.parentOverride, true
	}
	return normalizeDir(path.Dir(c.path)), true
}

type treeBuilder struct {
	containers map[string]*container
}

// ensure registers the container for dir and every natural ancestor.
func (b *treeBuilder) ensure(dir string) *container {
	dir = normalizeDir(dir)
	if c, ok := b.containers[dir]; ok {
		return c
	}
	c := &container{path: dir}
	b.containers[dir] = c
	if dir != "" {
		b.ensure(normalizeDir(path.Dir(dir)))
	}
	return c
}

func (b *treeBuilder) keys() []string {
	keys := make([]string, 0, len(b.containers))
	for key := range b.containers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (b *treeBuilder) detectCycles() error {
	for start := range b.containers {
		seen := map[string]bool{}
		current := start
		for {
			if seen[current] {
				return fmt.Errorf("%w: at %q", ErrCycle, current)
			}
			seen[current] = true

			c, ok := b.containers[current]
			if !ok {
				break
			}
			parent, ok := c.parent()
			if !ok {
				break
			}
			current = parent
		}
	}
	return nil
}

func (b *treeBuilder) attach() {
	for _, key := range b.keys() {
		c := b.containers[key]
		parent, ok := c.parent()
		if !ok {
			continue
		}
		if p, ok := b.containers[parent]; ok {
			p.children = append(p.children, c)
		}
	}
}

func (b *treeBuilder) build(c *container) *Node {
	node := &Node{
		Path:    c.path,
		Title:   path.Base(c.path),
		Virtual: true,
	}
	if c.path == "" {
		node.Title = ""
	}
	if c.index != nil {
		node.Title = c.index.Title
		node.DocumentPath = c.index.Path
		node.URL = c.index.URL
		node.Weight = c.index.Weight
		node.Virtual = false
	}

	type childNode struct {
		node   *Node
		weight int
		path   string
	}

	children := make([]childNode, 0, len(c.children)+len(c.leaves))
	for _, sub := range c.children {
		n := b.build(sub)
		children = append(children, childNode{node: n, weight: n.Weight, path: sub.path})
	}
	for i := range c.leaves {
		leaf := c.leaves[i]
		n := &Node{
			Title:        leaf.Title,
			Path:         leaf.Path,
			DocumentPath: leaf.Path,
			URL:          leaf.URL,
			Weight:       leaf.Weight,
		}
		children = append(children, childNode{node: n, weight: leaf.Weight, path: leaf.Path})
	}

	sort.SliceStable(children, func(i, j int) bool {
		if children[i].weight != children[j].weight {
			return children[i].weight < children[j].weight
		}
		return children[i].path < children[j].path
	})

	for _, child := range children {
		node.Children = append(node.Children, child.node)
	}
	return node
}

func normalizeDir(dir string) string {
	dir = strings.Trim(path.Clean(strings.ReplaceAll(dir, "\\", "/")), "/")
	if dir == "." {
		return ""
	}
	return dir
}

func isIndexPath(p string) bool {
	base := path.Base(p)
	if dot := strings.LastIndex(base, "."); dot >= 0 {
		base = base[:dot]
	}
	return base == "index" || base == "_index"
}

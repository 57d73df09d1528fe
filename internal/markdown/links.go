package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// linkEngine is a shared, stateless goldmark instance used only for AST
// construction. GFM and Linkify stay enabled so autolinked and table-embedded
// references are discovered the same way a renderer would see them.
var linkEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
	),
)

// ExtractLinks walks the Markdown AST of source and returns every link and
// image destination in document order. Duplicates are preserved: the
// cross-reference validator reports each occurrence.
func ExtractLinks(source []byte) []string {
	if len(source) == 0 {
		return nil
	}

	root := linkEngine.Parser().Parse(text.NewReader(source))

	var targets []string
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Link:
			if dest := string(n.Destination); dest != "" {
				targets = append(targets, dest)
			}
		case *ast.Image:
			if dest := string(n.Destination); dest != "" {
				targets = append(targets, dest)
			}
		case *ast.AutoLink:
			if dest := string(n.URL(source)); dest != "" {
				targets = append(targets, dest)
			}
		}
		return ast.WalkContinue, nil
	})

	return targets
}

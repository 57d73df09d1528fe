package navigation

// Entry is the flat input row for tree assembly: one accepted document,
// reduced to the fields ordering and grouping need. The assembler never sees
// full documents, mirroring how menu trees are built from flat item rows.
type Entry struct {
	// Path is the document's slash-separated corpus path.
	Path string
	// Title is the display title used on the assembled node.
	Title string
	// URL is the document's canonical URL.
	URL string
	// Weight orders siblings ascending; ties break on Path.
	Weight int
	// Parent optionally re-homes the document under another directory path,
	// overriding the parent implied by Path.
	Parent string
}

// Node is one level of the assembled navigation tree. The tree is rebuilt
// from scratch on every run and owns its children exclusively; serialization
// round-trips through the exported fields.
type Node struct {
	Title string `json:"title" yaml:"title"`
	// Path is the directory path the node groups ("" for the root).
	// For leaf nodes it is the document path.
	Path string `json:"path" yaml:"path"`
	// DocumentPath names the document backing this node. Virtual grouping
	// nodes, which exist only to preserve hierarchy shape, leave it empty.
	DocumentPath string  `json:"document_path,omitempty" yaml:"document_path,omitempty"`
	URL          string  `json:"url,omitempty" yaml:"url,omitempty"`
	Weight       int     `json:"weight" yaml:"weight"`
	Virtual      bool    `json:"virtual,omitempty" yaml:"virtual,omitempty"`
	Children     []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

package urls

import (
	"fmt"
	"path"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-sitegraph/internal/documents"
)

// RouteResolverOptions configures the go-urlkit backed resolver. Hosts that
// publish the corpus behind templated routes (versioned docs, locale
// prefixes) point the resolver at their route manager instead of relying on
// the default path derivation.
type RouteResolverOptions struct {
	Manager *urlkit.RouteManager
	// Group names the route group documents resolve through.
	Group string
	// Route names the route template within the group.
	Route string
	// SlugParam is the template parameter receiving the document's slug path
	// (defaults to "slug").
	SlugParam string
}

// RouteResolver resolves document URLs through a go-urlkit RouteManager.
type RouteResolver struct {
	manager   *urlkit.RouteManager
	group     string
	route     string
	slugParam string

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

// NewRouteResolver constructs a resolver backed by go-urlkit.
func NewRouteResolver(opts RouteResolverOptions) *RouteResolver {
	if opts.SlugParam == "" {
		opts.SlugParam = "slug"
	}
	return &RouteResolver{
		manager:    opts.Manager,
		group:      strings.TrimSpace(opts.Group),
		route:      strings.TrimSpace(opts.Route),
		slugParam:  opts.SlugParam,
		groupCache: make(map[string]*urlkit.Group),
	}
}

var _ URLResolver = (*RouteResolver)(nil)

// Resolve builds the document URL from the configured route template.
func (r *RouteResolver) Resolve(doc *documents.Document) (string, error) {
	if r == nil || r.manager == nil || doc == nil {
		return "", nil
	}
	if r.group == "" || r.route == "" {
		return "", nil
	}

	group, err := r.groupForPath(r.group)
	if err != nil || group == nil {
		return "", err
	}

	builder, err := r.safeBuilder(group, r.route)
	if err != nil {
		return "", err
	}

	builder.WithParam(r.slugParam, slugPath(doc.Path))

	url, err := builder.Build()
	if err != nil {
		return "", err
	}
	return restoreSlugSeparators(url), nil
}

// restoreSlugSeparators undoes the percent-encoding the route builder applies
// to the slug parameter's `/` separators. Nested documents carry multi-segment
// slugs ("guides/setup") and must resolve to nested URLs, not a single
// escaped segment.
func restoreSlugSeparators(url string) string {
	for _, encoded := range []string{"%252F", "%252f", "%2F", "%2f"} {
		url = strings.ReplaceAll(url, encoded, "/")
	}
	return url
}

// slugPath reduces a corpus path to its slug form: extension stripped, index
// basenames folded into the directory.
func slugPath(docPath string) string {
	p := strings.Trim(path.Clean(strings.ReplaceAll(docPath, "\\", "/")), "/")
	p = strings.TrimSuffix(p, path.Ext(p))

	segments := []string{}
	for _, segment := range strings.Split(p, "/") {
		if segment == "" {
			continue
		}
		segments = append(segments, slugify(segment))
	}
	if n := len(segments); n > 0 && (segments[n-1] == "index" || segments[n-1] == "_index") {
		segments = segments[:n-1]
	}
	return strings.Join(segments, "/")
}

func (r *RouteResolver) groupForPath(groupPath string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[groupPath]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(groupPath, ".")
	if len(parts) == 0 {
		return nil, fmt.Errorf("urls: invalid route group path %q", groupPath)
	}

	current, err := lookupGroup(r.manager, parts[0])
	if err != nil {
		return nil, err
	}
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.groupCache[groupPath] = current
	r.mu.Unlock()
	return current, nil
}

func (r *RouteResolver) safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("urls: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("urls: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("urls: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("urls: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	if parent == nil {
		return nil, fmt.Errorf("urls: parent group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("urls: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	return group, err
}

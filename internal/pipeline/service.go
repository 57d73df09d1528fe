// Package pipeline orchestrates a corpus build: parallel ingestion, model
// validation, URL resolution, navigation assembly, cross-reference checking,
// and report assembly.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-sitegraph/internal/diagnostics"
	"github.com/goliatone/go-sitegraph/internal/documents"
	"github.com/goliatone/go-sitegraph/internal/logging"
	"github.com/goliatone/go-sitegraph/internal/markdown"
	"github.com/goliatone/go-sitegraph/internal/navigation"
	"github.com/goliatone/go-sitegraph/internal/urls"
	"github.com/goliatone/go-sitegraph/internal/xref"
	"github.com/goliatone/go-sitegraph/pkg/interfaces"
)

// ServiceOption configures a pipeline Service.
type ServiceOption func(*Service)

// WithLogger injects the logger used during orchestration.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWorkerCount bounds the ingestion worker pool. Values below one fall
// back to the available parallelism.
func WithWorkerCount(workers int) ServiceOption {
	return func(s *Service) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

// WithStrictMode lowers the build-failure threshold so error-grade
// diagnostics (including escalated warnings) gate the build.
func WithStrictMode(strict bool) ServiceOption {
	return func(s *Service) {
		s.strict = strict
	}
}

// Service wires the pipeline stages together. Per-document work scatters
// across a bounded pool with no ordering guarantees; every ordered decision
// happens in the sequential gather phase.
type Service struct {
	loader    *markdown.Loader
	builder   *documents.Builder
	resolver  *urls.Resolver
	validator *xref.Validator
	reporter  *diagnostics.Reporter
	logger    interfaces.Logger
	workers   int
	strict    bool
}

// NewService constructs the pipeline from its stage implementations.
func NewService(loader *markdown.Loader, builder *documents.Builder, resolver *urls.Resolver, validator *xref.Validator, reporter *diagnostics.Reporter, opts ...ServiceOption) *Service {
	s := &Service{
		loader:    loader,
		builder:   builder,
		resolver:  resolver,
		validator: validator,
		reporter:  reporter,
		logger:    logging.NoOp(),
		workers:   runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build runs the full pipeline over the loader's corpus. The returned error
// covers infrastructure failures only (context cancellation, unreadable
// corpus root); content problems, including build-halting fatal ones, are
// expressed through the report's diagnostics and exit status.
func (s *Service) Build(ctx context.Context) (*diagnostics.Report, error) {
	if s.loader == nil {
		return nil, errors.New("pipeline: loader is nil")
	}

	collector := diagnostics.NewCollector()

	paths, err := s.loader.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("pipeline: discover corpus: %w", err)
	}
	s.logger.Info("pipeline.discovered", "files", len(paths))

	raw, err := s.ingest(ctx, paths, collector)
	if err != nil {
		if errors.Is(err, documents.ErrDuplicatePath) {
			// Corpus identity is violated; downstream results cannot be
			// trusted, so report what was collected and stop.
			return s.reporter.Build(0, nil, collector, s.strict), nil
		}
		return nil, err
	}

	return s.assemble(ctx, raw, collector)
}

// BuildDocuments runs the gather phase over pre-parsed documents. It exists
// so hosts (and tests) can feed synthetic corpora through the exact pipeline
// semantics without a filesystem.
func (s *Service) BuildDocuments(ctx context.Context, raw []*interfaces.Document, collector *diagnostics.Collector) (*diagnostics.Report, error) {
	if collector == nil {
		collector = diagnostics.NewCollector()
	}
	return s.assemble(ctx, raw, collector)
}

// ingest scatters file loading across the worker pool. Documents with
// malformed front matter become per-document fatal diagnostics and are
// excluded from every downstream stage; a duplicate path cancels outstanding
// work via the group context.
func (s *Service) ingest(ctx context.Context, paths []string, collector *diagnostics.Collector) ([]*interfaces.Document, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	var (
		mu   sync.Mutex
		raw  []*interfaces.Document
		seen = make(map[string]struct{}, len(paths))
	)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			result, err := s.loader.LoadFile(gctx, path)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				collector.Fatal(path, diagnostics.CodeParseError, err.Error())
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			if _, dup := seen[result.Document.Path]; dup {
				collector.Fatal(result.Document.Path, diagnostics.CodeDuplicatePath,
					fmt.Sprintf("path %q appears more than once in the corpus", result.Document.Path))
				return fmt.Errorf("%w: %s", documents.ErrDuplicatePath, result.Document.Path)
			}
			seen[result.Document.Path] = struct{}{}
			raw = append(raw, result.Document)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(raw, func(i, j int) bool {
		return raw[i].Path < raw[j].Path
	})
	return raw, nil
}

// assemble is the ordered reduce over the unordered ingestion results.
func (s *Service) assemble(ctx context.Context, raw []*interfaces.Document, collector *diagnostics.Collector) (*diagnostics.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs, err := s.builder.Build(raw, collector)
	if err != nil {
		if errors.Is(err, documents.ErrDuplicatePath) {
			return s.reporter.Build(0, nil, collector, s.strict), nil
		}
		return nil, err
	}

	index := s.resolver.ResolveAll(docs, collector)

	byPath := make(map[string]string, len(docs))
	for _, doc := range docs {
		byPath[doc.Path] = s.resolver.EffectiveURL(doc)
	}

	tree := s.assembleNavigation(docs, byPath, collector)

	s.validator.Validate(docs, xref.Corpus{Known: index, ByPath: byPath}, collector)

	report := s.reporter.Build(len(docs), tree, collector, s.strict)
	s.logger.Info("pipeline.complete",
		"documents", len(docs),
		"diagnostics", collector.Len(),
		"exit_status", report.ExitStatus,
	)
	return report, nil
}

func (s *Service) assembleNavigation(docs []*documents.Document, byPath map[string]string, collector *diagnostics.Collector) *navigation.Node {
	entries := make([]navigation.Entry, 0, len(docs))
	for _, doc := range docs {
		if !doc.Accepted {
			continue
		}
		entries = append(entries, navigation.Entry{
			Path:   doc.Path,
			Title:  doc.Title,
			URL:    byPath[doc.Path],
			Weight: doc.NavWeight,
			Parent: doc.Parent,
		})
	}

	tree, err := navigation.Assemble(entries)
	if err != nil {
		// Navigation assembly halts; the rest of the pipeline still runs so
		// the report covers as much of the corpus as possible.
		collector.Fatal("", diagnostics.CodeCycle, err.Error())
		return nil
	}
	return tree
}

// Package sitegraph builds a queryable content graph from a Markdown corpus:
// front-matter extraction, document validation, canonical URL resolution,
// navigation tree assembly, cross-reference checking, and a single
// structured diagnostics report.
package sitegraph

import (
	"context"
	"io"
	"io/fs"
	"os"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-sitegraph/internal/diagnostics"
	"github.com/goliatone/go-sitegraph/internal/documents"
	"github.com/goliatone/go-sitegraph/internal/logging"
	"github.com/goliatone/go-sitegraph/internal/logging/gologger"
	"github.com/goliatone/go-sitegraph/internal/markdown"
	"github.com/goliatone/go-sitegraph/internal/navigation"
	"github.com/goliatone/go-sitegraph/internal/pipeline"
	"github.com/goliatone/go-sitegraph/internal/urls"
	"github.com/goliatone/go-sitegraph/internal/xref"
	"github.com/goliatone/go-sitegraph/pkg/interfaces"
)

// Document exports the validated document entity.
type Document = documents.Document

// RawDocument exports the pre-validation parse result.
type RawDocument = interfaces.Document

// FrontMatter exports the parsed front-matter contract.
type FrontMatter = interfaces.FrontMatter

// Diagnostic exports the validation finding record.
type Diagnostic = diagnostics.Diagnostic

// Severity exports the diagnostic severity enum.
type Severity = diagnostics.Severity

// Code exports the diagnostic kind enum.
type Code = diagnostics.Code

// Report exports the terminal build report.
type Report = diagnostics.Report

// NavigationNode exports one level of the assembled navigation tree.
type NavigationNode = navigation.Node

// ExitStatus exports the build outcome enum.
type ExitStatus = diagnostics.ExitStatus

// URLResolver exports the URL derivation override contract.
type URLResolver = urls.URLResolver

// Logger exports the logging contract accepted across the module.
type Logger = interfaces.Logger

// LoggerProvider exports the named-logger provider contract.
type LoggerProvider = interfaces.LoggerProvider

const (
	SeverityWarning = diagnostics.SeverityWarning
	SeverityError   = diagnostics.SeverityError
	SeverityFatal   = diagnostics.SeverityFatal

	StatusSuccess = diagnostics.StatusSuccess
	StatusFailure = diagnostics.StatusFailure
)

// Option configures a Module instance.
type Option func(*Module)

// WithFS overrides the corpus filesystem; ContentDir is ignored when set.
// Primarily used to build from in-memory or embedded corpora.
func WithFS(fsys fs.FS) Option {
	return func(m *Module) {
		if fsys != nil {
			m.fs = fsys
		}
	}
}

// WithLoggerProvider overrides the logging provider assembled from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		if provider != nil {
			m.provider = provider
		}
	}
}

// WithURLResolver overrides canonical URL derivation.
func WithURLResolver(resolver urls.URLResolver) Option {
	return func(m *Module) {
		if resolver != nil {
			m.urlResolver = resolver
		}
	}
}

// Module is the assembled content graph builder.
type Module struct {
	cfg         Config
	fs          fs.FS
	provider    interfaces.LoggerProvider
	urlResolver urls.URLResolver
	service     *pipeline.Service
	reporter    *diagnostics.Reporter
}

// New wires the pipeline from configuration. The corpus is not touched until
// Build runs.
func New(cfg Config, opts ...Option) (*Module, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.fs == nil {
		if cfg.ContentDir == "" {
			return nil, ErrContentDirRequired
		}
		m.fs = os.DirFS(cfg.ContentDir)
	}

	if m.provider == nil {
		provider, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}

	if m.urlResolver == nil && cfg.Navigation.RouteConfig != nil {
		manager := urlkit.NewRouteManager(cfg.Navigation.RouteConfig)
		m.urlResolver = urls.NewRouteResolver(urls.RouteResolverOptions{
			Manager:   manager,
			Group:     cfg.Navigation.URLKit.Group,
			Route:     cfg.Navigation.URLKit.Route,
			SlugParam: cfg.Navigation.URLKit.SlugParam,
		})
	}

	loader := markdown.NewLoader(m.fs, markdown.LoaderConfig{
		Pattern:   cfg.Pattern,
		Ignore:    cfg.Ignore,
		Recursive: true,
	})

	builder := documents.NewBuilder(
		documents.WithLogger(logging.DocumentsLogger(m.provider)),
	)

	resolverOpts := []urls.ResolverOption{
		urls.WithLogger(logging.URLsLogger(m.provider)),
	}
	if m.urlResolver != nil {
		resolverOpts = append(resolverOpts, urls.WithURLResolver(m.urlResolver))
	}
	resolver := urls.NewResolver(urls.Config{BaseURL: cfg.BaseURL}, resolverOpts...)

	validator := xref.NewValidator(
		xref.WithLogger(logging.XRefLogger(m.provider)),
		xref.WithDeriver(resolver.Derive),
	)

	m.reporter = diagnostics.NewReporter(
		diagnostics.WithLogger(logging.ModuleLogger(m.provider, "sitegraph.diagnostics")),
	)

	m.service = pipeline.NewService(loader, builder, resolver, validator, m.reporter,
		pipeline.WithLogger(logging.PipelineLogger(m.provider)),
		pipeline.WithWorkerCount(cfg.WorkerCount),
		pipeline.WithStrictMode(cfg.StrictMode),
	)

	return m, nil
}

// Build runs the full pipeline and returns the report.
func (m *Module) Build(ctx context.Context) (*Report, error) {
	return m.service.Build(ctx)
}

// BuildDocuments runs the gather phase over pre-parsed documents, bypassing
// filesystem ingestion.
func (m *Module) BuildDocuments(ctx context.Context, raw []*RawDocument) (*Report, error) {
	return m.service.BuildDocuments(ctx, raw, nil)
}

// WriteReport serializes a report using the configured format.
func (m *Module) WriteReport(w io.Writer, report *Report) error {
	return m.reporter.Write(w, report, m.cfg.Report.Format)
}

// Config returns the normalized configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// Pipeline exposes the underlying pipeline service for command wiring.
func (m *Module) Pipeline() *pipeline.Service {
	return m.service
}

// Reporter exposes the report assembler for command wiring.
func (m *Module) Reporter() *diagnostics.Reporter {
	return m.reporter
}

func buildLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch cfg.Provider {
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	default:
		return nil, nil
	}
}

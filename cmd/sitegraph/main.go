package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	sitegraph "github.com/goliatone/go-sitegraph"
	corpuscmd "github.com/goliatone/go-sitegraph/internal/commands/corpus"
	"github.com/goliatone/go-sitegraph/internal/diagnostics"
	"github.com/goliatone/go-sitegraph/internal/logging"
	"github.com/goliatone/go-sitegraph/internal/logging/gologger"
	"github.com/goliatone/go-sitegraph/internal/pipeline"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, corpuscmd.ErrBuildFailed) {
			os.Exit(1)
		}
		log.Fatalf("sitegraph: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("sitegraph", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the corpus root")
	baseURL := fs.String("base-url", "", "Prefix applied during URL derivation")
	pattern := fs.String("pattern", "**/*.md", "Glob pattern applied when discovering documents")
	ignore := fs.String("ignore", "", "Comma separated glob patterns to exclude")
	strict := fs.Bool("strict", false, "Escalate warnings for build gating")
	workers := fs.Int("workers", 0, "Ingestion worker bound (0 = available parallelism)")
	reportPath := fs.String("report", "", "Report output file (defaults to stdout)")
	reportFormat := fs.String("format", "json", "Report serialization: json or yaml")
	logProvider := fs.String("log-provider", "", "Logging provider: gologger or noop")
	logLevel := fs.String("log-level", "info", "Logging level")
	logFormat := fs.String("log-format", "console", "Logging format: json, console, or pretty")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := sitegraph.Config{
		BaseURL:     *baseURL,
		Pattern:     *pattern,
		Ignore:      splitPatterns(*ignore),
		StrictMode:  *strict,
		WorkerCount: *workers,
		Report: sitegraph.ReportConfig{
			Path:   *reportPath,
			Format: *reportFormat,
		},
		Logging: sitegraph.LoggingConfig{
			Provider: *logProvider,
			Level:    *logLevel,
			Format:   *logFormat,
		},
	}

	var provider sitegraph.LoggerProvider
	if *logProvider == "gologger" {
		built, err := gologger.NewProvider(gologger.Config{
			Level:  *logLevel,
			Format: *logFormat,
		})
		if err != nil {
			return err
		}
		provider = built
	}

	factory := func(directory string) (*pipeline.Service, *diagnostics.Reporter, error) {
		moduleCfg := cfg
		moduleCfg.ContentDir = directory
		opts := []sitegraph.Option{}
		if provider != nil {
			opts = append(opts, sitegraph.WithLoggerProvider(provider))
		}
		module, err := sitegraph.New(moduleCfg, opts...)
		if err != nil {
			return nil, nil, err
		}
		return module.Pipeline(), module.Reporter(), nil
	}

	handler := corpuscmd.NewBuildHandler(factory, logging.PipelineLogger(provider))

	cmd := corpuscmd.BuildCorpusCommand{
		Directory:    *contentDir,
		ReportPath:   *reportPath,
		ReportFormat: *reportFormat,
	}

	if err := handler.Execute(context.Background(), cmd); err != nil {
		if errors.Is(err, corpuscmd.ErrBuildFailed) {
			fmt.Fprintln(os.Stderr, "sitegraph: build completed with failures, see report")
			return corpuscmd.ErrBuildFailed
		}
		return err
	}
	return nil
}

func splitPatterns(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-sitegraph/pkg/interfaces"
)

const (
	rootModule       = "sitegraph"
	markdownModule   = "sitegraph.markdown"
	documentsModule  = "sitegraph.documents"
	urlsModule       = "sitegraph.urls"
	navigationModule = "sitegraph.navigation"
	xrefModule       = "sitegraph.xref"
	pipelineModule   = "sitegraph.pipeline"
)

const (
	fieldDocumentPath = "document_path"
	fieldStage        = "stage"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// MarkdownLogger returns the logger namespace reserved for front-matter
// parsing and corpus loading.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// DocumentsLogger returns the logger namespace reserved for the document
// model builder.
func DocumentsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, documentsModule)
}

// URLsLogger returns the logger namespace reserved for canonical URL
// resolution.
func URLsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, urlsModule)
}

// NavigationLogger returns the logger namespace reserved for navigation
// assembly.
func NavigationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, navigationModule)
}

// XRefLogger returns the logger namespace reserved for cross-reference
// validation.
func XRefLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, xrefModule)
}

// PipelineLogger returns the logger namespace reserved for build
// orchestration.
func PipelineLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pipelineModule)
}

// WithDocumentContext enriches the provided logger with the document path and
// pipeline stage. Empty values are ignored.
func WithDocumentContext(logger interfaces.Logger, path, stage string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldDocumentPath] = trimmed
	}
	if trimmed := strings.TrimSpace(stage); trimmed != "" {
		fields[fieldStage] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}

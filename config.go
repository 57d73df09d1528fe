package sitegraph

import (
	"errors"
	"runtime"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrContentDirRequired indicates no corpus root was supplied.
var ErrContentDirRequired = errors.New("sitegraph config: content directory is required")

// ErrWorkerCountInvalid indicates a negative ingestion pool bound.
var ErrWorkerCountInvalid = errors.New("sitegraph config: worker count must be zero or positive")

var ErrLoggingProviderUnknown = errors.New("sitegraph config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("sitegraph config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("sitegraph config: logging format is invalid")
var ErrReportFormatInvalid = errors.New("sitegraph config: report format is invalid")
var ErrRouteResolverIncomplete = errors.New("sitegraph config: route resolver requires both group and route")

// Config aggregates build options for the content graph builder. Fields
// intentionally use simple types so host applications can unmarshal them from
// whatever configuration source they carry.
type Config struct {
	// ContentDir is the corpus root directory.
	ContentDir string
	// BaseURL prefixes every derived URL ("" for root-hosted corpora).
	BaseURL string
	// Pattern limits discovery to matching files (defaults to "**/*.md").
	Pattern string
	// Ignore lists glob expressions excluded from discovery.
	Ignore []string
	// StrictMode escalates warnings for build gating (CI).
	StrictMode bool
	// WorkerCount bounds the ingestion pool; zero means available parallelism.
	WorkerCount int
	Navigation  NavigationConfig
	Report      ReportConfig
	Logging     LoggingConfig
}

// NavigationConfig captures routing configuration for URL resolution.
type NavigationConfig struct {
	// RouteConfig, when set, enables the go-urlkit route-template resolver.
	RouteConfig *urlkit.Config
	URLKit      URLKitResolverConfig
}

// URLKitResolverConfig configures the go-urlkit based resolver.
type URLKitResolverConfig struct {
	Group     string
	Route     string
	SlugParam string
}

// ReportConfig controls where and how the diagnostics report is written.
type ReportConfig struct {
	// Path is the report output file ("" for stdout).
	Path string
	// Format selects the serialization: "json" (default) or "yaml".
	Format string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// WithDefaults returns a copy of the configuration with unset fields filled.
func (c Config) WithDefaults() Config {
	if strings.TrimSpace(c.Pattern) == "" {
		c.Pattern = "**/*.md"
	}
	if c.WorkerCount == 0 {
		c.WorkerCount = runtime.NumCPU()
	}
	if strings.TrimSpace(c.Report.Format) == "" {
		c.Report.Format = "json"
	}
	return c
}

// Validate checks configuration consistency. It does not touch the
// filesystem; a missing corpus directory surfaces at build time.
func (c Config) Validate() error {
	if c.WorkerCount < 0 {
		return ErrWorkerCountInvalid
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Provider)) {
	case "", "noop", "gologger":
	default:
		return ErrLoggingProviderUnknown
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "json", "console", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}

	switch strings.ToLower(strings.TrimSpace(c.Report.Format)) {
	case "", "json", "yaml", "yml":
	default:
		return ErrReportFormatInvalid
	}

	if c.Navigation.RouteConfig != nil {
		group := strings.TrimSpace(c.Navigation.URLKit.Group)
		route := strings.TrimSpace(c.Navigation.URLKit.Route)
		if group == "" || route == "" {
			return ErrRouteResolverIncomplete
		}
	}

	return nil
}

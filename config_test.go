package sitegraph

import (
	"errors"
	"testing"

	urlkit "github.com/goliatone/go-urlkit"
)

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()

	if cfg.Pattern != "**/*.md" {
		t.Fatalf("pattern = %q", cfg.Pattern)
	}
	if cfg.WorkerCount < 1 {
		t.Fatalf("worker count = %d", cfg.WorkerCount)
	}
	if cfg.Report.Format != "json" {
		t.Fatalf("report format = %q", cfg.Report.Format)
	}
}

func TestConfigDefaultsPreserveExplicitValues(t *testing.T) {
	cfg := Config{Pattern: "docs/**/*.md", WorkerCount: 3, Report: ReportConfig{Format: "yaml"}}.WithDefaults()

	if cfg.Pattern != "docs/**/*.md" || cfg.WorkerCount != 3 || cfg.Report.Format != "yaml" {
		t.Fatalf("defaults overwrote explicit values: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{name: "valid", cfg: Config{ContentDir: "content"}.WithDefaults()},
		{name: "negative workers", cfg: Config{WorkerCount: -1}, want: ErrWorkerCountInvalid},
		{name: "unknown provider", cfg: Config{Logging: LoggingConfig{Provider: "syslog"}}, want: ErrLoggingProviderUnknown},
		{name: "bad level", cfg: Config{Logging: LoggingConfig{Level: "verbose"}}, want: ErrLoggingLevelInvalid},
		{name: "bad log format", cfg: Config{Logging: LoggingConfig{Format: "xml"}}, want: ErrLoggingFormatInvalid},
		{name: "bad report format", cfg: Config{Report: ReportConfig{Format: "toml"}}, want: ErrReportFormatInvalid},
		{
			name: "route resolver missing route",
			cfg:  Config{Navigation: NavigationConfig{RouteConfig: &urlkit.Config{}, URLKit: URLKitResolverConfig{Group: "site"}}},
			want: ErrRouteResolverIncomplete,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

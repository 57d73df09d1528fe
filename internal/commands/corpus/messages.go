package corpuscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const buildCorpusMessageType = "sitegraph.corpus.build"

// BuildCorpusCommand triggers a full content-graph build over the corpus
// rooted at Directory. Report output options map directly onto the
// diagnostics reporter.
type BuildCorpusCommand struct {
	// Directory selects the corpus root to build from.
	Directory string `json:"directory"`
	// ReportPath names the file the report is written to ("" for stdout).
	ReportPath string `json:"report_path,omitempty"`
	// ReportFormat selects the report serialization ("json" or "yaml").
	ReportFormat string `json:"report_format,omitempty"`
}

// Type implements command.Message.
func (BuildCorpusCommand) Type() string { return buildCorpusMessageType }

// Validate ensures corpus input is present before handlers execute.
func (cmd BuildCorpusCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("sitegraph.corpus.build.directory_required", "directory is required")
			}
			return nil
		})),
		validation.Field(&cmd.ReportFormat, validation.In("", "json", "yaml", "yml")),
	)
}

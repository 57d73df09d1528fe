package corpuscmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-sitegraph/internal/commands"
	"github.com/goliatone/go-sitegraph/internal/diagnostics"
	"github.com/goliatone/go-sitegraph/internal/pipeline"
	"github.com/goliatone/go-sitegraph/pkg/interfaces"
)

// ErrBuildFailed signals that the build completed but the report carries a
// failing exit status. Callers translate it into a non-zero process exit.
var ErrBuildFailed = errors.New("corpus: build failed")

// PipelineFactory builds a pipeline service rooted at the given corpus
// directory. The host owns configuration; the command only carries the
// invocation parameters.
type PipelineFactory func(directory string) (*pipeline.Service, *diagnostics.Reporter, error)

// NewBuildHandler wires the build command into the shared handler envelope.
func NewBuildHandler(factory PipelineFactory, logger interfaces.Logger, opts ...commands.HandlerOption[BuildCorpusCommand]) *commands.Handler[BuildCorpusCommand] {
	fn := func(ctx context.Context, cmd BuildCorpusCommand) error {
		svc, reporter, err := factory(cmd.Directory)
		if err != nil {
			return fmt.Errorf("corpus: build pipeline: %w", err)
		}

		report, err := svc.Build(ctx)
		if err != nil {
			return fmt.Errorf("corpus: build: %w", err)
		}

		out, closeOut, err := openReportOutput(cmd.ReportPath)
		if err != nil {
			return err
		}
		defer closeOut()

		if err := reporter.Write(out, report, cmd.ReportFormat); err != nil {
			return err
		}

		if report.Failed() {
			return ErrBuildFailed
		}
		return nil
	}

	options := append([]commands.HandlerOption[BuildCorpusCommand]{
		commands.WithLogger[BuildCorpusCommand](logger),
		commands.WithOperation[BuildCorpusCommand]("corpus.build"),
	}, opts...)

	return commands.NewHandler(fn, options...)
}

func openReportOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("corpus: open report output: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}

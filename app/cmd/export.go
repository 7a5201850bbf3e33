package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/umputun/joblog/app/export"
)

// ExportCommand writes all jobs with timelines as YAML or JSON
type ExportCommand struct {
	Format string `short:"f" long:"format" default:"yaml" choice:"yaml" choice:"json" description:"export format"`
	Output string `short:"o" long:"output" description:"output file, stdout if not set"`
	Status string `short:"s" long:"status" description:"filter by status"`

	CommonOpts
}

// Execute is the entry point for export command, called by flag parser
func (e *ExportCommand) Execute(_ []string) (err error) {
	format, err := export.ParseFormat(e.Format)
	if err != nil {
		return errors.Wrap(err, "bad format")
	}
	status, err := statusFilter(e.Status)
	if err != nil {
		return err
	}

	doc, err := export.Build(e.ctx(), e.Store, status)
	if err != nil {
		return errors.Wrap(err, "can't build export")
	}

	var out io.Writer = e.Out
	if e.Output != "" {
		fh, ferr := os.Create(e.Output)
		if ferr != nil {
			return errors.Wrapf(ferr, "can't create %s", e.Output)
		}
		defer func() {
			if cerr := fh.Close(); cerr != nil && err == nil {
				err = errors.Wrapf(cerr, "can't close %s", e.Output)
			}
		}()
		out = fh
	}

	if err = export.Write(out, doc, format); err != nil {
		return errors.Wrap(err, "can't write export")
	}
	if e.Output != "" {
		e.Renderer.Notice("Exported %d jobs to %s", len(doc.Jobs), e.Output)
	}
	return nil
}

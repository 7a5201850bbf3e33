package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
)

// DeleteCommand removes a job with all its events
type DeleteCommand struct {
	Force bool   `short:"f" long:"force" description:"skip confirmation"`
	Args  JobArg `positional-args:"yes" required:"yes"`

	CommonOpts
}

// Execute is the entry point for delete command, called by flag parser
func (d *DeleteCommand) Execute(_ []string) error {
	job, err := d.job(d.Args.ID)
	if err != nil {
		return err
	}

	if !d.Force {
		ok, err := d.confirm(fmt.Sprintf("Delete '%s' at %s?", job.Title, job.Company))
		if err != nil {
			return err
		}
		if !ok {
			d.Renderer.Warn("Cancelled")
			return nil
		}
	}

	deleted, err := d.Store.DeleteJob(d.ctx(), job.ID)
	if err != nil {
		return errors.Wrapf(err, "can't delete job #%d", job.ID)
	}
	if !deleted {
		return errors.Errorf("Job #%d not found", job.ID)
	}
	d.Renderer.JobPanel("Job Deleted", text.Colors{text.FgRed}, fmt.Sprintf("Deleted job #%d", job.ID), job)
	return nil
}

// confirm asks y/N question, anything but y or yes is a no
func (d *DeleteCommand) confirm(question string) (bool, error) {
	fmt.Fprintf(d.Out, "%s [y/N]: ", question)
	if d.In == nil {
		return false, nil
	}
	answer, err := bufio.NewReader(d.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, errors.Wrap(err, "can't read confirmation")
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

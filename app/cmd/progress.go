package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"

	"github.com/umputun/joblog/app/render"
	"github.com/umputun/joblog/app/store"
)

// ResponseCommand records a response from a company
type ResponseCommand struct {
	Interested bool   `short:"i" long:"interested" description:"they expressed interest (default)"`
	Rejected   bool   `short:"r" long:"rejected" description:"they rejected the application"`
	Notes      string `short:"n" long:"notes" description:"response details"`
	Args       JobArg `positional-args:"yes" required:"yes"`

	CommonOpts
}

// Execute is the entry point for response command, called by flag parser
func (r *ResponseCommand) Execute(_ []string) error {
	if r.Interested && r.Rejected {
		return errors.New("--interested and --rejected are mutually exclusive")
	}
	job, err := r.job(r.Args.ID)
	if err != nil {
		return err
	}

	interested := !r.Rejected
	if err = r.Store.AddResponse(r.ctx(), job.ID, interested, r.Notes); err != nil {
		return errors.Wrapf(err, "can't record response for job #%d", job.ID)
	}

	title := r.Renderer.Highlight(job.Title, text.Colors{text.Bold})
	if interested {
		blue := text.Colors{text.FgBlue}
		r.Renderer.Panel("Response Recorded", blue,
			r.Renderer.Highlight(fmt.Sprintf("Interest from %s!", job.Company), text.Colors{text.Bold, text.FgBlue}),
			"", title, "Status updated to "+r.Renderer.Status(store.StatusInterviewing))
		return nil
	}
	r.Renderer.Panel("Response Recorded", text.Colors{text.FgRed},
		r.Renderer.Highlight(fmt.Sprintf("Rejection from %s", job.Company), text.Colors{text.Bold, text.FgRed}),
		"", title)
	return nil
}

// InterviewCommand records an interview
type InterviewCommand struct {
	Notes string `short:"n" long:"notes" description:"interview notes"`
	Args  JobArg `positional-args:"yes" required:"yes"`

	CommonOpts
}

// Execute is the entry point for interview command, called by flag parser
func (i *InterviewCommand) Execute(_ []string) error {
	job, err := i.job(i.Args.ID)
	if err != nil {
		return err
	}
	if err = i.Store.AddInterview(i.ctx(), job.ID, i.Notes); err != nil {
		return errors.Wrapf(err, "can't record interview for job #%d", job.ID)
	}
	i.Renderer.JobPanel("Interview Added", text.Colors{text.FgBlue},
		i.Renderer.Highlight(fmt.Sprintf("Interview recorded for job #%d", job.ID), text.Colors{text.Bold, text.FgBlue}), job)
	return nil
}

// StatusCommand sets job status
type StatusCommand struct {
	Notes string `short:"n" long:"notes" description:"status change notes"`
	Args  struct {
		ID     int64  `positional-arg-name:"ID" description:"job id" required:"yes"`
		Status string `positional-arg-name:"STATUS" description:"interested, applied, interviewing, offered, rejected, withdrawn or ghosted" required:"yes"`
	} `positional-args:"yes" required:"yes"`

	CommonOpts
}

// Execute is the entry point for status command, called by flag parser
func (s *StatusCommand) Execute(_ []string) error {
	status, err := store.ParseStatus(s.Args.Status)
	if err != nil {
		return errors.Wrap(err, "bad status")
	}
	job, err := s.job(s.Args.ID)
	if err != nil {
		return err
	}
	if err = s.Store.UpdateStatus(s.ctx(), job.ID, status, s.Notes); err != nil {
		return errors.Wrapf(err, "can't update status of job #%d", job.ID)
	}
	s.Renderer.JobPanel("Status Updated", render.StatusColors(status),
		fmt.Sprintf("Status updated for job #%d", job.ID), job, "New status: "+s.Renderer.Status(status))
	return nil
}

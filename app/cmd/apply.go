package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"

	"github.com/umputun/joblog/app/store"
)

// ApplyCommand set of flags and command for recording an application
type ApplyCommand struct {
	Resume      string `short:"r" long:"resume" description:"path to resume file"`
	CoverLetter string `short:"c" long:"cover-letter" description:"path to cover letter"`
	AppURL      string `short:"a" long:"app-url" description:"application tracking URL (e.g. Workday)"`
	Notes       string `short:"n" long:"notes" description:"application notes"`
	Date        Date   `short:"d" long:"date" description:"date applied (YYYY-MM-DD), defaults to now"`

	Args JobArg `positional-args:"yes" required:"yes"`

	CommonOpts
}

// Execute is the entry point for apply command, called by flag parser
func (a *ApplyCommand) Execute(_ []string) error {
	job, err := a.job(a.Args.ID)
	if err != nil {
		return err
	}

	req := store.ApplyRequest{JobID: job.ID, ApplicationURL: a.AppURL, Notes: a.Notes, AppliedAt: a.Date.Time}
	if req.ResumePath, err = absPath(a.Resume); err != nil {
		return err
	}
	if req.CoverLetterPath, err = absPath(a.CoverLetter); err != nil {
		return err
	}
	if err = a.Store.ApplyToJob(a.ctx(), req); err != nil {
		return errors.Wrapf(err, "can't apply to job #%d", job.ID)
	}

	yellow := text.Colors{text.FgYellow}
	a.Renderer.JobPanel("Application Recorded", yellow,
		a.Renderer.Highlight(fmt.Sprintf("Applied to job #%d", job.ID), text.Colors{text.Bold, text.FgYellow}), job)
	return nil
}

// AppURLCommand sets application tracking URL
type AppURLCommand struct {
	Args struct {
		ID  int64  `positional-arg-name:"ID" description:"job id" required:"yes"`
		URL string `positional-arg-name:"URL" description:"application tracking URL (e.g. Workday)" required:"yes"`
	} `positional-args:"yes" required:"yes"`

	CommonOpts
}

// Execute is the entry point for app-url command, called by flag parser
func (a *AppURLCommand) Execute(_ []string) error {
	job, err := a.job(a.Args.ID)
	if err != nil {
		return err
	}
	if err = a.Store.SetApplicationURL(a.ctx(), job.ID, a.Args.URL); err != nil {
		return errors.Wrapf(err, "can't set application url of job #%d", job.ID)
	}
	a.Renderer.JobPanel("Application URL Updated", text.Colors{text.FgYellow},
		fmt.Sprintf("Application URL set for job #%d", job.ID), job, a.Renderer.URL(a.Args.URL))
	return nil
}

// UpdateCommand changes fields of existing job
type UpdateCommand struct {
	Applied    Date   `short:"a" long:"applied" description:"update applied date (YYYY-MM-DD)"`
	Location   string `short:"l" long:"location" description:"update location"`
	PostingURL string `short:"p" long:"posting-url" description:"update job posting URL (e.g. LinkedIn)"`

	Args JobArg `positional-args:"yes" required:"yes"`

	CommonOpts
}

// Execute is the entry point for update command, called by flag parser
func (u *UpdateCommand) Execute(_ []string) error {
	job, err := u.job(u.Args.ID)
	if err != nil {
		return err
	}
	if u.Applied.IsZero() && u.Location == "" && u.PostingURL == "" {
		return errors.New("no updates specified, use --applied, --location or --posting-url")
	}

	// applied date goes first, a job without applied event is left untouched
	updates := []string{}
	if !u.Applied.IsZero() {
		updated, err := u.Store.UpdateAppliedDate(u.ctx(), job.ID, u.Applied.Time)
		if err != nil {
			return errors.Wrapf(err, "can't update applied date of job #%d", job.ID)
		}
		if !updated {
			return errors.Errorf("Job #%d has no applied event to update, use 'apply' first", job.ID)
		}
		updates = append(updates, "Applied date: "+u.Renderer.Highlight(u.Applied.String(), text.Colors{text.FgYellow}))
	}

	req := store.UpdateJobRequest{}
	if u.Location != "" {
		req.Location = &u.Location
		updates = append(updates, "Location: "+u.Renderer.Highlight(u.Location, text.Colors{text.FgYellow}))
	}
	if u.PostingURL != "" {
		req.PostingURL = &u.PostingURL
		updates = append(updates, "Posting URL: "+u.Renderer.URL(u.PostingURL))
	}
	if req.Location != nil || req.PostingURL != nil {
		if err = u.Store.UpdateJob(u.ctx(), job.ID, req); err != nil {
			return errors.Wrapf(err, "can't update job #%d", job.ID)
		}
	}

	u.Renderer.JobPanel("Job Updated", text.Colors{text.FgGreen}, fmt.Sprintf("Updated job #%d", job.ID), job,
		strings.Join(updates, "\n"))
	return nil
}

func absPath(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	res, err := filepath.Abs(p)
	if err != nil {
		return "", errors.Wrapf(err, "can't resolve %s", p)
	}
	return res, nil
}

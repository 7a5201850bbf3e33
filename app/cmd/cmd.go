// Package cmd implements job-log commands. Each command is a go-flags command struct
// embedding CommonOpts, set by the main before Execute is called.
package cmd

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/umputun/joblog/app/render"
	"github.com/umputun/joblog/app/store"
)

// Store defines the job store interface used by commands
type Store interface {
	AddJob(ctx context.Context, req store.AddJobRequest) (int64, error)
	ApplyToJob(ctx context.Context, req store.ApplyRequest) error
	AddResponse(ctx context.Context, jobID int64, interested bool, notes string) error
	AddInterview(ctx context.Context, jobID int64, notes string) error
	UpdateStatus(ctx context.Context, jobID int64, status store.Status, notes string) error
	SetApplicationURL(ctx context.Context, jobID int64, url string) error
	UpdateJob(ctx context.Context, jobID int64, req store.UpdateJobRequest) error
	UpdateAppliedDate(ctx context.Context, jobID int64, appliedAt time.Time) (bool, error)
	DeleteJob(ctx context.Context, jobID int64) (bool, error)
	GetJob(ctx context.Context, jobID int64) (store.Job, error)
	GetEvents(ctx context.Context, jobID int64) ([]store.Event, error)
	ListJobs(ctx context.Context, status store.Status) ([]store.JobListItem, error)
	SearchJobs(ctx context.Context, f store.SearchFilter) ([]store.Job, error)
	GetActivity(ctx context.Context, days int) (store.Activity, error)
}

// CommonOptionsCommander extends flags.Commander with SetCommon
// All commands should implement this interface
type CommonOptionsCommander interface {
	SetCommon(commonOpts CommonOpts)
	Execute(args []string) error
}

// CommonOpts sets externally from main, shared across all commands
type CommonOpts struct {
	Context  context.Context
	Store    Store
	Renderer *render.Renderer
	In       io.Reader // confirmations
	Out      io.Writer // raw output, i.e. exported document
}

// SetCommon satisfies CommonOptionsCommander interface and sets common option fields
// The method called by main for each command
func (c *CommonOpts) SetCommon(commonOpts CommonOpts) {
	c.Context = commonOpts.Context
	c.Store = commonOpts.Store
	c.Renderer = commonOpts.Renderer
	c.In = commonOpts.In
	c.Out = commonOpts.Out
}

// JobArg is the positional job id argument
type JobArg struct {
	ID int64 `positional-arg-name:"ID" description:"job id" required:"yes"`
}

// Date is a calendar day given as YYYY-MM-DD, in local time
type Date struct {
	time.Time
}

// UnmarshalFlag parses the date, implements flags.Unmarshaler
func (d *Date) UnmarshalFlag(value string) error {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(value), time.Local)
	if err != nil {
		return errors.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	d.Time = t
	return nil
}

// String returns the date as YYYY-MM-DD, empty if not set
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

func (c *CommonOpts) ctx() context.Context {
	if c.Context == nil {
		return context.Background()
	}
	return c.Context
}

// job loads the job, not-found reported as "Job #N not found"
func (c *CommonOpts) job(id int64) (store.Job, error) {
	job, err := c.Store.GetJob(c.ctx(), id)
	if errors.Is(err, store.ErrNotFound) {
		return store.Job{}, errors.Errorf("Job #%d not found", id)
	}
	if err != nil {
		return store.Job{}, errors.Wrapf(err, "can't load job #%d", id)
	}
	return job, nil
}

// statusFilter converts optional status flag value
func statusFilter(s string) (store.Status, error) {
	if s == "" {
		return "", nil
	}
	st, err := store.ParseStatus(s)
	if err != nil {
		return "", errors.Wrap(err, "bad status filter")
	}
	return st, nil
}

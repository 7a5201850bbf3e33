package cmd

import (
	"github.com/pkg/errors"

	"github.com/umputun/joblog/app/store"
)

// ListCommand shows tracked jobs
type ListCommand struct {
	Status string `short:"s" long:"status" description:"filter by status"`

	CommonOpts
}

// Execute is the entry point for list command, called by flag parser
func (l *ListCommand) Execute(_ []string) error {
	status, err := statusFilter(l.Status)
	if err != nil {
		return err
	}
	jobs, err := l.Store.ListJobs(l.ctx(), status)
	if err != nil {
		return errors.Wrap(err, "can't list jobs")
	}
	if len(jobs) == 0 {
		l.Renderer.Notice("No jobs found.")
		return nil
	}
	l.Renderer.Jobs("Your Job Applications", jobs)
	return nil
}

// SearchCommand finds jobs by company or title
type SearchCommand struct {
	Company bool   `short:"c" long:"company" description:"search company name only"`
	Title   bool   `short:"t" long:"title" description:"search job title only"`
	Status  string `short:"s" long:"status" description:"filter by status"`
	Args    struct {
		Query string `positional-arg-name:"QUERY" description:"search term (company or title)" required:"yes"`
	} `positional-args:"yes" required:"yes"`

	CommonOpts
}

// Execute is the entry point for search command, called by flag parser
func (s *SearchCommand) Execute(_ []string) error {
	status, err := statusFilter(s.Status)
	if err != nil {
		return err
	}

	filter := store.SearchFilter{Status: status}
	switch {
	case s.Company:
		filter.Company = s.Args.Query
	case s.Title:
		filter.Title = s.Args.Query
	default:
		filter.Any = s.Args.Query
	}

	jobs, err := s.Store.SearchJobs(s.ctx(), filter)
	if err != nil {
		return errors.Wrapf(err, "can't search for %q", s.Args.Query)
	}
	if len(jobs) == 0 {
		s.Renderer.Notice("No jobs found matching '%s'", s.Args.Query)
		return nil
	}
	s.Renderer.SearchResults(s.Args.Query, jobs)
	return nil
}

// ShowCommand prints job details with timeline
type ShowCommand struct {
	Args JobArg `positional-args:"yes" required:"yes"`

	CommonOpts
}

// Execute is the entry point for show command, called by flag parser
func (s *ShowCommand) Execute(_ []string) error {
	job, err := s.job(s.Args.ID)
	if err != nil {
		return err
	}
	events, err := s.Store.GetEvents(s.ctx(), job.ID)
	if err != nil {
		return errors.Wrapf(err, "can't load timeline of job #%d", job.ID)
	}
	s.Renderer.Job(job, events)
	return nil
}

// ReportCommand prints activity for the last days
type ReportCommand struct {
	Days int `short:"d" long:"days" default:"7" description:"number of days to include in report"`

	CommonOpts
}

// Execute is the entry point for report command, called by flag parser
func (r *ReportCommand) Execute(_ []string) error {
	act, err := r.Store.GetActivity(r.ctx(), r.Days)
	if err != nil {
		return errors.Wrapf(err, "can't make report for %d days", r.Days)
	}
	r.Renderer.Report(r.Days, act)
	return nil
}

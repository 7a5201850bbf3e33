package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"

	"github.com/umputun/joblog/app/store"
)

// AddCommand set of flags and command for adding a job
type AddCommand struct {
	URL         string `short:"u" long:"url" description:"job posting URL (e.g. LinkedIn)"`
	Location    string `short:"l" long:"location" description:"job location"`
	Salary      string `short:"s" long:"salary" description:"salary range"`
	Description string `short:"d" long:"desc" description:"job description"`
	AI          bool   `long:"ai" description:"mark as added by AI (e.g. from email scan)"`

	Args struct {
		Company string `positional-arg-name:"COMPANY" description:"company name" required:"yes"`
		Title   string `positional-arg-name:"TITLE" description:"job title" required:"yes"`
	} `positional-args:"yes" required:"yes"`

	CommonOpts
}

// Execute is the entry point for add command, called by flag parser
func (a *AddCommand) Execute(_ []string) error {
	source := store.SourceManual
	if a.AI {
		source = store.SourceAI
	}
	req := store.AddJobRequest{
		Company:     a.Args.Company,
		Title:       a.Args.Title,
		PostingURL:  a.URL,
		Location:    a.Location,
		Salary:      a.Salary,
		Description: a.Description,
		Source:      source,
	}
	id, err := a.Store.AddJob(a.ctx(), req)
	if err != nil {
		return errors.Wrap(err, "can't add job")
	}

	green := text.Colors{text.Bold, text.FgGreen}
	a.Renderer.JobPanel("Job Added", text.Colors{text.FgGreen}, a.Renderer.Highlight(fmt.Sprintf("Added job #%d", id), green),
		store.Job{Company: req.Company, Title: req.Title})
	return nil
}

package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"

	"github.com/umputun/joblog/app/store"
)

func TestRenderer_Panel(t *testing.T) {
	buf := bytes.Buffer{}
	r := New(&buf, false)
	r.JobPanel("Job Added", text.Colors{text.FgGreen}, "Added job #1", store.Job{Company: "Acme", Title: "Engineer"})

	out := buf.String()
	assert.Contains(t, out, "Job Added")
	assert.Contains(t, out, "Added job #1")
	assert.Contains(t, out, "Engineer at Acme")
	assert.Contains(t, out, "╭", "rounded box")
	assert.NotContains(t, out, "\x1b[", "no colors")
}

func TestRenderer_Colors(t *testing.T) {
	text.EnableColors()
	buf := bytes.Buffer{}
	r := New(&buf, true)
	r.Error("Job #%d not found", 42)
	assert.Contains(t, buf.String(), "Job #42 not found")
	assert.Contains(t, buf.String(), "\x1b[", "colored")

	assert.Equal(t, "applied", New(&buf, false).Status(store.StatusApplied))
	assert.Equal(t, text.Colors{text.FgWhite}, StatusColors(store.Status("unknown")))
	for _, st := range store.Statuses() {
		assert.NotEqual(t, text.Colors{text.FgWhite}, StatusColors(st), st)
	}
}

func TestRenderer_Jobs(t *testing.T) {
	buf := bytes.Buffer{}
	r := New(&buf, false)
	applied := time.Date(2024, 2, 10, 12, 0, 0, 0, time.Local)
	updated := time.Date(2024, 2, 11, 12, 0, 0, 0, time.Local)
	r.Jobs("Your Job Applications", []store.JobListItem{
		{Job: store.Job{ID: 1, Company: "Acme", Title: "Engineer", Location: "Remote", Status: store.StatusApplied,
			Source: store.SourceAI, UpdatedAt: updated}, AppliedAt: applied},
		{Job: store.Job{ID: 2, Company: "Beta", Title: "SRE", Status: store.StatusInterested, UpdatedAt: updated}},
	})

	out := buf.String()
	assert.Contains(t, out, "Your Job Applications")
	for _, s := range []string{"ID", "Company", "Applied", "Acme", "Engineer", "Remote", "applied", "AI",
		"2024-02-10", "2024-02-11", "Beta", "SRE", "interested"} {
		assert.Contains(t, out, s)
	}
	assert.NotContains(t, out, "COMPANY", "headers keep their case")
}

func TestRenderer_SearchResults(t *testing.T) {
	buf := bytes.Buffer{}
	r := New(&buf, false)
	r.SearchResults("100%", []store.Job{{ID: 7, Company: "Acme", Title: "Engineer", Status: store.StatusOffered}})
	out := buf.String()
	assert.Contains(t, out, "Search Results for '100%'")
	assert.Contains(t, out, "offered")
	assert.Contains(t, out, "7")
}

func TestRenderer_Job(t *testing.T) {
	buf := bytes.Buffer{}
	r := New(&buf, false)
	job := store.Job{ID: 3, Company: "Acme", Title: "Engineer", Location: "Berlin", Salary: "100k",
		PostingURL: "https://example.com/p", ApplicationURL: "https://example.com/a", Description: "Go backend",
		Status: store.StatusInterviewing, Source: store.SourceAI}
	events := []store.Event{
		{Type: store.EventAdded, Date: time.Date(2024, 2, 1, 9, 30, 0, 0, time.Local), Notes: "Added Engineer at Acme"},
		{Type: store.EventApplied, Date: time.Date(2024, 2, 2, 10, 0, 0, 0, time.Local),
			ResumePath: "/cv.pdf", CoverLetterPath: "/cl.pdf"},
		{Type: store.EventInterview, Date: time.Date(2024, 2, 5, 10, 0, 0, 0, time.Local)},
	}
	r.Job(job, events)

	out := buf.String()
	for _, s := range []string{"Job #3", "Engineer", "at Acme", "Location: Berlin", "Salary: 100k",
		"Posting: https://example.com/p", "Application: https://example.com/a", "Go backend",
		"Status: interviewing", "(Added by AI)", "Timeline", "2024-02-01 09:30", "added", "Added Engineer at Acme",
		"Resume: /cv.pdf", "Cover Letter: /cl.pdf", "interview"} {
		assert.Contains(t, out, s)
	}

	t.Run("no events, no optional fields", func(t *testing.T) {
		buf := bytes.Buffer{}
		New(&buf, false).Job(store.Job{ID: 4, Company: "Beta", Title: "SRE", Status: store.StatusInterested}, nil)
		out := buf.String()
		assert.Contains(t, out, "Job #4")
		assert.NotContains(t, out, "Timeline")
		assert.NotContains(t, out, "Location:")
		assert.NotContains(t, out, "Added by AI")
	})
}

func TestRenderer_Report(t *testing.T) {
	buf := bytes.Buffer{}
	r := New(&buf, false)
	day := time.Date(2024, 2, 5, 10, 0, 0, 0, time.Local)
	act := store.Activity{
		JobsAdded: []store.Job{{ID: 1, Company: "Acme", Title: "Engineer", Status: store.StatusApplied, CreatedAt: day}},
		Events: []store.ActivityEvent{
			{Event: store.Event{Type: store.EventApplied, Date: day, Notes: "via portal"}, Company: "Acme", Title: "Engineer"},
			{Event: store.Event{Type: store.EventAdded, Date: day, Notes: "Added Engineer at Acme"}, Company: "Acme", Title: "Engineer"},
		},
		Summary: map[store.EventType]int{store.EventApplied: 1, store.EventAdded: 1},
	}
	r.Report(7, act)

	out := buf.String()
	for _, s := range []string{"Activity Report - Last 7 Days", "Summary", "Jobs Added", "Applications Sent",
		"Responses", "Interviews", "Rejections", "Offers", "Activity Timeline", "via portal", "2024-02-05"} {
		assert.Contains(t, out, s)
	}
	assert.NotContains(t, out, "Added Engineer at Acme", "added events not in the timeline")
	assert.NotContains(t, out, "No activity")

	t.Run("empty", func(t *testing.T) {
		buf := bytes.Buffer{}
		New(&buf, false).Report(3, store.Activity{Summary: map[store.EventType]int{}})
		assert.Contains(t, buf.String(), "Activity Report - Last 3 Days")
		assert.Contains(t, buf.String(), "No activity in this period.")
		assert.NotContains(t, buf.String(), "Activity Timeline")
	})
}

func Test_formatDate(t *testing.T) {
	assert.Equal(t, "-", formatDate(time.Time{}, dateFormat))
	assert.Equal(t, "2024-02-05", formatDate(time.Date(2024, 2, 5, 10, 0, 0, 0, time.Local), dateFormat))
	assert.Equal(t, "-", orDash(""))
	assert.Equal(t, "x", orDash("x"))
}

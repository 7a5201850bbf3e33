// Package render prints jobs, timelines and reports to the terminal as colored tables and panels
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/umputun/joblog/app/store"
)

const (
	dateFormat     = "2006-01-02"
	dateTimeFormat = "2006-01-02 15:04"
)

var statusColors = map[store.Status]text.Colors{
	store.StatusInterested:   {text.FgCyan},
	store.StatusApplied:      {text.FgYellow},
	store.StatusInterviewing: {text.FgBlue},
	store.StatusOffered:      {text.FgGreen},
	store.StatusRejected:     {text.FgRed},
	store.StatusWithdrawn:    {text.Faint},
	store.StatusGhosted:      {text.Faint, text.FgRed},
}

var eventColors = map[store.EventType]text.Colors{
	store.EventApplied:   {text.FgYellow},
	store.EventInterview: {text.FgBlue},
	store.EventResponse:  {text.FgBlue},
	store.EventRejected:  {text.FgRed},
	store.EventOffer:     {text.FgGreen},
	store.EventWithdrawn: {text.Faint},
}

var (
	clrCompany = text.Colors{text.FgCyan}
	clrBold    = text.Colors{text.Bold}
	clrDim     = text.Colors{text.Faint}
	clrURL     = text.Colors{text.Underline, text.FgBlue}
	clrAI      = text.Colors{text.FgMagenta}
	clrHeader  = text.Colors{text.Bold, text.FgMagenta}
)

// Renderer writes human-readable output
type Renderer struct {
	out    io.Writer
	colors bool
}

// New makes Renderer writing to out, colors disabled if colors is false
func New(out io.Writer, colors bool) *Renderer {
	return &Renderer{out: out, colors: colors}
}

// StatusColors returns colors for the status, white if unknown
func StatusColors(st store.Status) text.Colors {
	if c, ok := statusColors[st]; ok {
		return c
	}
	return text.Colors{text.FgWhite}
}

// Panel prints a boxed message with a title
func (r *Renderer) Panel(title string, titleColors text.Colors, lines ...string) {
	t := r.table(table.StyleRounded)
	t.SetTitle("%s", r.paint(title, titleColors))
	t.AppendRow(table.Row{strings.Join(lines, "\n")})
	t.Render()
}

// JobPanel prints a panel about a job, with "{title} at {company}" line after the message
func (r *Renderer) JobPanel(title string, titleColors text.Colors, message string, job store.Job, extra ...string) {
	lines := append([]string{message, "", r.JobLine(job)}, extra...)
	r.Panel(title, titleColors, lines...)
}

// JobLine formats "{title} at {company}"
func (r *Renderer) JobLine(job store.Job) string {
	return r.paint(job.Title, clrBold) + " at " + r.paint(job.Company, clrCompany)
}

// Status formats colored status
func (r *Renderer) Status(st store.Status) string {
	return r.paint(st.String(), StatusColors(st))
}

// URL formats link
func (r *Renderer) URL(u string) string {
	return r.paint(u, clrURL)
}

// Highlight formats value with given colors
func (r *Renderer) Highlight(s string, colors text.Colors) string {
	return r.paint(s, colors)
}

// Notice prints dimmed line
func (r *Renderer) Notice(format string, args ...any) {
	fmt.Fprintln(r.out, r.paint(fmt.Sprintf(format, args...), clrDim))
}

// Error prints red line
func (r *Renderer) Error(format string, args ...any) {
	fmt.Fprintln(r.out, r.paint(fmt.Sprintf(format, args...), text.Colors{text.FgRed}))
}

// Warn prints yellow line
func (r *Renderer) Warn(format string, args ...any) {
	fmt.Fprintln(r.out, r.paint(fmt.Sprintf(format, args...), text.Colors{text.FgYellow}))
}

// Jobs prints jobs list with applied and updated dates
func (r *Renderer) Jobs(title string, jobs []store.JobListItem) {
	t := r.table(table.StyleRounded)
	t.SetTitle("%s", r.paint(title, clrBold))
	t.AppendHeader(r.header("ID", "Company", "Title", "Location", "Status", "Src", "Applied", "Updated"))
	for _, j := range jobs {
		t.AppendRow(table.Row{
			r.paint(strconv.FormatInt(j.ID, 10), clrDim),
			r.paint(j.Company, clrCompany),
			r.paint(j.Title, clrBold),
			orDash(j.Location),
			r.Status(j.Status),
			r.source(j.Source),
			formatDate(j.AppliedAt, dateFormat),
			formatDate(j.UpdatedAt, dateFormat),
		})
	}
	t.Render()
}

// SearchResults prints jobs found for the query
func (r *Renderer) SearchResults(query string, jobs []store.Job) {
	t := r.table(table.StyleRounded)
	t.SetTitle("%s", r.paint(fmt.Sprintf("Search Results for '%s'", query), clrBold))
	t.AppendHeader(r.header("ID", "Company", "Title", "Location", "Status"))
	for _, j := range jobs {
		t.AppendRow(table.Row{
			r.paint(strconv.FormatInt(j.ID, 10), clrDim),
			r.paint(j.Company, clrCompany),
			r.paint(j.Title, clrBold),
			orDash(j.Location),
			r.Status(j.Status),
		})
	}
	t.Render()
}

// Job prints job details and its timeline
func (r *Renderer) Job(job store.Job, events []store.Event) {
	lines := []string{r.paint(job.Title, clrBold), "at " + r.paint(job.Company, clrCompany), ""}
	if job.Location != "" {
		lines = append(lines, "Location: "+job.Location)
	}
	if job.Salary != "" {
		lines = append(lines, "Salary: "+job.Salary)
	}
	if job.PostingURL != "" {
		lines = append(lines, r.paint("Posting: ", clrDim)+r.URL(job.PostingURL))
	}
	if job.ApplicationURL != "" {
		lines = append(lines, r.paint("Application: ", clrDim)+r.URL(job.ApplicationURL))
	}
	if job.Description != "" {
		lines = append(lines, "", job.Description)
	}
	status := r.paint("Status: ", clrDim) + r.Status(job.Status)
	if job.Source == store.SourceAI {
		status += r.paint("  (Added by AI)", clrAI)
	}
	lines = append(lines, "", status)
	r.Panel(fmt.Sprintf("Job #%d", job.ID), StatusColors(job.Status), lines...)

	if len(events) == 0 {
		return
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.paint("Timeline", clrBold))
	t := r.table(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	for _, e := range events {
		details := []string{}
		if e.Notes != "" {
			details = append(details, e.Notes)
		}
		if e.ResumePath != "" {
			details = append(details, "Resume: "+e.ResumePath)
		}
		if e.CoverLetterPath != "" {
			details = append(details, "Cover Letter: "+e.CoverLetterPath)
		}
		t.AppendRow(table.Row{
			r.paint(formatDate(e.Date, dateTimeFormat), clrDim),
			r.paint(e.Type.String(), clrBold),
			orDash(strings.Join(details, "\n")),
		})
	}
	t.Render()
}

// Report prints activity summary, jobs added and the timeline of other events
func (r *Renderer) Report(days int, act store.Activity) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.paint(fmt.Sprintf("Activity Report - Last %d Days", days), clrBold))
	fmt.Fprintln(r.out)

	stats := r.table(table.StyleRounded)
	stats.SetTitle("%s", r.paint("Summary", text.Colors{text.FgGreen}))
	stats.AppendRows([]table.Row{
		{r.paint("Jobs Added", clrDim), r.paint(strconv.Itoa(len(act.JobsAdded)), text.Colors{text.Bold, text.FgCyan})},
		{r.paint("Applications Sent", clrDim), r.count(act.Summary[store.EventApplied], text.FgYellow)},
		{r.paint("Responses", clrDim), r.count(act.Summary[store.EventResponse], text.FgBlue)},
		{r.paint("Interviews", clrDim), r.count(act.Summary[store.EventInterview], text.FgBlue)},
		{r.paint("Rejections", clrDim), r.count(act.Summary[store.EventRejected], text.FgRed)},
		{r.paint("Offers", clrDim), r.count(act.Summary[store.EventOffer], text.FgGreen)},
	})
	stats.Render()

	if len(act.JobsAdded) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.paint("Jobs Added", clrBold))
		t := r.table(table.StyleRounded)
		t.AppendHeader(r.header("ID", "Company", "Title", "Status", "Src", "Added"))
		for _, j := range act.JobsAdded {
			t.AppendRow(table.Row{
				r.paint(strconv.FormatInt(j.ID, 10), clrDim),
				r.paint(j.Company, clrCompany),
				j.Title,
				r.Status(j.Status),
				r.source(j.Source),
				formatDate(j.CreatedAt, dateFormat),
			})
		}
		t.Render()
	}

	// added events are shown as jobs added above
	others := make([]store.ActivityEvent, 0, len(act.Events))
	for _, e := range act.Events {
		if e.Type != store.EventAdded {
			others = append(others, e)
		}
	}
	if len(others) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.paint("Activity Timeline", clrBold))
		t := r.table(table.StyleRounded)
		t.AppendHeader(r.header("Date", "Event", "Company", "Title", "Notes"))
		for _, e := range others {
			clr, ok := eventColors[e.Type]
			if !ok {
				clr = text.Colors{text.FgWhite}
			}
			t.AppendRow(table.Row{
				r.paint(formatDate(e.Date, dateFormat), clrDim),
				r.paint(e.Type.String(), clr),
				r.paint(e.Company, clrCompany),
				e.Title,
				orDash(e.Notes),
			})
		}
		t.Render()
	}

	if len(act.JobsAdded) == 0 && len(others) == 0 {
		r.Notice("No activity in this period.")
	}
}

func (r *Renderer) table(style table.Style) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(style)
	t.Style().Format.Header = text.FormatDefault
	return t
}

func (r *Renderer) header(names ...string) table.Row {
	row := make(table.Row, 0, len(names))
	for _, n := range names {
		row = append(row, r.paint(n, clrHeader))
	}
	return row
}

func (r *Renderer) count(n int, c text.Color) string {
	return r.paint(strconv.Itoa(n), text.Colors{text.Bold, c})
}

func (r *Renderer) source(src store.Source) string {
	if src == store.SourceAI {
		return r.paint("AI", clrAI)
	}
	return ""
}

// paint applies colors if enabled
func (r *Renderer) paint(s string, colors text.Colors) string {
	if !r.colors || len(colors) == 0 || s == "" {
		return s
	}
	return colors.Sprint(s)
}

func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(layout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Package export dumps tracked jobs with their timelines as YAML or JSON document
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pkgz/syncs"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/umputun/joblog/app/store"
)

// Format of the export document
type Format string

// supported formats
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat converts string to Format, "yml" accepted as yaml
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml", "":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Document is the exported data
type Document struct {
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at" jsonschema:"description=time the export was made"`
	Jobs        []Job     `json:"jobs" yaml:"jobs" jsonschema:"description=tracked jobs, most recently updated first"`
}

// Job is an exported job with its timeline
type Job struct {
	ID             int64      `json:"id" yaml:"id" jsonschema:"required"`
	Company        string     `json:"company" yaml:"company" jsonschema:"required"`
	Title          string     `json:"title" yaml:"title" jsonschema:"required"`
	PostingURL     string     `json:"posting_url,omitempty" yaml:"posting_url,omitempty"`
	ApplicationURL string     `json:"application_url,omitempty" yaml:"application_url,omitempty"`
	Location       string     `json:"location,omitempty" yaml:"location,omitempty"`
	Salary         string     `json:"salary,omitempty" yaml:"salary,omitempty"`
	Description    string     `json:"description,omitempty" yaml:"description,omitempty"`
	Status         string     `json:"status" yaml:"status" jsonschema:"enum=interested,enum=applied,enum=interviewing,enum=offered,enum=rejected,enum=withdrawn,enum=ghosted"`
	Source         string     `json:"source" yaml:"source" jsonschema:"enum=manual,enum=ai"`
	CreatedAt      time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" yaml:"updated_at"`
	AppliedAt      *time.Time `json:"applied_at,omitempty" yaml:"applied_at,omitempty"`
	Timeline       []Event    `json:"timeline" yaml:"timeline"`
}

// Event is an exported timeline entry
type Event struct {
	Type            string    `json:"type" yaml:"type" jsonschema:"enum=added,enum=applied,enum=response,enum=interview,enum=offer,enum=rejected,enum=withdrawn,enum=note"`
	Date            time.Time `json:"date" yaml:"date"`
	Notes           string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	ResumePath      string    `json:"resume_path,omitempty" yaml:"resume_path,omitempty"`
	CoverLetterPath string    `json:"cover_letter_path,omitempty" yaml:"cover_letter_path,omitempty"`
}

// Source provides jobs and timelines
type Source interface {
	ListJobs(ctx context.Context, status store.Status) ([]store.JobListItem, error)
	GetEvents(ctx context.Context, jobID int64) ([]store.Event, error)
}

// fetchConcurrency limits parallel timeline loads
const fetchConcurrency = 4

// Build makes document with all jobs, or jobs with given status if not empty
func Build(ctx context.Context, src Source, status store.Status) (Document, error) {
	jobs, err := src.ListJobs(ctx, status)
	if err != nil {
		return Document{}, fmt.Errorf("failed to list jobs: %w", err)
	}

	doc := Document{GeneratedAt: time.Now().UTC(), Jobs: make([]Job, len(jobs))}
	gr := syncs.NewErrSizedGroup(fetchConcurrency, syncs.Context(ctx), syncs.Preemptive, syncs.TermOnErr)
	for i, j := range jobs {
		gr.Go(func() error {
			events, err := src.GetEvents(ctx, j.ID)
			if err != nil {
				return fmt.Errorf("failed to get timeline of job #%d: %w", j.ID, err)
			}
			doc.Jobs[i] = makeJob(j, events)
			return nil
		})
	}
	if err := gr.Wait(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Write encodes document to w
func Write(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to close yaml encoder: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown export format %q", format)
}

// Schema returns JSON schema of the document
func Schema() *jsonschema.Schema {
	schema := jsonschema.Reflect(&Document{})
	schema.Title = "job-log export"
	schema.Description = "Tracked job applications with their timelines"
	return schema
}

func makeJob(j store.JobListItem, events []store.Event) Job {
	res := Job{
		ID:             j.ID,
		Company:        j.Company,
		Title:          j.Title,
		PostingURL:     j.PostingURL,
		ApplicationURL: j.ApplicationURL,
		Location:       j.Location,
		Salary:         j.Salary,
		Description:    j.Description,
		Status:         j.Status.String(),
		Source:         j.Source.String(),
		CreatedAt:      j.CreatedAt.UTC(),
		UpdatedAt:      j.UpdatedAt.UTC(),
		Timeline:       make([]Event, 0, len(events)),
	}
	if !j.AppliedAt.IsZero() {
		appliedAt := j.AppliedAt.UTC()
		res.AppliedAt = &appliedAt
	}
	for _, e := range events {
		res.Timeline = append(res.Timeline, Event{
			Type:            e.Type.String(),
			Date:            e.Date.UTC(),
			Notes:           e.Notes,
			ResumePath:      e.ResumePath,
			CoverLetterPath: e.CoverLetterPath,
		})
	}
	return res
}

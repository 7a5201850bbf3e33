package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// jobColumns selects a job from "jobs j", NULLs turned into defaults
const jobColumns = `j.id, j.company, j.title,
	COALESCE(j.posting_url, '') AS posting_url, COALESCE(j.application_url, '') AS application_url,
	COALESCE(j.location, '') AS location, COALESCE(j.salary, '') AS salary,
	COALESCE(j.description, '') AS description, COALESCE(j.status, 'interested') AS status,
	COALESCE(j.source, 'manual') AS source, j.created_at, j.updated_at`

// eventColumns selects an event from "events e"
const eventColumns = `e.id, e.job_id, e.event_type, e.event_date, COALESCE(e.notes, '') AS notes,
	COALESCE(e.resume_path, '') AS resume_path, COALESCE(e.cover_letter_path, '') AS cover_letter_path`

// GetJob returns job by id, ErrNotFound if it doesn't exist
func (s *Store) GetJob(ctx context.Context, jobID int64) (Job, error) {
	var row jobRow
	err := s.db.GetContext(ctx, &row, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = ?`, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, fmt.Errorf("job #%d: %w", jobID, ErrNotFound)
	}
	if err != nil {
		return Job{}, fmt.Errorf("failed to get job #%d: %w", jobID, err)
	}
	return row.job(), nil
}

// GetEvents returns the timeline of a job, oldest first
func (s *Store) GetEvents(ctx context.Context, jobID int64) ([]Event, error) {
	var rows []eventRow
	err := s.db.SelectContext(ctx, &rows, `SELECT `+eventColumns+` FROM events e
		WHERE e.job_id = ? ORDER BY e.event_date ASC, e.id ASC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get events of job #%d: %w", jobID, err)
	}
	res := make([]Event, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.event())
	}
	return res, nil
}

// ListJobs returns all jobs, or jobs with given status if not empty, most recently updated first.
// Each job comes with the date of its earliest applied event.
func (s *Store) ListJobs(ctx context.Context, status Status) ([]JobListItem, error) {
	query := `SELECT ` + jobColumns + `,
		(SELECT MIN(e.event_date) FROM events e WHERE e.job_id = j.id AND e.event_type = 'applied') AS applied_at
		FROM jobs j`
	args := []any{}
	if status != "" {
		query += ` WHERE j.status = ?`
		args = append(args, status.String())
	}
	query += ` ORDER BY j.updated_at DESC, j.id DESC`

	var rows []struct {
		jobRow
		AppliedAt nullTime `db:"applied_at"`
	}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	res := make([]JobListItem, 0, len(rows))
	for _, r := range rows {
		res = append(res, JobListItem{Job: r.job(), AppliedAt: r.AppliedAt.Time})
	}
	return res, nil
}

// SearchJobs returns jobs matching the filter, most recently updated first.
// All text matches are case-insensitive substring matches.
func (s *Store) SearchJobs(ctx context.Context, f SearchFilter) ([]Job, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.Company != "" {
		where = append(where, `LOWER(j.company) LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(f.Company))
	}
	if f.Title != "" {
		where = append(where, `LOWER(j.title) LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(f.Title))
	}
	if f.Any != "" {
		where = append(where, `(LOWER(j.company) LIKE ? ESCAPE '\' OR LOWER(j.title) LIKE ? ESCAPE '\')`)
		args = append(args, likePattern(f.Any), likePattern(f.Any))
	}
	if f.Status != "" {
		where = append(where, `j.status = ?`)
		args = append(args, f.Status.String())
	}

	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY j.updated_at DESC, j.id DESC`
	var rows []jobRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}
	res := make([]Job, 0, len(rows))
	for _, r := range rows {
		res = append(res, r.job())
	}
	return res, nil
}

// GetActivity returns jobs added and events recorded during the last days, newest first,
// with per event type counts.
func (s *Store) GetActivity(ctx context.Context, days int) (Activity, error) {
	if days < 0 {
		return Activity{}, fmt.Errorf("%w: negative days %d", ErrInvalid, days)
	}
	since := s.now().AddDate(0, 0, -days)
	res := Activity{Since: since, JobsAdded: []Job{}, Events: []ActivityEvent{}, Summary: map[EventType]int{}}

	var jobs []jobRow
	err := s.db.SelectContext(ctx, &jobs, `SELECT `+jobColumns+` FROM jobs j
		WHERE j.created_at >= ? ORDER BY j.created_at DESC, j.id DESC`, ts(since))
	if err != nil {
		return Activity{}, fmt.Errorf("failed to get jobs added since %s: %w", since, err)
	}
	for _, j := range jobs {
		res.JobsAdded = append(res.JobsAdded, j.job())
	}

	var events []eventRow
	err = s.db.SelectContext(ctx, &events, `SELECT `+eventColumns+`, j.company, j.title
		FROM events e JOIN jobs j ON e.job_id = j.id
		WHERE e.event_date >= ? ORDER BY e.event_date DESC, e.id DESC`, ts(since))
	if err != nil {
		return Activity{}, fmt.Errorf("failed to get events since %s: %w", since, err)
	}
	for _, e := range events {
		ae := ActivityEvent{Event: e.event(), Company: e.Company, Title: e.Title}
		res.Events = append(res.Events, ae)
		res.Summary[ae.Type]++
	}
	return res, nil
}

// likePattern makes lower-case substring pattern with LIKE wildcards escaped
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}

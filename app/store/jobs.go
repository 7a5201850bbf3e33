package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/jmoiron/sqlx"
)

// AddJob creates a job with status interested and its initial "added" event, returns the new job id
func (s *Store) AddJob(ctx context.Context, req AddJobRequest) (int64, error) {
	if strings.TrimSpace(req.Company) == "" || strings.TrimSpace(req.Title) == "" {
		return 0, fmt.Errorf("%w: company and title are required", ErrInvalid)
	}
	source, err := ParseSource(req.Source.String())
	if err != nil {
		return 0, err
	}

	var jobID int64
	now := ts(s.now())
	err = s.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO jobs (company, title, posting_url, location, salary, description, status, source,
				created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			req.Company, req.Title, nullable(req.PostingURL), nullable(req.Location), nullable(req.Salary),
			nullable(req.Description), StatusInterested.String(), source.String(), now, now)
		if err != nil {
			return fmt.Errorf("failed to insert job: %w", err)
		}
		if jobID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to get job id: %w", err)
		}
		return s.addEvent(ctx, tx, Event{JobID: jobID, Type: EventAdded,
			Notes: fmt.Sprintf("Added %s at %s", req.Title, req.Company)})
	})
	if err != nil {
		return 0, err
	}
	log.Printf("[DEBUG] added job #%d, %s at %s", jobID, req.Title, req.Company)
	return jobID, nil
}

// ApplyToJob sets status to applied and records the application. ApplicationURL is set on the job
// only if provided; AppliedAt backdates the applied event.
func (s *Store) ApplyToJob(ctx context.Context, req ApplyRequest) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.setStatus(ctx, tx, req.JobID, StatusApplied); err != nil {
			return err
		}
		if req.ApplicationURL != "" {
			if err := s.setField(ctx, tx, req.JobID, "application_url", req.ApplicationURL); err != nil {
				return err
			}
		}
		return s.addEvent(ctx, tx, Event{JobID: req.JobID, Type: EventApplied, Date: req.AppliedAt,
			Notes: req.Notes, ResumePath: req.ResumePath, CoverLetterPath: req.CoverLetterPath})
	})
}

// AddResponse records a response from the company. Interest moves the job to interviewing
// with a "response" event, otherwise the job is rejected with a "rejected" event.
func (s *Store) AddResponse(ctx context.Context, jobID int64, interested bool, notes string) error {
	status, eventType := StatusRejected, EventRejected
	if interested {
		status, eventType = StatusInterviewing, EventResponse
	}
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.setStatus(ctx, tx, jobID, status); err != nil {
			return err
		}
		return s.addEvent(ctx, tx, Event{JobID: jobID, Type: eventType, Notes: notes})
	})
}

// AddInterview records an interview, the job is interviewing after it
func (s *Store) AddInterview(ctx context.Context, jobID int64, notes string) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.setStatus(ctx, tx, jobID, StatusInterviewing); err != nil {
			return err
		}
		return s.addEvent(ctx, tx, Event{JobID: jobID, Type: EventInterview, Notes: notes})
	})
}

// UpdateStatus sets the status and records the matching event, see Status.EventType.
// Empty notes replaced by "Status changed to {status}".
func (s *Store) UpdateStatus(ctx context.Context, jobID int64, status Status, notes string) error {
	status, err := ParseStatus(string(status))
	if err != nil {
		return err
	}
	if notes == "" {
		notes = fmt.Sprintf("Status changed to %s", status)
	}
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.setStatus(ctx, tx, jobID, status); err != nil {
			return err
		}
		return s.addEvent(ctx, tx, Event{JobID: jobID, Type: status.EventType(), Notes: notes})
	})
}

// SetApplicationURL sets the application tracking url, no event recorded
func (s *Store) SetApplicationURL(ctx context.Context, jobID int64, url string) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		return s.setField(ctx, tx, jobID, "application_url", url)
	})
}

// UpdateJob changes location and/or posting url, no event recorded
func (s *Store) UpdateJob(ctx context.Context, jobID int64, req UpdateJobRequest) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := jobExists(ctx, tx, jobID); err != nil {
			return err
		}
		if req.Location != nil {
			if err := s.setField(ctx, tx, jobID, "location", *req.Location); err != nil {
				return err
			}
		}
		if req.PostingURL != nil {
			if err := s.setField(ctx, tx, jobID, "posting_url", *req.PostingURL); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateAppliedDate corrects the date of the applied event in place.
// Returns false with no changes if the job has no applied event.
func (s *Store) UpdateAppliedDate(ctx context.Context, jobID int64, appliedAt time.Time) (bool, error) {
	updated := false
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		var found int
		err := tx.GetContext(ctx, &found,
			`SELECT 1 FROM events WHERE job_id = ? AND event_type = ? LIMIT 1`, jobID, EventApplied.String())
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to check applied event for job #%d: %w", jobID, err)
		}

		if _, err := tx.ExecContext(ctx, `UPDATE events SET event_date = ? WHERE job_id = ? AND event_type = ?`,
			ts(appliedAt), jobID, EventApplied.String()); err != nil {
			return fmt.Errorf("failed to update applied date for job #%d: %w", jobID, err)
		}
		if err := s.touch(ctx, tx, jobID); err != nil {
			return err
		}
		updated = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

// DeleteJob removes the job and all its events. Returns false if the job doesn't exist.
func (s *Store) DeleteJob(ctx context.Context, jobID int64) (bool, error) {
	deleted := false
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := jobExists(ctx, tx, jobID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			return err
		}
		// events first, no cascade declared on the foreign key
		if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE job_id = ?`, jobID); err != nil {
			return fmt.Errorf("failed to delete events of job #%d: %w", jobID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, jobID); err != nil {
			return fmt.Errorf("failed to delete job #%d: %w", jobID, err)
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if deleted {
		log.Printf("[DEBUG] deleted job #%d", jobID)
	}
	return deleted, nil
}

// setStatus changes status of existing job and bumps updated_at
func (s *Store) setStatus(ctx context.Context, tx *sqlx.Tx, jobID int64, status Status) error {
	res, err := tx.ExecContext(ctx, `UPDATE jobs SET status = ?, updated_at = MAX(created_at, ?) WHERE id = ?`,
		status.String(), ts(s.now()), jobID)
	if err != nil {
		return fmt.Errorf("failed to set status of job #%d: %w", jobID, err)
	}
	if err := affected(res, jobID); err != nil {
		return err
	}
	log.Printf("[DEBUG] job #%d status %s", jobID, status)
	return nil
}

// setField sets a single optional column of existing job and bumps updated_at
func (s *Store) setField(ctx context.Context, tx *sqlx.Tx, jobID int64, column, value string) error {
	// column comes from callers in this package only, never from user input
	query := fmt.Sprintf(`UPDATE jobs SET %s = ?, updated_at = MAX(created_at, ?) WHERE id = ?`, column)
	res, err := tx.ExecContext(ctx, query, nullable(value), ts(s.now()), jobID)
	if err != nil {
		return fmt.Errorf("failed to set %s of job #%d: %w", column, jobID, err)
	}
	return affected(res, jobID)
}

// touch bumps updated_at of existing job
func (s *Store) touch(ctx context.Context, tx *sqlx.Tx, jobID int64) error {
	res, err := tx.ExecContext(ctx, `UPDATE jobs SET updated_at = MAX(created_at, ?) WHERE id = ?`, ts(s.now()), jobID)
	if err != nil {
		return fmt.Errorf("failed to update job #%d: %w", jobID, err)
	}
	return affected(res, jobID)
}

// addEvent appends an event, zero Date means now
func (s *Store) addEvent(ctx context.Context, tx *sqlx.Tx, e Event) error {
	if _, err := ParseEventType(e.Type.String()); err != nil {
		return err
	}
	date := e.Date
	if date.IsZero() {
		date = s.now()
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO events (job_id, event_type, event_date, notes, resume_path, cover_letter_path)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.JobID, e.Type.String(), ts(date), nullable(e.Notes), nullable(e.ResumePath), nullable(e.CoverLetterPath))
	if err != nil {
		return fmt.Errorf("failed to add %s event to job #%d: %w", e.Type, e.JobID, err)
	}
	return nil
}

// jobExists returns ErrNotFound if there is no job with given id
func jobExists(ctx context.Context, q sqlx.QueryerContext, jobID int64) error {
	var found int
	err := sqlx.GetContext(ctx, q, &found, `SELECT 1 FROM jobs WHERE id = ?`, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("job #%d: %w", jobID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check job #%d: %w", jobID, err)
	}
	return nil
}

// affected turns zero-rows update into ErrNotFound
func affected(res sql.Result, jobID int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("job #%d: %w", jobID, ErrNotFound)
	}
	return nil
}

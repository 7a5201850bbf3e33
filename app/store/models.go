package store

import "time"

// Job is a tracked job application
type Job struct {
	ID             int64
	Company        string
	Title          string
	PostingURL     string // job posting, e.g. linkedin
	ApplicationURL string // application tracking, e.g. workday
	Location       string
	Salary         string
	Description    string
	Status         Status
	Source         Source
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// JobListItem is a job with the date of its applied event, zero if not applied
type JobListItem struct {
	Job
	AppliedAt time.Time
}

// Event is a timeline entry of a job
type Event struct {
	ID              int64
	JobID           int64
	Type            EventType
	Date            time.Time
	Notes           string
	ResumePath      string
	CoverLetterPath string
}

// ActivityEvent is an event with the company and title of its job
type ActivityEvent struct {
	Event
	Company string
	Title   string
}

// Activity summarizes what happened since a point in time
type Activity struct {
	Since     time.Time
	JobsAdded []Job
	Events    []ActivityEvent
	Summary   map[EventType]int
}

// AddJobRequest contains parameters for a new job
type AddJobRequest struct {
	Company     string
	Title       string
	PostingURL  string
	Location    string
	Salary      string
	Description string
	Source      Source // manual if empty
}

// ApplyRequest contains parameters for recording an application
type ApplyRequest struct {
	JobID           int64
	ResumePath      string
	CoverLetterPath string
	ApplicationURL  string // set on the job if not empty
	Notes           string
	AppliedAt       time.Time // backdates the applied event, now if zero
}

// UpdateJobRequest contains fields to change, nil fields are left as is
type UpdateJobRequest struct {
	Location   *string
	PostingURL *string
}

// SearchFilter defines search criteria. Company and Title are combined with AND,
// Any matches either company or title. Empty fields are not applied.
type SearchFilter struct {
	Company string
	Title   string
	Any     string
	Status  Status
}

// jobRow is a job as stored
type jobRow struct {
	ID             int64    `db:"id"`
	Company        string   `db:"company"`
	Title          string   `db:"title"`
	PostingURL     string   `db:"posting_url"`
	ApplicationURL string   `db:"application_url"`
	Location       string   `db:"location"`
	Salary         string   `db:"salary"`
	Description    string   `db:"description"`
	Status         string   `db:"status"`
	Source         string   `db:"source"`
	CreatedAt      nullTime `db:"created_at"`
	UpdatedAt      nullTime `db:"updated_at"`
}

func (r jobRow) job() Job {
	return Job{
		ID:             r.ID,
		Company:        r.Company,
		Title:          r.Title,
		PostingURL:     r.PostingURL,
		ApplicationURL: r.ApplicationURL,
		Location:       r.Location,
		Salary:         r.Salary,
		Description:    r.Description,
		Status:         Status(r.Status),
		Source:         Source(r.Source),
		CreatedAt:      r.CreatedAt.Time,
		UpdatedAt:      r.UpdatedAt.Time,
	}
}

// eventRow is an event as stored, company and title filled by activity query only
type eventRow struct {
	ID              int64    `db:"id"`
	JobID           int64    `db:"job_id"`
	Type            string   `db:"event_type"`
	Date            nullTime `db:"event_date"`
	Notes           string   `db:"notes"`
	ResumePath      string   `db:"resume_path"`
	CoverLetterPath string   `db:"cover_letter_path"`
	Company         string   `db:"company"`
	Title           string   `db:"title"`
}

func (r eventRow) event() Event {
	return Event{
		ID:              r.ID,
		JobID:           r.JobID,
		Type:            EventType(r.Type),
		Date:            r.Date.Time,
		Notes:           r.Notes,
		ResumePath:      r.ResumePath,
		CoverLetterPath: r.CoverLetterPath,
	}
}

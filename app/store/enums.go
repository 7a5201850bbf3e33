package store

import (
	"fmt"
	"strings"
)

// Status of a job application
type Status string

// all statuses, in lifecycle order
const (
	StatusInterested   Status = "interested"   // saved, not yet applied
	StatusApplied      Status = "applied"      // application submitted
	StatusInterviewing Status = "interviewing" // in interview process
	StatusOffered      Status = "offered"      // received an offer
	StatusRejected     Status = "rejected"     // application rejected
	StatusWithdrawn    Status = "withdrawn"    // withdrew application
	StatusGhosted      Status = "ghosted"      // no response after applying
)

// Statuses returns all known statuses in lifecycle order
func Statuses() []Status {
	return []Status{StatusInterested, StatusApplied, StatusInterviewing, StatusOffered,
		StatusRejected, StatusWithdrawn, StatusGhosted}
}

// ParseStatus converts string to Status, case-insensitive
func ParseStatus(s string) (Status, error) {
	v := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, st := range Statuses() {
		if v == st {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalid, s)
}

func (s Status) String() string { return string(s) }

// EventType returns the timeline event recorded for a manual change to this status.
// Only offered, rejected and withdrawn have dedicated event types, all other statuses
// are recorded as a note.
func (s Status) EventType() EventType {
	switch s {
	case StatusOffered:
		return EventOffer
	case StatusRejected:
		return EventRejected
	case StatusWithdrawn:
		return EventWithdrawn
	case StatusInterested, StatusApplied, StatusInterviewing, StatusGhosted:
		return EventNote
	default:
		return EventNote
	}
}

// EventType is a type of timeline event
type EventType string

// all event types
const (
	EventAdded     EventType = "added"     // job added to tracker
	EventApplied   EventType = "applied"   // application submitted
	EventResponse  EventType = "response"  // response received
	EventInterview EventType = "interview" // interview happened
	EventOffer     EventType = "offer"     // offer received
	EventRejected  EventType = "rejected"  // rejected
	EventWithdrawn EventType = "withdrawn" // application withdrawn
	EventNote      EventType = "note"      // general note
)

// EventTypes returns all known event types
func EventTypes() []EventType {
	return []EventType{EventAdded, EventApplied, EventResponse, EventInterview, EventOffer,
		EventRejected, EventWithdrawn, EventNote}
}

// ParseEventType converts string to EventType, case-insensitive
func ParseEventType(s string) (EventType, error) {
	v := EventType(strings.ToLower(strings.TrimSpace(s)))
	for _, et := range EventTypes() {
		if v == et {
			return et, nil
		}
	}
	return "", fmt.Errorf("%w: unknown event type %q", ErrInvalid, s)
}

func (e EventType) String() string { return string(e) }

// Source tells how a job was added
type Source string

// job sources
const (
	SourceManual Source = "manual"
	SourceAI     Source = "ai"
)

// ParseSource converts string to Source, empty string is manual
func ParseSource(s string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(s))) {
	case "", SourceManual:
		return SourceManual, nil
	case SourceAI:
		return SourceAI, nil
	}
	return "", fmt.Errorf("%w: unknown source %q", ErrInvalid, s)
}

func (s Source) String() string { return string(s) }

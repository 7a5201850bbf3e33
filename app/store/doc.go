// Package store provides the data access layer of job-log.
// It keeps jobs and their event timelines in a single SQLite file with two tables
// (jobs, events) and exposes the domain operations (add, apply, response, interview,
// status change, field updates, delete) together with the read side used by the commands
// (get, list, search and the activity report). Every multi-statement operation runs
// in one transaction.
package store

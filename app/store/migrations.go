package store

import (
	"context"
	"fmt"
	"strings"

	log "github.com/go-pkgz/lgr"
)

// migration is an additive schema change. Errors matched by ignore mean the change is already applied.
type migration struct {
	name   string
	query  string
	ignore string
}

var migrations = []migration{
	{
		name:   "add_source_to_jobs",
		query:  `ALTER TABLE jobs ADD COLUMN source TEXT DEFAULT 'manual'`,
		ignore: "duplicate column name",
	},
}

// migrate applies all migrations in order
func (s *Store) migrate(ctx context.Context) error {
	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m.query); err != nil {
			if m.ignore != "" && strings.Contains(strings.ToLower(err.Error()), m.ignore) {
				continue // already applied
			}
			return fmt.Errorf("failed to apply migration %s: %w", m.name, err)
		}
		log.Printf("[INFO] migration %s applied", m.name)
	}
	return nil
}

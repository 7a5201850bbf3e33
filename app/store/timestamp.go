package store

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// tsLayout is a fixed-width UTC layout, so text comparison in SQL matches time order
const tsLayout = "2006-01-02 15:04:05.000000000-07:00"

// layouts accepted when reading values back, the first one is what we write
var tsParseLayouts = []string{
	tsLayout,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ts converts time to the stored text form
func ts(t time.Time) string {
	return t.UTC().Format(tsLayout)
}

// nullTime scans timestamps from columns and from expressions (sub-selects, aggregates).
// The driver returns time.Time only for columns declared as TIMESTAMP, expressions come as text.
type nullTime struct {
	Time  time.Time
	Valid bool
}

// Scan implements sql.Scanner
func (n *nullTime) Scan(value any) error {
	n.Time, n.Valid = time.Time{}, false
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		n.Time, n.Valid = v, true
		return nil
	case int64:
		n.Time, n.Valid = time.Unix(v, 0).UTC(), true
		return nil
	case []byte:
		return n.parse(string(v))
	case string:
		return n.parse(v)
	}
	return fmt.Errorf("can't scan %T into timestamp", value)
}

// Value implements driver.Valuer
func (n nullTime) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return ts(n.Time), nil
}

func (n *nullTime) parse(s string) error {
	if s == "" {
		return nil
	}
	for _, layout := range tsParseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			n.Time, n.Valid = t.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("can't parse timestamp %q", s)
}

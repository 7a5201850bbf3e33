package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, st := range Statuses() {
		got, err := ParseStatus(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	got, err := ParseStatus(" Offered ")
	require.NoError(t, err)
	assert.Equal(t, StatusOffered, got)

	_, err = ParseStatus("hired")
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestStatus_EventType(t *testing.T) {
	exp := map[Status]EventType{
		StatusInterested:   EventNote,
		StatusApplied:      EventNote,
		StatusInterviewing: EventNote,
		StatusOffered:      EventOffer,
		StatusRejected:     EventRejected,
		StatusWithdrawn:    EventWithdrawn,
		StatusGhosted:      EventNote,
	}
	require.Len(t, exp, len(Statuses()), "every status covered")
	for _, st := range Statuses() {
		assert.Equal(t, exp[st], st.EventType(), st)
	}
}

func TestParseEventType(t *testing.T) {
	for _, et := range EventTypes() {
		got, err := ParseEventType(et.String())
		require.NoError(t, err)
		assert.Equal(t, et, got)
	}
	_, err := ParseEventType("party")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseSource(t *testing.T) {
	tbl := []struct {
		in  string
		exp Source
		err bool
	}{
		{"", SourceManual, false},
		{"manual", SourceManual, false},
		{"AI", SourceAI, false},
		{"email", "", true},
	}
	for _, tt := range tbl {
		got, err := ParseSource(tt.in)
		if tt.err {
			assert.ErrorIs(t, err, ErrInvalid, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.exp, got, tt.in)
	}
}

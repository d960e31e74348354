package dialogue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRelativeDate(t *testing.T) {
	// Monday 2026-08-31
	now := time.Date(2026, 8, 31, 18, 0, 0, 0, time.UTC)
	require.Equal(t, time.Monday, now.Weekday())

	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"2026-09-05", "2026-09-05", true},
		{"let's do 2026-09-05 then", "2026-09-05", true},
		{"tomorrow", "2026-09-01", true},
		{"tonight works", "2026-08-31", true},
		{"today", "2026-08-31", true},
		{"this friday", "2026-09-04", true},
		{"friday", "2026-09-04", true},
		{"next friday", "2026-09-11", true},
		// same weekday as today means the one a week out
		{"monday", "2026-09-07", true},
		{"next monday", "2026-09-14", true},
		{"fri evening", "2026-09-04", true},
		{"whenever", "", false},
		// an invalid calendar date is not a passthrough
		{"2026-13-45", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseRelativeDate(tt.text, now)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

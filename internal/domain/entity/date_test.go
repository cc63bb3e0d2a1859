package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_Valid(t *testing.T) {
	date, err := ParseDate("2026-03-01")

	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", date.String())
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), date.Time())
}

func TestParseDate_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"with time component", "2026-03-01T00:00:00Z"},
		{"trailing space", "2026-03-01 "},
		{"wrong order", "01-03-2026"},
		{"month out of range", "2026-13-01"},
		{"not a date", "tomorrow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.value)

			require.Error(t, err)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestDateOf_TruncatesToDay(t *testing.T) {
	date := DateOf(time.Date(2026, 7, 4, 18, 45, 12, 999, time.UTC))

	assert.Equal(t, "2026-07-04", date.String())
	assert.Equal(t, time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC), date.Time())
}

func TestValidationError_MatchesSentinel(t *testing.T) {
	_, err := ParseDate("bogus")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

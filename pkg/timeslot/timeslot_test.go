package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeZuluTimestamp(t *testing.T) {
	got, err := Normalize("2026-09-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15T10:30:00Z", got)
}

func TestNormalizeTruncatesSubSeconds(t *testing.T) {
	got, err := Normalize("2026-09-15T10:30:00.123456Z")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15T10:30:00Z", got)
}

func TestNormalizeConvertsOffsetToUTC(t *testing.T) {
	got, err := Normalize("2026-09-15T12:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15T10:30:00Z", got)
}

func TestNormalizeNaiveTimestampAssumedUTC(t *testing.T) {
	got, err := Normalize("2026-09-15T10:30:00")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15T10:30:00Z", got)

	got, err = Normalize("2026-09-15T10:30")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15T10:30:00Z", got)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	first, err := Normalize("2026-09-15T12:30:00.987+02:00")
	require.NoError(t, err)

	second, err := Normalize(first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-date", "2026-13-45T99:99:99Z", "15/09/2026"} {
		_, err := Normalize(raw)
		assert.ErrorIs(t, err, ErrInvalidSlot, "input %q", raw)
	}
}

func TestParseReturnsUTCInstant(t *testing.T) {
	got, err := Parse("2026-09-15T12:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 10, got.Hour())
}

func TestFormatRoundTrip(t *testing.T) {
	instant := time.Date(2026, 9, 15, 10, 30, 0, 555000000, time.UTC)
	assert.Equal(t, "2026-09-15T10:30:00Z", Format(instant))
}

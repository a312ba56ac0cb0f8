package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTime_UTC(t *testing.T) {
	got, err := NormalizeTime(2024, 12, 1, 0, 0, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestNormalizeTime_OffsetConversion(t *testing.T) {
	// 14:30 at UTC+3 is 11:30 UTC.
	ist := time.FixedZone("UTC+3", 3*60*60)
	got, err := NormalizeTime(2024, 6, 15, 14, 30, ist)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 15, 11, 30, 0, 0, time.UTC), got)
}

func TestNormalizeTime_NilLocationUsesLocal(t *testing.T) {
	got, err := NormalizeTime(2024, 3, 10, 12, 0, nil)
	require.NoError(t, err)

	want := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.Local).UTC()
	assert.Equal(t, want, got)
}

func TestNormalizeTime_RoundTrip(t *testing.T) {
	// Normalizing then reading back in the same zone reproduces the input.
	zone := time.FixedZone("UTC-5", -5*60*60)
	cases := []struct {
		year, month, day, hour, min int
	}{
		{2024, 1, 1, 0, 0},
		{2024, 2, 29, 23, 59}, // leap day
		{1999, 12, 31, 12, 30},
		{2030, 7, 4, 6, 45},
	}

	for _, c := range cases {
		got, err := NormalizeTime(c.year, c.month, c.day, c.hour, c.min, zone)
		require.NoError(t, err)

		back := got.In(zone)
		assert.Equal(t, c.year, back.Year())
		assert.Equal(t, time.Month(c.month), back.Month())
		assert.Equal(t, c.day, back.Day())
		assert.Equal(t, c.hour, back.Hour())
		assert.Equal(t, c.min, back.Minute())
	}
}

func TestNormalizeTime_InvalidComponents(t *testing.T) {
	cases := []struct {
		name                        string
		year, month, day, hour, min int
	}{
		{"month 13", 2024, 13, 1, 0, 0},
		{"month 0", 2024, 0, 1, 0, 0},
		{"day 32", 2024, 1, 32, 0, 0},
		{"day 0", 2024, 1, 0, 0, 0},
		{"hour 24", 2024, 1, 1, 24, 0},
		{"minute 60", 2024, 1, 1, 0, 60},
		{"feb 30", 2024, 2, 30, 0, 0},
		{"feb 29 non-leap", 2023, 2, 29, 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NormalizeTime(c.year, c.month, c.day, c.hour, c.min, time.UTC)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTime)
		})
	}
}

package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchor(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday snaps back to monday",
			in:   time.Date(2025, 8, 6, 15, 30, 0, 0, time.UTC),
			want: time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday is its own anchor",
			in:   time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday belongs to the preceding monday",
			in:   time.Date(2025, 8, 10, 23, 59, 0, 0, time.UTC),
			want: time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Anchor(c.in))
		})
	}
}

func TestKeyRoundTrip(t *testing.T) {
	start := time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC)
	key := Key(start)
	assert.Equal(t, "Aug-4-2025", key)

	parsed, err := ParseKey(key)
	require.NoError(t, err)
	assert.Equal(t, start, parsed)
}

func TestParseKeyInvalid(t *testing.T) {
	for _, key := range []string{"", "Aug-4", "Foo-4-2025", "Aug-x-2025", "Aug-4-twentyfive", "Aug-99-2025"} {
		_, err := ParseKey(key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestDayLabels(t *testing.T) {
	start := time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC)
	labels := DayLabels(start)
	require.Len(t, labels, 7)
	assert.Equal(t, "Mon 4-Aug", labels[0])
	assert.Equal(t, "Thu 7-Aug", labels[3])
	assert.Equal(t, "Sun 10-Aug", labels[6])
}

func TestDayLabelsAcrossMonthBoundary(t *testing.T) {
	start := time.Date(2025, 7, 28, 0, 0, 0, 0, time.UTC)
	labels := DayLabels(start)
	assert.Equal(t, "Mon 28-Jul", labels[0])
	assert.Equal(t, "Fri 1-Aug", labels[4])
}

func TestRange(t *testing.T) {
	start := time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "4-Aug to 10-Aug", Range(start))
}

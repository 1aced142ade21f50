package bot

import (
	"testing"
	"time"

	"banket/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"25.12.2026", time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC), true},
		{"2026-12-25", time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC), true},
		{" 25.12.2026 ", time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC), true},
		{"25/12/2026", time.Time{}, false},
		{"garbage", time.Time{}, false},
	}

	for _, tt := range tests {
		got, err := parseDate(tt.input)
		if !tt.ok {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.True(t, got.Equal(tt.want), tt.input)
	}
}

func TestParseDateRange(t *testing.T) {
	start, end, err := parseDateRange("01.12.2026 - 31.12.2026")
	require.NoError(t, err)
	assert.Equal(t, time.December, start.Month())
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, 31, end.Day())
}

func TestParseDateRangeSingleDay(t *testing.T) {
	start, end, err := parseDateRange("15.06.2026")
	require.NoError(t, err)
	assert.Equal(t, start, end)
}

func TestParseDateRangeISOSingle(t *testing.T) {
	start, end, err := parseDateRange("2026-06-15")
	require.NoError(t, err)
	assert.Equal(t, 15, start.Day())
	assert.Equal(t, start, end)
}

func TestParseDateRangeSwapsReversed(t *testing.T) {
	start, end, err := parseDateRange("31.12.2026 - 01.12.2026")
	require.NoError(t, err)
	assert.True(t, start.Before(end))
}

func TestParseDateRangeRejectsGarbage(t *testing.T) {
	_, _, err := parseDateRange("not - a - range - at all")
	assert.Error(t, err)
}

func TestStatusEmoji(t *testing.T) {
	assert.Equal(t, "⏳", statusEmoji(models.StatusPending))
	assert.Equal(t, "✅", statusEmoji(models.StatusConfirmed))
	assert.Equal(t, "🏁", statusEmoji(models.StatusCompleted))
	assert.Equal(t, "❌", statusEmoji(models.StatusCancelled))
	assert.Equal(t, "❔", statusEmoji("weird"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exact", truncate("exact", 5))
	got := truncate("a long enough string", 10)
	assert.Equal(t, 10, len([]rune(got)))
	assert.Equal(t, "…", string([]rune(got)[9]))
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, "a\\_b \\*c\\* \\`d\\` \\[e]", escapeMarkdown("a_b *c* `d` [e]"))
}

func TestBookingCustomer(t *testing.T) {
	withUser := models.Booking{UserID: 9, User: &models.BookingUser{Username: "alice"}}
	assert.Equal(t, "alice", bookingCustomer(withUser))

	without := models.Booking{UserID: 9}
	assert.Equal(t, "user #9", bookingCustomer(without))
}

func TestIsAdmin(t *testing.T) {
	b := &Bot{config: testConfig()}
	assert.True(t, b.isAdmin(111))
	assert.False(t, b.isAdmin(222))
}

func TestRatingStars(t *testing.T) {
	assert.Equal(t, "⭐⭐⭐", ratingStars(3))
	assert.Equal(t, "", ratingStars(0))
	assert.Equal(t, "⭐⭐⭐⭐⭐", ratingStars(9))
}

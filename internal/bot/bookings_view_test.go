package bot

import (
	"testing"
	"time"

	"banket/internal/collection"
	"banket/internal/models"

	"github.com/stretchr/testify/assert"
)

// The bookings screen filters by when the booking was placed, not by the
// event date; a March booking for a June event stays visible under a March
// range.
func TestFilteredBookingsDateRangeMatchesCreation(t *testing.T) {
	booking := models.Booking{
		ID:        1,
		Status:    models.StatusPending,
		CreatedAt: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		EventDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	b := &Bot{config: testConfig(), bookings: &fakeBookingService{bookings: []models.Booking{booking}}}

	view := collection.NewViewState(10)
	view.SetDates(collection.DateRange{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.Len(t, b.filteredBookings(view), 1)

	view.SetDates(collection.DateRange{
		Start: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
	})
	assert.Empty(t, b.filteredBookings(view))
}

func TestFilteredBookingsExcludesHistory(t *testing.T) {
	b := &Bot{config: testConfig(), bookings: &fakeBookingService{bookings: []models.Booking{
		{ID: 1, Status: models.StatusPending},
		{ID: 2, Status: models.StatusCompleted},
		{ID: 3, Status: models.StatusCancelled},
	}}}

	got := b.filteredBookings(collection.NewViewState(10))
	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"banket/internal/events"
	"banket/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedBookings() []models.Booking {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return []models.Booking{
		{ID: 1, UserID: 100, Status: models.StatusPending, TotalPrice: 500, EventDate: date},
		{ID: 2, UserID: 101, Status: models.StatusPending, TotalPrice: 300, EventDate: date.AddDate(0, 0, 1)},
		{ID: 3, UserID: 102, Status: models.StatusConfirmed, TotalPrice: 700, EventDate: date.AddDate(0, 0, 2)},
		{ID: 4, UserID: 103, Status: models.StatusCompleted, TotalPrice: 900, EventDate: date.AddDate(0, -1, 0)},
		{ID: 5, UserID: 104, Status: models.StatusCancelled, TotalPrice: 200, EventDate: date.AddDate(0, -2, 0)},
	}
}

func serverStats() models.BookingStats {
	return models.BookingStats{Total: 5, Pending: 2, Confirmed: 1, Completed: 1, Cancelled: 1, Revenue: 2600}
}

func TestBookingServiceHistoryPartition(t *testing.T) {
	backend := new(mockBackend)
	backend.On("ListBookings", mock.Anything).Return(seedBookings(), nil)
	backend.On("BookingStats", mock.Anything).Return(serverStats(), nil)

	svc := NewBookingService(backend, nil, nil, testLogger())
	require.NoError(t, svc.Refresh(context.Background()))

	history := svc.History()
	require.Len(t, history, 2)
	for _, b := range history {
		assert.True(t, b.InHistory())
	}

	// Partition is disjoint: no booking appears on both sides.
	active := 0
	for _, b := range svc.Bookings() {
		if !b.InHistory() {
			active++
		}
	}
	assert.Equal(t, len(svc.Bookings()), active+len(history))
}

func TestBookingServiceUpdateStatus(t *testing.T) {
	backend := new(mockBackend)
	backend.On("ListBookings", mock.Anything).Return(seedBookings(), nil)
	backend.On("BookingStats", mock.Anything).Return(serverStats(), nil)
	backend.On("UpdateBookingStatus", mock.Anything, int64(1), models.StatusConfirmed).Return(nil)

	bus := events.NewEventBus()
	var published []events.BookingEventPayload
	bus.Subscribe(events.EventBookingConfirmed, func(ev *events.Event) error {
		var p events.BookingEventPayload
		require.NoError(t, json.Unmarshal(ev.Payload, &p))
		published = append(published, p)
		return nil
	})

	svc := NewBookingService(backend, bus, nil, testLogger())
	require.NoError(t, svc.Refresh(context.Background()))

	require.NoError(t, svc.UpdateStatus(context.Background(), 1, models.StatusConfirmed, 42))

	got, ok := svc.Get(1)
	require.True(t, ok)
	assert.Equal(t, models.StatusConfirmed, got.Status)

	require.Len(t, published, 1)
	assert.Equal(t, int64(1), published[0].BookingID)
	assert.Equal(t, int64(100), published[0].UserID)
	assert.Equal(t, models.StatusConfirmed, published[0].Status)
	assert.Equal(t, models.StatusPending, published[0].PrevStatus)
	assert.Equal(t, int64(42), published[0].ChangedBy)
}

func TestBookingServiceUpdateStatusRejectsUnknown(t *testing.T) {
	backend := new(mockBackend)
	svc := NewBookingService(backend, nil, nil, testLogger())

	err := svc.UpdateStatus(context.Background(), 1, "archived", 42)
	assert.ErrorIs(t, err, ErrUnknownStatus)
	backend.AssertNotCalled(t, "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingServiceUpdateStatusBackendFailure(t *testing.T) {
	backend := new(mockBackend)
	backend.On("ListBookings", mock.Anything).Return(seedBookings(), nil)
	backend.On("BookingStats", mock.Anything).Return(serverStats(), nil)
	backend.On("UpdateBookingStatus", mock.Anything, int64(1), models.StatusConfirmed).Return(errors.New("rejected"))

	svc := NewBookingService(backend, nil, nil, testLogger())
	require.NoError(t, svc.Refresh(context.Background()))

	require.Error(t, svc.UpdateStatus(context.Background(), 1, models.StatusConfirmed, 42))

	// The local record keeps its server-confirmed status.
	got, _ := svc.Get(1)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestBookingServiceCancelGuards(t *testing.T) {
	backend := new(mockBackend)
	backend.On("ListBookings", mock.Anything).Return(seedBookings(), nil)
	backend.On("BookingStats", mock.Anything).Return(serverStats(), nil)

	svc := NewBookingService(backend, nil, nil, testLogger())
	require.NoError(t, svc.Refresh(context.Background()))

	// Confirmed bookings are out of reach for the cancel specialization.
	assert.ErrorIs(t, svc.Cancel(context.Background(), 3, 42), ErrNotCancellable)
	assert.ErrorIs(t, svc.Cancel(context.Background(), 999, 42), ErrNotLoaded)
	backend.AssertNotCalled(t, "CancelBooking", mock.Anything, mock.Anything)
}

func TestBookingServiceCancelPending(t *testing.T) {
	backend := new(mockBackend)
	backend.On("ListBookings", mock.Anything).Return(seedBookings(), nil)
	backend.On("BookingStats", mock.Anything).Return(serverStats(), nil)
	backend.On("CancelBooking", mock.Anything, int64(2)).Return(nil)

	svc := NewBookingService(backend, nil, nil, testLogger())
	require.NoError(t, svc.Refresh(context.Background()))

	require.NoError(t, svc.Cancel(context.Background(), 2, 42))

	got, _ := svc.Get(2)
	assert.Equal(t, models.StatusCancelled, got.Status)
	assert.True(t, got.InHistory())
}

func TestBookingServiceStatsDegrade(t *testing.T) {
	backend := new(mockBackend)
	backend.On("ListBookings", mock.Anything).Return(seedBookings(), nil)
	backend.On("BookingStats", mock.Anything).Return(models.BookingStats{}, errors.New("stats down"))

	svc := NewBookingService(backend, nil, nil, testLogger())
	require.NoError(t, svc.Refresh(context.Background()))

	// Collection loaded, stats endpoint down: counters recomputed locally.
	assert.True(t, svc.StatsDegraded())
	stats := svc.Stats()
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.Confirmed)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Cancelled)
	assert.InDelta(t, 2600, stats.Revenue, 0.001)
}

func TestBookingServiceStatsFromServer(t *testing.T) {
	backend := new(mockBackend)
	backend.On("ListBookings", mock.Anything).Return(seedBookings(), nil)
	backend.On("BookingStats", mock.Anything).Return(serverStats(), nil)

	svc := NewBookingService(backend, nil, nil, testLogger())
	require.NoError(t, svc.Refresh(context.Background()))

	assert.False(t, svc.StatsDegraded())
	assert.Equal(t, serverStats(), svc.Stats())
}

package service

import (
	"context"
	"sync"
	"time"

	"banket/internal/collection"
	"banket/internal/domain"
	"banket/internal/events"
	"banket/internal/metrics"
	"banket/internal/models"

	"github.com/rs/zerolog"
)

// BookingService owns the bookings raw collection and dispatches status
// transitions. The "all bookings" and "order history" screens are disjoint
// partitions of the same collection: history hard-restricts to
// completed/cancelled before any operator-chosen filter applies.
//
// Per-status aggregate counters are refetch-only: after a transition they
// are reloaded from /booking/stats, degrading to a local recomputation
// when that endpoint is down.
type BookingService struct {
	backend   domain.Backend
	store     *collection.Store[models.Booking]
	bus       domain.EventPublisher
	refresher domain.RefreshScheduler
	logger    *zerolog.Logger

	statsMu    sync.RWMutex
	stats      models.BookingStats
	statsLocal bool // true when stats were recomputed locally (degraded)
}

func NewBookingService(backend domain.Backend, bus domain.EventPublisher, refresher domain.RefreshScheduler, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		backend:   backend,
		store:     collection.NewStore[models.Booking](),
		bus:       bus,
		refresher: refresher,
		logger:    logger,
	}
}

// Refresh fetches the full collection and the aggregate counters.
func (s *BookingService) Refresh(ctx context.Context) error {
	gen := s.store.Begin()
	bookings, err := s.backend.ListBookings(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("bookings fetch failed")
		return err
	}
	if !s.store.Replace(gen, bookings) {
		s.logger.Debug().Uint64("generation", gen).Msg("stale bookings fetch discarded")
		return nil
	}
	s.RefreshStats(ctx)
	return nil
}

// RefreshStats reloads aggregate counters from the backend. A failing
// stats endpoint is a partial-dependency failure: the counters degrade to
// a local recomputation instead of failing the screen.
func (s *BookingService) RefreshStats(ctx context.Context) {
	stats, err := s.backend.BookingStats(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("booking stats endpoint failed, recomputing locally")
		stats = s.localStats()
		s.setStats(stats, true)
		return
	}
	s.setStats(stats, false)
}

func (s *BookingService) setStats(stats models.BookingStats, local bool) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	s.stats = stats
	s.statsLocal = local
}

// localStats recomputes the same shape from the unfiltered collection.
func (s *BookingService) localStats() models.BookingStats {
	bookings := s.store.Items()
	byStatus := collection.CountBy(bookings, func(b models.Booking) string { return b.Status })
	return models.BookingStats{
		Total:     len(bookings),
		Pending:   byStatus[models.StatusPending],
		Confirmed: byStatus[models.StatusConfirmed],
		Completed: byStatus[models.StatusCompleted],
		Cancelled: byStatus[models.StatusCancelled],
		Revenue:   collection.Sum(bookings, func(b models.Booking) float64 { return b.TotalPrice }),
	}
}

// Bookings returns the raw collection in fetch order.
func (s *BookingService) Bookings() []models.Booking {
	return s.store.Items()
}

// History returns the completed/cancelled partition of the collection.
func (s *BookingService) History() []models.Booking {
	return collection.Filter(s.store.Items(), func(b models.Booking) bool { return b.InHistory() })
}

// Get returns a booking by id from the local collection.
func (s *BookingService) Get(id int64) (models.Booking, bool) {
	return s.store.Find(func(b models.Booking) bool { return b.ID == id })
}

// Stats returns the last loaded aggregate counters.
func (s *BookingService) Stats() models.BookingStats {
	s.statsMu.RLock()
	defer s.statsMu.RUnlock()
	return s.stats
}

// StatsDegraded reports whether the counters came from the local fallback.
func (s *BookingService) StatsDegraded() bool {
	s.statsMu.RLock()
	defer s.statsMu.RUnlock()
	return s.statsLocal
}

// UpdateStatus transitions a booking to one of the fixed statuses. On
// success the record is patched in place, per-status counters are
// reloaded, and a status event is published; the notification subscriber
// reacts to that event best-effort.
func (s *BookingService) UpdateStatus(ctx context.Context, id int64, status string, changedBy int64) error {
	if !models.IsValidStatus(status) {
		return ErrUnknownStatus
	}

	prev, _ := s.Get(id)

	if err := s.backend.UpdateBookingStatus(ctx, id, status); err != nil {
		s.logger.Error().Err(err).Int64("booking_id", id).Str("status", status).Msg("status update failed")
		return err
	}

	s.store.Patch(
		func(b models.Booking) bool { return b.ID == id },
		func(b *models.Booking) {
			b.Status = status
			b.UpdatedAt = time.Now()
		},
	)
	metrics.IncMutation("booking", "status_"+status)
	s.RefreshStats(ctx)
	s.publishStatus(id, prev, status, changedBy)
	return nil
}

// Cancel is the pending-to-cancelled specialization, using the dedicated
// admin cancel route. The confirmation step lives in the UI.
func (s *BookingService) Cancel(ctx context.Context, id int64, changedBy int64) error {
	booking, ok := s.Get(id)
	if !ok {
		return ErrNotLoaded
	}
	if booking.Status != models.StatusPending {
		return ErrNotCancellable
	}

	if err := s.backend.CancelBooking(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("booking_id", id).Msg("cancel failed")
		return err
	}

	s.store.Patch(
		func(b models.Booking) bool { return b.ID == id },
		func(b *models.Booking) {
			b.Status = models.StatusCancelled
			b.UpdatedAt = time.Now()
		},
	)
	metrics.IncMutation("booking", "cancel")
	s.RefreshStats(ctx)
	s.publishStatus(id, booking, models.StatusCancelled, changedBy)
	return nil
}

func (s *BookingService) publishStatus(id int64, prev models.Booking, status string, changedBy int64) {
	if s.bus == nil {
		return
	}
	payload := events.BookingEventPayload{
		BookingID:  id,
		UserID:     prev.UserID,
		Status:     status,
		PrevStatus: prev.Status,
		EventDate:  prev.EventDate,
		ChangedBy:  changedBy,
	}
	if err := s.bus.PublishJSON(events.StatusEventType(status), payload); err != nil {
		s.logger.Error().Err(err).Int64("booking_id", id).Msg("publish event error")
	}
}

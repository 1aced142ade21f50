package service

import (
	"context"
	"fmt"

	"banket/internal/collection"
	"banket/internal/domain"
	"banket/internal/metrics"
	"banket/internal/models"

	"github.com/rs/zerolog"
)

// NotificationService owns the admin notifications collection and carries
// the side channel that tells a customer about a booking status change.
type NotificationService struct {
	backend domain.Backend
	store   *collection.Store[models.Notification]
	logger  *zerolog.Logger
}

func NewNotificationService(backend domain.Backend, logger *zerolog.Logger) *NotificationService {
	return &NotificationService{
		backend: backend,
		store:   collection.NewStore[models.Notification](),
		logger:  logger,
	}
}

// StatusMessage builds the user-facing copy for a status transition.
// Confirmed, completed and cancelled have bespoke copy; any other value
// falls through to the generic template.
func StatusMessage(status string) (title, content string) {
	switch status {
	case models.StatusConfirmed:
		return "Booking confirmed", "Good news! Your booking has been confirmed. We look forward to seeing you."
	case models.StatusCompleted:
		return "Booking completed", "Your booking has been completed. Thank you for celebrating with us!"
	case models.StatusCancelled:
		return "Booking cancelled", "Your booking has been cancelled. Contact us if you believe this is a mistake."
	}
	return "Booking updated", fmt.Sprintf("The status of your booking was updated to %q.", status)
}

// NotifyStatusChange delivers the status-change message, best-effort.
// The transport already retries the one documented fallback route; any
// remaining failure is logged and swallowed so it can never roll back or
// fail the status update it follows.
func (s *NotificationService) NotifyStatusChange(ctx context.Context, userID, bookingID int64, status string) {
	title, content := StatusMessage(status)
	draft := models.NotificationDraft{
		UserID:    userID,
		Title:     title,
		Content:   content,
		Type:      models.NotificationBookingStatus,
		BookingID: bookingID,
	}
	if err := s.backend.CreateNotification(ctx, draft); err != nil {
		s.logger.Error().Err(err).
			Int64("booking_id", bookingID).
			Int64("user_id", userID).
			Str("status", status).
			Msg("status notification delivery failed")
		return
	}
	metrics.IncMutation("notification", "create")
}

// Refresh fetches the admin notification feed.
func (s *NotificationService) Refresh(ctx context.Context) error {
	gen := s.store.Begin()
	notifications, err := s.backend.ListAdminNotifications(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("notifications fetch failed")
		return err
	}
	s.store.Replace(gen, notifications)
	return nil
}

// Notifications returns the feed in fetch order.
func (s *NotificationService) Notifications() []models.Notification {
	return s.store.Items()
}

// ToggleRead flips one notification's read flag, patching locally after
// server confirmation.
func (s *NotificationService) ToggleRead(ctx context.Context, id int64) error {
	if err := s.backend.ToggleNotificationRead(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("notification_id", id).Msg("toggle read failed")
		return err
	}
	s.store.Patch(
		func(n models.Notification) bool { return n.ID == id },
		func(n *models.Notification) { n.Read = !n.Read },
	)
	return nil
}

// MarkAllRead batch-marks every currently unread notification.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	var ids []int64
	for _, n := range s.store.Items() {
		if !n.Read {
			ids = append(ids, n.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	if err := s.backend.BatchUpdateNotificationRead(ctx, ids, true); err != nil {
		s.logger.Error().Err(err).Int("count", len(ids)).Msg("batch read update failed")
		return err
	}
	for _, id := range ids {
		s.store.Patch(
			func(n models.Notification) bool { return n.ID == id },
			func(n *models.Notification) { n.Read = true },
		)
	}
	return nil
}

// Delete removes one notification.
func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	if err := s.backend.DeleteNotification(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("notification_id", id).Msg("notification delete failed")
		return err
	}
	s.store.Remove(func(n models.Notification) bool { return n.ID == id })
	return nil
}

// DeleteRead batch-deletes every already-read notification.
func (s *NotificationService) DeleteRead(ctx context.Context) error {
	var ids []int64
	for _, n := range s.store.Items() {
		if n.Read {
			ids = append(ids, n.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	if err := s.backend.BatchDeleteNotifications(ctx, ids); err != nil {
		s.logger.Error().Err(err).Int("count", len(ids)).Msg("batch delete failed")
		return err
	}
	for _, id := range ids {
		s.store.Remove(func(n models.Notification) bool { return n.ID == id })
	}
	return nil
}

// Broadcast sends an announcement to every platform user.
func (s *NotificationService) Broadcast(ctx context.Context, title, content string) error {
	if err := s.backend.BroadcastNotification(ctx, title, content); err != nil {
		s.logger.Error().Err(err).Msg("broadcast failed")
		return err
	}
	metrics.IncMutation("notification", "broadcast")
	return nil
}

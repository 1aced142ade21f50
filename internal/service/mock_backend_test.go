package service

import (
	"context"

	"banket/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) ListPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}
func (m *mockBackend) GetPost(ctx context.Context, id int64) (models.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Post), args.Error(1)
}
func (m *mockBackend) CreatePost(ctx context.Context, draft models.PostDraft) (models.Post, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(models.Post), args.Error(1)
}
func (m *mockBackend) UpdatePost(ctx context.Context, id int64, draft models.PostDraft) (models.Post, error) {
	args := m.Called(ctx, id, draft)
	return args.Get(0).(models.Post), args.Error(1)
}
func (m *mockBackend) DeletePost(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockBackend) BookingStats(ctx context.Context) (models.BookingStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.BookingStats), args.Error(1)
}
func (m *mockBackend) ListBookings(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}
func (m *mockBackend) GetBooking(ctx context.Context, id int64) (models.Booking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Booking), args.Error(1)
}
func (m *mockBackend) CancelBooking(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockBackend) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *mockBackend) CreateNotification(ctx context.Context, draft models.NotificationDraft) error {
	return m.Called(ctx, draft).Error(0)
}
func (m *mockBackend) ListAdminNotifications(ctx context.Context) ([]models.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}
func (m *mockBackend) ToggleNotificationRead(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockBackend) BatchUpdateNotificationRead(ctx context.Context, ids []int64, read bool) error {
	return m.Called(ctx, ids, read).Error(0)
}
func (m *mockBackend) DeleteNotification(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockBackend) BatchDeleteNotifications(ctx context.Context, ids []int64) error {
	return m.Called(ctx, ids).Error(0)
}
func (m *mockBackend) BroadcastNotification(ctx context.Context, title, content string) error {
	return m.Called(ctx, title, content).Error(0)
}
func (m *mockBackend) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Feedback), args.Error(1)
}
func (m *mockBackend) ListPostFeedback(ctx context.Context, postID int64) ([]models.Feedback, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Feedback), args.Error(1)
}
func (m *mockBackend) Profile(ctx context.Context) (models.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Account), args.Error(1)
}
func (m *mockBackend) ListUsers(ctx context.Context) ([]models.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}
func (m *mockBackend) SetRole(ctx context.Context, username, role string) error {
	return m.Called(ctx, username, role).Error(0)
}

type mockScheduler struct {
	mock.Mock
}

func (m *mockScheduler) Schedule(task string) {
	m.Called(task)
}

package domain

import (
	"context"
	"time"

	"banket/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Backend is the platform REST API surface this console consumes.
type Backend interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, id int64) (models.Post, error)
	CreatePost(ctx context.Context, draft models.PostDraft) (models.Post, error)
	UpdatePost(ctx context.Context, id int64, draft models.PostDraft) (models.Post, error)
	DeletePost(ctx context.Context, id int64) error

	BookingStats(ctx context.Context) (models.BookingStats, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	GetBooking(ctx context.Context, id int64) (models.Booking, error)
	CancelBooking(ctx context.Context, id int64) error
	UpdateBookingStatus(ctx context.Context, id int64, status string) error

	CreateNotification(ctx context.Context, draft models.NotificationDraft) error
	ListAdminNotifications(ctx context.Context) ([]models.Notification, error)
	ToggleNotificationRead(ctx context.Context, id int64) error
	BatchUpdateNotificationRead(ctx context.Context, ids []int64, read bool) error
	DeleteNotification(ctx context.Context, id int64) error
	BatchDeleteNotifications(ctx context.Context, ids []int64) error
	BroadcastNotification(ctx context.Context, title, content string) error

	ListFeedback(ctx context.Context) ([]models.Feedback, error)
	ListPostFeedback(ctx context.Context, postID int64) ([]models.Feedback, error)

	Profile(ctx context.Context) (models.Account, error)
	ListUsers(ctx context.Context) ([]models.Account, error)
	SetRole(ctx context.Context, username, role string) error
}

// SessionRepository stores operator session state and UI preferences.
type SessionRepository interface {
	GetSession(ctx context.Context, chatID int64) (*models.Session, error)
	SetSession(ctx context.Context, session *models.Session) error
	ClearSession(ctx context.Context, chatID int64) error
	GetPreferences(ctx context.Context, chatID int64) (*models.Preferences, error)
	SetPreferences(ctx context.Context, prefs *models.Preferences) error
	CheckRateLimit(ctx context.Context, chatID int64, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// RefreshScheduler enqueues a named background refetch (best-effort).
type RefreshScheduler interface {
	Schedule(task string)
}

type PostService interface {
	Refresh(ctx context.Context) error
	Posts() []models.Post
	Get(id int64) (models.Post, bool)
	Stats() models.PostStats
	Create(ctx context.Context, draft models.PostDraft) (models.Post, error)
	Update(ctx context.Context, id int64, draft models.PostDraft) (models.Post, error)
	Delete(ctx context.Context, id int64) error
}

type BookingService interface {
	Refresh(ctx context.Context) error
	RefreshStats(ctx context.Context)
	Bookings() []models.Booking
	History() []models.Booking
	Get(id int64) (models.Booking, bool)
	Stats() models.BookingStats
	StatsDegraded() bool
	UpdateStatus(ctx context.Context, id int64, status string, changedBy int64) error
	Cancel(ctx context.Context, id int64, changedBy int64) error
}

type FeedbackService interface {
	Refresh(ctx context.Context) error
	Feedback() []models.Feedback
	ForPost(ctx context.Context, postID int64) ([]models.Feedback, error)
	Stats() models.FeedbackStats
}

type NotificationService interface {
	Refresh(ctx context.Context) error
	Notifications() []models.Notification
	NotifyStatusChange(ctx context.Context, userID, bookingID int64, status string)
	ToggleRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id int64) error
	DeleteRead(ctx context.Context) error
	Broadcast(ctx context.Context, title, content string) error
}

type UserService interface {
	Refresh(ctx context.Context) error
	Users() []models.Account
	Profile(ctx context.Context) (models.Account, error)
	SetRole(ctx context.Context, username, role string) error
	AdminCount() int
}

type PreferencesService interface {
	Get(ctx context.Context, chatID int64) (models.Preferences, error)
	SetDarkMode(ctx context.Context, chatID int64, dark bool) error
	Subscribe(fn func(models.Preferences))
}

type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

type TelegramService interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	SendMessage(chatID int64, text string) (tgbotapi.Message, error)
	SendMarkdown(chatID int64, text string) (tgbotapi.Message, error)
	SendWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	EditMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	AnswerCallback(callbackID string, text string) error
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

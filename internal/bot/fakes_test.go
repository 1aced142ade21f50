package bot

import (
	"context"

	"banket/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// fakePostService serves a fixed collection and records mutations for
// view-derivation and wizard tests.
type fakePostService struct {
	posts   []models.Post
	created []models.PostDraft
	updated map[int64]models.PostDraft
}

func (f *fakePostService) Refresh(ctx context.Context) error { return nil }
func (f *fakePostService) Posts() []models.Post              { return f.posts }

func (f *fakePostService) Get(id int64) (models.Post, bool) {
	for _, p := range f.posts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

func (f *fakePostService) Stats() models.PostStats {
	stats := models.PostStats{Total: len(f.posts), ByCategory: map[string]int{}}
	for _, p := range f.posts {
		if p.IsSpecial {
			stats.Special++
		}
		stats.ByCategory[p.Category]++
	}
	return stats
}

func (f *fakePostService) Create(ctx context.Context, draft models.PostDraft) (models.Post, error) {
	f.created = append(f.created, draft)
	return models.Post{ID: int64(100 + len(f.created)), Title: draft.Title}, nil
}

func (f *fakePostService) Update(ctx context.Context, id int64, draft models.PostDraft) (models.Post, error) {
	if f.updated == nil {
		f.updated = map[int64]models.PostDraft{}
	}
	f.updated[id] = draft
	return models.Post{ID: id, Title: draft.Title}, nil
}

func (f *fakePostService) Delete(ctx context.Context, id int64) error { return nil }

// fakeBookingService serves a fixed collection for view-derivation tests.
type fakeBookingService struct {
	bookings []models.Booking
}

func (f *fakeBookingService) Refresh(ctx context.Context) error { return nil }
func (f *fakeBookingService) RefreshStats(ctx context.Context)  {}
func (f *fakeBookingService) Bookings() []models.Booking        { return f.bookings }
func (f *fakeBookingService) StatsDegraded() bool               { return false }
func (f *fakeBookingService) Stats() models.BookingStats        { return models.BookingStats{} }

func (f *fakeBookingService) History() []models.Booking {
	var history []models.Booking
	for _, bk := range f.bookings {
		if bk.InHistory() {
			history = append(history, bk)
		}
	}
	return history
}

func (f *fakeBookingService) Get(id int64) (models.Booking, bool) {
	for _, bk := range f.bookings {
		if bk.ID == id {
			return bk, true
		}
	}
	return models.Booking{}, false
}

func (f *fakeBookingService) UpdateStatus(ctx context.Context, id int64, status string, changedBy int64) error {
	return nil
}

func (f *fakeBookingService) Cancel(ctx context.Context, id int64, changedBy int64) error {
	return nil
}

// fakeTelegram swallows outgoing traffic and keeps the message texts.
type fakeTelegram struct {
	messages []string
}

func (f *fakeTelegram) record(text string) (tgbotapi.Message, error) {
	f.messages = append(f.messages, text)
	return tgbotapi.Message{}, nil
}

func (f *fakeTelegram) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return tgbotapi.Message{}, nil
}

func (f *fakeTelegram) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeTelegram) SendMessage(chatID int64, text string) (tgbotapi.Message, error) {
	return f.record(text)
}

func (f *fakeTelegram) SendMarkdown(chatID int64, text string) (tgbotapi.Message, error) {
	return f.record(text)
}

func (f *fakeTelegram) SendWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	return f.record(text)
}

func (f *fakeTelegram) EditMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	return f.record(text)
}

func (f *fakeTelegram) AnswerCallback(callbackID string, text string) error { return nil }

func (f *fakeTelegram) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return nil
}

func (f *fakeTelegram) GetSelf() tgbotapi.User { return tgbotapi.User{} }

func (f *fakeTelegram) StopReceivingUpdates() {}

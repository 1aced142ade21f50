package bot

import (
	"context"

	"banket/internal/models"

	"github.com/rs/zerolog"
)

// loadSession returns the chat's session, starting a fresh one on the main
// screen when none is stored or the store is unreachable.
func (b *Bot) loadSession(ctx context.Context, chatID int64) *models.Session {
	sess, err := b.sessions.GetSession(ctx, chatID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("chat_id", chatID).Msg("Failed to load session")
	}
	if sess == nil {
		sess = &models.Session{ChatID: chatID, Screen: models.ScreenMain}
	}
	return sess
}

func (b *Bot) saveSession(ctx context.Context, sess *models.Session) {
	if err := b.sessions.SetSession(ctx, sess); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("chat_id", sess.ChatID).Msg("Failed to save session")
	}
}

// pageSize returns the configured page size for a screen.
func (b *Bot) pageSize(screen string) int {
	switch screen {
	case models.ScreenPosts:
		return b.config.UI.PostsPageSize
	case models.ScreenFeedback, models.ScreenNotifications:
		return b.config.UI.FeedbackPageSize
	}
	return b.config.UI.BookingsPageSize
}

// switchScreen moves the session to another screen. Filter and pagination
// state is ephemeral per visit: leaving a screen drops its view state, so
// the next activation starts unfiltered on page 1.
func (b *Bot) switchScreen(sess *models.Session, screen string) {
	if sess.Screen == screen {
		return
	}
	sess.DropView(sess.Screen)
	sess.Screen = screen
	sess.ClearFlow()
	if b.metrics != nil {
		b.metrics.ScreenViews.WithLabelValues(screen).Inc()
	}
}

package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"banket/internal/backend"
	"banket/internal/models"
	"banket/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Вспомогательные методы отправки и форматирования

func (b *Bot) isAdmin(userID int64) bool {
	for _, adminID := range b.config.Admins {
		if userID == adminID {
			return true
		}
	}
	return false
}

func (b *Bot) sendMessage(chatID int64, text string) {
	if _, err := b.tgService.SendMessage(chatID, text); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

// renderScreen edits the originating message when the update came from a
// callback, otherwise sends a new one. Keeps one message per screen.
func (b *Bot) renderScreen(chatID int64, messageID int, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	var err error
	if messageID != 0 {
		_, err = b.tgService.EditMessage(chatID, messageID, text, &keyboard)
	} else {
		_, err = b.tgService.SendWithInlineKeyboard(chatID, text, keyboard)
	}
	if err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to render screen")
	}
}

func (b *Bot) errorMessage(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, backend.ErrUnauthorized) {
		return "🔒 The backend rejected the console token. Check the configuration."
	}

	if errors.Is(err, backend.ErrNotFound) {
		return "⚠️ That record no longer exists on the server."
	}

	if errors.Is(err, service.ErrNotCancellable) {
		return "⚠️ Only pending bookings can be cancelled."
	}

	if errors.Is(err, service.ErrUnknownStatus) {
		return "⚠️ Unknown booking status."
	}

	if errors.Is(err, backend.ErrRejected) {
		return "⚠️ The backend refused the request. Check the entered values."
	}

	return "❌ Something went wrong talking to the backend. Please try again."
}

// refreshOnEntry reloads a collection when a screen is activated. A failed
// refetch is logged and the cached collection keeps serving the screen.
func (b *Bot) refreshOnEntry(ctx context.Context, name string, refresh func(context.Context) error) {
	if err := refresh(ctx); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("collection", name).Msg("Refresh on screen entry failed, serving cached data")
	}
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"`", "\\`",
		"[", "\\[",
	)
	return replacer.Replace(s)
}

func statusEmoji(status string) string {
	switch status {
	case models.StatusPending:
		return "⏳"
	case models.StatusConfirmed:
		return "✅"
	case models.StatusCompleted:
		return "🏁"
	case models.StatusCancelled:
		return "❌"
	}
	return "❔"
}

func paymentLabel(method string) string {
	switch method {
	case models.PaymentFIB:
		return "FIB"
	case models.PaymentFastPay:
		return "FastPay"
	case models.PaymentCash:
		return "Cash"
	}
	return method
}

func formatMoney(amount float64) string {
	return fmt.Sprintf("%.2f IQD", amount)
}

// parseDate принимает ДД.ММ.ГГГГ и ГГГГ-ММ-ДД
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"02.01.2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %s", s)
}

// parseDateRange parses "from - to"; a single date means a one-day range.
func parseDateRange(s string) (time.Time, time.Time, error) {
	parts := strings.Split(s, "-")
	if len(parts) > 2 {
		// ГГГГ-ММ-ДД содержит дефисы, пробуем разделитель с пробелами
		parts = strings.Split(s, " - ")
	}

	if len(parts) == 1 {
		day, err := parseDate(parts[0])
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return day, day, nil
	}

	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("expected one date or a range: %s", s)
	}

	start, err := parseDate(parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		start, end = end, start
	}
	return start, end, nil
}

func ratingStars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("⭐", rating)
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func bookingCustomer(booking models.Booking) string {
	if booking.User != nil && booking.User.Username != "" {
		return booking.User.Username
	}
	return fmt.Sprintf("user #%d", booking.UserID)
}

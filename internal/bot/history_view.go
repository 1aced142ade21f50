package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"banket/internal/collection"
	"banket/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleOrdersCallback(ctx context.Context, sess *models.Session, data string, messageID int) bool {
	view := sess.View(models.ScreenOrders, b.pageSize(models.ScreenOrders))

	switch {
	case strings.HasPrefix(data, cbOrdersPage):
		view.Go(parsePage(data, cbOrdersPage), len(b.filteredOrders(view)))
		b.showOrders(ctx, sess, messageID)

	case data == cbOrdersDates:
		sess.Step = models.StepDateRange
		b.sendMessage(sess.ChatID, "Send a date like 25.12.2026, or a range like 01.12.2026 - 31.12.2026 (or /cancel):")

	case data == cbOrdersReset:
		view.Reset()
		b.showOrders(ctx, sess, messageID)

	case strings.HasPrefix(data, cbOrderView):
		if id, ok := parseID(data, cbOrderView); ok {
			b.showBookingDetail(ctx, sess, id, messageID, cbOrdersPage+"1")
		}

	default:
		return false
	}
	return true
}

// filteredOrders derives the order-history view. The history partition is
// hard: only completed and cancelled bookings ever appear here.
func (b *Bot) filteredOrders(view *collection.ViewState) []models.Booking {
	return collection.Filter(b.bookings.History(),
		collection.Within(view.Dates, func(bk models.Booking) time.Time { return bk.EventDate }),
	)
}

func (b *Bot) showOrders(ctx context.Context, sess *models.Session, messageID int) {
	view := sess.View(models.ScreenOrders, b.pageSize(models.ScreenOrders))
	orders := b.filteredOrders(view)
	stats := b.bookings.Stats()

	title := fmt.Sprintf("📜 *Order history* — %d completed, %d cancelled", stats.Completed, stats.Cancelled)
	if !view.Dates.IsZero() {
		title += "\nDates: " + formatRange(view.Dates)
	}

	footer := [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData("📅 Dates", cbOrdersDates),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Reset", cbOrdersReset),
		},
	}

	renderPage(b, pageParams{
		ChatID:     sess.ChatID,
		MessageID:  messageID,
		Title:      title,
		PagePrefix: cbOrdersPage,
		Footer:     footer,
	}, view, orders, func(bk models.Booking) (string, []tgbotapi.InlineKeyboardButton) {
		line := fmt.Sprintf("%s *#%d* %s — %s · %s\n\n",
			statusEmoji(bk.Status), bk.ID, escapeMarkdown(bookingCustomer(bk)),
			bk.EventDate.Format("02.01.2006"), formatMoney(bk.TotalPrice))
		btn := tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%s #%d (%s)", statusEmoji(bk.Status), bk.ID, bk.EventDate.Format("02.01")),
			fmt.Sprintf("%s%d", cbOrderView, bk.ID),
		)
		return line, []tgbotapi.InlineKeyboardButton{btn}
	})
}

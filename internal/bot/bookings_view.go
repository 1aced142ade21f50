package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"banket/internal/collection"
	"banket/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

func (b *Bot) handleBookingsCallback(ctx context.Context, sess *models.Session, data string, messageID int) bool {
	view := sess.View(models.ScreenBookings, b.pageSize(models.ScreenBookings))

	switch {
	case strings.HasPrefix(data, cbBookingsPage):
		view.Go(parsePage(data, cbBookingsPage), len(b.filteredBookings(view)))
		b.showBookings(ctx, sess, messageID)

	case strings.HasPrefix(data, cbBookingsStatus):
		view.SetFilter("status", strings.TrimPrefix(data, cbBookingsStatus))
		b.showBookings(ctx, sess, messageID)

	case strings.HasPrefix(data, cbBookingsPay):
		view.SetFilter("payment", strings.TrimPrefix(data, cbBookingsPay))
		b.showBookings(ctx, sess, messageID)

	case data == cbBookingsDates:
		sess.Step = models.StepDateRange
		b.sendMessage(sess.ChatID, "Send a date like 25.12.2026, or a range like 01.12.2026 - 31.12.2026 (or /cancel):")

	case data == cbBookingsReset:
		view.Reset()
		b.showBookings(ctx, sess, messageID)

	case strings.HasPrefix(data, cbBookingView):
		if id, ok := parseID(data, cbBookingView); ok {
			b.showBookingDetail(ctx, sess, id, messageID, cbBookingsPage+"1")
		}

	case strings.HasPrefix(data, cbBookingStatus):
		b.applyStatusTransition(ctx, sess, strings.TrimPrefix(data, cbBookingStatus), messageID)

	case strings.HasPrefix(data, cbBookingCancel):
		if strings.HasPrefix(data, cbBookingCancelYes) {
			if id, ok := parseID(data, cbBookingCancelYes); ok {
				b.cancelBooking(ctx, sess, id, messageID)
			}
			return true
		}
		if id, ok := parseID(data, cbBookingCancel); ok {
			b.confirmBookingCancel(sess.ChatID, id, messageID)
		}

	default:
		return false
	}
	return true
}

// filteredBookings derives the active bookings view: status, payment and
// date constraints ANDed together over the live partition. The date range
// here matches on when the booking was placed; the history screen is the
// one that filters by event date.
func (b *Bot) filteredBookings(view *collection.ViewState) []models.Booking {
	active := collection.Filter(b.bookings.Bookings(),
		func(bk models.Booking) bool { return !bk.InHistory() })

	return collection.Filter(active,
		collection.Equals(view.Filter("status"), func(bk models.Booking) string { return bk.Status }),
		collection.Equals(view.Filter("payment"), func(bk models.Booking) string { return bk.PaymentMethod }),
		collection.Within(view.Dates, func(bk models.Booking) time.Time { return bk.CreatedAt }),
	)
}

func (b *Bot) showBookings(ctx context.Context, sess *models.Session, messageID int) {
	view := sess.View(models.ScreenBookings, b.pageSize(models.ScreenBookings))
	bookings := b.filteredBookings(view)
	stats := b.bookings.Stats()

	title := fmt.Sprintf("📋 *Bookings* — %d pending, %d confirmed", stats.Pending, stats.Confirmed)
	if s := view.Filter("status"); s != collection.All {
		title += "\nStatus: " + s
	}
	if p := view.Filter("payment"); p != collection.All {
		title += "\nPayment: " + paymentLabel(p)
	}
	if !view.Dates.IsZero() {
		title += "\nDates: " + formatRange(view.Dates)
	}

	footer := [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData("⏳ Pending", cbBookingsStatus+models.StatusPending),
			tgbotapi.NewInlineKeyboardButtonData("✅ Confirmed", cbBookingsStatus+models.StatusConfirmed),
			tgbotapi.NewInlineKeyboardButtonData("All", cbBookingsStatus+collection.All),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("FIB", cbBookingsPay+models.PaymentFIB),
			tgbotapi.NewInlineKeyboardButtonData("FastPay", cbBookingsPay+models.PaymentFastPay),
			tgbotapi.NewInlineKeyboardButtonData("Cash", cbBookingsPay+models.PaymentCash),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("📅 Dates", cbBookingsDates),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Reset", cbBookingsReset),
			tgbotapi.NewInlineKeyboardButtonData("💾 Export", cbExport),
		},
	}

	renderPage(b, pageParams{
		ChatID:     sess.ChatID,
		MessageID:  messageID,
		Title:      title,
		PagePrefix: cbBookingsPage,
		Footer:     footer,
	}, view, bookings, func(bk models.Booking) (string, []tgbotapi.InlineKeyboardButton) {
		line := fmt.Sprintf("%s *#%d* %s — %s\n%s · %s\n\n",
			statusEmoji(bk.Status), bk.ID, escapeMarkdown(bookingCustomer(bk)),
			bk.EventDate.Format("02.01.2006"),
			formatMoney(bk.TotalPrice), paymentLabel(bk.PaymentMethod))
		btn := tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%s #%d %s (%s)", statusEmoji(bk.Status), bk.ID, truncate(bookingCustomer(bk), 20), bk.EventDate.Format("02.01")),
			fmt.Sprintf("%s%d", cbBookingView, bk.ID),
		)
		return line, []tgbotapi.InlineKeyboardButton{btn}
	})
}

func (b *Bot) showBookingDetail(ctx context.Context, sess *models.Session, id int64, messageID int, backData string) {
	booking, ok := b.bookings.Get(id)
	if !ok {
		b.sendMessage(sess.ChatID, "⚠️ That booking is no longer in the list.")
		b.showBookings(ctx, sess, messageID)
		return
	}

	var text strings.Builder
	fmt.Fprintf(&text, "%s *Booking #%d* — %s\n\n", statusEmoji(booking.Status), booking.ID, booking.Status)
	fmt.Fprintf(&text, "👤 %s", escapeMarkdown(bookingCustomer(booking)))
	if booking.User != nil && booking.User.Email != "" {
		fmt.Fprintf(&text, " (%s)", escapeMarkdown(booking.User.Email))
	}
	text.WriteString("\n")
	fmt.Fprintf(&text, "📅 Event: %s\n", booking.EventDate.Format("02.01.2006"))
	fmt.Fprintf(&text, "💵 %s · %s\n", formatMoney(booking.TotalPrice), paymentLabel(booking.PaymentMethod))
	fmt.Fprintf(&text, "📞 %s\n", escapeMarkdown(booking.PhoneNumber))
	fmt.Fprintf(&text, "📍 %s\n", escapeMarkdown(booking.Address))
	if booking.Latitude != nil && booking.Longitude != nil {
		fmt.Fprintf(&text, "🗺 %.6f, %.6f\n", *booking.Latitude, *booking.Longitude)
	}
	if booking.ImageProof != "" {
		text.WriteString("🧾 Payment proof attached\n")
	}
	if booking.Post != nil {
		fmt.Fprintf(&text, "📦 %s\n", escapeMarkdown(booking.Post.Title))
	}
	fmt.Fprintf(&text, "Created: %s\n", booking.CreatedAt.Format("02.01.2006 15:04"))

	var rows [][]tgbotapi.InlineKeyboardButton
	switch booking.Status {
	case models.StatusPending:
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("✅ Confirm",
				fmt.Sprintf("%s%d:%s", cbBookingStatus, booking.ID, models.StatusConfirmed)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel",
				fmt.Sprintf("%s%d", cbBookingCancel, booking.ID)),
		})
	case models.StatusConfirmed:
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🏁 Complete",
				fmt.Sprintf("%s%d:%s", cbBookingStatus, booking.ID, models.StatusCompleted)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel",
				fmt.Sprintf("%s%d:%s", cbBookingStatus, booking.ID, models.StatusCancelled)),
		})
	}
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", backData),
	})

	b.renderScreen(sess.ChatID, messageID, text.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// applyStatusTransition handles "<id>:<status>" callback payloads.
func (b *Bot) applyStatusTransition(ctx context.Context, sess *models.Session, payload string, messageID int) {
	parts := strings.SplitN(payload, ":", 2)
	if len(parts) != 2 {
		return
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return
	}
	status := parts[1]

	if err := b.bookings.UpdateStatus(ctx, id, status, sess.ChatID); err != nil {
		b.sendMessage(sess.ChatID, b.errorMessage(err))
		return
	}

	zerolog.Ctx(ctx).Info().Int64("booking_id", id).Str("status", status).Int64("changed_by", sess.ChatID).Msg("Booking status changed")
	b.sendMessage(sess.ChatID, fmt.Sprintf("%s Booking #%d is now %s.", statusEmoji(status), id, status))
	b.showBookingDetail(ctx, sess, id, messageID, cbBookingsPage+"1")
}

func (b *Bot) confirmBookingCancel(chatID int64, id int64, messageID int) {
	text := fmt.Sprintf("Cancel booking #%d? The customer will be notified.", id)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Yes, cancel", fmt.Sprintf("%s%d", cbBookingCancelYes, id)),
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Keep it", fmt.Sprintf("%s%d", cbBookingView, id)),
		),
	)
	b.renderScreen(chatID, messageID, text, keyboard)
}

func (b *Bot) cancelBooking(ctx context.Context, sess *models.Session, id int64, messageID int) {
	if err := b.bookings.Cancel(ctx, id, sess.ChatID); err != nil {
		b.sendMessage(sess.ChatID, b.errorMessage(err))
		return
	}
	b.sendMessage(sess.ChatID, fmt.Sprintf("❌ Booking #%d cancelled.", id))
	b.showBookings(ctx, sess, messageID)
}

func formatRange(r collection.DateRange) string {
	const layout = "02.01.2006"
	switch {
	case r.Start.IsZero():
		return "until " + r.End.Format(layout)
	case r.End.IsZero():
		return "from " + r.Start.Format(layout)
	}
	return r.Start.Format(layout) + " - " + r.End.Format(layout)
}

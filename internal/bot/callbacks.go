package bot

import (
	"context"
	"strconv"
	"strings"

	"banket/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Callback data layout. Prefixes end with ':' when an argument follows.
const (
	cbBackToMain = "back_to_main"
	cbMenuPrefix = "menu:"
	cbStats      = "stats"
	cbExport     = "export_bookings"
	cbDarkToggle = "darkmode_toggle"

	cbPostsPage     = "posts_page:"
	cbPostsCat      = "posts_cat:"
	cbPostsType     = "posts_type:"
	cbPostsReset    = "posts_reset"
	cbPostView      = "post_view:"
	cbPostEdit      = "post_edit:"
	cbPostCreate    = "post_create"
	cbPostDelete    = "post_delete:"
	cbPostDeleteYes = "post_delete_yes:"

	cbBookingsPage     = "bookings_page:"
	cbBookingsStatus   = "bookings_status:"
	cbBookingsPay      = "bookings_pay:"
	cbBookingsDates    = "bookings_dates"
	cbBookingsReset    = "bookings_reset"
	cbBookingView      = "booking_view:"
	cbBookingStatus    = "booking_status:" // <id>:<status>
	cbBookingCancel    = "booking_cancel:"
	cbBookingCancelYes = "booking_cancel_yes:"

	cbOrdersPage  = "orders_page:"
	cbOrdersDates = "orders_dates"
	cbOrdersReset = "orders_reset"
	cbOrderView   = "order_view:"

	cbFeedbackPage = "feedback_page:"
	cbFeedbackPost = "feedback_post:"

	cbNotifPage      = "notif_page:"
	cbNotifToggle    = "notif_toggle:"
	cbNotifReadAll   = "notif_read_all"
	cbNotifDelete    = "notif_delete:"
	cbNotifClearRead = "notif_clear_read"
	cbNotifBroadcast = "notif_broadcast"

	cbUsersPage = "users_page:"
	cbUserRole  = "user_role:"
)

func (b *Bot) handleCallbackQuery(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	data := callback.Data
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID

	// Отвечаем на callback сразу, чтобы убрать "часики"
	if err := b.tgService.AnswerCallback(callback.ID, ""); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("Answer callback failed")
	}

	sess := b.loadSession(ctx, chatID)
	defer b.saveSession(ctx, sess)

	switch {
	case data == cbBackToMain:
		b.switchScreen(sess, models.ScreenMain)
		b.showMainMenu(ctx, sess, messageID)

	case strings.HasPrefix(data, cbMenuPrefix):
		b.openScreen(ctx, sess, strings.TrimPrefix(data, cbMenuPrefix), messageID)

	case data == cbStats:
		b.showStats(ctx, chatID)

	case data == cbExport:
		b.handleExport(ctx, sess)

	case data == cbDarkToggle:
		b.toggleDarkMode(ctx, chatID)

	default:
		if b.handlePostsCallback(ctx, sess, data, messageID) {
			return
		}
		if b.handleBookingsCallback(ctx, sess, data, messageID) {
			return
		}
		if b.handleOrdersCallback(ctx, sess, data, messageID) {
			return
		}
		if b.handleFeedbackCallback(ctx, sess, data, messageID) {
			return
		}
		if b.handleNotificationsCallback(ctx, sess, data, messageID) {
			return
		}
		if b.handleUsersCallback(ctx, sess, data, messageID) {
			return
		}
		zerolog.Ctx(ctx).Warn().Str("data", data).Msg("Unhandled callback")
	}
}

// openScreen activates a section from the main menu: refetch, then render.
func (b *Bot) openScreen(ctx context.Context, sess *models.Session, screen string, messageID int) {
	switch screen {
	case models.ScreenPosts:
		b.switchScreen(sess, models.ScreenPosts)
		b.refreshOnEntry(ctx, "posts", b.posts.Refresh)
		b.showPosts(ctx, sess, messageID)
	case models.ScreenBookings:
		b.switchScreen(sess, models.ScreenBookings)
		b.refreshOnEntry(ctx, "bookings", b.bookings.Refresh)
		b.showBookings(ctx, sess, messageID)
	case models.ScreenOrders:
		b.switchScreen(sess, models.ScreenOrders)
		b.refreshOnEntry(ctx, "bookings", b.bookings.Refresh)
		b.showOrders(ctx, sess, messageID)
	case models.ScreenFeedback:
		b.switchScreen(sess, models.ScreenFeedback)
		b.refreshOnEntry(ctx, "feedback", b.feedback.Refresh)
		b.showFeedback(ctx, sess, messageID)
	case models.ScreenNotifications:
		b.switchScreen(sess, models.ScreenNotifications)
		b.refreshOnEntry(ctx, "notifications", b.notifications.Refresh)
		b.showNotifications(ctx, sess, messageID)
	case models.ScreenUsers:
		b.switchScreen(sess, models.ScreenUsers)
		b.refreshOnEntry(ctx, "users", b.users.Refresh)
		b.showUsers(ctx, sess, messageID)
	default:
		b.switchScreen(sess, models.ScreenMain)
		b.showMainMenu(ctx, sess, messageID)
	}
}

func parseID(data, prefix string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
	return id, err == nil
}

func parsePage(data, prefix string) int {
	page, err := strconv.Atoi(strings.TrimPrefix(data, prefix))
	if err != nil {
		return 1
	}
	return page
}

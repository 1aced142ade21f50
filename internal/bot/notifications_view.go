package bot

import (
	"context"
	"fmt"
	"strings"

	"banket/internal/collection"
	"banket/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleNotificationsCallback(ctx context.Context, sess *models.Session, data string, messageID int) bool {
	switch {
	case strings.HasPrefix(data, cbNotifPage):
		view := sess.View(models.ScreenNotifications, b.pageSize(models.ScreenNotifications))
		view.Go(parsePage(data, cbNotifPage), len(b.notifications.Notifications()))
		b.showNotifications(ctx, sess, messageID)

	case strings.HasPrefix(data, cbNotifToggle):
		if id, ok := parseID(data, cbNotifToggle); ok {
			if err := b.notifications.ToggleRead(ctx, id); err != nil {
				b.sendMessage(sess.ChatID, b.errorMessage(err))
				return true
			}
			b.showNotifications(ctx, sess, messageID)
		}

	case data == cbNotifReadAll:
		if err := b.notifications.MarkAllRead(ctx); err != nil {
			b.sendMessage(sess.ChatID, b.errorMessage(err))
			return true
		}
		b.showNotifications(ctx, sess, messageID)

	case strings.HasPrefix(data, cbNotifDelete):
		if id, ok := parseID(data, cbNotifDelete); ok {
			if err := b.notifications.Delete(ctx, id); err != nil {
				b.sendMessage(sess.ChatID, b.errorMessage(err))
				return true
			}
			b.showNotifications(ctx, sess, messageID)
		}

	case data == cbNotifClearRead:
		if err := b.notifications.DeleteRead(ctx); err != nil {
			b.sendMessage(sess.ChatID, b.errorMessage(err))
			return true
		}
		b.showNotifications(ctx, sess, messageID)

	case data == cbNotifBroadcast:
		sess.Step = models.StepBroadcastTitle
		sess.Draft = nil
		b.sendMessage(sess.ChatID, "Send the announcement title (or /cancel):")

	default:
		return false
	}
	return true
}

func (b *Bot) showNotifications(ctx context.Context, sess *models.Session, messageID int) {
	view := sess.View(models.ScreenNotifications, b.pageSize(models.ScreenNotifications))
	items := b.notifications.Notifications()
	unread := collection.Count(items, func(n models.Notification) bool { return !n.Read })

	title := fmt.Sprintf("🔔 *Notifications* — %d unread of %d", unread, len(items))

	footer := [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData("✉️ Mark all read", cbNotifReadAll),
			tgbotapi.NewInlineKeyboardButtonData("🧹 Delete read", cbNotifClearRead),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("📣 Broadcast", cbNotifBroadcast),
		},
	}

	renderPage(b, pageParams{
		ChatID:     sess.ChatID,
		MessageID:  messageID,
		Title:      title,
		PagePrefix: cbNotifPage,
		Footer:     footer,
	}, view, items, func(n models.Notification) (string, []tgbotapi.InlineKeyboardButton) {
		marker := "🔵"
		toggleLabel := "✓ read"
		if n.Read {
			marker = "⚪"
			toggleLabel = "↩ unread"
		}
		line := fmt.Sprintf("%s *%s*\n%s\n%s\n\n",
			marker, escapeMarkdown(n.Title),
			truncate(escapeMarkdown(n.Content), 100),
			n.CreatedAt.Format("02.01.2006 15:04"))
		buttons := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s #%d %s", marker, n.ID, toggleLabel),
				fmt.Sprintf("%s%d", cbNotifToggle, n.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑",
				fmt.Sprintf("%s%d", cbNotifDelete, n.ID)),
		}
		return line, buttons
	})
}

package bot

import (
	"context"
	"fmt"
	"strings"

	"banket/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleUsersCallback(ctx context.Context, sess *models.Session, data string, messageID int) bool {
	switch {
	case strings.HasPrefix(data, cbUsersPage):
		view := sess.View(models.ScreenUsers, b.pageSize(models.ScreenUsers))
		view.Go(parsePage(data, cbUsersPage), len(b.users.Users()))
		b.showUsers(ctx, sess, messageID)

	case strings.HasPrefix(data, cbUserRole):
		username := strings.TrimPrefix(data, cbUserRole)
		if username == "" {
			return true
		}
		sess.Step = models.StepSetRole
		sess.SetDraft("role_username", username)
		b.sendMessage(sess.ChatID,
			fmt.Sprintf("Set role for %s — reply admin or user (or /cancel):", username))

	default:
		return false
	}
	return true
}

func (b *Bot) showUsers(ctx context.Context, sess *models.Session, messageID int) {
	view := sess.View(models.ScreenUsers, b.pageSize(models.ScreenUsers))
	accounts := b.users.Users()

	title := fmt.Sprintf("👥 *Users* — %d total, %d admins", len(accounts), b.users.AdminCount())

	renderPage(b, pageParams{
		ChatID:     sess.ChatID,
		MessageID:  messageID,
		Title:      title,
		PagePrefix: cbUsersPage,
	}, view, accounts, func(a models.Account) (string, []tgbotapi.InlineKeyboardButton) {
		roleMark := ""
		if a.IsAdmin() {
			roleMark = " 🛡"
		}
		line := fmt.Sprintf("*%s*%s — %s\n%s · joined %s\n\n",
			escapeMarkdown(a.Username), roleMark, a.Role,
			escapeMarkdown(a.Email), a.CreatedAt.Format("02.01.2006"))
		btn := tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("⚙️ %s (%s)", truncate(a.Username, 25), a.Role),
			cbUserRole+a.Username,
		)
		return line, []tgbotapi.InlineKeyboardButton{btn}
	})
}

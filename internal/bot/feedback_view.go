package bot

import (
	"context"
	"fmt"
	"strings"

	"banket/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleFeedbackCallback(ctx context.Context, sess *models.Session, data string, messageID int) bool {
	switch {
	case strings.HasPrefix(data, cbFeedbackPage):
		view := sess.View(models.ScreenFeedback, b.pageSize(models.ScreenFeedback))
		view.Go(parsePage(data, cbFeedbackPage), len(b.feedback.Feedback()))
		b.showFeedback(ctx, sess, messageID)

	case strings.HasPrefix(data, cbFeedbackPost):
		if id, ok := parseID(data, cbFeedbackPost); ok {
			b.showPostFeedback(ctx, sess, id, messageID)
		}

	default:
		return false
	}
	return true
}

func (b *Bot) showFeedback(ctx context.Context, sess *models.Session, messageID int) {
	view := sess.View(models.ScreenFeedback, b.pageSize(models.ScreenFeedback))
	items := b.feedback.Feedback()
	stats := b.feedback.Stats()

	title := fmt.Sprintf("⭐ *Feedback* — average %.1f over %d reviews", stats.Average, stats.Total)

	renderPage(b, pageParams{
		ChatID:     sess.ChatID,
		MessageID:  messageID,
		Title:      title,
		PagePrefix: cbFeedbackPage,
	}, view, items, func(f models.Feedback) (string, []tgbotapi.InlineKeyboardButton) {
		author := "anonymous"
		if f.User != nil && f.User.Username != "" {
			author = f.User.Username
		}
		line := fmt.Sprintf("%s %s", ratingStars(f.Rating), escapeMarkdown(author))
		if f.Post != nil {
			line += " on *" + escapeMarkdown(f.Post.Title) + "*"
		}
		line += "\n"
		if f.Comment != "" {
			line += truncate(escapeMarkdown(f.Comment), 120) + "\n"
		}
		line += "\n"
		return line, nil
	})
}

// showPostFeedback fetches one post's reviews directly, bypassing the
// shared store.
func (b *Bot) showPostFeedback(ctx context.Context, sess *models.Session, postID int64, messageID int) {
	items, err := b.feedback.ForPost(ctx, postID)
	if err != nil {
		b.sendMessage(sess.ChatID, b.errorMessage(err))
		return
	}

	var text strings.Builder
	fmt.Fprintf(&text, "⭐ *Feedback for post #%d* — %d reviews\n\n", postID, len(items))
	for i, f := range items {
		if i >= b.pageSize(models.ScreenFeedback) {
			fmt.Fprintf(&text, "…and %d more\n", len(items)-i)
			break
		}
		author := "anonymous"
		if f.User != nil && f.User.Username != "" {
			author = f.User.Username
		}
		fmt.Fprintf(&text, "%s %s\n", ratingStars(f.Rating), escapeMarkdown(author))
		if f.Comment != "" {
			text.WriteString(truncate(escapeMarkdown(f.Comment), 120) + "\n")
		}
		text.WriteString("\n")
	}
	if len(items) == 0 {
		text.WriteString("No reviews yet.\n")
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back to posts", cbPostsPage+"1"),
		),
	)
	b.renderScreen(sess.ChatID, messageID, text.String(), keyboard)
}

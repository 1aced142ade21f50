package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"banket/internal/collection"
	"banket/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Post type filter values alongside collection.All.
const (
	postTypeSpecial = "special"
	postTypeRegular = "regular"
)

func (b *Bot) handlePostsCallback(ctx context.Context, sess *models.Session, data string, messageID int) bool {
	view := sess.View(models.ScreenPosts, b.pageSize(models.ScreenPosts))

	switch {
	case strings.HasPrefix(data, cbPostsPage):
		view.Go(parsePage(data, cbPostsPage), len(b.filteredPosts(view)))
		b.showPosts(ctx, sess, messageID)

	case strings.HasPrefix(data, cbPostsCat):
		view.SetFilter("category", strings.TrimPrefix(data, cbPostsCat))
		b.showPosts(ctx, sess, messageID)

	case strings.HasPrefix(data, cbPostsType):
		view.SetFilter("type", strings.TrimPrefix(data, cbPostsType))
		b.showPosts(ctx, sess, messageID)

	case data == cbPostsReset:
		view.Reset()
		b.showPosts(ctx, sess, messageID)

	case data == cbPostCreate:
		sess.Step = models.StepPostTitle
		sess.Draft = nil
		b.sendMessage(sess.ChatID, "Step 1/6 — send the post title (or /cancel):")

	case strings.HasPrefix(data, cbPostView):
		if id, ok := parseID(data, cbPostView); ok {
			b.showPostDetail(ctx, sess, id, messageID)
		}

	case strings.HasPrefix(data, cbPostEdit):
		if id, ok := parseID(data, cbPostEdit); ok {
			b.startPostEdit(sess, id)
		}

	case strings.HasPrefix(data, cbPostDelete):
		if strings.HasPrefix(data, cbPostDeleteYes) {
			if id, ok := parseID(data, cbPostDeleteYes); ok {
				b.deletePost(ctx, sess, id, messageID)
			}
			return true
		}
		if id, ok := parseID(data, cbPostDelete); ok {
			b.confirmPostDelete(sess.ChatID, id, messageID)
		}

	default:
		return false
	}
	return true
}

// filteredPosts derives the current view from the raw collection.
func (b *Bot) filteredPosts(view *collection.ViewState) []models.Post {
	typeFilter := view.Filter("type")
	var typePred collection.Predicate[models.Post]
	switch typeFilter {
	case postTypeSpecial:
		typePred = func(p models.Post) bool { return p.IsSpecial }
	case postTypeRegular:
		typePred = func(p models.Post) bool { return !p.IsSpecial }
	}

	return collection.Filter(b.posts.Posts(),
		collection.Equals(view.Filter("category"), func(p models.Post) string { return p.Category }),
		typePred,
	)
}

func (b *Bot) showPosts(ctx context.Context, sess *models.Session, messageID int) {
	view := sess.View(models.ScreenPosts, b.pageSize(models.ScreenPosts))
	posts := b.filteredPosts(view)
	stats := b.posts.Stats()

	title := fmt.Sprintf("📦 *Posts* — %d total, %d special", stats.Total, stats.Special)
	if cat := view.Filter("category"); cat != collection.All {
		title += "\nCategory: " + cat
	}
	if t := view.Filter("type"); t != collection.All {
		title += "\nType: " + t
	}

	footer := [][]tgbotapi.InlineKeyboardButton{
		b.categoryFilterRow(view),
		{
			tgbotapi.NewInlineKeyboardButtonData("✨ Special", cbPostsType+postTypeSpecial),
			tgbotapi.NewInlineKeyboardButtonData("📄 Regular", cbPostsType+postTypeRegular),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Reset", cbPostsReset),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("➕ New post", cbPostCreate),
		},
	}

	renderPage(b, pageParams{
		ChatID:     sess.ChatID,
		MessageID:  messageID,
		Title:      title,
		PagePrefix: cbPostsPage,
		Footer:     footer,
	}, view, posts, func(p models.Post) (string, []tgbotapi.InlineKeyboardButton) {
		mark := ""
		if p.IsSpecial {
			mark = " ✨"
		}
		line := fmt.Sprintf("*%s*%s — %s\n%s · %s\n\n",
			escapeMarkdown(p.Title), mark, formatMoney(p.BasePrice),
			escapeMarkdown(p.Category), truncate(escapeMarkdown(p.Description), 80))
		btn := tgbotapi.NewInlineKeyboardButtonData(
			truncate(p.Title, 40),
			fmt.Sprintf("%s%d", cbPostView, p.ID),
		)
		return line, []tgbotapi.InlineKeyboardButton{btn}
	})
}

// categoryFilterRow builds one button per configured category, capped so the
// row stays tappable.
func (b *Bot) categoryFilterRow(view *collection.ViewState) []tgbotapi.InlineKeyboardButton {
	row := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("All", cbPostsCat+collection.All),
	}
	for i, c := range b.categories {
		if i >= 4 {
			break
		}
		label := c.Name
		if view.Filter("category") == c.Name {
			label = "• " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(truncate(label, 20), cbPostsCat+c.Name))
	}
	return row
}

func (b *Bot) showPostDetail(ctx context.Context, sess *models.Session, id int64, messageID int) {
	post, ok := b.posts.Get(id)
	if !ok {
		b.sendMessage(sess.ChatID, "⚠️ That post is no longer in the list.")
		b.showPosts(ctx, sess, messageID)
		return
	}

	var text strings.Builder
	fmt.Fprintf(&text, "📦 *%s* (#%d)\n\n", escapeMarkdown(post.Title), post.ID)
	fmt.Fprintf(&text, "%s\n\n", escapeMarkdown(post.Description))
	fmt.Fprintf(&text, "Category: %s\n", escapeMarkdown(post.Category))
	fmt.Fprintf(&text, "Base price: %s\n", formatMoney(post.BasePrice))
	if post.IsSpecial {
		text.WriteString("✨ Special package\n")
		if post.SpecialFeatures != "" {
			fmt.Fprintf(&text, "Features: %s\n", escapeMarkdown(post.SpecialFeatures))
		}
	}
	fmt.Fprintf(&text, "Created: %s\n", post.CreatedAt.Format("02.01.2006"))

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Edit", fmt.Sprintf("%s%d", cbPostEdit, post.ID)),
			tgbotapi.NewInlineKeyboardButtonData("⭐ Feedback", fmt.Sprintf("%s%d", cbFeedbackPost, post.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", fmt.Sprintf("%s%d", cbPostDelete, post.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back to posts", cbPostsPage+"1"),
		),
	)

	b.renderScreen(sess.ChatID, messageID, text.String(), keyboard)
}

// startPostEdit re-runs the creation wizard against an existing post; the
// draft carries the id so completion dispatches an update instead of a create.
func (b *Bot) startPostEdit(sess *models.Session, id int64) {
	post, ok := b.posts.Get(id)
	if !ok {
		b.sendMessage(sess.ChatID, "⚠️ That post is no longer in the list.")
		return
	}

	sess.ClearFlow()
	sess.SetDraft("edit_id", strconv.FormatInt(post.ID, 10))
	sess.Step = models.StepPostTitle
	b.sendMessage(sess.ChatID, fmt.Sprintf(
		"Editing post #%d \"%s\".\nStep 1/6 — send the new title (or /cancel):", post.ID, post.Title))
}

func (b *Bot) confirmPostDelete(chatID int64, id int64, messageID int) {
	text := fmt.Sprintf("Delete post #%d? This cannot be undone.", id)
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Yes, delete", fmt.Sprintf("%s%d", cbPostDeleteYes, id)),
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Keep it", cbPostsPage+"1"),
		),
	)
	b.renderScreen(chatID, messageID, text, keyboard)
}

func (b *Bot) deletePost(ctx context.Context, sess *models.Session, id int64, messageID int) {
	if err := b.posts.Delete(ctx, id); err != nil {
		b.sendMessage(sess.ChatID, b.errorMessage(err))
		return
	}
	b.sendMessage(sess.ChatID, fmt.Sprintf("🗑 Post #%d deleted.", id))
	b.showPosts(ctx, sess, messageID)
}

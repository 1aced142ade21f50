package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"banket/internal/collection"
	"banket/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

func (b *Bot) handleMessage(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	sess := b.loadSession(ctx, msg.Chat.ID)

	if msg.IsCommand() {
		b.handleCommand(ctx, sess, msg)
		return
	}

	if sess.Step != models.StepNone {
		b.handleStepInput(ctx, sess, msg)
		return
	}

	b.showMainMenu(ctx, sess, 0)
	b.saveSession(ctx, sess)
}

func (b *Bot) handleCommand(ctx context.Context, sess *models.Session, msg *tgbotapi.Message) {
	// Любая команда обрывает незавершенный ввод
	sess.ClearFlow()

	switch msg.Command() {
	case "start", "help":
		b.switchScreen(sess, models.ScreenMain)
		b.showMainMenu(ctx, sess, 0)
	case "posts":
		b.switchScreen(sess, models.ScreenPosts)
		b.refreshOnEntry(ctx, "posts", b.posts.Refresh)
		b.showPosts(ctx, sess, 0)
	case "bookings":
		b.switchScreen(sess, models.ScreenBookings)
		b.refreshOnEntry(ctx, "bookings", b.bookings.Refresh)
		b.showBookings(ctx, sess, 0)
	case "orders":
		b.switchScreen(sess, models.ScreenOrders)
		b.refreshOnEntry(ctx, "bookings", b.bookings.Refresh)
		b.showOrders(ctx, sess, 0)
	case "feedback":
		b.switchScreen(sess, models.ScreenFeedback)
		b.refreshOnEntry(ctx, "feedback", b.feedback.Refresh)
		b.showFeedback(ctx, sess, 0)
	case "notifications":
		b.switchScreen(sess, models.ScreenNotifications)
		b.refreshOnEntry(ctx, "notifications", b.notifications.Refresh)
		b.showNotifications(ctx, sess, 0)
	case "users":
		b.switchScreen(sess, models.ScreenUsers)
		b.refreshOnEntry(ctx, "users", b.users.Refresh)
		b.showUsers(ctx, sess, 0)
	case "stats":
		b.showStats(ctx, sess.ChatID)
	case "export":
		b.handleExport(ctx, sess)
	case "darkmode":
		b.toggleDarkMode(ctx, sess.ChatID)
	case "cancel":
		b.sendMessage(sess.ChatID, "Input cancelled.")
	default:
		b.sendMessage(sess.ChatID, "Unknown command. Try /help.")
	}

	b.saveSession(ctx, sess)
}

// handleStepInput routes free-text replies inside a multi-message flow.
func (b *Bot) handleStepInput(ctx context.Context, sess *models.Session, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		b.sendMessage(sess.ChatID, "Please send a text reply, or /cancel.")
		return
	}

	switch sess.Step {
	case models.StepPostTitle:
		sess.SetDraft("title", text)
		sess.Step = models.StepPostDescription
		b.sendMessage(sess.ChatID, "Step 2/6 — send the description:")

	case models.StepPostDescription:
		sess.SetDraft("description", text)
		sess.Step = models.StepPostCategory
		b.sendMessage(sess.ChatID, "Step 3/6 — send the category:\n"+b.categoryHint())

	case models.StepPostCategory:
		if !b.knownCategory(text) {
			b.sendMessage(sess.ChatID, "Unknown category. "+b.categoryHint())
			return
		}
		sess.SetDraft("category", text)
		sess.Step = models.StepPostPrice
		b.sendMessage(sess.ChatID, "Step 4/6 — send the base price (a number):")

	case models.StepPostPrice:
		price, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
		if err != nil || price < 0 {
			b.sendMessage(sess.ChatID, "That doesn't look like a price. Send a non-negative number:")
			return
		}
		sess.SetDraft("price", strconv.FormatFloat(price, 'f', -1, 64))
		sess.Step = models.StepPostSpecial
		b.sendMessage(sess.ChatID, "Step 5/6 — is this a special package? (yes/no)")

	case models.StepPostSpecial:
		answer := strings.ToLower(text)
		if answer != "yes" && answer != "no" {
			b.sendMessage(sess.ChatID, "Please answer yes or no:")
			return
		}
		sess.SetDraft("special", answer)
		if answer == "yes" {
			sess.Step = models.StepPostFeatures
			b.sendMessage(sess.ChatID, "Step 6/6 — list the special features (or send - for none):")
			break
		}
		b.finishPostCreation(ctx, sess)

	case models.StepPostFeatures:
		if text != "-" {
			sess.SetDraft("features", text)
		}
		b.finishPostCreation(ctx, sess)

	case models.StepDateRange:
		b.applyDateRange(ctx, sess, text)

	case models.StepBroadcastTitle:
		sess.SetDraft("broadcast_title", text)
		sess.Step = models.StepBroadcastContent
		b.sendMessage(sess.ChatID, "Now send the announcement text:")

	case models.StepBroadcastContent:
		b.finishBroadcast(ctx, sess, text)

	case models.StepSetRole:
		b.finishSetRole(ctx, sess, text)

	default:
		sess.ClearFlow()
		b.sendMessage(sess.ChatID, "Lost track of that flow, starting over. Try /help.")
	}

	b.saveSession(ctx, sess)
}

func (b *Bot) showMainMenu(ctx context.Context, sess *models.Session, messageID int) {
	prefs, _ := b.prefs.Get(ctx, sess.ChatID)
	header := "🛠 *Banket admin console*"
	if prefs.DarkMode {
		header = "🌙 *Banket admin console*"
	}

	text := header + "\n\nPick a section:"
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Posts", cbMenuPrefix+models.ScreenPosts),
			tgbotapi.NewInlineKeyboardButtonData("📋 Bookings", cbMenuPrefix+models.ScreenBookings),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📜 Order history", cbMenuPrefix+models.ScreenOrders),
			tgbotapi.NewInlineKeyboardButtonData("⭐ Feedback", cbMenuPrefix+models.ScreenFeedback),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔔 Notifications", cbMenuPrefix+models.ScreenNotifications),
			tgbotapi.NewInlineKeyboardButtonData("👥 Users", cbMenuPrefix+models.ScreenUsers),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Stats", cbStats),
			tgbotapi.NewInlineKeyboardButtonData("💾 Export", cbExport),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌓 Toggle dark mode", cbDarkToggle),
		),
	)

	b.renderScreen(sess.ChatID, messageID, text, keyboard)
}

func (b *Bot) categoryHint() string {
	if len(b.categories) == 0 {
		return ""
	}
	names := make([]string, 0, len(b.categories))
	for _, c := range b.categories {
		names = append(names, c.Name)
	}
	return "Known categories: " + strings.Join(names, ", ")
}

func (b *Bot) knownCategory(name string) bool {
	if len(b.categories) == 0 {
		return true
	}
	for _, c := range b.categories {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// finishPostCreation dispatches the assembled wizard draft: an update when
// the flow was started from an existing post, a create otherwise.
func (b *Bot) finishPostCreation(ctx context.Context, sess *models.Session) {
	price, _ := strconv.ParseFloat(sess.Draft["price"], 64)
	draft := models.PostDraft{
		Title:           sess.Draft["title"],
		Description:     sess.Draft["description"],
		Category:        sess.Draft["category"],
		BasePrice:       price,
		IsSpecial:       sess.Draft["special"] == "yes",
		SpecialFeatures: sess.Draft["features"],
	}
	editID, _ := strconv.ParseInt(sess.Draft["edit_id"], 10, 64)
	sess.ClearFlow()

	if editID != 0 {
		post, err := b.posts.Update(ctx, editID, draft)
		if err != nil {
			b.sendMessage(sess.ChatID, b.errorMessage(err))
			return
		}
		b.sendMessage(sess.ChatID, fmt.Sprintf("✅ Post #%d \"%s\" updated.", post.ID, post.Title))
		b.showPosts(ctx, sess, 0)
		return
	}

	post, err := b.posts.Create(ctx, draft)
	if err != nil {
		b.sendMessage(sess.ChatID, b.errorMessage(err))
		return
	}

	b.sendMessage(sess.ChatID, fmt.Sprintf("✅ Post #%d \"%s\" created.", post.ID, post.Title))
	b.showPosts(ctx, sess, 0)
}

// applyDateRange parses the reply and constrains the active screen's view.
func (b *Bot) applyDateRange(ctx context.Context, sess *models.Session, text string) {
	start, end, err := parseDateRange(text)
	if err != nil {
		b.sendMessage(sess.ChatID, "Couldn't read that. Send a date like 25.12.2026, or a range like 01.12.2026 - 31.12.2026:")
		return
	}
	sess.ClearFlow()

	switch sess.Screen {
	case models.ScreenOrders:
		view := sess.View(models.ScreenOrders, b.pageSize(models.ScreenOrders))
		view.SetDates(collection.DateRange{Start: start, End: end})
		b.showOrders(ctx, sess, 0)
	default:
		view := sess.View(models.ScreenBookings, b.pageSize(models.ScreenBookings))
		view.SetDates(collection.DateRange{Start: start, End: end})
		b.showBookings(ctx, sess, 0)
	}
}

func (b *Bot) finishBroadcast(ctx context.Context, sess *models.Session, content string) {
	title := sess.Draft["broadcast_title"]
	sess.ClearFlow()

	if err := b.notifications.Broadcast(ctx, title, content); err != nil {
		b.sendMessage(sess.ChatID, b.errorMessage(err))
		return
	}
	b.sendMessage(sess.ChatID, "📣 Announcement sent to all users.")
}

func (b *Bot) finishSetRole(ctx context.Context, sess *models.Session, role string) {
	username := sess.Draft["role_username"]
	sess.ClearFlow()

	role = strings.ToLower(strings.TrimSpace(role))
	if role != models.RoleAdmin && role != models.RoleUser {
		b.sendMessage(sess.ChatID, "Role must be admin or user.")
		return
	}
	if username == "" {
		b.sendMessage(sess.ChatID, "Lost the username, pick the user again.")
		return
	}

	if err := b.users.SetRole(ctx, username, role); err != nil {
		b.sendMessage(sess.ChatID, b.errorMessage(err))
		return
	}

	zerolog.Ctx(ctx).Info().Str("username", username).Str("role", role).Int64("changed_by", sess.ChatID).Msg("Role updated")
	b.sendMessage(sess.ChatID, fmt.Sprintf("✅ %s is now %s.", username, role))
	b.showUsers(ctx, sess, 0)
}

func (b *Bot) toggleDarkMode(ctx context.Context, chatID int64) {
	prefs, _ := b.prefs.Get(ctx, chatID)
	if err := b.prefs.SetDarkMode(ctx, chatID, !prefs.DarkMode); err != nil {
		b.sendMessage(chatID, b.errorMessage(err))
		return
	}
	if prefs.DarkMode {
		b.sendMessage(chatID, "☀️ Dark mode off.")
	} else {
		b.sendMessage(chatID, "🌙 Dark mode on.")
	}
}

package bot

import (
	"fmt"
	"strings"

	"banket/internal/collection"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type pageParams struct {
	ChatID     int64
	MessageID  int // 0 if new message
	Title      string
	PagePrefix string // callback prefix, page number appended
	Footer     [][]tgbotapi.InlineKeyboardButton
}

// renderPage - универсальная отрисовка одной страницы отфильтрованного
// списка. The view is paginated as-is: filtering happened upstream, so
// pages always agree with the advertised total.
func renderPage[T any](b *Bot, params pageParams, view *collection.ViewState, items []T,
	renderer func(item T) (string, []tgbotapi.InlineKeyboardButton)) {

	totalPages := collection.TotalPages(len(items), view.PageSize)
	view.Go(view.CurrentPage, len(items))
	pageItems := collection.Page(items, view.CurrentPage, view.PageSize)

	var message strings.Builder
	message.WriteString(params.Title)
	message.WriteString("\n\n")
	if len(items) == 0 {
		message.WriteString("Nothing to show with the current filters.\n")
	} else {
		message.WriteString(fmt.Sprintf("Page %d of %d (%d total)\n\n", view.CurrentPage, totalPages, len(items)))
	}

	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, item := range pageItems {
		line, buttons := renderer(item)
		message.WriteString(line)
		if len(buttons) > 0 {
			keyboard = append(keyboard, buttons)
		}
	}

	var navButtons []tgbotapi.InlineKeyboardButton
	if view.CurrentPage > 1 {
		navButtons = append(navButtons, tgbotapi.NewInlineKeyboardButtonData("⬅️ Prev",
			fmt.Sprintf("%s%d", params.PagePrefix, view.CurrentPage-1)))
	}
	if view.CurrentPage < totalPages {
		navButtons = append(navButtons, tgbotapi.NewInlineKeyboardButtonData("Next ➡️",
			fmt.Sprintf("%s%d", params.PagePrefix, view.CurrentPage+1)))
	}
	if len(navButtons) > 0 {
		keyboard = append(keyboard, navButtons)
	}

	keyboard = append(keyboard, params.Footer...)
	keyboard = append(keyboard, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("🏠 Main menu", "back_to_main"),
	})

	b.renderScreen(params.ChatID, params.MessageID, message.String(), tgbotapi.NewInlineKeyboardMarkup(keyboard...))
}

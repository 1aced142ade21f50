package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// showStats renders the cross-section summary. Counters always cover the
// full collections, never the filtered views.
func (b *Bot) showStats(ctx context.Context, chatID int64) {
	b.refreshOnEntry(ctx, "booking_stats", func(ctx context.Context) error {
		b.bookings.RefreshStats(ctx)
		return nil
	})

	posts := b.posts.Stats()
	bookings := b.bookings.Stats()
	feedback := b.feedback.Stats()

	var text strings.Builder
	text.WriteString("📊 *Platform summary*\n\n")

	fmt.Fprintf(&text, "*Posts:* %d total, %d special\n", posts.Total, posts.Special)
	if len(posts.ByCategory) > 0 {
		categories := make([]string, 0, len(posts.ByCategory))
		for name := range posts.ByCategory {
			categories = append(categories, name)
		}
		sort.Strings(categories)
		for _, name := range categories {
			fmt.Fprintf(&text, "  · %s: %d\n", escapeMarkdown(name), posts.ByCategory[name])
		}
	}

	text.WriteString("\n*Bookings:*\n")
	fmt.Fprintf(&text, "  ⏳ pending: %d\n", bookings.Pending)
	fmt.Fprintf(&text, "  ✅ confirmed: %d\n", bookings.Confirmed)
	fmt.Fprintf(&text, "  🏁 completed: %d\n", bookings.Completed)
	fmt.Fprintf(&text, "  ❌ cancelled: %d\n", bookings.Cancelled)
	fmt.Fprintf(&text, "  💰 revenue: %s\n", formatMoney(bookings.Revenue))
	if b.bookings.StatsDegraded() {
		text.WriteString("  ⚠️ stats endpoint unreachable, showing local counts\n")
	}

	fmt.Fprintf(&text, "\n*Feedback:* %.1f average over %d reviews\n", feedback.Average, feedback.Total)

	if _, err := b.tgService.SendMarkdown(chatID, text.String()); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send stats")
	}
}

package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"banket/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// handleExport builds an Excel snapshot of the bookings collection and
// sends it as a document. The bookings screen's date filter applies when
// one is set.
func (b *Bot) handleExport(ctx context.Context, sess *models.Session) {
	b.refreshOnEntry(ctx, "bookings", b.bookings.Refresh)

	view := sess.View(models.ScreenBookings, b.pageSize(models.ScreenBookings))
	bookings := b.bookings.Bookings()
	if !view.Dates.IsZero() {
		filtered := make([]models.Booking, 0, len(bookings))
		for _, bk := range bookings {
			if view.Dates.Contains(bk.EventDate) {
				filtered = append(filtered, bk)
			}
		}
		bookings = filtered
	}

	if len(bookings) == 0 {
		b.sendMessage(sess.ChatID, "Nothing to export.")
		return
	}

	path, err := b.exportToExcel(bookings)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Export failed")
		b.sendMessage(sess.ChatID, "❌ Export failed, see logs.")
		return
	}
	defer os.Remove(path)

	doc := tgbotapi.NewDocument(sess.ChatID, tgbotapi.FilePath(path))
	doc.Caption = fmt.Sprintf("Bookings export, %d rows", len(bookings))
	if _, err := b.tgService.Send(doc); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to send export document")
		b.sendMessage(sess.ChatID, "❌ Could not deliver the export file.")
		return
	}

	if b.metrics != nil {
		b.metrics.ExportsTotal.Inc()
	}
}

// exportToExcel создает Excel файл с данными о бронированиях
func (b *Bot) exportToExcel(bookings []models.Booking) (string, error) {
	if err := os.MkdirAll(b.config.Exports.Path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Bookings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"ID", "Customer", "Email", "Event date", "Total", "Payment", "Phone", "Address", "Status", "Created"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)

	for row, booking := range bookings {
		username, email := "", ""
		if booking.User != nil {
			username = booking.User.Username
			email = booking.User.Email
		}
		values := []interface{}{
			booking.ID,
			username,
			email,
			booking.EventDate.Format("2006-01-02"),
			booking.TotalPrice,
			paymentLabel(booking.PaymentMethod),
			booking.PhoneNumber,
			booking.Address,
			booking.Status,
			booking.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "J", 20)
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02_150405"))
	filePath := filepath.Join(b.config.Exports.Path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	b.logger.Info().Str("file_path", filePath).Int("rows", len(bookings)).Msg("Excel file created")
	return filePath, nil
}

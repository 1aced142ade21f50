package google

import (
	"context"
	"fmt"
	"os"

	"banket/internal/models"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const bookingsSheetName = "Bookings"

// SheetsService mirrors the bookings collection into a Google Sheet for
// off-platform reporting. Strictly best-effort: the console never blocks
// on it.
type SheetsService struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewSheetsService builds a client from a service-account credentials file.
func NewSheetsService(credentialsFile, spreadsheetID string) (*SheetsService, error) {
	ctx := context.Background()

	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}

	return &SheetsService{service: srv, spreadsheetID: spreadsheetID}, nil
}

// TestConnection проверяет доступ к таблице
func (s *SheetsService) TestConnection(ctx context.Context) error {
	_, err := s.service.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets connection test failed: %w", err)
	}
	return nil
}

// ReplaceBookings rewrites the bookings sheet with the given collection.
func (s *SheetsService) ReplaceBookings(ctx context.Context, bookings []models.Booking) error {
	clearRange := bookingsSheetName + "!A:J"
	if _, err := s.service.Spreadsheets.Values.Clear(s.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear bookings sheet: %w", err)
	}

	values := [][]interface{}{
		{"ID", "Customer", "Email", "Event date", "Total", "Payment", "Phone", "Address", "Status", "Created"},
	}
	for _, b := range bookings {
		username, email := "", ""
		if b.User != nil {
			username = b.User.Username
			email = b.User.Email
		}
		values = append(values, []interface{}{
			b.ID,
			username,
			email,
			b.EventDate.Format("2006-01-02"),
			b.TotalPrice,
			b.PaymentMethod,
			b.PhoneNumber,
			b.Address,
			b.Status,
			b.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	body := &sheets.ValueRange{Values: values}
	_, err := s.service.Spreadsheets.Values.
		Update(s.spreadsheetID, bookingsSheetName+"!A1", body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write bookings sheet: %w", err)
	}
	return nil
}

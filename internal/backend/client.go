package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"banket/internal/config"
	"banket/internal/metrics"
	"banket/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Client talks to the platform REST API. The token is passed in a custom
// header on the endpoints that require it; the header name is a backend
// contract and comes from config.
type Client struct {
	baseURL     string
	token       string
	tokenHeader string
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *zerolog.Logger
}

// New constructs a client from backend config.
func New(cfg config.BackendConfig, logger *zerolog.Logger) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		token:       cfg.Token,
		tokenHeader: cfg.TokenHeader,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		limiter:     rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		logger:      logger,
	}
}

// --- posts (public endpoints, no token) ---

func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := c.doJSON(ctx, http.MethodGet, "/posts", false, nil, &posts)
	return posts, err
}

func (c *Client) GetPost(ctx context.Context, id int64) (models.Post, error) {
	var post models.Post
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", id), false, nil, &post)
	return post, err
}

func (c *Client) CreatePost(ctx context.Context, draft models.PostDraft) (models.Post, error) {
	var post models.Post
	err := c.doJSON(ctx, http.MethodPost, "/posts", false, draft, &post)
	return post, err
}

func (c *Client) UpdatePost(ctx context.Context, id int64, draft models.PostDraft) (models.Post, error) {
	var post models.Post
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", id), false, draft, &post)
	return post, err
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), false, nil, nil)
}

// --- bookings (admin, token) ---

func (c *Client) BookingStats(ctx context.Context) (models.BookingStats, error) {
	var stats models.BookingStats
	err := c.doJSON(ctx, http.MethodGet, "/booking/stats", true, nil, &stats)
	return stats, err
}

func (c *Client) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := c.doJSON(ctx, http.MethodGet, "/booking/admin/all", true, nil, &bookings)
	return bookings, err
}

func (c *Client) GetBooking(ctx context.Context, id int64) (models.Booking, error) {
	var booking models.Booking
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/booking/admin/%d", id), true, nil, &booking)
	return booking, err
}

func (c *Client) CancelBooking(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/booking/admin/cancel/%d", id), true, nil, nil)
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	body := map[string]string{"status": status}
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/booking/status/%d", id), true, body, nil)
}

// --- notifications (token) ---

// CreateNotification tries the primary creation route and falls back once
// to the legacy route. Whether the fallback is a true alias is an open
// backend-contract question; the observed try-primary-then-fallback
// behavior is preserved as-is.
func (c *Client) CreateNotification(ctx context.Context, draft models.NotificationDraft) error {
	err := c.doJSON(ctx, http.MethodPost, "/notification/create", true, draft, nil)
	if err == nil {
		return nil
	}
	c.logger.Warn().Err(err).Msg("notification create failed, trying fallback route")
	return c.doJSON(ctx, http.MethodPost, "/notification", true, draft, nil)
}

func (c *Client) ListAdminNotifications(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	err := c.doJSON(ctx, http.MethodGet, "/notification/admin/orders", true, nil, &notifications)
	return notifications, err
}

func (c *Client) ToggleNotificationRead(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/notification/%d/toggle-read", id), true, nil, nil)
}

func (c *Client) BatchUpdateNotificationRead(ctx context.Context, ids []int64, read bool) error {
	body := map[string]any{"ids": ids, "read": read}
	return c.doJSON(ctx, http.MethodPost, "/notification/batch-update-read", true, body, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/notification/%d", id), true, nil, nil)
}

func (c *Client) BatchDeleteNotifications(ctx context.Context, ids []int64) error {
	body := map[string]any{"ids": ids}
	return c.doJSON(ctx, http.MethodPost, "/notification/batch-delete", true, body, nil)
}

func (c *Client) BroadcastNotification(ctx context.Context, title, content string) error {
	body := map[string]string{"title": title, "content": content}
	return c.doJSON(ctx, http.MethodPost, "/notification/broadcast", true, body, nil)
}

// --- feedback (public) ---

func (c *Client) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := c.doJSON(ctx, http.MethodGet, "/feedback/all", false, nil, &feedback)
	return feedback, err
}

func (c *Client) ListPostFeedback(ctx context.Context, postID int64) ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/feedback/post/%d", postID), false, nil, &feedback)
	return feedback, err
}

// --- auth / users (token) ---

func (c *Client) Profile(ctx context.Context) (models.Account, error) {
	var account models.Account
	err := c.doJSON(ctx, http.MethodGet, "/auth/profile", true, nil, &account)
	return account, err
}

func (c *Client) ListUsers(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	err := c.doJSON(ctx, http.MethodGet, "/auth/users", true, nil, &accounts)
	return accounts, err
}

func (c *Client) SetRole(ctx context.Context, username, role string) error {
	body := map[string]string{"role": role}
	endpoint := "/auth/set-role/" + url.PathEscape(username)
	return c.doJSON(ctx, http.MethodPost, endpoint, true, body, nil)
}

// metricRoute collapses record-specific path segments into placeholders so
// the endpoint metric label stays bounded no matter how many records exist.
func metricRoute(endpoint string) string {
	if strings.HasPrefix(endpoint, "/auth/set-role/") {
		return "/auth/set-role/{username}"
	}

	parts := strings.Split(endpoint, "/")
	for i, part := range parts {
		if part == "" {
			continue
		}
		numeric := true
		for _, r := range part {
			if r < '0' || r > '9' {
				numeric = false
				break
			}
		}
		if numeric {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}

// doJSON performs one request: rate-limit wait, optional JSON body,
// token header when required, metrics, and decode into out when non-nil.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, withToken bool, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken && c.token != "" {
		req.Header.Set(c.tokenHeader, c.token)
	}

	route := metricRoute(endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.IncBackend(route, "error")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		metrics.IncBackend(route, "error")
		return &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}
	metrics.IncBackend(route, "ok")

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

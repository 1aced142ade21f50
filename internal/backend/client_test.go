package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"banket/internal/config"
	"banket/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := zerolog.Nop()
	client := New(config.BackendConfig{
		BaseURL:        srv.URL,
		Token:          "secret-token",
		TokenHeader:    "x-access-token",
		Timeout:        5 * time.Second,
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}, &logger)
	return client, srv
}

func TestTokenHeaderOnAdminEndpoints(t *testing.T) {
	var gotHeader string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("x-access-token")
		_ = json.NewEncoder(w).Encode([]models.Booking{})
	}))

	_, err := client.ListBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret-token", gotHeader)
}

func TestNoTokenOnPublicEndpoints(t *testing.T) {
	var gotHeader string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("x-access-token")
		_ = json.NewEncoder(w).Encode([]models.Post{})
	}))

	_, err := client.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotHeader)
}

func TestCreateNotificationFallbackRoute(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/notification/create" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))

	err := client.CreateNotification(context.Background(), models.NotificationDraft{UserID: 1, Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/notification/create", "/notification"}, paths)
}

func TestCreateNotificationPrimaryRouteWins(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	}))

	err := client.CreateNotification(context.Background(), models.NotificationDraft{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"/notification/create"}, paths)
}

func TestStatusErrorClasses(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusBadRequest, ErrRejected},
		{http.StatusInternalServerError, ErrServer},
	}

	for _, tt := range tests {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.code)
		}))

		err := client.DeletePost(context.Background(), 1)
		require.Error(t, err, "code %d", tt.code)
		assert.ErrorIs(t, err, tt.want, "code %d", tt.code)
	}
}

func TestUpdateBookingStatusBody(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.UpdateBookingStatus(context.Background(), 7, "confirmed"))
	assert.Equal(t, "/booking/status/7", gotPath)
	assert.Equal(t, map[string]string{"status": "confirmed"}, gotBody)
}

func TestSetRoleEscapesUsername(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.SetRole(context.Background(), "user with space", "admin"))
	assert.Equal(t, "/auth/set-role/user%20with%20space", gotPath)
}

func TestBatchUpdateReadBody(t *testing.T) {
	var gotBody struct {
		IDs  []int64 `json:"ids"`
		Read bool    `json:"read"`
	}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.BatchUpdateNotificationRead(context.Background(), []int64{1, 3}, true))
	assert.Equal(t, []int64{1, 3}, gotBody.IDs)
	assert.True(t, gotBody.Read)
}

func TestMetricRouteCollapsesRecordSegments(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
	}{
		{"/posts", "/posts"},
		{"/posts/7", "/posts/{id}"},
		{"/booking/admin/all", "/booking/admin/all"},
		{"/booking/status/12345", "/booking/status/{id}"},
		{"/booking/admin/cancel/9", "/booking/admin/cancel/{id}"},
		{"/notification/42/toggle-read", "/notification/{id}/toggle-read"},
		{"/feedback/post/3", "/feedback/post/{id}"},
		{"/auth/set-role/alice", "/auth/set-role/{username}"},
		{"/auth/set-role/user%20with%20space", "/auth/set-role/{username}"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, metricRoute(tt.endpoint), tt.endpoint)
	}
}

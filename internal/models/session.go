package models

import "banket/internal/collection"

// Screen identifiers for the operator console.
const (
	ScreenMain          = "main"
	ScreenPosts         = "posts"
	ScreenBookings      = "bookings"
	ScreenOrders        = "orders"
	ScreenFeedback      = "feedback"
	ScreenNotifications = "notifications"
	ScreenUsers         = "users"
)

// Input steps for multi-message flows.
const (
	StepNone             = ""
	StepPostTitle        = "post_title"
	StepPostDescription  = "post_description"
	StepPostCategory     = "post_category"
	StepPostPrice        = "post_price"
	StepPostSpecial      = "post_special"
	StepPostFeatures     = "post_features"
	StepDateRange        = "date_range"
	StepBroadcastTitle   = "broadcast_title"
	StepBroadcastContent = "broadcast_content"
	StepSetRole          = "set_role"
)

// Session is the per-chat console state: active screen, in-progress input
// flow, and the ephemeral view state of each screen. It is stored in Redis
// (with in-memory failover) and dropped when the operator leaves a screen.
type Session struct {
	ChatID int64                            `json:"chat_id"`
	Screen string                           `json:"screen"`
	Step   string                           `json:"step,omitempty"`
	Draft  map[string]string                `json:"draft,omitempty"`
	Views  map[string]*collection.ViewState `json:"views,omitempty"`
}

// View returns the screen's view state, creating it with the given page
// size on first use.
func (s *Session) View(screen string, pageSize int) *collection.ViewState {
	if s.Views == nil {
		s.Views = make(map[string]*collection.ViewState)
	}
	v, ok := s.Views[screen]
	if !ok || v == nil {
		v = collection.NewViewState(pageSize)
		s.Views[screen] = v
	}
	if v.PageSize == 0 {
		v.PageSize = pageSize
	}
	return v
}

// DropView discards a screen's ephemeral state so re-entering starts fresh.
func (s *Session) DropView(screen string) {
	delete(s.Views, screen)
}

// SetDraft records an in-progress input value.
func (s *Session) SetDraft(key, value string) {
	if s.Draft == nil {
		s.Draft = make(map[string]string)
	}
	s.Draft[key] = value
}

// ClearFlow ends any multi-message input flow.
func (s *Session) ClearFlow() {
	s.Step = StepNone
	s.Draft = nil
}

// Preferences are process-wide UI settings for one operator, persisted
// across sessions. View code goes through the preferences service, never
// the store directly.
type Preferences struct {
	ChatID   int64 `json:"chat_id"`
	DarkMode bool  `json:"dark_mode"`
}

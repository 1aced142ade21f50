package models

// PostStats are summary counters over the full posts collection,
// independent of any active screen filter.
type PostStats struct {
	Total      int            `json:"totalPosts"`
	Special    int            `json:"specialPosts"`
	ByCategory map[string]int `json:"byCategory,omitempty"`
}

// BookingStats mirrors GET /booking/stats. When that endpoint is down the
// console recomputes the same shape from the locally held collection.
type BookingStats struct {
	Total     int     `json:"totalOrders"`
	Pending   int     `json:"pendingOrders"`
	Confirmed int     `json:"confirmedOrders"`
	Completed int     `json:"completedOrders"`
	Cancelled int     `json:"cancelledOrders"`
	Revenue   float64 `json:"revenue,omitempty"`
}

// FeedbackStats summarizes ratings over the full feedback collection.
type FeedbackStats struct {
	Total    int         `json:"total"`
	Average  float64     `json:"average"`
	ByRating map[int]int `json:"byRating"`
}

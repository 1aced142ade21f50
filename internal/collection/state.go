package collection

// ViewState holds the ephemeral filter and pagination state of one screen.
// Fields are exported for JSON round-tripping through the session store;
// use the methods so the page-reset invariant holds: any filter or date
// change returns the view to page 1.
type ViewState struct {
	Filters     map[string]string `json:"filters,omitempty"`
	Dates       DateRange         `json:"dates,omitempty"`
	CurrentPage int               `json:"page"`
	PageSize    int               `json:"pageSize"`
}

// NewViewState builds a state on page 1 with every filter at All.
func NewViewState(pageSize int) *ViewState {
	return &ViewState{CurrentPage: 1, PageSize: pageSize}
}

// Filter returns the current value for a named filter, defaulting to All.
func (s *ViewState) Filter(name string) string {
	if v, ok := s.Filters[name]; ok && v != "" {
		return v
	}
	return All
}

// SetFilter records a filter value and resets pagination.
func (s *ViewState) SetFilter(name, value string) {
	if s.Filters == nil {
		s.Filters = make(map[string]string)
	}
	s.Filters[name] = value
	s.CurrentPage = 1
}

// SetDates records the date range and resets pagination.
func (s *ViewState) SetDates(r DateRange) {
	s.Dates = r
	s.CurrentPage = 1
}

// Go moves to the given page, clamped against a collection of count items.
func (s *ViewState) Go(page, count int) {
	s.CurrentPage = ClampPage(page, TotalPages(count, s.PageSize))
}

// Next and Prev move one page, clamped.
func (s *ViewState) Next(count int) { s.Go(s.CurrentPage+1, count) }
func (s *ViewState) Prev(count int) { s.Go(s.CurrentPage-1, count) }

// Reset returns the state to page 1 with no active constraints.
func (s *ViewState) Reset() {
	s.Filters = nil
	s.Dates = DateRange{}
	s.CurrentPage = 1
}

package models

// Metadata describes the page a list response belongs to. The backend sends
// an empty object when there are no records.
type Metadata struct {
	CurrentPage  int `json:"current_page"`
	PageSize     int `json:"page_size"`
	FirstPage    int `json:"first_page"`
	LastPage     int `json:"last_page"`
	TotalRecords int `json:"total_records"`
}

// TotalPages is ceil(TotalRecords/PageSize), 0 for an empty result.
func (m Metadata) TotalPages() int {
	if m.PageSize <= 0 || m.TotalRecords <= 0 {
		return 0
	}
	return (m.TotalRecords + m.PageSize - 1) / m.PageSize
}

// HasNext reports whether a page after CurrentPage exists.
func (m Metadata) HasNext() bool {
	return m.CurrentPage < m.TotalPages()
}

// HasPrev reports whether a page before CurrentPage exists.
func (m Metadata) HasPrev() bool {
	return m.CurrentPage > 1
}

package domain

// PageRequest describes pagination and sorting for listings.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// CandidatePage is one page of a candidate listing.
type CandidatePage struct {
	Content       []*Candidate `json:"content"`
	Page          int          `json:"page"`
	Size          int          `json:"size"`
	TotalElements int64        `json:"totalElements"`
	TotalPages    int          `json:"totalPages"`
}

// NewCandidatePage derives totals from the request and the overall count.
func NewCandidatePage(content []*Candidate, req PageRequest, total int64) *CandidatePage {
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	if content == nil {
		content = []*Candidate{}
	}
	return &CandidatePage{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}

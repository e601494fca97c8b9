package store

import (
	"sort"
	"strings"

	"quickpay-backend/models"
)

// PageSize is the fixed number of invoices per list page.
const PageSize = 10

// ListQuery captures the list controls: free-text search over id/client,
// display-status filter (All/Paid/Pending/Overdue), sort key and 1-based page.
type ListQuery struct {
	Search string
	Status string
	Sort   string // date-desc | date-asc | amount-desc | amount-asc
	Page   int
}

func (q ListQuery) sameFilters(other ListQuery) bool {
	return q.Search == other.Search && q.Status == other.Status && q.Sort == other.Sort
}

// ListPage is one page of the filtered, sorted projection.
type ListPage struct {
	Invoices   []models.Invoice `json:"invoices"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
	Total      int              `json:"total"`
}

// ApplyListQuery derives a page from the full collection. Read-only: the
// input slice is never mutated, so it is safe to recompute on every request.
func ApplyListQuery(all []models.Invoice, q ListQuery) ListPage {
	needle := strings.ToLower(q.Search)
	filtered := make([]models.Invoice, 0, len(all))
	for _, inv := range all {
		if needle != "" &&
			!strings.Contains(strings.ToLower(inv.ID), needle) &&
			!strings.Contains(strings.ToLower(inv.Client), needle) {
			continue
		}
		// Exact, case-sensitive match against the display projection.
		if q.Status != "" && q.Status != "All" && inv.Status.Display() != q.Status {
			continue
		}
		filtered = append(filtered, inv)
	}

	// ISO dates compare correctly as strings, so date order is lexical.
	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		switch q.Sort {
		case "date-asc":
			return a.Date < b.Date
		case "amount-desc":
			return a.Amount > b.Amount
		case "amount-asc":
			return a.Amount < b.Amount
		default: // date-desc
			return a.Date > b.Date
		}
	})

	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize

	page := q.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return ListPage{
		Invoices:   filtered[start:end],
		Page:       page,
		PerPage:    PageSize,
		TotalPages: totalPages,
		Total:      total,
	}
}

// List applies the query against the current collection. Changing any filter
// resets to page 1; a zero page means "stay on the current page".
func (s *Store) List(q ListQuery) (ListPage, error) {
	all, err := s.All()
	if err != nil {
		return ListPage{}, s.fail(err)
	}

	s.mu.Lock()
	if !q.sameFilters(s.lastQuery) {
		q.Page = 1
	} else if q.Page <= 0 {
		q.Page = s.page
	}
	s.mu.Unlock()

	page := ApplyListQuery(all, q)

	s.mu.Lock()
	s.lastQuery = q
	s.page = page.Page
	s.mu.Unlock()

	return page, nil
}

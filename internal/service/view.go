package service

import (
	"strings"

	"github.com/andy/rosterdash/internal/domain"
)

// DefaultPageSize is the number of clients shown per page
const DefaultPageSize = 10

// Page is one derived page of the roster
type Page struct {
	Clients      []domain.Client
	Page         int
	PageSize     int
	TotalMatches int
	TotalPages   int // never less than 1, even with no matches
}

// HasPrev reports whether a previous page exists
func (p Page) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a following page exists
func (p Page) HasNext() bool {
	return p.Page < p.TotalPages
}

// Matches reports whether query is a case-insensitive substring of the
// client's name or company. The empty query matches every client.
func Matches(c domain.Client, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Company), q)
}

// Filter returns the clients matching query, in roster order
func Filter(roster []domain.Client, query string) []domain.Client {
	out := make([]domain.Client, 0, len(roster))
	for _, c := range roster {
		if Matches(c, query) {
			out = append(out, c)
		}
	}
	return out
}

// DeriveView filters the roster and cuts out the requested 1-based page.
// It never clamps: a page outside 1..TotalPages yields no clients.
// pageSize values below 1 fall back to DefaultPageSize.
func DeriveView(roster []domain.Client, query string, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	matches := Filter(roster, query)
	totalPages := (len(matches) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	p := Page{
		Clients:      []domain.Client{},
		Page:         page,
		PageSize:     pageSize,
		TotalMatches: len(matches),
		TotalPages:   totalPages,
	}
	// Bounds are checked against the page count so a huge page number
	// never reaches the multiplication below.
	if page < 1 || page > totalPages || len(matches) == 0 {
		return p
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(matches))
	p.Clients = matches[start:end:end]
	return p
}

// ClampPage pulls page back into 1..totalPages. Callers use it after the
// roster or query changes so the view does not point past the last page.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		return totalPages
	}
	if page < 1 {
		return 1
	}
	return page
}

// Package dashboard implements search, pagination and summary figures for
// the partner list.
package dashboard

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/Strob0t/PartnerConsole/internal/domain/tenant"
)

// PageSizes are the selectable page sizes.
var PageSizes = []int{5, 10, 20, 50, 100}

// DefaultPageSize is used when no valid size is requested.
const DefaultPageSize = 10

// ParsePageSize returns s as a page size if it is one of PageSizes,
// otherwise DefaultPageSize.
func ParsePageSize(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !slices.Contains(PageSizes, n) {
		return DefaultPageSize
	}
	return n
}

// ParsePage returns s as a 1-based page number; invalid input is page 1.
func ParsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Filter returns the rows whose company, short name, address, country,
// phone, contact name or admin email contain query, ignoring case. A blank
// query returns rows unchanged.
func Filter(rows []tenant.PartnerRow, query string) []tenant.PartnerRow {
	folder := cases.Fold()
	q := folder.String(strings.TrimSpace(query))
	if q == "" {
		return rows
	}
	out := make([]tenant.PartnerRow, 0, len(rows))
	for _, r := range rows {
		for _, field := range []string{r.Company, r.Short, r.Address, r.Country, r.PhoneNumber, r.ContactName, r.AdminEmail} {
			if strings.Contains(folder.String(field), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// Page is one page of filtered rows plus the figures around it.
type Page struct {
	Rows       []tenant.PartnerRow
	Page       int
	PageSize   int
	TotalPages int
	Total      int
	From       int // 1-based index of the first row shown; 0 when empty
	To         int
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.Page < p.TotalPages }

// Pages lists every page number, for the pager.
func (p Page) Pages() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// TotalPages is max(1, ceil(total/size)).
func TotalPages(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return max(1, (total+size-1)/size)
}

// Paginate slices rows for page, clamping page into [1, TotalPages].
func Paginate(rows []tenant.PartnerRow, page, size int) Page {
	if !slices.Contains(PageSizes, size) {
		size = DefaultPageSize
	}
	total := len(rows)
	pages := TotalPages(total, size)
	page = min(max(page, 1), pages)

	start := (page - 1) * size
	end := min(start+size, total)

	p := Page{
		Rows:       rows[start:end],
		Page:       page,
		PageSize:   size,
		TotalPages: pages,
		Total:      total,
		To:         end,
	}
	if total > 0 {
		p.From = start + 1
	}
	return p
}

// Stats are the dashboard header figures.
type Stats struct {
	Total         int
	Active        int
	ActiveModules int
}

// Inactive is the number of inactive partners.
func (s Stats) Inactive() int { return s.Total - s.Active }

// ComputeStats summarizes the unfiltered partner list.
func ComputeStats(rows []tenant.PartnerRow) Stats {
	s := Stats{Total: len(rows)}
	for _, r := range rows {
		if r.IsActive {
			s.Active++
		}
		s.ActiveModules += r.ActiveModuleCount
	}
	return s
}

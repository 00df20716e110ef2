package customer

import "strings"

const (
	DefaultPageSize  = 10
	DefaultSortField = "firstName"
)

// SortableFields lists the projection fields a page of customers may be
// ordered by. Anything else falls back to DefaultSortField.
var SortableFields = map[string]struct{}{
	"id":        {},
	"firstName": {},
	"lastName":  {},
	"email":     {},
	"phone":     {},
	"createdAt": {},
}

type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// Normalize clamps the request to safe values: non-negative page, positive
// size, a known sort field and an asc/desc direction (asc by default).
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if _, ok := SortableFields[p.SortBy]; !ok {
		p.SortBy = DefaultSortField
	}
	if strings.EqualFold(p.SortDir, "desc") {
		p.SortDir = "desc"
	} else {
		p.SortDir = "asc"
	}
	return p
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// AddressFilter carries the optional predicates of an address-attribute
// search. An empty field matches all rows.
type AddressFilter struct {
	City    string
	State   string
	Pincode string
}

// Page is one page of customers plus total-count metadata.
type Page struct {
	Items         []*Customer
	Page          int
	Size          int
	TotalElements int64
}

func (p *Page) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	pages := p.TotalElements / int64(p.Size)
	if p.TotalElements%int64(p.Size) != 0 {
		pages++
	}
	return int(pages)
}

// Package listing implements the filter, sort and visible-count window applied
// to catalog tables before they are shown in a listing view.
package listing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/neexbeast/explorex/internal/catalog"
)

const (
	// DefaultVisible is the initial size of the visible-count window.
	DefaultVisible = 8
	// LoadMoreStep is how far a single "load more" widens the window.
	LoadMoreStep = 4
)

// SortMode selects the destination ordering.
type SortMode string

const (
	SortDefault   SortMode = "default"
	SortPriceLow  SortMode = "price-low"
	SortPriceHigh SortMode = "price-high"
	SortRating    SortMode = "rating"
)

// ParseSortMode converts a query value into a SortMode. An empty value means SortDefault.
func ParseSortMode(s string) (SortMode, error) {
	switch m := SortMode(strings.TrimSpace(s)); m {
	case "":
		return SortDefault, nil
	case SortDefault, SortPriceLow, SortPriceHigh, SortRating:
		return m, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q", s)
	}
}

// Query is the per-view query state.
type Query struct {
	Search   string
	Category *string // nil means no restriction; destinations only
	Sort     SortMode
	Visible  int
}

// Page is the visible subset produced by the pipeline.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Total       int  `json:"total"`
	Visible     int  `json:"visible"`
	HasMore     bool `json:"has_more"`
	NextVisible int  `json:"next_visible"`
}

// LoadMore returns the window size after a "load more" request. The window grows
// by LoadMoreStep unless the filtered total is already smaller than the window.
func LoadMore(visible, total int) int {
	visible = normalizeVisible(visible)
	if total < visible {
		return visible
	}
	return visible + LoadMoreStep
}

func normalizeVisible(v int) int {
	if v < 1 {
		return DefaultVisible
	}
	return v
}

func window[T any](items []T, visible int) Page[T] {
	visible = normalizeVisible(visible)
	n := min(visible, len(items))
	return Page[T]{
		Items:       items[:n:n],
		Total:       len(items),
		Visible:     visible,
		HasMore:     visible < len(items),
		NextVisible: LoadMore(visible, len(items)),
	}
}

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), term)
}

// Destinations filters, sorts and windows the destination table.
// A record passes when its name or country contains the search term
// (case-insensitively) and, if a category is set, its category matches exactly.
func Destinations(items []catalog.Destination, q Query) Page[catalog.Destination] {
	term := strings.ToLower(q.Search)

	out := make([]catalog.Destination, 0, len(items))
	for _, d := range items {
		if !containsFold(d.Name, term) && !containsFold(d.Country, term) {
			continue
		}
		if q.Category != nil && d.Category != *q.Category {
			continue
		}
		out = append(out, d)
	}

	sortDestinations(out, q.Sort)
	return window(out, q.Visible)
}

func sortDestinations(items []catalog.Destination, mode SortMode) {
	switch mode {
	case SortPriceLow:
		sortByPrice(items, false)
	case SortPriceHigh:
		sortByPrice(items, true)
	case SortRating:
		slices.SortStableFunc(items, func(a, b catalog.Destination) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	default:
		slices.SortStableFunc(items, func(a, b catalog.Destination) int {
			return cmp.Compare(a.ID, b.ID)
		})
	}
}

// sortByPrice orders by parsed price. Records without a parsable price keep
// their relative order and go after every priced record in both directions.
func sortByPrice(items []catalog.Destination, desc bool) {
	type priced struct {
		d     catalog.Destination
		price float64
		ok    bool
	}

	keyed := make([]priced, len(items))
	for i, d := range items {
		p, ok := ParsePrice(d.Price)
		keyed[i] = priced{d: d, price: p, ok: ok}
	}

	slices.SortStableFunc(keyed, func(a, b priced) int {
		switch {
		case !a.ok && !b.ok:
			return 0
		case !a.ok:
			return 1
		case !b.ok:
			return -1
		case desc:
			return cmp.Compare(b.price, a.price)
		default:
			return cmp.Compare(a.price, b.price)
		}
	})

	for i, k := range keyed {
		items[i] = k.d
	}
}

// Agencies filters and windows the agency table. A record passes when the
// search term is a case-insensitive substring of its name, description, any
// location or any specialty. Agencies keep catalog order; Category and Sort
// are ignored.
func Agencies(items []catalog.Agency, q Query) Page[catalog.Agency] {
	term := strings.ToLower(q.Search)

	out := make([]catalog.Agency, 0, len(items))
	for _, a := range items {
		if agencyMatches(a, term) {
			out = append(out, a)
		}
	}
	return window(out, q.Visible)
}

func agencyMatches(a catalog.Agency, term string) bool {
	if containsFold(a.Name, term) || containsFold(a.Description, term) {
		return true
	}
	for _, l := range a.Locations {
		if containsFold(l, term) {
			return true
		}
	}
	for _, s := range a.Specialties {
		if containsFold(s, term) {
			return true
		}
	}
	return false
}

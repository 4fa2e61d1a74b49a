package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/neexbeast/explorex/internal/listing"
)

// parseVisible reads the visible query parameter. Absent means the default window.
func parseVisible(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("visible"))
	if raw == "" {
		return listing.DefaultVisible, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("visible must be a positive integer, got %q", raw)
	}
	return n, nil
}

// destinationQuery builds a destination listing query from q, category, sort and visible.
func destinationQuery(r *http.Request) (listing.Query, error) {
	params := r.URL.Query()

	sort, err := listing.ParseSortMode(params.Get("sort"))
	if err != nil {
		return listing.Query{}, err
	}

	visible, err := parseVisible(r)
	if err != nil {
		return listing.Query{}, err
	}

	q := listing.Query{
		Search:  params.Get("q"),
		Sort:    sort,
		Visible: visible,
	}
	if c := params.Get("category"); c != "" {
		q.Category = &c
	}
	return q, nil
}

// agencyQuery builds an agency listing query. Agencies are never filtered by
// category or sorted, so only q and visible are read.
func agencyQuery(r *http.Request) (listing.Query, error) {
	visible, err := parseVisible(r)
	if err != nil {
		return listing.Query{}, err
	}
	return listing.Query{
		Search:  r.URL.Query().Get("q"),
		Sort:    listing.SortDefault,
		Visible: visible,
	}, nil
}

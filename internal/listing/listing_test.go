package listing_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/explorex/internal/catalog"
	"github.com/neexbeast/explorex/internal/listing"
)

func sampleCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.LoadEmbedded()
	require.NoError(t, err)
	return c
}

func ids[T any](items []T, id func(T) int) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func destIDs(items []catalog.Destination) []int {
	return ids(items, func(d catalog.Destination) int { return d.ID })
}

func agencyIDs(items []catalog.Agency) []int {
	return ids(items, func(a catalog.Agency) int { return a.ID })
}

func ptr(s string) *string { return &s }

func TestDestinations_DefaultQueryReturnsCatalogInIDOrder(t *testing.T) {
	c := sampleCatalog(t)

	page := listing.Destinations(c.Destinations(), listing.Query{})
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5, 6, 7, 8}, destIDs(page.Items)); diff != "" {
		t.Errorf("default order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 8, page.Total)
	assert.Equal(t, listing.DefaultVisible, page.Visible)
	assert.False(t, page.HasMore)
}

func TestDestinations_DefaultSortIsAscendingID(t *testing.T) {
	shuffled := []catalog.Destination{{ID: 3}, {ID: 1}, {ID: 2}}
	page := listing.Destinations(shuffled, listing.Query{Sort: listing.SortDefault})
	assert.Equal(t, []int{1, 2, 3}, destIDs(page.Items))
	assert.Equal(t, []int{3, 1, 2}, destIDs(shuffled), "input must not be reordered")
}

func TestDestinations_SearchIsCaseInsensitive(t *testing.T) {
	c := sampleCatalog(t)

	upper := listing.Destinations(c.Destinations(), listing.Query{Search: "BALI"})
	lower := listing.Destinations(c.Destinations(), listing.Query{Search: "bali"})

	require.Equal(t, []int{5}, destIDs(lower.Items))
	if diff := cmp.Diff(lower, upper); diff != "" {
		t.Errorf("case-insensitive search mismatch (-lower +upper):\n%s", diff)
	}
}

func TestDestinations_SearchMatchesCountry(t *testing.T) {
	c := sampleCatalog(t)

	page := listing.Destinations(c.Destinations(), listing.Query{Search: "japan"})
	assert.Equal(t, []int{2}, destIDs(page.Items))

	page = listing.Destinations(c.Destinations(), listing.Query{Search: "tour"})
	assert.Empty(t, page.Items, "activities are not searched")
}

func TestDestinations_CategoryFilter(t *testing.T) {
	c := sampleCatalog(t)

	page := listing.Destinations(c.Destinations(), listing.Query{Category: ptr("Island")})
	assert.Equal(t, []int{1, 5}, destIDs(page.Items))
	assert.Equal(t, 2, page.Total)

	page = listing.Destinations(c.Destinations(), listing.Query{Category: ptr("island")})
	assert.Empty(t, page.Items, "category match is exact")

	page = listing.Destinations(c.Destinations(), listing.Query{Search: "greece", Category: ptr("Island")})
	assert.Equal(t, []int{1}, destIDs(page.Items))
}

func TestDestinations_EmptyResultIsValid(t *testing.T) {
	c := sampleCatalog(t)

	page := listing.Destinations(c.Destinations(), listing.Query{Search: "atlantis"})
	require.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Total)
	assert.False(t, page.HasMore)
}

func TestDestinations_PriceSorts(t *testing.T) {
	c := sampleCatalog(t)

	low := listing.Destinations(c.Destinations(), listing.Query{Sort: listing.SortPriceLow})
	high := listing.Destinations(c.Destinations(), listing.Query{Sort: listing.SortPriceHigh})

	if diff := cmp.Diff([]int{5, 7, 1, 6, 2, 8, 3, 4}, destIDs(low.Items)); diff != "" {
		t.Errorf("price-low order mismatch (-want +got):\n%s", diff)
	}

	reversed := destIDs(low.Items)
	slices.Reverse(reversed)
	if diff := cmp.Diff(reversed, destIDs(high.Items)); diff != "" {
		t.Errorf("price-high should reverse price-low (-want +got):\n%s", diff)
	}
}

func TestDestinations_RatingSort(t *testing.T) {
	c := sampleCatalog(t)

	page := listing.Destinations(c.Destinations(), listing.Query{Sort: listing.SortRating})
	if diff := cmp.Diff([]int{3, 4, 1, 7, 2, 6, 8, 5}, destIDs(page.Items)); diff != "" {
		t.Errorf("rating order mismatch (-want +got):\n%s", diff)
	}

	pos := map[string]int{}
	for i, d := range page.Items {
		pos[d.Name] = i
	}
	assert.Less(t, pos["Machu Picchu"], pos["Santorini"])
	assert.Less(t, pos["Serengeti"], pos["Santorini"])
}

func TestDestinations_UnparsablePricesSortLast(t *testing.T) {
	items := []catalog.Destination{
		{ID: 1, Price: "Price on request"},
		{ID: 2, Price: "$300"},
		{ID: 3, Price: "—"},
		{ID: 4, Price: "$100"},
	}

	low := listing.Destinations(items, listing.Query{Sort: listing.SortPriceLow})
	assert.Equal(t, []int{4, 2, 1, 3}, destIDs(low.Items))

	high := listing.Destinations(items, listing.Query{Sort: listing.SortPriceHigh})
	assert.Equal(t, []int{2, 4, 1, 3}, destIDs(high.Items))
}

func TestDestinations_WindowNeverExceedsVisibleOrTotal(t *testing.T) {
	c := sampleCatalog(t)
	searches := []string{"", "a", "e", "island", "peru", "zzz"}
	visibles := []int{-1, 0, 1, 3, 8, 12, 100}
	sorts := []listing.SortMode{listing.SortDefault, listing.SortPriceLow, listing.SortPriceHigh, listing.SortRating}

	for _, s := range searches {
		for _, v := range visibles {
			for _, m := range sorts {
				q := listing.Query{Search: s, Visible: v, Sort: m}
				page := listing.Destinations(c.Destinations(), q)
				name := fmt.Sprintf("search=%q visible=%d sort=%s", s, v, m)
				assert.LessOrEqual(t, len(page.Items), page.Visible, name)
				assert.LessOrEqual(t, len(page.Items), page.Total, name)

				ap := listing.Agencies(c.Agencies(), q)
				assert.LessOrEqual(t, len(ap.Items), ap.Visible, name)
				assert.LessOrEqual(t, len(ap.Items), ap.Total, name)
			}
		}
	}
}

func TestDestinations_Window(t *testing.T) {
	items := make([]catalog.Destination, 14)
	for i := range items {
		items[i] = catalog.Destination{ID: i + 1, Name: fmt.Sprintf("Place %d", i+1)}
	}

	page := listing.Destinations(items, listing.Query{})
	assert.Len(t, page.Items, 8)
	assert.Equal(t, 14, page.Total)
	assert.True(t, page.HasMore)
	assert.Equal(t, 12, page.NextVisible)

	page = listing.Destinations(items, listing.Query{Visible: page.NextVisible})
	assert.Len(t, page.Items, 12)
	assert.True(t, page.HasMore)

	page = listing.Destinations(items, listing.Query{Visible: page.NextVisible})
	assert.Len(t, page.Items, 14)
	assert.False(t, page.HasMore)
	assert.Equal(t, 16, page.Visible)
}

func TestLoadMore(t *testing.T) {
	assert.Equal(t, 8, listing.LoadMore(8, 6), "no-op when the filtered set is smaller than the window")
	assert.Equal(t, 12, listing.LoadMore(8, 8))
	assert.Equal(t, 12, listing.LoadMore(8, 14))
	assert.Equal(t, 12, listing.LoadMore(0, 10), "non-positive window is normalised first")
}

func TestAgencies_Search(t *testing.T) {
	c := sampleCatalog(t)

	tests := []struct {
		name   string
		search string
		want   []int
	}{
		{"empty", "", []int{1, 2, 3, 4}},
		{"name", "luxury", []int{2}},
		{"description", "SUSTAINABLE", []int{3}},
		{"location", "tanzania", []int{1}},
		{"specialty", "food tours", []int{4}},
		{"shared term keeps catalog order", "authentic", []int{1, 3, 4}},
		{"no match", "antarctica", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := listing.Agencies(c.Agencies(), listing.Query{Search: tt.search})
			if diff := cmp.Diff(tt.want, agencyIDs(page.Items)); diff != "" {
				t.Errorf("agency ids mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, len(tt.want), page.Total)
		})
	}
}

func TestAgencies_IgnoresSortAndCategory(t *testing.T) {
	c := sampleCatalog(t)

	page := listing.Agencies(c.Agencies(), listing.Query{Sort: listing.SortRating, Category: ptr("Island")})
	assert.Equal(t, []int{1, 2, 3, 4}, agencyIDs(page.Items))
}

func TestParseSortMode(t *testing.T) {
	for in, want := range map[string]listing.SortMode{
		"":           listing.SortDefault,
		"default":    listing.SortDefault,
		"price-low":  listing.SortPriceLow,
		"price-high": listing.SortPriceHigh,
		" rating ":   listing.SortRating,
	} {
		got, err := listing.ParseSortMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := listing.ParseSortMode("cheapest")
	require.Error(t, err)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"$1,200", 1200, true},
		{"$900", 900, true},
		{"€1.250,50", 1.2505, true},
		{"-$15", -15, true},
		{"USD 99.99 / night", 99.99, true},
		{"1.", 1, true},
		{".5", 0.5, true},
		{"Price on request", 0, false},
		{"-", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := listing.ParsePrice(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}
}

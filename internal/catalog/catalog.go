package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned when catalog data fails validation.
var ErrInvalid = errors.New("invalid catalog")

// Catalog is an immutable snapshot of the destination and agency tables.
// It is built once at startup and shared by pointer; the slices returned by its
// accessors are the catalog's own storage and must not be modified.
type Catalog struct {
	destinations []Destination
	agencies     []Agency
	about        About
	categories   []string
}

// New validates the records and builds a Catalog. Both tables must be non-empty,
// identifiers must be unique within a table and ratings must lie in [0, 5].
func New(destinations []Destination, agencies []Agency, about About) (*Catalog, error) {
	if len(destinations) == 0 {
		return nil, fmt.Errorf("%w: no destinations", ErrInvalid)
	}
	if len(agencies) == 0 {
		return nil, fmt.Errorf("%w: no agencies", ErrInvalid)
	}

	seen := make(map[int]struct{}, len(destinations))
	for _, d := range destinations {
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate destination id %d", ErrInvalid, d.ID)
		}
		seen[d.ID] = struct{}{}
		if d.Rating < 0 || d.Rating > 5 {
			return nil, fmt.Errorf("%w: destination %d rating %.1f out of range", ErrInvalid, d.ID, d.Rating)
		}
	}

	seen = make(map[int]struct{}, len(agencies))
	for _, a := range agencies {
		if _, dup := seen[a.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate agency id %d", ErrInvalid, a.ID)
		}
		seen[a.ID] = struct{}{}
		if a.Rating < 0 || a.Rating > 5 {
			return nil, fmt.Errorf("%w: agency %d rating %.1f out of range", ErrInvalid, a.ID, a.Rating)
		}
	}

	c := &Catalog{
		destinations: append([]Destination(nil), destinations...),
		agencies:     append([]Agency(nil), agencies...),
		about:        about,
	}
	c.categories = distinctCategories(c.destinations)
	return c, nil
}

// Destinations returns every destination in insertion order.
func (c *Catalog) Destinations() []Destination { return c.destinations }

// Agencies returns every agency in insertion order.
func (c *Catalog) Agencies() []Agency { return c.agencies }

// About returns the about page content.
func (c *Catalog) About() About { return c.about }

// Categories returns the distinct destination categories in order of first appearance.
func (c *Catalog) Categories() []string { return c.categories }

func distinctCategories(destinations []Destination) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, d := range destinations {
		if _, ok := seen[d.Category]; ok {
			continue
		}
		seen[d.Category] = struct{}{}
		out = append(out, d.Category)
	}
	return out
}

// Featured returns the first nDest destinations and nAgency agencies.
func (c *Catalog) Featured(nDest, nAgency int) ([]Destination, []Agency) {
	nDest = max(0, min(nDest, len(c.destinations)))
	nAgency = max(0, min(nAgency, len(c.agencies)))
	return c.destinations[:nDest], c.agencies[:nAgency]
}

// Related returns up to limit other destinations sharing d's category, in catalog order.
func (c *Catalog) Related(d Destination, limit int) []Destination {
	out := make([]Destination, 0, max(limit, 0))
	for _, other := range c.destinations {
		if len(out) >= limit {
			break
		}
		if other.ID == d.ID || other.Category != d.Category {
			continue
		}
		out = append(out, other)
	}
	return out
}

// Itinerary returns the five-day sample itinerary shown for a destination.
func Itinerary(d Destination) []ItineraryDay {
	return []ItineraryDay{
		{
			Day:         "Day 1",
			Title:       "Arrival & Welcome",
			Description: "Arrive at your destination, meet your guide, and settle into your accommodation. Evening welcome dinner with local cuisine.",
		},
		{
			Day:         "Day 2",
			Title:       "Explore " + d.Name,
			Description: "Guided tour of " + d.Name + "'s main attractions. Lunch at a local restaurant followed by free time to explore on your own.",
		},
		{
			Day:         "Day 3",
			Title:       "Cultural Experience",
			Description: "Immerse yourself in local culture with hands-on activities and interactions with local artisans and families.",
		},
		{
			Day:         "Day 4",
			Title:       "Nature & Adventure",
			Description: "Experience the natural beauty of " + d.Name + " with your choice of hiking, snorkeling, or wildlife watching.",
		},
		{
			Day:         "Day 5",
			Title:       "Departure",
			Description: "Final breakfast, souvenir shopping, and transfer to airport for departure.",
		},
	}
}

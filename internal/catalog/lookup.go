package catalog

import (
	"strconv"
	"strings"
)

// ParseID parses a record identifier from an external string such as a URL
// segment. Surrounding whitespace is ignored and the longest leading run of an
// optional sign followed by digits is used, so "2abc" parses as 2. Input with no
// leading digits, or a value that overflows int, yields 0.
func ParseID(raw string) int {
	s := strings.TrimSpace(raw)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	id, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return id
}

// DestinationByID returns the first destination whose identifier matches raw.
// The boolean is false when nothing matches.
func (c *Catalog) DestinationByID(raw string) (Destination, bool) {
	id := ParseID(raw)
	for _, d := range c.destinations {
		if d.ID == id {
			return d, true
		}
	}
	return Destination{}, false
}

// AgencyByID returns the first agency whose identifier matches raw.
// The boolean is false when nothing matches.
func (c *Catalog) AgencyByID(raw string) (Agency, bool) {
	id := ParseID(raw)
	for _, a := range c.agencies {
		if a.ID == id {
			return a, true
		}
	}
	return Agency{}, false
}

package listing

import (
	"regexp"
	"strconv"
)

var (
	priceNoise  = regexp.MustCompile(`[^0-9.\-]+`)
	floatPrefix = regexp.MustCompile(`^-?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)`)
)

// ParsePrice extracts the numeric value of a display price such as "$1,200".
// Every character other than digits, '.' and '-' is dropped and the longest
// leading decimal number of what remains is parsed, so "1.2.3" reads as 1.2.
// The boolean is false when no number can be read.
func ParsePrice(s string) (float64, bool) {
	m := floatPrefix.FindString(priceNoise.ReplaceAllString(s, ""))
	if m == "" {
		return 0, false
	}
	p, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return p, true
}

package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numberPattern = regexp.MustCompile(`[0-9][0-9,.]*`)

	// Unit words must stand alone: "Crysta" or "black" in surrounding listing
	// text must not read as crore/lac.
	crorePattern = regexp.MustCompile(`\b(?:crores?|cr)\b`)
	lakhPattern  = regexp.MustCompile(`\b(?:lakhs?|lacs?)\b`)
)

// ParseRupees converts Indian price text into rupees. Listing sites write
// prices three ways, all of which must land on the same number:
//
//	"Rs. 6,59,500"      -> 659500
//	"₹ 6.59 Lakh"       -> 659000
//	"₹ 1.25 Crore"      -> 12500000
func ParseRupees(text string) (float64, bool) {
	lower := strings.ToLower(text)

	match := numberPattern.FindString(lower)
	if match == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil || n <= 0 {
		return 0, false
	}

	switch {
	case crorePattern.MatchString(lower):
		n *= 1e7
	case lakhPattern.MatchString(lower):
		n *= 1e5
	}

	// Anything below a thousand rupees is a parse artifact, not a car price.
	if n < 1000 {
		return 0, false
	}
	return n, true
}

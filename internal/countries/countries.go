// Package countries maps host country codes to display names for the
// Printlane order API. The host stores ISO 3166-1 alpha-2 codes but never
// validates them, so lookups must degrade gracefully.
package countries

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var regions = display.Regions(language.English)

// Name returns the English display name for a country code.
// Unknown, private-use, or malformed codes pass through unchanged; a bad
// country code must never abort payload construction.
func Name(code string) string {
	if code == "" {
		return ""
	}
	region, err := language.ParseRegion(code)
	if err != nil {
		return code
	}
	if name := regions.Name(region); name != "" {
		return name
	}
	return code
}

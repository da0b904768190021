// Package placename cleans up hometown strings scraped from player bios so
// that the geocoder resolves them to the right place.
package placename

import "strings"

// regions maps two-letter US state and territory codes to their full names.
// Some codes are ambiguous to the geocoder ("CA" lands in Canada), so the
// full name is always sent instead.
var regions = map[string]string{
	"AK": "Alaska",
	"AL": "Alabama",
	"AR": "Arkansas",
	"AS": "American Samoa",
	"AZ": "Arizona",
	"CA": "California",
	"CO": "Colorado",
	"CT": "Connecticut",
	"DC": "District of Columbia",
	"DE": "Delaware",
	"FL": "Florida",
	"GA": "Georgia",
	"GU": "Guam",
	"HI": "Hawaii",
	"IA": "Iowa",
	"ID": "Idaho",
	"IL": "Illinois",
	"IN": "Indiana",
	"KS": "Kansas",
	"KY": "Kentucky",
	"LA": "Louisiana",
	"MA": "Massachusetts",
	"MD": "Maryland",
	"ME": "Maine",
	"MI": "Michigan",
	"MN": "Minnesota",
	"MO": "Missouri",
	"MP": "Northern Mariana Islands",
	"MS": "Mississippi",
	"MT": "Montana",
	"NC": "North Carolina",
	"ND": "North Dakota",
	"NE": "Nebraska",
	"NH": "New Hampshire",
	"NJ": "New Jersey",
	"NM": "New Mexico",
	"NV": "Nevada",
	"NY": "New York",
	"OH": "Ohio",
	"OK": "Oklahoma",
	"OR": "Oregon",
	"PA": "Pennsylvania",
	"PR": "Puerto Rico",
	"RI": "Rhode Island",
	"SC": "South Carolina",
	"SD": "South Dakota",
	"TN": "Tennessee",
	"TX": "Texas",
	"UT": "Utah",
	"VA": "Virginia",
	"VI": "Virgin Islands",
	"VT": "Vermont",
	"WA": "Washington",
	"WI": "Wisconsin",
	"WV": "West Virginia",
	"WY": "Wyoming",
}

// fixups are literal replacements for bios the geocoder cannot resolve as
// written. When a place contains trigger, every from in it becomes to.
var fixups = []struct {
	trigger string
	from    string
	to      string
}{
	// Misspelled on the site.
	{"Weisbaden", "Weisbaden", "Wiesbaden"},
	// Neighborhood of Willemstad, unknown to the geocoder.
	{"Mundo-Novo", "Mundo-Novo", "Willemstad"},
	// "Centro" is redundant and breaks the lookup.
	{"Santo Domingo Centro", " Centro", ""},
}

// regionName returns the full name for a two-letter state or territory code
func regionName(code string) (string, bool) {
	name, ok := regions[code]
	return name, ok
}

// Normalize rewrites a hometown so it geocodes reliably. It never fails;
// strings that need no cleanup are returned unchanged.
func Normalize(raw string) string {
	place := raw

	if n := len(place); n >= 2 {
		if name, ok := regionName(place[n-2:]); ok {
			place = place[:n-2] + name
		}
	}

	for _, f := range fixups {
		if strings.Contains(place, f.trigger) {
			place = strings.ReplaceAll(place, f.from, f.to)
		}
	}

	return place
}

package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	batsThrowsMarker  = "B/T: "
	bornMarker        = "Born:"
	birthplaceDivider = " in "
)

// Profile holds the raw bio fields found on a player page. Empty strings
// mean the field was not present.
type Profile struct {
	Position string
	Hometown string
}

// ParseProfile scans the page's list items in document order.
//
// The position sits in the item right before the first "B/T: " item. The
// hometown is the part of the first "Born:" item after " in ", e.g.
// "Born: 8/7/1991 in Vineland, NJ" gives "Vineland, NJ". Later marker items
// are ignored.
func ParseProfile(doc *goquery.Document) Profile {
	var p Profile
	items := doc.Find("li")
	positionSeen, bornSeen := false, false

	items.Each(func(i int, li *goquery.Selection) {
		text := li.Text()

		if !positionSeen && strings.Contains(text, batsThrowsMarker) {
			positionSeen = true
			if i > 0 {
				p.Position = strings.TrimSpace(items.Eq(i - 1).Text())
			}
		}

		if !bornSeen && strings.Contains(text, bornMarker) {
			bornSeen = true
			p.Hometown = birthplace(text)
		}
	})

	return p
}

// birthplace returns the text after the first " in ", trimmed, or "" when
// the item has no such delimiter.
func birthplace(text string) string {
	idx := strings.Index(text, birthplaceDivider)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(text[idx+len(birthplaceDivider):])
}

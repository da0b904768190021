package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/mlb-hometowns/internal/player"
)

const profilePathPrefix = "/player/"

// ParseRoster returns one Ref per profile link on a roster page, in
// document order. Players linked more than once appear more than once.
func ParseRoster(doc *goquery.Document, baseURL string) []player.Ref {
	base := strings.TrimRight(baseURL, "/")
	refs := make([]player.Ref, 0)

	doc.Find(`a[href^="` + profilePathPrefix + `"]`).Each(func(i int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}

		refs = append(refs, player.Ref{
			Name:       strings.TrimSpace(sel.Text()),
			ProfileURL: base + href,
		})
	})

	return refs
}

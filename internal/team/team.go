package team

import (
	"fmt"
	"strings"
)

// Team identifies an MLB club on mlb.com and how its markers are drawn
type Team struct {
	FullName      string `json:"full_name"`
	URLCode       string `json:"url_code"`   // path segment on mlb.com, e.g. "angels"
	ShortCode     string `json:"short_code"` // lower-case selector, e.g. "laa"
	WebColor      string `json:"web_color"`
	ReadableColor string `json:"readable_color"`
}

// registry lists every club in display order
var registry = []Team{
	{"Arizona Diamondbacks", "dbacks", "ari", "#808080", "grey"},
	{"Athletics", "athletics", "ath", "#008000", "green"},
	{"Atlanta Braves", "braves", "atl", "#FF0000", "red"},
	{"Baltimore Orioles", "orioles", "bal", "#FF6347", "tomato"},
	{"Boston Red Sox", "redsox", "bos", "#FF0000", "red"},
	{"Chicago Cubs", "cubs", "chc", "#0000FF", "blue"},
	{"Chicago White Sox", "whitesox", "cws", "#000000", "black"},
	{"Cincinnati Reds", "reds", "cin", "#FF0000", "red"},
	{"Cleveland Guardians", "guardians", "cle", "#0000FF", "blue"},
	{"Colorado Rockies", "rockies", "col", "#800080", "purple"},
	{"Detroit Tigers", "tigers", "det", "#000080", "navy"},
	{"Houston Astros", "astros", "hou", "#FF8C00", "dark orange"},
	{"Kansas City Royals", "royals", "kc", "#DAA520", "goldenrod"},
	{"Los Angeles Angels", "angels", "laa", "#FF0000", "red"},
	{"Los Angeles Dodgers", "dodgers", "lad", "#1E90FF", "dodger blue"},
	{"Miami Marlins", "marlins", "mia", "#FF8C00", "dark orange"},
	{"Milwaukee Brewers", "brewers", "mil", "#F0E68C", "khaki"},
	{"Minnesota Twins", "twins", "min", "#0000FF", "blue"},
	{"New York Mets", "mets", "nym", "#FF6347", "tomato"},
	{"New York Yankees", "yankees", "nyy", "#2F4F4F", "dark slate grey"},
	{"Philadelphia Phillies", "phillies", "phi", "#FF0000", "red"},
	{"Pittsburgh Pirates", "pirates", "pit", "#FFD700", "gold"},
	{"San Diego Padres", "padres", "sd", "#000080", "navy"},
	{"San Francisco Giants", "giants", "sf", "#FF8C00", "dark orange"},
	{"Seattle Mariners", "mariners", "sea", "#008080", "teal"},
	{"St. Louis Cardinals", "cardinals", "stl", "#FF0000", "red"},
	{"Tampa Bay Rays", "rays", "tb", "#4B0082", "indigo"},
	{"Texas Rangers", "rangers", "tex", "#FF0000", "red"},
	{"Toronto Blue Jays", "bluejays", "tor", "#1E90FF", "dodger blue"},
	{"Washington Nationals", "nationals", "was", "#FF0000", "red"},
}

// All returns a copy of the registry in display order
func All() []Team {
	teams := make([]Team, len(registry))
	copy(teams, registry)
	return teams
}

// Lookup finds a team by its short code, ignoring case and surrounding space
func Lookup(code string) (Team, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, t := range registry {
		if t.ShortCode == code {
			return t, true
		}
	}
	return Team{}, false
}

// ByURLCode finds a team by its mlb.com path segment, e.g. "redsox"
func ByURLCode(code string) (Team, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, t := range registry {
		if t.URLCode == code {
			return t, true
		}
	}
	return Team{}, false
}

// RosterURL returns the team's roster page under baseURL
func (t Team) RosterURL(baseURL string) string {
	return fmt.Sprintf("%s/%s/roster/", strings.TrimRight(baseURL, "/"), t.URLCode)
}

// FileCode is the upper-case code used in artifact file names
func (t Team) FileCode() string {
	return strings.ToUpper(t.URLCode)
}

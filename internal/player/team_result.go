package player

// TeamResult collects the records produced for one team's roster.
//
// UnmappableCount is PagesUnreachable + NullHometowns + GeocodeFailures.
// A team whose roster page could not be fetched is Skipped and reports
// zero unmappable players, since no roster entries were ever seen.
type TeamResult struct {
	TeamID           string   `json:"team_id"`
	Label            string   `json:"label"`
	RosterSize       int      `json:"roster_size"`
	Players          []Record `json:"players"`
	PagesUnreachable int      `json:"pages_unreachable"`
	NullHometowns    int      `json:"null_hometowns"`
	GeocodeFailures  int      `json:"geocode_failures"`
	UnmappableCount  int      `json:"unmappable_count"`
	Skipped          bool     `json:"skipped,omitempty"`
}

// NewTeamResult creates an empty result for a team
func NewTeamResult(teamID, label string) *TeamResult {
	return &TeamResult{
		TeamID:  teamID,
		Label:   label,
		Players: make([]Record, 0),
	}
}

// Finalize computes UnmappableCount from the per-cause counters
func (t *TeamResult) Finalize() {
	t.UnmappableCount = t.PagesUnreachable + t.NullHometowns + t.GeocodeFailures
}

// Mapped returns the records that carry coordinates, in roster order
func (t *TeamResult) Mapped() []Record {
	mapped := make([]Record, 0, len(t.Players))
	for _, r := range t.Players {
		if r.Mappable() {
			mapped = append(mapped, r)
		}
	}
	return mapped
}

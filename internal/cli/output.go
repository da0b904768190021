package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/mlb-hometowns/internal/render"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// TeamSummary is one team's line in the run summary
type TeamSummary struct {
	Team        string           `json:"team"`
	Code        string           `json:"code"`
	MarkerColor string           `json:"marker_color"`
	RosterSize  int              `json:"roster_size"`
	Mapped      int              `json:"mapped"`
	Unmappable  int              `json:"unmappable"`
	Skipped     bool             `json:"skipped,omitempty"`
	Artifacts   render.Artifacts `json:"artifacts"`
	ResultFile  string           `json:"result_file,omitempty"`
}

// OutputResult contains data to be output
type OutputResult struct {
	StartedAt time.Time     `json:"started_at"`
	Elapsed   string        `json:"elapsed"`
	AllTeams  bool          `json:"all_teams"`
	RunLog    string        `json:"run_log,omitempty"`
	Teams     []TeamSummary `json:"teams"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText lists the files written for each team
func writeText(w io.Writer, result *OutputResult) error {
	if len(result.Teams) == 0 {
		fmt.Fprintln(w, "No teams processed.")
		return nil
	}

	fmt.Fprintln(w, "\nFiles written:")
	for _, t := range result.Teams {
		if t.Skipped {
			fmt.Fprintf(w, "  %s: roster unavailable, no map written\n", t.Team)
			continue
		}
		fmt.Fprintf(w, "  %s (%d of %d mapped)\n", t.Team, t.Mapped, t.RosterSize)
		for _, path := range []string{t.Artifacts.HTML, t.Artifacts.KML, t.ResultFile} {
			if path != "" {
				fmt.Fprintf(w, "    %s\n", path)
			}
		}
	}

	if result.RunLog != "" {
		fmt.Fprintf(w, "\nRun log: %s\n", result.RunLog)
	}

	return nil
}

package render

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pfrederiksen/mlb-hometowns/internal/logger"
	"github.com/pfrederiksen/mlb-hometowns/internal/player"
	"github.com/pfrederiksen/mlb-hometowns/internal/storage"
	"github.com/pfrederiksen/mlb-hometowns/internal/team"
)

// Artifacts are the files written for one team. Both are empty for a
// skipped team.
type Artifacts struct {
	HTML string `json:"html,omitempty"`
	KML  string `json:"kml,omitempty"`
}

// Renderer writes map artifacts into the run's output directory
type Renderer struct {
	store  *storage.Storage
	apiKey string
}

// New creates a renderer. apiKey is embedded in the HTML map.
func New(store *storage.Storage, apiKey string) *Renderer {
	return &Renderer{store: store, apiKey: apiKey}
}

// Render writes the HTML map and KML file for a team. A skipped team
// (roster unreachable) produces nothing.
func (r *Renderer) Render(ctx context.Context, t team.Team, result *player.TeamResult) (Artifacts, error) {
	if result.Skipped {
		return Artifacts{}, nil
	}

	markers := Markers(result, t.WebColor)
	title := fmt.Sprintf("%s player hometowns", t.FullName)

	var html bytes.Buffer
	if err := MapPage(title, r.apiKey, markers).Render(ctx, &html); err != nil {
		return Artifacts{}, fmt.Errorf("rendering map: %w", err)
	}
	htmlPath := r.store.ArtifactPath(t.FileCode(), result.UnmappableCount, "html")
	if err := os.WriteFile(htmlPath, html.Bytes(), 0644); err != nil {
		return Artifacts{}, fmt.Errorf("writing map: %w", err)
	}

	var kml bytes.Buffer
	if err := WriteKML(&kml, title, markers); err != nil {
		return Artifacts{}, err
	}
	kmlPath := r.store.ArtifactPath(t.FileCode(), result.UnmappableCount, "kml")
	if err := os.WriteFile(kmlPath, kml.Bytes(), 0644); err != nil {
		return Artifacts{}, fmt.Errorf("writing kml: %w", err)
	}

	logger.Debug("artifacts written", logger.Fields{
		"team":    t.URLCode,
		"markers": len(markers),
		"html":    htmlPath,
		"kml":     kmlPath,
	})

	return Artifacts{HTML: htmlPath, KML: kmlPath}, nil
}

package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/mlb-hometowns/internal/player"
)

const (
	// FilePrefix starts every artifact and run log name
	FilePrefix = "MLB_player_hometowns"

	// TimestampLayout is the run start time as it appears in file names
	TimestampLayout = "20060102_1504"
)

// Storage owns the output directory for one run
type Storage struct {
	dataDir string
	start   time.Time
}

// New creates the output directory if needed. start is the run's start
// time and is stamped into every file name.
func New(dataDir string, start time.Time) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
		start:   start,
	}, nil
}

// Dir returns the resolved output directory
func (s *Storage) Dir() string {
	return s.dataDir
}

// RunLogPath returns the path of this run's log file:
// <prefix>_<timestamp>.txt
func (s *Storage) RunLogPath() string {
	return filepath.Join(s.dataDir, fmt.Sprintf("%s_%s.txt", FilePrefix, s.start.Format(TimestampLayout)))
}

// ArtifactPath returns the path for a team artifact with the given
// extension: <prefix>_<TEAMCODE>_<timestamp>[__<N>_missing].<ext>
func (s *Storage) ArtifactPath(teamCode string, missing int, ext string) string {
	return filepath.Join(s.dataDir, ArtifactName(teamCode, s.start, missing, ext))
}

// ArtifactName builds an artifact file name without a directory
func ArtifactName(teamCode string, start time.Time, missing int, ext string) string {
	name := fmt.Sprintf("%s_%s_%s", FilePrefix, strings.ToUpper(teamCode), start.Format(TimestampLayout))
	if missing > 0 {
		name = fmt.Sprintf("%s__%d_missing", name, missing)
	}
	return name + "." + strings.TrimPrefix(ext, ".")
}

// SaveResult writes a team result as indented JSON and returns its path
func (s *Storage) SaveResult(teamCode string, result *player.TeamResult) (string, error) {
	path := s.ArtifactPath(teamCode, result.UnmappableCount, "json")

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing result: %w", err)
	}

	return path, nil
}

// LoadResult reads a team result written by SaveResult
func LoadResult(path string) (*player.TeamResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result: %w", err)
	}

	var result player.TeamResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parsing result: %w", err)
	}

	if result.Players == nil {
		result.Players = make([]player.Record, 0)
	}

	return &result, nil
}

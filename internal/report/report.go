// Package report writes the human-readable run report.
//
// Every line goes to the console. When the run covers all teams, lines are
// also appended to the run log file.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pfrederiksen/mlb-hometowns/internal/logger"
)

// Separator is printed between players and around team headers
const Separator = "----------------------------------------------------------------------------"

// Sink fans report lines out to the console and, in all-teams mode, the run log
type Sink struct {
	mu      sync.Mutex
	console io.Writer
	logFile *os.File
	logPath string
}

// New creates a sink for one run. Any file already at logPath is removed
// first. The log is only written when allTeams is set.
func New(console io.Writer, logPath string, allTeams bool) (*Sink, error) {
	if logPath != "" {
		if err := os.Remove(logPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("removing previous run log: %w", err)
		}
	}

	s := &Sink{console: console}
	if allTeams && logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening run log: %w", err)
		}
		s.logFile = f
		s.logPath = logPath
	}

	return s, nil
}

// LogPath returns the run log path, or "" when no log is being written
func (s *Sink) LogPath() string {
	return s.logPath
}

// Emit writes one line
func (s *Sink) Emit(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writeLine(line)
}

// EmitAll writes lines in order. No other Emit or EmitAll call can
// interleave with them.
func (s *Sink) EmitAll(lines []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range lines {
		s.writeLine(line)
	}
}

// writeLine must be called with s.mu held
func (s *Sink) writeLine(line string) {
	fmt.Fprintln(s.console, line)

	if s.logFile != nil {
		if _, err := fmt.Fprintln(s.logFile, line); err != nil {
			logger.Warn("run log write failed", logger.Fields{"path": s.logPath, "error": err.Error()})
		}
	}
}

// Close closes the run log, if any
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.logFile == nil {
		return nil
	}
	err := s.logFile.Close()
	s.logFile = nil
	return err
}

// Package pipeline turns a team's roster page into player records.
//
// For each roster link the profile page is fetched, the bio fields are
// extracted and the hometown is normalized and geocoded. Failures are
// counted per cause and never abort the team.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/mlb-hometowns/internal/logger"
	"github.com/pfrederiksen/mlb-hometowns/internal/placename"
	"github.com/pfrederiksen/mlb-hometowns/internal/player"
	"github.com/pfrederiksen/mlb-hometowns/internal/report"
	"github.com/pfrederiksen/mlb-hometowns/internal/scraper"
)

// Fetcher retrieves and parses a page. scraper.Scraper implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Resolver turns a place name into coordinates. geocode.Resolver implements it.
type Resolver interface {
	Resolve(ctx context.Context, place string) (player.Coordinates, error)
}

// Reporter receives human-readable report lines. report.Sink implements it.
// EmitAll writes a player's lines as one block.
type Reporter interface {
	Emit(line string)
	EmitAll(lines []string)
}

// Pipeline processes one team at a time
type Pipeline struct {
	fetcher     Fetcher
	resolver    Resolver
	reporter    Reporter
	baseURL     string
	concurrency int
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithBaseURL sets the site that roster links are resolved against
func WithBaseURL(baseURL string) Option {
	return func(p *Pipeline) {
		p.baseURL = baseURL
	}
}

// WithConcurrency sets how many player pages are processed at once.
// Values below 1 mean sequential processing.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// New creates a pipeline
func New(fetcher Fetcher, resolver Resolver, reporter Reporter, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:     fetcher,
		resolver:    resolver,
		reporter:    reporter,
		baseURL:     "https://www.mlb.com",
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Outcome is the result of extracting one profile page. Lines holds the
// report lines for the player in the order they are emitted.
type Outcome struct {
	Record         player.Record
	NullHometown   bool
	GeocodeFailure bool
	Lines          []string
}

// playerOutcome is one roster entry's result. Unreachable entries carry no
// record.
type playerOutcome struct {
	outcome     Outcome
	unreachable bool
}

// Run fetches a team's roster and every player page on it. teamID is the
// team's URL code and becomes the result's TeamID.
//
// If the roster page itself cannot be fetched the team is marked Skipped
// with no players and an unmappable count of zero.
func (p *Pipeline) Run(ctx context.Context, teamID, teamURL, teamLabel string) *player.TeamResult {
	result := player.NewTeamResult(teamID, teamLabel)

	doc, err := p.fetcher.Fetch(ctx, teamURL)
	if err != nil {
		logger.Error("roster page unreachable", logger.Fields{"team": teamLabel, "url": teamURL}, err)
		logger.IncrCounter("roster.fetch_failures")
		p.reporter.Emit(fmt.Sprintf("ERROR:  URL %s could not be located.\n", teamURL))
		result.Skipped = true
		return result
	}

	refs := scraper.ParseRoster(doc, p.baseURL)
	result.RosterSize = len(refs)

	logger.Info("processing roster", logger.Fields{
		"team":        teamLabel,
		"players":     len(refs),
		"concurrency": p.concurrency,
	})

	outcomes := p.processPlayers(ctx, refs)

	for _, o := range outcomes {
		p.reporter.EmitAll(o.outcome.Lines)
		if o.unreachable {
			result.PagesUnreachable++
			continue
		}
		result.Players = append(result.Players, o.outcome.Record)
		if o.outcome.NullHometown {
			result.NullHometowns++
		}
		if o.outcome.GeocodeFailure {
			result.GeocodeFailures++
		}
	}
	result.Finalize()

	p.reporter.Emit(fmt.Sprintf("Number of players in %s roster: ..... %d", teamLabel, result.RosterSize))
	p.reporter.Emit(fmt.Sprintf("Number whose page not available, or whose hometown not available, "+
		"or who didn't geocode: ..... %d\n", result.UnmappableCount))

	return result
}

// processPlayers handles every roster entry and returns the outcomes in
// roster order, whatever the concurrency.
func (p *Pipeline) processPlayers(ctx context.Context, refs []player.Ref) []playerOutcome {
	outcomes := make([]playerOutcome, len(refs))

	// Sequential runs report each player as soon as it is done
	if p.concurrency <= 1 {
		for i, ref := range refs {
			outcomes[i] = p.processPlayer(ctx, ref)
			p.reporter.EmitAll(outcomes[i].outcome.Lines)
			outcomes[i].outcome.Lines = nil
		}
		return outcomes
	}

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			outcomes[i] = p.processPlayer(ctx, ref)
			return nil
		})
	}
	g.Wait()

	return outcomes
}

func (p *Pipeline) processPlayer(ctx context.Context, ref player.Ref) playerOutcome {
	start := time.Now()
	doc, err := p.fetcher.Fetch(ctx, ref.ProfileURL)
	logger.RecordTiming("profile.fetch", time.Since(start))

	if err != nil {
		logger.Warn("profile page unreachable", logger.Fields{
			"player": ref.Name,
			"url":    ref.ProfileURL,
			"error":  err.Error(),
		})
		logger.IncrCounter("profile.fetch_failures")
		return playerOutcome{
			unreachable: true,
			outcome: Outcome{Lines: []string{
				fmt.Sprintf("ERROR:  %s's page could not be located.", ref.Name),
				err.Error(),
				report.Separator,
			}},
		}
	}

	o := p.ExtractPlayer(ctx, ref.Name, doc)
	o.Lines = append(o.Lines, report.Separator)
	return playerOutcome{outcome: o}
}

// ExtractPlayer reads the bio fields from a profile page and geocodes the
// hometown. No geocode call is made when the page has no hometown.
func (p *Pipeline) ExtractPlayer(ctx context.Context, name string, doc *goquery.Document) Outcome {
	profile := scraper.ParseProfile(doc)

	o := Outcome{
		Record: player.Record{
			Name:        name,
			Position:    profile.Position,
			HometownRaw: profile.Hometown,
		},
	}

	if o.Record.HasHometown() {
		o.Record.HometownNormalized = placename.Normalize(o.Record.HometownRaw)

		coords, err := p.resolver.Resolve(ctx, o.Record.HometownNormalized)
		if err != nil {
			o.GeocodeFailure = true
			logger.Warn("hometown did not geocode", logger.Fields{
				"player":   name,
				"hometown": o.Record.HometownNormalized,
				"error":    err.Error(),
			})
			o.Lines = append(o.Lines, fmt.Sprintf("ERROR: Failed to geocode %s for %s: %v",
				o.Record.HometownNormalized, name, err))
		} else {
			o.Record.Location = &coords
		}
	} else {
		o.NullHometown = true
		logger.IncrCounter("profile.null_hometown")
	}

	o.Lines = append(o.Lines, fmt.Sprintf("NAME & POSITION:  %s (%s)", name, o.Record.PositionLabel()))

	hometown := "HOME TOWN:        " + o.Record.HometownLabel()
	if o.Record.Location != nil {
		hometown += " " + o.Record.Location.String()
	}
	o.Lines = append(o.Lines, hometown)

	if o.GeocodeFailure {
		o.Lines = append(o.Lines, "ERROR:  Cannot geocode.")
	}

	return o
}

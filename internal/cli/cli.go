package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/mlb-hometowns/internal/config"
	"github.com/pfrederiksen/mlb-hometowns/internal/geocode"
	"github.com/pfrederiksen/mlb-hometowns/internal/logger"
	"github.com/pfrederiksen/mlb-hometowns/internal/pipeline"
	"github.com/pfrederiksen/mlb-hometowns/internal/render"
	"github.com/pfrederiksen/mlb-hometowns/internal/report"
	"github.com/pfrederiksen/mlb-hometowns/internal/scraper"
	"github.com/pfrederiksen/mlb-hometowns/internal/storage"
	"github.com/pfrederiksen/mlb-hometowns/internal/team"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

const teamHeaderRule = "----------------------------------------------"

// ErrNoTeamSelected is returned when the prompt's input ends without a
// valid choice
var ErrNoTeamSelected = errors.New("no team selected")

type options struct {
	team        string
	outputDir   string
	concurrency int
	format      string
	verbose     bool
	list        bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "mlb-hometowns",
		Short: "Map the hometowns of MLB players",
		Long: `Scrapes MLB.com rosters, geocodes each player's birthplace and writes a
Google Maps HTML page and a Google Earth KML file per team.

Without --team the available teams are listed and you are prompted for one;
an empty answer (or --team all) maps all 30 teams and keeps a run log.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.team, "team", "", "Team short code (e.g. laa) or 'all'")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Directory for maps, results and the run log (default $OUTPUT_DIR or ./output)")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "Player pages processed at once, 1-5 (default $PLAYER_CONCURRENCY or 1)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Summary format: text or json")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging and print metrics")
	cmd.Flags().BoolVar(&opts.list, "list", false, "List team codes and exit")

	cmd.AddCommand(newRenderCmd())

	return cmd
}

// runMap is the main command logic
func runMap(cmd *cobra.Command, opts *options) error {
	start := time.Now()

	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}

	if opts.list {
		listTeams(cmd.OutOrStdout())
		return nil
	}

	cfg := loadConfig(cmd, opts)
	setupLogging(cmd, cfg, opts.verbose)

	// In JSON mode stdout carries only the summary
	console := cmd.OutOrStdout()
	if format == FormatJSON {
		console = cmd.ErrOrStderr()
	}

	teams, allTeams, err := selectTeams(opts.team, cmd.InOrStdin(), console)
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.OutputDir, start)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	sink, err := report.New(console, store.RunLogPath(), allTeams)
	if err != nil {
		return fmt.Errorf("initializing report: %w", err)
	}
	defer sink.Close()

	geocoder, closeGeocoder, err := newGeocoder(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeGeocoder()

	sc := scraper.New(
		scraper.WithUserAgent(cfg.UserAgent),
		scraper.WithTimeout(cfg.Fetch.Timeout),
		scraper.WithRetries(cfg.Fetch.Retries),
	)
	p := pipeline.New(sc, geocode.NewResolver(geocoder, cfg.Geocoder.Timeout), sink,
		pipeline.WithBaseURL(cfg.BaseURL),
		pipeline.WithConcurrency(cfg.Fetch.Concurrency),
	)
	renderer := render.New(store, cfg.Map.GoogleMapsAPIKey)

	logger.Debug("starting run", logger.Fields{
		"teams":       len(teams),
		"all_teams":   allTeams,
		"output_dir":  store.Dir(),
		"concurrency": cfg.Fetch.Concurrency,
	})

	result := &OutputResult{
		StartedAt: start.UTC(),
		AllTeams:  allTeams,
		RunLog:    sink.LogPath(),
		Teams:     make([]TeamSummary, 0, len(teams)),
	}

	for _, t := range teams {
		summary, err := processTeam(cmd.Context(), t, cfg.BaseURL, p, renderer, store, sink)
		if err != nil {
			return err
		}
		result.Teams = append(result.Teams, summary)
	}

	elapsed := time.Since(start)
	result.Elapsed = formatElapsed(elapsed)
	sink.Emit("Total time for script to run, in H:M:S....." + result.Elapsed)

	if opts.verbose {
		logger.DefaultMetrics().WriteSnapshot(cmd.ErrOrStderr())
	}

	if err := WriteOutput(cmd.OutOrStdout(), result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

func processTeam(ctx context.Context, t team.Team, baseURL string, p *pipeline.Pipeline,
	renderer *render.Renderer, store *storage.Storage, sink *report.Sink) (TeamSummary, error) {
	sink.Emit(teamHeaderRule)
	sink.Emit(fmt.Sprintf("***** %s *****", strings.ToUpper(t.FullName)))
	sink.Emit(teamHeaderRule)

	res := p.Run(ctx, t.URLCode, t.RosterURL(baseURL), t.FullName)

	summary := TeamSummary{
		Team:        t.FullName,
		Code:        t.ShortCode,
		MarkerColor: t.ReadableColor,
		RosterSize:  res.RosterSize,
		Mapped:      len(res.Mapped()),
		Unmappable:  res.UnmappableCount,
		Skipped:     res.Skipped,
	}
	if res.Skipped {
		return summary, nil
	}

	artifacts, err := renderer.Render(ctx, t, res)
	if err != nil {
		return summary, fmt.Errorf("rendering %s: %w", t.FullName, err)
	}
	summary.Artifacts = artifacts

	resultPath, err := store.SaveResult(t.URLCode, res)
	if err != nil {
		return summary, fmt.Errorf("saving %s result: %w", t.FullName, err)
	}
	summary.ResultFile = resultPath

	return summary, nil
}

// loadConfig reads the environment and applies flag overrides
func loadConfig(cmd *cobra.Command, opts *options) *config.Config {
	cfg := config.Load()
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Fetch.Concurrency = config.ClampConcurrency(opts.concurrency)
	}
	if opts.verbose {
		cfg.LogLevel = string(logger.LevelDebug)
	}
	return cfg
}

func setupLogging(cmd *cobra.Command, cfg *config.Config, verbose bool) {
	logger.SetDefault(logger.New(logger.ParseLevel(cfg.LogLevel), cmd.ErrOrStderr()))
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Output directory: %s\n", cfg.OutputDir)
		fmt.Fprintf(cmd.ErrOrStderr(), "Player concurrency: %d\n", cfg.Fetch.Concurrency)
	}
}

// newGeocoder builds the Nominatim client, wrapped in the sqlite cache when
// one is configured. The returned func releases the cache.
func newGeocoder(ctx context.Context, cfg *config.Config) (geocode.Geocoder, func(), error) {
	var g geocode.Geocoder = geocode.NewNominatimClient(cfg.Geocoder.URL, cfg.UserAgent, nil)
	if cfg.Geocoder.CachePath == "" {
		return g, func() {}, nil
	}

	cache, err := geocode.OpenCache(cfg.Geocoder.CachePath, cfg.Geocoder.CacheTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("opening geocode cache: %w", err)
	}
	if n, err := cache.Size(ctx); err != nil {
		logger.Warn("geocode cache size unknown", logger.Fields{"path": cfg.Geocoder.CachePath, "error": err.Error()})
	} else {
		logger.Debug("geocode cache opened", logger.Fields{"path": cfg.Geocoder.CachePath, "entries": n})
	}
	return geocode.NewCachedGeocoder(g, cache), func() { cache.Close() }, nil
}

// selectTeams resolves the --team flag, or prompts when it is empty. The
// bool result reports all-teams mode.
func selectTeams(flag string, in io.Reader, out io.Writer) ([]team.Team, bool, error) {
	choice := strings.TrimSpace(flag)
	if choice != "" {
		if strings.EqualFold(choice, "all") {
			return team.All(), true, nil
		}
		t, ok := team.Lookup(choice)
		if !ok {
			return nil, false, fmt.Errorf("unknown team code: %s (use --list to see codes)", choice)
		}
		return []team.Team{t}, false, nil
	}

	return promptTeams(in, out)
}

func promptTeams(in io.Reader, out io.Writer) ([]team.Team, bool, error) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintln(out, "\nPick an MLB team to see a map of its players' home towns: ")
		listTeams(out)
		fmt.Fprint(out, "\nEnter the 2-3 letter team code shown above, OR, for maps of all 30 teams simply hit [Enter] ")

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, false, fmt.Errorf("reading team choice: %w", err)
			}
			return nil, false, ErrNoTeamSelected
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			return team.All(), true, nil
		}
		if t, ok := team.Lookup(input); ok {
			return []team.Team{t}, false, nil
		}

		fmt.Fprintln(out, "ERROR:  Invalid entry; please enter one of the codes above or [Enter] for maps of all 30 teams.")
	}
}

// listTeams prints each club's name, code and marker color
func listTeams(w io.Writer) {
	for _, t := range team.All() {
		fmt.Fprintf(w, "%-25s%-6s%s pins\n", t.FullName, t.ShortCode, t.ReadableColor)
	}
}

// formatElapsed renders a duration as H:MM:SS.mmm
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Millisecond)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, s, ms)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}

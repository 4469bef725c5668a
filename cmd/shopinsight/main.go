package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/shopinsight"
	"github.com/fwojciec/shopinsight/gemini"
	"github.com/fwojciec/shopinsight/goquery"
	shophttp "github.com/fwojciec/shopinsight/http"
	"github.com/fwojciec/shopinsight/openai"
	"github.com/fwojciec/shopinsight/rod"
	"github.com/fwojciec/shopinsight/scrape"
	shopslog "github.com/fwojciec/shopinsight/slog"
	"github.com/fwojciec/shopinsight/sqlite"
	"google.golang.org/genai"
)

// maxStructureTokens bounds the serialized insights sent to Gemini.
const maxStructureTokens = 900_000

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when neither flag, env nor config sets one.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Insights replaces the extraction pipeline when set, for end-to-end testing.
	Insights shopinsight.InsightService

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		m.DB = nil
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("shopinsight"),
		kong.Description("Extract brand insights from online storefronts"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'shopinsight --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Config != "" {
		fc, err := LoadConfigFile(cli.Config)
		if err != nil {
			return fmt.Errorf("failed to load config %q: %w", cli.Config, err)
		}
		ApplyFileConfig(&cli.Globals, fc, ExplicitFlags(kongCtx))
	}

	deps.Logger = newLogger(stderr, cli.Verbose)
	cmd := strings.Fields(kongCtx.Command())[0]

	if !(cmd == "fetch" && cli.Fetch.NoStore) {
		dbPath := cli.DB
		if dbPath == "" {
			dbPath = m.DBPath
		}
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set SHOPINSIGHT_DB to use a different database path")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		deps.Brands = shopslog.NewLoggingBrandService(sqlite.NewBrandService(m.DB), deps.Logger)
	}
	defer m.Close()

	switch cmd {
	case "fetch", "batch", "serve":
		if m.Insights != nil {
			deps.Insights = m.Insights
			break
		}
		structure := !(cmd == "fetch" && cli.Fetch.NoStructure)
		deps.Insights, err = m.newInsightService(ctx, cli.Globals, deps.Brands, structure, deps.Logger, stderr)
		if err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// newInsightService wires the extraction pipeline: fetchers, page
// extractor, storage and an optional structurer.
func (m *Main) newInsightService(ctx context.Context, g Globals, brands shopinsight.BrandService, structure bool, logger *slog.Logger, stderr io.Writer) (shopinsight.InsightService, error) {
	httpFetcher := shophttp.NewFetcher(shophttp.WithTimeout(g.Timeout))
	feed := shopinsight.Fetcher(shopslog.NewLoggingFetcher(httpFetcher, "http", logger))

	page, name := feed, "http"
	if g.Render {
		var opts []rod.BrowserOption
		if g.BrowserBin != "" {
			opts = append(opts, rod.WithBrowserBin(g.BrowserBin))
		}
		if g.Headful {
			opts = append(opts, rod.WithHeadful())
		}
		browser, err := rod.NewBrowser(opts...)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or set SHOPINSIGHT_BROWSER")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		rodFetcher := rod.NewFetcherWithBrowser(browser, rod.WithFetchTimeout(g.Timeout))
		m.closers = append(m.closers, rodFetcher)
		page, name = shopslog.NewLoggingFetcher(rodFetcher, "rod", logger), "rod"
	}

	scraper := &scrape.Scraper{
		Fetcher:     page,
		FeedFetcher: feed,
		Extractor:   goquery.NewExtractor(),
		Timeout:     g.Timeout,
		FetcherName: name,
		Logger:      logger,
	}

	service := &scrape.Service{
		Scraper: shopslog.NewLoggingScraper(scraper, logger),
		Brands:  brands,
	}

	if structure {
		structurer, err := newStructurer(ctx, g, logger)
		if err != nil {
			return nil, err
		}
		if structurer != nil {
			service.Structurer = shopslog.NewLoggingStructurer(structurer, logger)
		}
	}

	return service, nil
}

// newStructurer prefers Gemini, then an OpenAI-compatible endpoint, and
// returns nil when no key is configured.
func newStructurer(ctx context.Context, g Globals, logger *slog.Logger) (shopinsight.Structurer, error) {
	switch {
	case g.GeminiKey != "":
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.GeminiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		s := gemini.NewStructurer(client, g.LLMModel)
		tokens, err := gemini.NewTokenCounter(gemini.DefaultModel)
		if err != nil {
			logger.Debug("token counting disabled", "error", err)
		} else {
			s.Tokens = tokens
			s.MaxInputTokens = maxStructureTokens
		}
		return s, nil

	case g.LLMKey != "":
		return openai.NewStructurer(openai.Config{
			APIKey:  g.LLMKey,
			BaseURL: g.LLMBaseURL,
			Model:   g.LLMModel,
		})

	default:
		logger.Debug("no LLM key configured, returning unstructured insights")
		return nil, nil
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "shopinsight.db"
	}
	dir := filepath.Join(home, ".shopinsight")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "shopinsight.db")
}

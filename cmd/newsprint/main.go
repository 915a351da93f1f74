package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/pkarbownik/newsprint"
	"github.com/pkarbownik/newsprint/goquery"
	nphttp "github.com/pkarbownik/newsprint/http"
	"github.com/pkarbownik/newsprint/lingua"
	"github.com/pkarbownik/newsprint/pipeline"
	npslog "github.com/pkarbownik/newsprint/slog"
	"github.com/pkarbownik/newsprint/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ArticleService newsprint.ArticleService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
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
		kong.Name("newsprint"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'newsprint --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set NEWSPRINT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ArticleService = sqlite.NewArticleService(m.DB)
	deps.DB = m.DB
	deps.Articles = m.ArticleService

	// Extraction dependencies are only wired for commands that fetch pages.
	// The language detector loads statistical models and is expensive.
	if cmd == "fetch" || cmd == "extract" {
		fetcher := npslog.NewLoggingFetcher(nphttp.NewFetcher(), logger)
		defer fetcher.Close()

		extractor := npslog.NewLoggingExtractor(
			goquery.NewExtractor(goquery.WithLanguageDetector(lingua.NewDetector())),
			logger,
		)

		deps.Fetcher = fetcher
		deps.Extractor = extractor
	}

	if cmd == "fetch" {
		deps.Pipeline = &pipeline.Pipeline{
			Feeds:       nphttp.NewFeedService(nil),
			Fetcher:     deps.Fetcher,
			Extractor:   deps.Extractor,
			Articles:    m.ArticleService,
			RateLimiter: pipeline.NewDomainLimiter(cli.Fetch.RPS),
			Concurrency: cli.Fetch.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("NEWSPRINT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "newsprint.db"
	}
	dir := filepath.Join(home, ".newsprint")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "newsprint.db")
}

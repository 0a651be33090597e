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

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagesnip"
	"github.com/fwojciec/pagesnip/batch"
	"github.com/fwojciec/pagesnip/fs"
	"github.com/fwojciec/pagesnip/goquery"
	"github.com/fwojciec/pagesnip/htmltomarkdown"
	pshttp "github.com/fwojciec/pagesnip/http"
	"github.com/fwojciec/pagesnip/locate"
	"github.com/fwojciec/pagesnip/rod"
	psslog "github.com/fwojciec/pagesnip/slog"
	"github.com/fwojciec/pagesnip/sqlite"
	"github.com/fwojciec/pagesnip/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Stdin feeds the session command.
	Stdin io.Reader

	// Fetcher replaces the browser, e.g. for end-to-end testing.
	Fetcher pagesnip.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
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
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagesnip"),
		kong.Description("Select the main content of web pages and save it as Markdown."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagesnip --help' to see available commands")
	}

	if first := args[0]; first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PAGESNIP_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Presets = sqlite.NewPresetService(m.DB)
	deps.History = sqlite.NewHistoryService(m.DB)
	deps.Settings = sqlite.NewSettingsService(m.DB)
	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	if cli.Out != "" {
		deps.Captures = fs.NewWriter(cli.Out)
	}

	// Only page commands need a browser.
	cmd := strings.Fields(kongCtx.Command())[0]
	if cmd != "smart" && cmd != "apply" && cmd != "session" {
		return kongCtx.Run(deps)
	}

	fetcher := m.Fetcher
	if fetcher == nil && cli.Static {
		fetcher = pshttp.NewFetcher(pshttp.WithTimeout(cli.Timeout))
	}
	if fetcher == nil {
		f, err := rod.NewFetcher(
			rod.WithFetchTimeout(cli.Timeout),
			rod.WithViewport(cli.Width, cli.Height),
		)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer f.Close()
		fetcher = f
	}

	locator, err := m.locator(ctx, deps.Presets, cli.PresetFile)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", pagesnip.ErrorMessage(err))
		return err
	}

	deps.Parser = goquery.NewParser(goquery.WithViewport(float64(cli.Width), float64(cli.Height)))
	deps.Converter = htmltomarkdown.NewElementConverter()
	if deps.Logger != nil {
		deps.Fetcher = psslog.NewLoggingFetcher(fetcher, deps.Logger)
		deps.Locator = psslog.NewLoggingLocator(locator, deps.Logger)
	} else {
		deps.Fetcher = fetcher
		deps.Locator = locator
	}

	if cmd == "smart" {
		deps.Batch = batch.NewRunner(deps.Fetcher, deps.Parser, deps.Locator, deps.Converter)
		deps.Batch.Logger = deps.Logger
	}

	return kongCtx.Run(deps)
}

// locator combines the rules of file, if set, and the stored preset rules
// with the built-in presets and the heuristic fallback. File rules are tried
// first.
func (m *Main) locator(ctx context.Context, presets pagesnip.PresetService, file string) (pagesnip.Locator, error) {
	var rules []*pagesnip.PresetRule
	if file != "" {
		fromFile, err := yaml.LoadPresetFile(file)
		if err != nil {
			return nil, err
		}
		rules = fromFile
	}
	stored, err := presets.FindPresetRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("load presets: %w", err)
	}
	return locate.NewLocator(append(rules, stored...)), nil
}

func defaultDBPath() string {
	if path := os.Getenv("PAGESNIP_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagesnip.db"
	}
	dir := filepath.Join(home, ".pagesnip")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pagesnip.db")
}

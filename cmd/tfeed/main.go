package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/textfeed/tfeed/internal/config"
	"github.com/textfeed/tfeed/internal/debuglog"
	"github.com/textfeed/tfeed/internal/feed"
	"github.com/textfeed/tfeed/internal/search"
	"github.com/textfeed/tfeed/internal/settings"
	"github.com/textfeed/tfeed/internal/state"
	"github.com/textfeed/tfeed/internal/storage"
	"github.com/textfeed/tfeed/internal/tui"
	"github.com/textfeed/tfeed/internal/validation"
)

// Version is set at build time.
var Version = "dev"

func main() {
	var (
		dbPath         = flag.String("db", "", "Path to database file (overrides config)")
		configPath     = flag.String("config", "", "Path to configuration file")
		generateConfig = flag.Bool("generate-config", false, "Generate default config file")
		logLevel       = flag.String("log-level", "off", "Log level (debug|info|warn|error|off)")
		permissive     = flag.Bool("permissive", false, "Allow localhost and private-IP feed URLs")
		version        = flag.Bool("version", false, "Show version information")
		quiet          = flag.Bool("quiet", false, "Skip startup banner")
	)
	flag.Parse()

	if *version {
		fmt.Printf("tfeed %s\n", Version)
		fmt.Println("text feed reader")
		fmt.Println("github.com/textfeed/tfeed")
		return
	}

	if *generateConfig {
		home, _ := os.UserHomeDir()
		configFile := filepath.Join(home, ".config", "tfeed", "config.toml")

		if err := config.GenerateDefaultConfig(configFile); err != nil {
			log.Fatalf("Failed to generate config: %v", err)
		}
		fmt.Printf("Generated default configuration at: %s\n", configFile)
		return
	}

	if !*quiet {
		showBanner()
	}

	if err := debuglog.Setup(debuglog.ParseLogLevel(*logLevel), ""); err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer debuglog.Close()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	store, err := storage.NewStore(cfg.Database.Path)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	validator := validation.NewFeedURLValidator()
	if *permissive {
		validator = validation.NewPermissiveFeedURLValidator()
	}

	feedStore := settings.NewStore(store, validator, defaultFeeds(cfg))

	httpClient := &http.Client{Timeout: cfg.Fetch.HTTPTimeout}
	gateway := feed.NewGateway(cfg.Endpoints.Conversion, httpClient)
	if cfg.Fetch.DirectFallback {
		gateway.SetFallback(feed.NewParser())
	}
	manager := feed.NewManager(gateway, feed.NewPipeline())
	extractor := feed.NewExtractor(cfg.Endpoints.ArticleImages, cfg.Endpoints.ArticleContent, httpClient)

	engine, err := search.NewEngine()
	if err != nil {
		log.Fatalf("Failed to initialize search: %v", err)
	}
	defer engine.Close()

	app := tui.NewApp(tui.Deps{
		Config:    cfg,
		Manager:   manager,
		Extractor: extractor,
		FeedStore: feedStore,
		Read:      state.NewReadStore(store),
		Bookmarks: state.NewBookmarkStore(store),
		Engine:    engine,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func defaultFeeds(cfg *config.Config) []feed.FeedConfig {
	feeds := make([]feed.FeedConfig, 0, len(cfg.Feeds))
	for _, f := range cfg.Feeds {
		feeds = append(feeds, feed.FeedConfig{URL: f.URL, Type: f.Type})
	}
	return feeds
}

func showBanner() {
	colors := []lipgloss.Color{
		lipgloss.Color("#FF6B6B"),
		lipgloss.Color("#FFA86B"),
		lipgloss.Color("#95E1D3"),
		lipgloss.Color("#4ECDC4"),
	}

	lines := []string{
		" ▄████████ ▄████████ ▄████████ ████████▄",
		"    ██     ██        ██        ██     ██",
		"    ██     ██▀▀▀▀    ██▀▀▀▀    ██     ██",
		"    ██     ██        ██        ██     ██",
		"    ██     ██        ████████  ████████▀",
		"",
		"    one article at a time",
	}

	var colored []string
	for i, line := range lines {
		if line == "" {
			colored = append(colored, line)
			continue
		}
		style := lipgloss.NewStyle().
			Foreground(colors[i%len(colors)]).
			Bold(i < 5)
		colored = append(colored, style.Render(line))
	}

	banner := lipgloss.JoinVertical(lipgloss.Center, colored...)
	fmt.Println(lipgloss.NewStyle().
		Padding(1, 3).
		Render(banner))
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Endpoints EndpointsConfig `mapstructure:"endpoints"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Feeds     []FeedEntry     `mapstructure:"feeds"`
	UI        UIConfig        `mapstructure:"ui"`
	Keys      KeyBindings     `mapstructure:"keys"`
}

type DatabaseConfig struct {
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// EndpointsConfig names the external services the reader talks to: the
// feed-to-JSON conversion API and the article extraction API.
type EndpointsConfig struct {
	Conversion     string `mapstructure:"conversion"`
	ArticleImages  string `mapstructure:"article_images"`
	ArticleContent string `mapstructure:"article_content"`
}

type FetchConfig struct {
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`
	DirectFallback bool          `mapstructure:"direct_fallback"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// FeedEntry is a configured feed in the config file. It seeds the feed
// store on first run; afterwards the persisted list wins.
type FeedEntry struct {
	URL  string `mapstructure:"url"`
	Type string `mapstructure:"type"`
}

type UIConfig struct {
	Colors   UIColors `mapstructure:"colors"`
	Reversed bool     `mapstructure:"reversed"`
}

type UIColors struct {
	Primary string `mapstructure:"primary"`
	Accent  string `mapstructure:"accent"`
	Text    string `mapstructure:"text"`
	Muted   string `mapstructure:"muted"`
	Error   string `mapstructure:"error"`
	Success string `mapstructure:"success"`
}

type KeyBindings struct {
	Quit           string `mapstructure:"quit"`
	Next           string `mapstructure:"next"`
	Prev           string `mapstructure:"prev"`
	ToggleRead     string `mapstructure:"toggle_read"`
	ToggleBookmark string `mapstructure:"toggle_bookmark"`
	ReadMode       string `mapstructure:"read_mode"`
	BookmarkMode   string `mapstructure:"bookmark_mode"`
	Reload         string `mapstructure:"reload"`
	Search         string `mapstructure:"search"`
	Settings       string `mapstructure:"settings"`
	Direction      string `mapstructure:"direction"`
	Help           string `mapstructure:"help"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Path:    filepath.Join(homeDir, ".tfeed.db"),
			Timeout: 1 * time.Second,
		},
		Endpoints: EndpointsConfig{
			Conversion:     "https://api.rss2json.com/v1/api.json",
			ArticleImages:  "https://article-images.netlify.app/.netlify/functions/feedExtractor",
			ArticleContent: "https://genfeed.netlify.app/.netlify/functions/extract-article-body",
		},
		Fetch: FetchConfig{
			HTTPTimeout:    30 * time.Second,
			DirectFallback: true,
			UserAgent:      "tfeed/1.0 (https://github.com/textfeed/tfeed)",
		},
		Feeds: []FeedEntry{
			{URL: "https://github.blog/feed/", Type: "RSS"},
			{URL: "https://dev.to/feed", Type: "RSS"},
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary: "#FF6B6B",
				Accent:  "#4ECDC4",
				Text:    "#EAEAEA",
				Muted:   "#94A3B8",
				Error:   "#F87171",
				Success: "#4ADE80",
			},
		},
		Keys: KeyBindings{
			Quit:           "q",
			Next:           "right",
			Prev:           "left",
			ToggleRead:     "m",
			ToggleBookmark: "b",
			ReadMode:       "u",
			BookmarkMode:   "B",
			Reload:         "r",
			Search:         "/",
			Settings:       "s",
			Direction:      "d",
			Help:           "?",
		},
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("database", cfg.Database)
	v.SetDefault("endpoints", cfg.Endpoints)
	v.SetDefault("fetch", cfg.Fetch)
	v.SetDefault("feeds", cfg.Feeds)
	v.SetDefault("ui", cfg.UI)
	v.SetDefault("keys", cfg.Keys)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "tfeed")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TFEED")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	config.Database.Path = expandPath(config.Database.Path)

	return &config, nil
}

// expandPath expands ~ to the home directory and absolutizes the path.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	return path
}

// GenerateDefaultConfig writes the default configuration as TOML.
func GenerateDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	cfg := defaultConfig()
	doc := map[string]any{
		"database": map[string]any{
			"path":    cfg.Database.Path,
			"timeout": cfg.Database.Timeout.String(),
		},
		"endpoints": map[string]any{
			"conversion":      cfg.Endpoints.Conversion,
			"article_images":  cfg.Endpoints.ArticleImages,
			"article_content": cfg.Endpoints.ArticleContent,
		},
		"fetch": map[string]any{
			"http_timeout":    cfg.Fetch.HTTPTimeout.String(),
			"direct_fallback": cfg.Fetch.DirectFallback,
			"user_agent":      cfg.Fetch.UserAgent,
		},
		"feeds": feedEntries(cfg.Feeds),
		"ui": map[string]any{
			"colors": map[string]any{
				"primary": cfg.UI.Colors.Primary,
				"accent":  cfg.UI.Colors.Accent,
				"text":    cfg.UI.Colors.Text,
				"muted":   cfg.UI.Colors.Muted,
				"error":   cfg.UI.Colors.Error,
				"success": cfg.UI.Colors.Success,
			},
			"reversed": cfg.UI.Reversed,
		},
		"keys": map[string]any{
			"quit":            cfg.Keys.Quit,
			"next":            cfg.Keys.Next,
			"prev":            cfg.Keys.Prev,
			"toggle_read":     cfg.Keys.ToggleRead,
			"toggle_bookmark": cfg.Keys.ToggleBookmark,
			"read_mode":       cfg.Keys.ReadMode,
			"bookmark_mode":   cfg.Keys.BookmarkMode,
			"reload":          cfg.Keys.Reload,
			"search":          cfg.Keys.Search,
			"settings":        cfg.Keys.Settings,
			"direction":       cfg.Keys.Direction,
			"help":            cfg.Keys.Help,
		},
	}

	raw, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func feedEntries(feeds []FeedEntry) []map[string]any {
	out := make([]map[string]any, 0, len(feeds))
	for _, f := range feeds {
		out = append(out, map[string]any{"url": f.URL, "type": f.Type})
	}
	return out
}

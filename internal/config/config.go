package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the site configuration loaded from inkwell.yaml.
type Config struct {
	Site   SiteConfig   `yaml:"site"`
	Dirs   DirsConfig   `yaml:"dirs"`
	Build  BuildConfig  `yaml:"build"`
	Feeds  FeedsConfig  `yaml:"feeds"`
	Server ServerConfig `yaml:"server"`
}

// SiteConfig describes the site itself, independent of how it is built.
type SiteConfig struct {
	Title       string            `yaml:"title"`
	BaseURL     string            `yaml:"base_url"`
	Description string            `yaml:"description,omitempty"`
	Author      string            `yaml:"author,omitempty"`
	Language    string            `yaml:"language,omitempty"`
	Params      map[string]any    `yaml:"params,omitempty"`
	Menu        []MenuItem        `yaml:"menu,omitempty"`
	Taxonomies  map[string]string `yaml:"taxonomies,omitempty"` // singular -> plural, e.g. tag: tags
}

// MenuItem represents a navigation menu entry.
type MenuItem struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	Weight int    `yaml:"weight,omitempty"`
}

// DirsConfig holds the source tree layout.
type DirsConfig struct {
	Content string `yaml:"content"`
	Layouts string `yaml:"layouts"`
	Static  string `yaml:"static"`
	Output  string `yaml:"output"`
}

// BuildConfig controls how pages are selected and rendered.
type BuildConfig struct {
	Drafts        bool   `yaml:"drafts"`         // include pages marked draft
	Future        bool   `yaml:"future"`         // include pages dated in the future
	SummaryLength int    `yaml:"summary_length"` // words in generated summaries
	PostsPerIndex int    `yaml:"posts_per_index"`
	CachePath     string `yaml:"cache_path,omitempty"` // build-state database; empty disables incremental builds
	GitInfo       bool   `yaml:"git_info"`             // resolve lastmod/author from git history
	Clean         bool   `yaml:"clean"`                // clean output directory before build
}

// FeedsConfig toggles generated feed outputs.
type FeedsConfig struct {
	RSS     bool `yaml:"rss"`
	Sitemap bool `yaml:"sitemap"`
	Limit   int  `yaml:"limit,omitempty"` // max items in the RSS feed, 0 = all
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Addr         string `yaml:"addr,omitempty"`
	Metrics      bool   `yaml:"metrics"`
	MetricsAddr  string `yaml:"metrics_addr,omitempty"`
	QuietWindow  string `yaml:"quiet_window,omitempty"`  // debounce quiet window, e.g. "200ms"
	MaxDelay     string `yaml:"max_delay,omitempty"`     // max debounce delay, e.g. "2s"
	RebuildEvery string `yaml:"rebuild_every,omitempty"` // optional periodic full rebuild interval
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	if err := loadEnvFile(); err != nil {
		// Don't fail if .env doesn't exist, just log it
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&config)

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Site.Title == "" {
		config.Site.Title = "Untitled Site"
	}
	if config.Site.Language == "" {
		config.Site.Language = "en"
	}
	if len(config.Site.Taxonomies) == 0 {
		config.Site.Taxonomies = map[string]string{
			"tag":      "tags",
			"category": "categories",
		}
	}
	if config.Dirs.Content == "" {
		config.Dirs.Content = "content"
	}
	if config.Dirs.Layouts == "" {
		config.Dirs.Layouts = "layouts"
	}
	if config.Dirs.Static == "" {
		config.Dirs.Static = "static"
	}
	if config.Dirs.Output == "" {
		config.Dirs.Output = "public"
	}
	if config.Build.SummaryLength == 0 {
		config.Build.SummaryLength = 70
	}
	if config.Server.Addr == "" {
		config.Server.Addr = "127.0.0.1:1414"
	}
	if config.Server.QuietWindow == "" {
		config.Server.QuietWindow = "200ms"
	}
	if config.Server.MaxDelay == "" {
		config.Server.MaxDelay = "2s"
	}
}

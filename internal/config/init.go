package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Site: SiteConfig{
			Title:       "My Technical Blog",
			Description: "Notes on systems, networking, and infrastructure",
			BaseURL:     "https://example.com",
			Author:      "Your Name",
			Language:    "en",
			Menu: []MenuItem{
				{Name: "Posts", URL: "/posts/", Weight: 10},
				{Name: "Tags", URL: "/tags/", Weight: 20},
				{Name: "About", URL: "/about/", Weight: 30},
			},
		},
		Dirs: DirsConfig{
			Content: "content",
			Layouts: "layouts",
			Static:  "static",
			Output:  "public",
		},
		Build: BuildConfig{
			SummaryLength: 70,
			CachePath:     ".inkwell/build.db",
			GitInfo:       true,
			Clean:         true,
		},
		Feeds: FeedsConfig{
			RSS:     true,
			Sitemap: true,
			Limit:   20,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:1414",
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

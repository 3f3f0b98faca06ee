package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:    ":memory:",
			Timeout: 1 * time.Second,
		},
		Endpoints: EndpointsConfig{
			Conversion: "http://127.0.0.1:0/api.json",
		},
		Fetch: FetchConfig{
			HTTPTimeout: 5 * time.Second,
			UserAgent:   "tfeed-test/1.0",
		},
		UI:   defaultConfig().UI,
		Keys: defaultConfig().Keys,
	}
}

package feed

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SearchConfig is the YAML settings structure for the search feed provider.
// base_url: https://...
// language: en-IN
type SearchConfig struct {
	BaseURL  string `yaml:"base_url"`
	Language string `yaml:"language"`
	Country  string `yaml:"country"`
	Edition  string `yaml:"edition"`
}

// LoadSearchConfig reads the search feed settings from a YAML file.
func LoadSearchConfig(path string) (*SearchConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg SearchConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultSearchConfig mirrors configs/search.yaml for when no settings file
// is available.
func DefaultSearchConfig() *SearchConfig {
	return &SearchConfig{
		BaseURL:  "https://news.google.com/rss/search",
		Language: "en-IN",
		Country:  "IN",
		Edition:  "IN:en",
	}
}

package domainage

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds resolver tuning. The tables ship with compiled-in defaults
// and can be replaced wholesale from a YAML file.
type Config struct {
	// LookupTimeout bounds the single network attempt per uncached domain.
	LookupTimeout time.Duration `yaml:"lookup_timeout"`
	// FoundedYears maps well-known registrable domains to their founding year.
	FoundedYears map[string]int `yaml:"founded_years"`
	// TLDAgeYears maps a TLD (with leading dot) to a coarse age estimate.
	TLDAgeYears map[string]float64 `yaml:"tld_age_years"`
	// DefaultAgeYears is the estimate when nothing else matches.
	DefaultAgeYears float64 `yaml:"default_age_years"`
}

func (c *Config) defaults() {
	if c.LookupTimeout <= 0 {
		c.LookupTimeout = 2 * time.Second
	}
	if c.FoundedYears == nil {
		c.FoundedYears = map[string]int{
			"arxiv.org":         1991,
			"nature.com":        1994,
			"sciencemag.org":    1996,
			"nih.gov":           1993,
			"mit.edu":           1985,
			"stanford.edu":      1985,
			"wikipedia.org":     2001,
			"bbc.co.uk":         1996,
			"bbc.com":           1997,
			"nytimes.com":       1994,
			"reuters.com":       1995,
			"theguardian.com":   2013,
			"washingtonpost.com": 1995,
			"github.com":        2007,
			"gitlab.com":        2011,
			"stackoverflow.com": 2008,
			"google.com":        1997,
			"microsoft.com":     1991,
			"apple.com":         1987,
			"amazon.com":        1994,
			"reddit.com":        2005,
			"medium.com":        2012,
			"substack.com":      2017,
		}
	}
	if c.TLDAgeYears == nil {
		c.TLDAgeYears = map[string]float64{
			".edu": 25,
			".gov": 25,
			".mil": 25,
			".org": 15,
			".com": 10,
			".net": 10,
			".io":  6,
			".dev": 4,
			".app": 4,
			".xyz": 2,
		}
	}
	if c.DefaultAgeYears <= 0 {
		c.DefaultAgeYears = 3
	}
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

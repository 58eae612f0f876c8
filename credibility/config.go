package credibility

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/credence/domainage"
)

// FusionConfig tunes the odds-form Bayes fusion.
type FusionConfig struct {
	// OddsBase is the likelihood-ratio base: a decisive favorable signal
	// multiplies the posterior odds by this factor, a decisive unfavorable
	// one divides by it. Default: 3.0.
	OddsBase float64 `json:"odds_base" yaml:"odds_base"`

	// PageRankBoostK scales the authority boost (1 + k·pagerank) applied
	// to the posterior odds of domains present in the citation graph.
	// Default: 0.3.
	PageRankBoostK float64 `json:"pagerank_boost_k" yaml:"pagerank_boost_k"`

	// DisablePageRankBoost turns the authority boost off.
	DisablePageRankBoost bool `json:"disable_pagerank_boost" yaml:"disable_pagerank_boost"`
}

// BeliefConfig tunes per-domain learning from recorded outcomes.
type BeliefConfig struct {
	// LearningRate is the fraction of each observed error folded into the
	// domain's prior bias. Default: 0.1.
	LearningRate float64 `json:"learning_rate" yaml:"learning_rate"`

	// BiasClamp bounds the accumulated bias to ±clamp. Default: 0.2.
	BiasClamp float64 `json:"bias_clamp" yaml:"bias_clamp"`
}

// Config holds the engine configuration.
type Config struct {
	Fusion FusionConfig     `json:"fusion" yaml:"fusion"`
	Belief BeliefConfig     `json:"belief" yaml:"belief"`
	Age    domainage.Config `json:"age" yaml:"age"`

	// UncertaintyCeiling is the maximum half-width of the confidence
	// interval, reached when no real signal was provided. Default: 0.15.
	UncertaintyCeiling float64 `json:"uncertainty_ceiling" yaml:"uncertainty_ceiling"`

	// Rules replaces the built-in category table when non-empty. Rules are
	// evaluated in order, first match wins.
	Rules []CategoryRule `json:"rules,omitempty" yaml:"rules,omitempty"`

	// HistorySize caps the in-memory ring of recent assessments.
	// Default: 100.
	HistorySize int `json:"history_size" yaml:"history_size"`

	// BatchParallelism bounds concurrent assessments in AssessBatch.
	// Default: 4.
	BatchParallelism int `json:"batch_parallelism" yaml:"batch_parallelism"`

	// GraphTopN is how many top-ranked domains GraphStats reports.
	// Default: 10.
	GraphTopN int `json:"graph_top_n" yaml:"graph_top_n"`
}

func (c *Config) defaults() {
	if c.Fusion.OddsBase == 0 {
		c.Fusion.OddsBase = 3.0
	}
	if c.Fusion.PageRankBoostK == 0 {
		c.Fusion.PageRankBoostK = 0.3
	}
	if c.Belief.LearningRate == 0 {
		c.Belief.LearningRate = 0.1
	}
	if c.Belief.BiasClamp == 0 {
		c.Belief.BiasClamp = 0.2
	}
	if c.UncertaintyCeiling == 0 {
		c.UncertaintyCeiling = 0.15
	}
	if len(c.Rules) == 0 {
		c.Rules = DefaultRules()
	}
	if c.HistorySize == 0 {
		c.HistorySize = 100
	}
	if c.BatchParallelism == 0 {
		c.BatchParallelism = 4
	}
	if c.GraphTopN == 0 {
		c.GraphTopN = 10
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

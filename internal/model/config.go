package model

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full engine configuration: reference data (alias table,
// known CRAs, claims catalog, cue phrases) plus runtime settings. It is
// loaded once per process and treated as immutable for the run, so shared
// reads during parallel extraction need no locking.
type Config struct {
	Aliases    map[string]string `yaml:"aliases"`     // raw name variant (case-insensitive) -> canonical legal name
	ShortNames map[string]string `yaml:"short_names"` // canonical legal name -> short name override
	CRAs       []CRAEntry        `yaml:"cras"`
	Claims     []ClaimTemplate   `yaml:"claims"`
	Cues       CueConfig         `yaml:"cues"`
	Policy     PolicyConfig      `yaml:"policy"`

	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Cache       CacheConfig       `yaml:"cache"`
	LLM         LLMConfig         `yaml:"llm"`
	Output      OutputConfig      `yaml:"output"`
}

// CRAEntry describes one known consumer reporting agency. Match terms are
// compared case-insensitively against candidate names and document text.
type CRAEntry struct {
	Name                 string   `yaml:"name"`       // canonical legal name
	ShortName            string   `yaml:"short_name"`
	Match                []string `yaml:"match"`
	StateOfIncorporation string   `yaml:"state_of_incorporation"`
	BusinessStatus       string   `yaml:"business_status"`
}

// CueConfig holds the phrase lists driving classification. These are
// reference data, not code: jurisdiction-specific adjustments land here.
type CueConfig struct {
	FCRATriggers  []string `yaml:"fcra_triggers"`
	Furnisher     []string `yaml:"furnisher"`
	DecisionMaker []string `yaml:"decision_maker"`
}

// PolicyConfig holds legally consequential switches that must stay visible
// in configuration rather than be baked into matching code.
type PolicyConfig struct {
	// AddNationalCRAsOnTrigger adds every configured CRA as a defendant
	// whenever a document shows FCRA trigger language, even if no bureau is
	// named. Whether this is appropriate is a jurisdictional judgment call,
	// hence a policy flag and a recorded warning when it fires.
	AddNationalCRAsOnTrigger bool `yaml:"add_national_cras_on_trigger"`
	// DefaultConsumerStatus fills parties.plaintiff.consumer_status when no
	// document states it, with a warning. Empty disables the fallback.
	DefaultConsumerStatus string `yaml:"default_consumer_status"`
	// DefaultDocumentTitle fills case_information.document_title when no
	// document supplies one, with a warning. Empty disables the fallback.
	DefaultDocumentTitle string `yaml:"default_document_title"`
}

// ConcurrencyConfig controls the extraction worker pool.
type ConcurrencyConfig struct {
	ExtractionWorkers int `yaml:"extraction_workers"`
}

// CacheConfig controls the per-document extraction cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// LLMConfig configures the optional case-summary provider. Disabled unless
// a provider is named. The summary is a separate artifact and never enters
// the case record.
type LLMConfig struct {
	Provider          string  `yaml:"provider"` // "openai" or "" (disabled)
	Model             string  `yaml:"model"`
	APIKey            string  `yaml:"-"` // environment only, never persisted
	BaseURL           string  `yaml:"base_url"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
	MaxTokens         int     `yaml:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// OutputConfig controls artifact rendering.
type OutputConfig struct {
	Dir             string `yaml:"dir"`
	Verbose         bool   `yaml:"verbose"`
	IncludeMarkdown bool   `yaml:"include_markdown"`
}

// DefaultConfig returns the shipped reference data and runtime defaults.
func DefaultConfig() *Config {
	return &Config{
		Aliases: map[string]string{
			"td bank":             "TD BANK, N.A.",
			"td bank na":          "TD BANK, N.A.",
			"td bank usa":         "TD BANK USA, N.A.",
			"chase":               "JPMORGAN CHASE BANK, N.A.",
			"jp morgan chase":     "JPMORGAN CHASE BANK, N.A.",
			"jpmorgan chase bank": "JPMORGAN CHASE BANK, N.A.",
			"capital one":         "CAPITAL ONE, N.A.",
			"barclays":            "BARCLAYS BANK DELAWARE",
			"barclays bank":       "BARCLAYS BANK DELAWARE",
			"equifax":             "EQUIFAX INFORMATION SERVICES, LLC",
			"experian":            "EXPERIAN INFORMATION SOLUTIONS, INC.",
			"transunion":          "TRANS UNION, LLC",
			"trans union":         "TRANS UNION, LLC",
		},
		ShortNames: map[string]string{
			"EQUIFAX INFORMATION SERVICES, LLC":    "Equifax",
			"EXPERIAN INFORMATION SOLUTIONS, INC.": "Experian",
			"TRANS UNION, LLC":                     "Trans Union",
			"JPMORGAN CHASE BANK, N.A.":            "Chase",
		},
		CRAs: []CRAEntry{
			{
				Name:                 "EQUIFAX INFORMATION SERVICES, LLC",
				ShortName:            "Equifax",
				Match:                []string{"equifax"},
				StateOfIncorporation: "Georgia",
				BusinessStatus:       "Foreign limited liability company",
			},
			{
				Name:                 "EXPERIAN INFORMATION SOLUTIONS, INC.",
				ShortName:            "Experian",
				Match:                []string{"experian"},
				StateOfIncorporation: "Ohio",
				BusinessStatus:       "Foreign corporation",
			},
			{
				Name:                 "TRANS UNION, LLC",
				ShortName:            "Trans Union",
				Match:                []string{"trans union", "transunion"},
				StateOfIncorporation: "Delaware",
				BusinessStatus:       "Foreign limited liability company",
			},
		},
		Claims: DefaultClaims(),
		Cues: CueConfig{
			FCRATriggers: []string{
				"fcra",
				"fair credit reporting act",
				"credit report",
				"credit file",
				"dispute",
				"reinvestigation",
			},
			Furnisher: []string{
				"disputed",
				"dispute",
				"furnished",
				"furnisher",
				"reported the account",
				"reported to",
				"re-reported",
				"continued to report",
				"failed to investigate",
				"failed to correct",
			},
			DecisionMaker: []string{
				"denied",
				"declined",
				"adverse action",
				"used information",
				"based on information",
				"obtained from",
				"in making our decision",
			},
		},
		Policy: PolicyConfig{
			AddNationalCRAsOnTrigger: true,
			DefaultConsumerStatus:    "Individual consumer as defined by 15 U.S.C. § 1681a(c)",
			DefaultDocumentTitle:     "COMPLAINT AND DEMAND FOR JURY TRIAL",
		},
		Concurrency: ConcurrencyConfig{
			ExtractionWorkers: 4,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "", // resolved to <config dir>/cache when empty
			TTL:     24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:          "",
			Model:             "",
			TimeoutSeconds:    30,
			MaxTokens:         800,
			RequestsPerSecond: 0.5,
		},
		Output: OutputConfig{
			Dir:             ".",
			IncludeMarkdown: true,
		},
	}
}

// LoadFile overlays a YAML config file on top of the receiver. Missing
// file is not an error; defaults stand.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "expert-finder/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Provider selects the backend: "qwen" or "gemini".
	Provider string `json:"provider" yaml:"provider"`

	// Model is the AI model identifier (e.g. "qwen-plus").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of attempts for transient API failures
	// (default 10).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// FetchConfig holds settings for publication metadata fetching.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// RequestDelay is the delay between consecutive fetches (default 3s).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`
}

// ProfileConfig holds settings for author profile building.
type ProfileConfig struct {
	// DatabasePath is the author database JSONL file: one
	// {"name", "publication_urls"} object per line.
	DatabasePath string `json:"database_path" yaml:"database_path"`

	// CachePath is the author_profile.json snapshot. Read if present,
	// rebuilt otherwise.
	CachePath string `json:"cache_path" yaml:"cache_path"`

	// SummaryWordLimit caps the generated narrative summary (default 250).
	SummaryWordLimit int `json:"summary_word_limit" yaml:"summary_word_limit"`

	// MaxPublicationTokens is the estimated token budget for the
	// publication list fed to summarization (default 100000).
	MaxPublicationTokens int `json:"max_publication_tokens" yaml:"max_publication_tokens"`
}

// EmbedConfig holds settings for the embedding engine.
type EmbedConfig struct {
	// Provider selects the engine: "genai" or "openai".
	Provider string `json:"provider" yaml:"provider"`

	// Model is the embedding model identifier
	// (e.g. "gemini-embedding-001" or "text-embedding-v3").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the embedding API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the OpenAI-compatible endpoint base.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// RankConfig holds settings for one ranking run.
type RankConfig struct {
	// Mode is the aggregation mode: aggregate or summarize.
	Mode Mode `json:"mode" yaml:"mode"`

	// TopK is the number of top-ranked candidates to justify (default 10).
	TopK int `json:"top_k" yaml:"top_k"`

	// LogDir is the directory raw outputs and score files are written
	// to (default "log").
	LogDir string `json:"log_dir" yaml:"log_dir"`
}

// JustifyConfig holds settings for justification generation.
type JustifyConfig struct {
	AIConfig `yaml:",inline"`

	// RetryDelay is the fixed delay between retry attempts (default 1s).
	RetryDelay time.Duration `json:"retry_delay" yaml:"retry_delay"`

	// RequestDelay is the polite delay between successive candidates
	// (default 2s). Not a correctness requirement, but it keeps the
	// upstream service from throttling the run.
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`
}

// ConsolidateConfig holds settings for result consolidation.
type ConsolidateConfig struct {
	// LogDir is the directory holding raw per-query outputs; canonical
	// CSVs are written to LogDir/{mode}/{i}.csv.
	LogDir string `json:"log_dir" yaml:"log_dir"`

	// Modes lists the aggregation modes to consolidate.
	Modes []Mode `json:"modes" yaml:"modes"`

	// Queries lists the query indices to consolidate.
	Queries []int `json:"queries" yaml:"queries"`
}

// AgreementConfig holds settings for cross-system agreement analysis.
type AgreementConfig struct {
	// LogDir is the directory holding per-system consolidated CSVs.
	LogDir string `json:"log_dir" yaml:"log_dir"`

	// Systems are the scoring systems to compare (default
	// gpt, gemini, summarize, aggregate).
	Systems []string `json:"systems" yaml:"systems"`

	// QueryIDs are the per-query consolidated file stems.
	QueryIDs []string `json:"query_ids" yaml:"query_ids"`

	// TopN is the size of each compared name set (default 10).
	TopN int `json:"top_n" yaml:"top_n"`

	// OutputPath is the agreement report CSV (default "agreement_report.csv").
	OutputPath string `json:"output_path" yaml:"output_path"`
}

// PipelineConfig groups all stage configurations for the pipeline.
// Loaded once at process start, immutable thereafter.
type PipelineConfig struct {
	Fetch       FetchConfig       `json:"fetch" yaml:"fetch"`
	Profile     ProfileConfig     `json:"profile" yaml:"profile"`
	Embed       EmbedConfig       `json:"embed" yaml:"embed"`
	Rank        RankConfig        `json:"rank" yaml:"rank"`
	Justify     JustifyConfig     `json:"justify" yaml:"justify"`
	Consolidate ConsolidateConfig `json:"consolidate" yaml:"consolidate"`
	Agreement   AgreementConfig   `json:"agreement" yaml:"agreement"`
}

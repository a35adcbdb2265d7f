package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-verifier/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// FetchConfig holds settings for the evidence-file fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// DownloadDelay is the delay between consecutive downloads (default 1s).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay" mapstructure:"download_delay"`

	// PapersDir is the base directory for evidence files (contains raw/, metadata/).
	PapersDir string `json:"papers_dir" yaml:"papers_dir" mapstructure:"papers_dir"`
}

// AIConfig holds shared settings for stages that call a chat-completions API.
type AIConfig struct {
	// BaseURL is the API base, e.g. "https://api.example.com/v1".
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Model is the model identifier sent with each request.
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the bearer token for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxRetries is the number of retry attempts for rate-limited calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// RecognitionConfig holds settings for the optical-recognition stage.
type RecognitionConfig struct {
	AIConfig   `yaml:",inline" mapstructure:",squash"`
	HTTPConfig `yaml:",inline" mapstructure:",squash"`
}

// StructuringConfig holds settings for the language-structuring stage.
// Empty fields fall back to the recognition stage's values.
type StructuringConfig struct {
	AIConfig   `yaml:",inline" mapstructure:",squash"`
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxInputChars bounds the recognition text sent to the structuring
	// model (default 8000). Longer text is truncated, not rejected.
	MaxInputChars int `json:"max_input_chars" yaml:"max_input_chars" mapstructure:"max_input_chars"`
}

// StoreConfig holds settings for the persisted paper index.
type StoreConfig struct {
	// IndexDir is the directory containing the SQLite database (default "index").
	IndexDir string `json:"index_dir" yaml:"index_dir" mapstructure:"index_dir"`
}

// VerifierConfig groups all stage configurations.
type VerifierConfig struct {
	Fetch       FetchConfig       `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
	Recognition RecognitionConfig `json:"recognition" yaml:"recognition" mapstructure:"recognition"`
	Structuring StructuringConfig `json:"structuring" yaml:"structuring" mapstructure:"structuring"`
	Store       StoreConfig       `json:"store" yaml:"store" mapstructure:"store"`
}

package config

import "time"

// Config carries every runtime setting for a translation run. Fields are
// populated from flags, environment variables and the optional config file
// via viper; Normalize fills in defaults for anything left unset.
type Config struct {
	// Source is the location of the source corpus: a local path or an
	// http(s) URL. GitHub blob URLs are rewritten to raw form on fetch.
	Source string `mapstructure:"source"`

	// OutputDir is where per-language artifacts and run summaries land.
	OutputDir string `mapstructure:"output_dir"`

	// Languages lists the target language codes to translate into.
	Languages []string `mapstructure:"languages"`

	// Provider selects the translation backend: "openrouter" or "google".
	Provider string `mapstructure:"provider"`

	// Models is the OpenRouter model rotation, tried in order.
	Models []string `mapstructure:"models"`

	APIKey          string `mapstructure:"api_key"`
	BaseURL         string `mapstructure:"base_url"`
	Referer         string `mapstructure:"referer"`
	Title           string `mapstructure:"title"`
	CredentialsFile string `mapstructure:"credentials_file"`
	ProjectID       string `mapstructure:"project_id"`

	ChunkSize   int           `mapstructure:"chunk_size"`
	Concurrency int           `mapstructure:"concurrency"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	RetryDelay  time.Duration `mapstructure:"retry_delay"`
	SlotPause   time.Duration `mapstructure:"slot_pause"`
	ChunkPause  time.Duration `mapstructure:"chunk_pause"`

	// InterBatchDelay separates consecutive per-language batches.
	InterBatchDelay time.Duration `mapstructure:"inter_batch_delay"`

	CacheDir string        `mapstructure:"cache_dir"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// BlockBegin and BlockEnd delimit the embedded corpus block when the
	// source document is not a plain JSON/YAML file.
	BlockBegin string `mapstructure:"block_begin"`
	BlockEnd   string `mapstructure:"block_end"`

	// Force retranslates the whole corpus instead of only missing keys.
	Force bool `mapstructure:"force"`

	// ContextHint is appended to every translation prompt.
	ContextHint string `mapstructure:"context_hint"`

	// ContinueOnError keeps going with the remaining languages after a
	// failed batch instead of aborting the run.
	ContinueOnError bool `mapstructure:"continue_on_error"`
}

// Default returns a Config with every tunable at its stock value.
func Default() Config {
	cfg := Config{}
	cfg.Normalize()
	return cfg
}

// Normalize fills zero-valued tunables with their defaults so a partially
// populated Config is always safe to run with.
func (c *Config) Normalize() {
	if c.OutputDir == "" {
		c.OutputDir = "./locales"
	}
	if c.Provider == "" {
		c.Provider = "openrouter"
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = 50
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 2
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 2
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = time.Second
	}
	if c.SlotPause <= 0 {
		c.SlotPause = 300 * time.Millisecond
	}
	if c.ChunkPause <= 0 {
		c.ChunkPause = 500 * time.Millisecond
	}
	if c.InterBatchDelay <= 0 {
		c.InterBatchDelay = time.Second
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = time.Hour
	}
}

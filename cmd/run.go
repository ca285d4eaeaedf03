/*
Copyright © 2026 Valentyn Kovalenko <valentyn.kovalenko@ukr.net>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/valko/pereklad/internal/config"
	"github.com/valko/pereklad/internal/provider"
	"github.com/valko/pereklad/internal/run"
	"github.com/valko/pereklad/internal/source"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Translate the source catalog into the target languages",
	Long: `Fetch the source catalog, diff it against each language's existing
artifact, and translate only what changed.

The source location may be a local file or an http(s) URL; GitHub blob URLs
are rewritten to their raw form and remote content is cached for an hour.

Providers:
  - openrouter  OpenRouter chat models (requires --api-key)
  - google      Google Cloud Translate (requires --credentials)

Every flag can also come from pereklad.yaml or a PEREKLAD_* environment
variable; flags win.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Source == "" {
			return fmt.Errorf("a source location is required (--source)")
		}
		if len(cfg.Languages) == 0 {
			return fmt.Errorf("at least one target language is required (--languages)")
		}

		backend, err := buildBackend(cfg)
		if err != nil {
			return err
		}

		client := provider.NewClient(backend, cfg.MaxAttempts, cfg.RetryDelay)
		fetcher := source.NewFetcher(cfg.CacheDir, cfg.CacheTTL)
		runner := run.NewRunner(cfg, fetcher, client, os.Stderr)

		policy := run.AbortOnError
		if cfg.ContinueOnError {
			policy = run.ContinueOnError
		}

		results, err := runner.RunAll(context.Background(), policy)
		if err != nil {
			return err
		}

		failed := 0
		for _, res := range results {
			switch {
			case res.Err != nil:
				failed++
				fmt.Printf("%s %s: %v\n", red("✗"), res.Code, res.Err)
			case res.Summary != nil && res.Summary.Attempted == 0:
				fmt.Printf("%s %s: up to date (%d unchanged, %d removed)\n",
					yellow("-"), res.Code, res.Summary.Unchanged, res.Summary.Removed)
			default:
				fmt.Printf("%s %s: %d/%d translated\n",
					green("✓"), res.Code, res.Summary.Succeeded, res.Summary.Attempted)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d languages failed", failed, len(results))
		}
		return nil
	},
}

// loadConfig resolves the effective Config from flags, environment and the
// config file, then fills in defaults.
func loadConfig() (config.Config, error) {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

func buildBackend(cfg config.Config) (provider.Backend, error) {
	switch cfg.Provider {
	case "openrouter":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenRouter requires an API key (--api-key or PEREKLAD_API_KEY)")
		}
		return provider.NewOpenRouterBackend(cfg.APIKey, cfg.BaseURL, cfg.Referer, cfg.Title, cfg.Models), nil
	case "google":
		return provider.NewGoogleBackend(cfg.CredentialsFile), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (openrouter, google)", cfg.Provider)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.StringP("source", "s", "", "Source catalog: local path or http(s) URL (required)")
	f.StringP("output-dir", "o", "./locales", "Directory for artifacts and run summaries")
	f.StringSliceP("languages", "l", nil, "Target language codes, comma-separated (required)")
	f.String("provider", "openrouter", "Translation backend: openrouter or google")
	f.StringSlice("models", nil, "OpenRouter model rotation (default list used if empty)")
	f.String("api-key", "", "OpenRouter API key")
	f.String("base-url", "", "OpenRouter base URL override")
	f.String("referer", "", "HTTP-Referer header sent to OpenRouter")
	f.String("title", "", "X-Title header sent to OpenRouter")
	f.String("credentials-file", "", "Path to Google Cloud credentials")

	f.Int("chunk-size", 50, "Entries per chunk")
	f.Int("concurrency", 2, "Concurrent provider calls within a chunk")
	f.Int("max-attempts", 2, "Attempts per entry including the first")
	f.Duration("retry-delay", 0, "Delay between attempts for one entry")
	f.Duration("slot-pause", 0, "Pause between launches within a chunk")
	f.Duration("chunk-pause", 0, "Pause between chunks")
	f.Duration("inter-batch-delay", 0, "Pause between per-language batches")

	f.String("cache-dir", "", "Fetch-cache directory (default under the system temp dir)")
	f.Duration("cache-ttl", 0, "Fetch-cache freshness window (default 1h)")

	f.String("block-begin", "", "Embedded-block begin marker override")
	f.String("block-end", "", "Embedded-block end marker override")

	f.Bool("force", false, "Retranslate every key, not just new ones")
	f.String("context-hint", "", "Extra context appended to every translation prompt")
	f.Bool("continue-on-error", false, "Keep going with remaining languages after a failed one")

	// Config keys are snake_case; flags are kebab-case.
	f.VisitAll(func(flag *pflag.Flag) {
		_ = viper.BindPFlag(strings.ReplaceAll(flag.Name, "-", "_"), flag)
	})
}

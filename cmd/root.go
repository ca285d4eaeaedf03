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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.3.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pereklad",
	Short: "Incremental UI-string catalog translator",
	Long: `Pereklad translates keyed UI-string catalogs into target languages
through external providers (OpenRouter LLMs or Google Cloud Translate).

Runs are incremental: strings already translated in a language's artifact
are left alone, keys removed from the source are dropped, and only new keys
are sent to the provider. Use --force to retranslate everything.

Use "pereklad run --help" for translation options.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./pereklad.yaml)")
}

// initConfig layers the optional config file and PEREKLAD_* environment
// variables under the flag values.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pereklad")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("PEREKLAD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: config file: %v\n", err)
		}
	}
}

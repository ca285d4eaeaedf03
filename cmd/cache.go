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
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/valko/pereklad/internal/source"
)

var cacheDir string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the remote-fetch cache",
	Long:  `Inspect and clear the on-disk cache of fetched source documents.`,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show fetch-cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cacheDir
		if dir == "" {
			dir = source.DefaultCacheDir()
		}
		stats, err := source.Stats(dir)
		if err != nil {
			return fmt.Errorf("reading cache: %w", err)
		}

		fmt.Printf("Directory: %s\n", dir)
		fmt.Printf("Entries:   %d\n", stats.Entries)
		fmt.Printf("Size:      %d bytes\n", stats.TotalBytes)
		if !stats.Oldest.IsZero() {
			fmt.Printf("Oldest:    %s (%s ago)\n",
				stats.Oldest.Format(time.RFC3339), time.Since(stats.Oldest).Round(time.Second))
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached fetches",
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := source.ClearCache(cacheDir)
		if err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Printf("Removed %d cache entries.\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	cacheCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "Cache directory (default under the system temp dir)")
}

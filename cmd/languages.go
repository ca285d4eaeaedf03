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
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valko/pereklad/internal/langcat"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the known target languages",
	Long: `Print the built-in language catalog. Codes outside this list still
work when they parse as BCP-47 tags; their names come from CLDR data.`,
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tNAME\tNATIVE")
		for _, d := range langcat.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", d.Code, d.Name, d.NativeName)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

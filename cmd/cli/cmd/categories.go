// Package cmd - categories command
package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"presolar/core/classify"
)

var categoryNotes = map[classify.Category]string{
	classify.M:  "mainstream; low-mass AGB stars",
	classify.AB: "low 12C/13C",
	classify.Y:  "high 12C/13C, 30Si excess",
	classify.Z:  "29Si depleted, 30Si enriched",
	classify.X:  "supernova; 28Si excess, 15N rich",
	classify.C:  "supernova; 29Si and 30Si excess",
	classify.D:  "novae candidates",
	classify.N:  "novae; low 12C/13C and 14N/15N",
}

// categoriesCmd lists the grain types in tie-break order
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List grain types and subtypes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TYPE\tSUBTYPES\tNOTES")
		for _, c := range classify.Categories {
			subs := "-"
			if list := classify.SubtypesOf(c); len(list) > 0 {
				names := make([]string, len(list))
				for i, s := range list {
					names[i] = string(s)
				}
				subs = strings.Join(names, ", ")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", c, subs, categoryNotes[c])
		}
		fmt.Fprintf(tw, "%s\t-\tno type reaches p >= %.2f\n", classify.Unclassified, classify.MinProbability)
		tw.Flush()
	},
}

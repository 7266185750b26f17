package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/edudesign/internal/persona"
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List the lesson chat personas",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		all := persona.All()
		configs := make([]persona.Config, 0, len(all))
		for _, a := range all {
			c, err := persona.Lookup(a)
			if err != nil {
				return err
			}
			configs = append(configs, c)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(configs)
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
		for _, c := range configs {
			fmt.Fprintf(tw, "%s\t%s %s\t%s\n", c.ID, c.Glyph, c.Name, c.Description)
		}
		return tw.Flush()
	},
}

func init() {
	personasCmd.Flags().Bool("json", false, "Print the full persona table as JSON")
}

package cmd

import (
	"fmt"

	"github.com/brogergvhs/mangasrc/internal/config"

	"github.com/spf13/cobra"
)

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := config.DefaultProfiles().List()
		if err != nil {
			return fmt.Errorf("cannot read configs directory: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No profiles yet. Run `mangasrc config init`.")
			return nil
		}

		w := newTable()
		fmt.Fprintln(w, "LABEL\tPATH\tACTIVE")
		for _, c := range list {
			active := ""
			if c.Active {
				active = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.Label, c.Path, active)
		}
		return w.Flush()
	},
}

func init() {
	configCmd.AddCommand(configListCmd)
}

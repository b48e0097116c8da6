package cmd

import (
	"fmt"

	"github.com/brogergvhs/mangasrc/internal/config"

	"github.com/spf13/cobra"
)

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the active profile to default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.DefaultProfiles().Reset()
		if err != nil {
			return err
		}

		fmt.Printf("Reset active config: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
}

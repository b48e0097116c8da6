package cmd

import (
	"fmt"
	"strings"

	"github.com/brogergvhs/mangasrc/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Create a new profile with default values",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string
		if len(args) == 1 {
			label = args[0]
		} else {
			prompt := promptui.Prompt{Label: "Label for new config"}
			v, err := prompt.Run()
			if err != nil {
				fmt.Println("Aborted.")
				return nil
			}
			label = strings.TrimSpace(v)
		}

		path, err := config.DefaultProfiles().Add(label)
		if err != nil {
			return err
		}

		fmt.Printf("Created new config: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configAddCmd)
}

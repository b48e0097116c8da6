package cmd

import (
	"fmt"

	"github.com/brogergvhs/mangasrc/internal/config"
	"github.com/brogergvhs/mangasrc/internal/providers"

	"github.com/spf13/cobra"
)

type sourceInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Lang     string `json:"lang"`
	BaseURL  string `json:"base_url"`
	Latest   bool   `json:"supports_latest"`
	Selected bool   `json:"selected"`
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the available sources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, log, err := loadConfig(config.Options{})
		if err != nil {
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		var out []sourceInfo
		for _, id := range providers.IDs() {
			src, err := newSource(id, store, log)
			if err != nil {
				return err
			}

			out = append(out, sourceInfo{
				ID:       src.ID(),
				Name:     src.Name(),
				Lang:     src.Lang(),
				BaseURL:  src.BaseURL(),
				Latest:   src.SupportsLatest(),
				Selected: id == cfg.Source,
			})
		}

		if flagJSON {
			return printJSON(out)
		}

		w := newTable()
		fmt.Fprintln(w, "ID\tNAME\tLANG\tBASE URL\t")
		for _, s := range out {
			mark := ""
			if s.Selected {
				mark = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Lang, s.BaseURL, mark)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brogergvhs/mangasrc/internal/config"
	"github.com/brogergvhs/mangasrc/internal/providers"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var (
	flagPage    int
	flagTag     string
	flagPickTag bool
)

func init() {
	popularCmd := &cobra.Command{
		Use:   "popular",
		Short: "List the most viewed titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(config.Options{})
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.client.Popular(cmd.Context(), flagPage)
			if err != nil {
				return err
			}

			return printMangas(p)
		},
	}

	latestCmd := &cobra.Command{
		Use:   "latest",
		Short: "List recently updated titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(config.Options{})
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.client.Latest(cmd.Context(), flagPage)
			if err != nil {
				return err
			}

			return printMangas(p)
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search by keyword or browse a genre",
		Long: "Search by keyword. Without a keyword the selected genre (--tag or --pick-tag)\n" +
			"is browsed, and with neither the popular listing is shown.",
		RunE: runSearch,
	}
	searchCmd.Flags().StringVar(&flagTag, "tag", "", "genre id or name")
	searchCmd.Flags().BoolVar(&flagPickTag, "pick-tag", false, "choose the genre interactively")

	for _, c := range []*cobra.Command{popularCmd, latestCmd, searchCmd} {
		c.Flags().IntVarP(&flagPage, "page", "p", 1, "result page (1-based)")
		rootCmd.AddCommand(c)
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "details <manga-url>",
		Short: "Show a title's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(config.Options{})
			if err != nil {
				return err
			}
			defer s.Close()

			d, err := s.client.Details(cmd.Context(), providers.Manga{URL: args[0]})
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(d)
			}

			fmt.Printf("Title:       %s\n", d.Title)
			fmt.Printf("Author:      %s\n", d.Author)
			fmt.Printf("Status:      %s\n", d.Status)
			fmt.Printf("Genres:      %s\n", strings.Join(d.Genres, ", "))
			fmt.Printf("Cover:       %s\n", d.ThumbnailURL)
			fmt.Printf("\n%s\n", d.Description)
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "chapters <manga-url>",
		Short: "List a title's chapters, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(config.Options{})
			if err != nil {
				return err
			}
			defer s.Close()

			list, err := s.client.Chapters(cmd.Context(), providers.Manga{URL: args[0]})
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(list)
			}

			w := newTable()
			fmt.Fprintln(w, "NAME\tUPLOADED\tURL")
			for _, ch := range list {
				uploaded := "-"
				if !ch.UploadedAt.Equal(providers.Epoch) {
					uploaded = ch.UploadedAt.Format("2006-01-02 15:04")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", ch.Name, uploaded, ch.URL)
			}
			return w.Flush()
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "pages <chapter-url>",
		Short: "List a chapter's page images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(config.Options{})
			if err != nil {
				return err
			}
			defer s.Close()

			pages, err := s.client.Pages(cmd.Context(), providers.Chapter{URL: args[0]})
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(pages)
			}

			for _, p := range pages {
				fmt.Printf("%3d  %s\n", p.Index, p.ImageURL)
			}
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "filters",
		Short: "Show the genres a source can browse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(config.Options{})
			if err != nil {
				return err
			}
			defer s.Close()

			tf, ok := s.src.Filters().TagFilter()
			if !ok {
				return providers.ErrNoTagFilter
			}
			if flagJSON {
				return printJSON(tf.Tags)
			}

			fmt.Println(tf.Title + ":")
			w := newTable()
			for _, t := range tf.Tags {
				fmt.Fprintf(w, "  %s\t%s\n", t.Name, t.ID)
			}
			return w.Flush()
		},
	})
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, err := openSession(config.Options{})
	if err != nil {
		return err
	}
	defer s.Close()

	query := strings.TrimSpace(strings.Join(args, " "))
	filters := s.src.Filters()

	switch {
	case flagTag != "":
		if filters, err = filters.WithTag(flagTag); err != nil {
			return err
		}
	case flagPickTag:
		if filters, err = pickTag(filters); err != nil {
			return err
		}
	}

	p, err := s.client.Search(cmd.Context(), flagPage, query, filters)
	if err != nil {
		return err
	}

	return printMangas(p)
}

func pickTag(filters providers.FilterList) (providers.FilterList, error) {
	tf, ok := filters.TagFilter()
	if !ok {
		return nil, providers.ErrNoTagFilter
	}

	prompt := promptui.Select{
		Label: tf.Title,
		Items: tf.Names(),
		Size:  15,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return nil, fmt.Errorf("selection cancelled")
		}
		return nil, err
	}

	return filters.WithTag(tf.Tags[idx].Name)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/brogergvhs/mangasrc/internal/providers"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	return enc.Encode(v)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
}

func printMangas(p providers.MangasPage) error {
	if flagJSON {
		return printJSON(p)
	}

	w := newTable()
	fmt.Fprintln(w, "#\tTITLE\tURL")
	for i, m := range p.Mangas {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, m.Title, m.URL)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if p.HasNextPage {
		fmt.Println("\nMore results on the next page (--page).")
	}

	return nil
}

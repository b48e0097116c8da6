package cmd

import (
	"fmt"

	"github.com/brogergvhs/mangasrc/internal/config"
	"github.com/brogergvhs/mangasrc/internal/prefs"
	"github.com/brogergvhs/mangasrc/internal/providers"

	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change the selected source's preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withSourcePrefs(func(src providers.Source, scoped *prefs.Scoped) error {
			w := newTable()
			fmt.Fprintln(w, "KEY\tVALUE\tTITLE")
			for _, p := range src.Preferences() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Key, scoped.String(p.Key, p.Default), p.Title)
			}
			return w.Flush()
		})
	},
}

var prefsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one preference value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSourcePrefs(func(src providers.Source, scoped *prefs.Scoped) error {
			p, err := findPreference(src, args[0])
			if err != nil {
				return err
			}

			fmt.Println(scoped.String(p.Key, p.Default))
			return nil
		})
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one preference; an empty value restores the default",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSourcePrefs(func(src providers.Source, scoped *prefs.Scoped) error {
			p, err := findPreference(src, args[0])
			if err != nil {
				return err
			}

			if err := scoped.SetString(p.Key, args[1]); err != nil {
				return err
			}

			fmt.Printf("%s.%s = %q\n", src.ID(), p.Key, args[1])
			if p.ChangeNotice != "" {
				fmt.Println(p.ChangeNotice)
			}
			return nil
		})
	},
}

func init() {
	prefsCmd.AddCommand(prefsGetCmd, prefsSetCmd)
	rootCmd.AddCommand(prefsCmd)
}

func withSourcePrefs(fn func(providers.Source, *prefs.Scoped) error) error {
	cfg, _, log, err := loadConfig(config.Options{})
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	src, err := newSource(cfg.Source, store, log)
	if err != nil {
		return err
	}

	return fn(src, prefs.For(store, src.ID(), log))
}

func findPreference(src providers.Source, key string) (providers.Preference, error) {
	for _, p := range src.Preferences() {
		if p.Key == key {
			return p, nil
		}
	}

	return providers.Preference{}, fmt.Errorf("%s has no preference %q", src.ID(), key)
}

// Package main provides CLI flag definitions for lazyscripture.
package main

import (
	"fmt"
	"strings"

	"github.com/chmouel/lazyscripture/internal/theme"
	urfavecli "github.com/urfave/cli/v2"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via App.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:    "corpus-dir",
			Aliases: []string{"d"},
			Usage:   "Override the translation corpus directory",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme",
		},
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&urfavecli.StringFlag{
			Name:  "state-file",
			Usage: "Override the session state file",
		},
		&urfavecli.BoolFlag{
			Name:  "no-watch",
			Usage: "Disable automatic corpus reload on file changes",
		},
		&urfavecli.BoolFlag{
			Name:  "list-themes",
			Usage: "List available UI themes",
		},
	}
}

// applyThemeConfig validates and applies the theme override.
func applyThemeConfig(cfgTheme *string, override string) error {
	if override == "" {
		return nil
	}
	normalized := strings.ToLower(strings.TrimSpace(override))
	for _, name := range theme.AvailableThemes() {
		if normalized == name {
			*cfgTheme = normalized
			return nil
		}
	}
	return fmt.Errorf("unknown theme %q (available: %s)",
		override, strings.Join(theme.AvailableThemes(), ", "))
}

func printThemes() {
	for _, name := range theme.AvailableThemes() {
		fmt.Println(name)
	}
}

// cmd/firewatch/root.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// logLevel and outputFolder are bound to both a persistent flag and a
// FIREWATCH_-prefixed environment variable (§6.4), so a batch run on a
// scheduler can override either without editing the parameters file.
var (
	logLevel     string
	outputFolder string
	newRunID     bool
	cpuProfile   string
	memProfile   string
)

// NewRootCommand builds the firewatch command tree: run-simulation, the
// workhorse subcommand, and gui, a stub kept so the command surface's
// exit-code contract holds for both (§6.4).
func NewRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("FIREWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "firewatch",
		Short: "Dispatch simulation for lightning-strike inspection and suppression fleets",
		Long: `firewatch simulates dispatching inspection UAVs and water-bomber aircraft
against a stream of geolocated lightning strikes.

Examples:
  firewatch run-simulation parameters.json
  firewatch run-simulation --loglevel debug --output-folder ./out parameters.json
  firewatch gui`,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	root.PersistentFlags().StringVar(&logLevel, "loglevel", "info", "logging level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&outputFolder, "output-folder", "", "override output_folder_name from the parameters file")
	_ = v.BindPFlag("loglevel", root.PersistentFlags().Lookup("loglevel"))
	_ = v.BindPFlag("output_folder", root.PersistentFlags().Lookup("output-folder"))

	root.AddCommand(newRunSimulationCommand(v))
	root.AddCommand(newGUICommand())

	return root
}

// cmd/firewatch/gui.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newGUICommand is a stub: the map-tile visual front-end that would
// consume gui.json is out of scope for this binary (mirroring spec.md
// §1's exclusion), but the subcommand stays real so run-simulation and
// gui share one exit-code contract.
func newGUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the visual replay viewer (out of scope for this binary)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("the gui viewer is a separate front-end; this binary only produces gui.json for it to consume")
			return nil
		},
	}
}

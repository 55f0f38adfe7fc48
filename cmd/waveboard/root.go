// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waveboard Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the Waveboard CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waveboard",
		Short: "Waveboard - community board backend",
		Long: `Waveboard is the backend for the Waveboard community board:
user registration, login, and cookie-based sessions over a JSON API.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}

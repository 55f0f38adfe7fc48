// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waveboard Contributors

package main

import (
	"strconv"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/waveboard/waveboard/internal/config"
	"github.com/waveboard/waveboard/internal/store"
)

// NewMigrateCmd creates the migrate subcommand and its children.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
		Long:  `Apply or roll back schema migrations against the PostgreSQL database.`,
	}

	cmd.PersistentFlags().String("database.url", "", "PostgreSQL connection URL")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m *store.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				cmd.Println("migrations applied")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations (destructive)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m *store.Migrator) error {
				if err := m.Down(); err != nil {
					return err
				}
				cmd.Println("migrations rolled back")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "steps <n>",
		Short: "Apply n migrations (negative rolls back)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return oops.Code("MIGRATION_INVALID_STEPS").With("arg", args[0]).Wrap(err)
			}
			return withMigrator(cmd, func(m *store.Migrator) error {
				if err := m.Steps(n); err != nil {
					return err
				}
				cmd.Printf("applied %d migration step(s)\n", n)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show the current migration version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m *store.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				cmd.Printf("version: %d dirty: %v\n", version, dirty)
				return nil
			})
		},
	})

	return cmd
}

// withMigrator loads configuration, opens a migrator, runs fn, and closes
// the migrator.
func withMigrator(cmd *cobra.Command, fn func(*store.Migrator) error) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	m, err := store.NewMigrator(cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	return fn(m)
}

// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/database/gormstore"
)

func newMigrateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the feature store schema",
		Long: `Create or update the properties and user_preferences tables.
DuckDB applies its migrations on open; postgres and sqlite run gorm
AutoMigrate. The memory driver has no schema.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			store, err := openStore(&cfg.Database)
			if err != nil {
				return err
			}
			defer closeQuietly(store, "store")

			if gs, ok := store.(*gormstore.Store); ok {
				if err := gs.Migrate(cmd.Context()); err != nil {
					return err
				}
			}
			if err := store.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("ping %s: %w", store.Backend(), err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s schema is up to date\n", store.Backend())
			return err
		},
	}
}

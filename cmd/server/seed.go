// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/seed"
)

func newSeedCmd(flags *globalFlags) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load property and preference fixtures",
		Long: `Load fixtures from a YAML file, or the bundled demo data when --file is
omitted. Areas may be written in square feet or as land units such as
"4 aana" and "1-2-0-0".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fixtures, err := loadFixtures(file)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			st, err := openStack(ctx, cfg, true)
			if err != nil {
				return err
			}
			defer closeQuietly(st, "store")

			res, err := fixtures.Apply(ctx, st.store, st.logger)
			if err != nil {
				return err
			}
			// Seeded rows change every list.
			if st.cache != nil {
				if err := st.cache.Clear(ctx); err != nil {
					st.logger.Warn().Err(err).Msg("failed to clear recommendation cache")
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d properties and %d preferences\n",
				res.Properties, res.Preferences)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "fixture file (default: bundled demo data)")
	return cmd
}

func loadFixtures(path string) (*seed.Fixtures, error) {
	if path == "" {
		return seed.Demo()
	}
	return seed.LoadFile(path)
}

// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/signals"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/units"
)

func newSignalCmd(flags *globalFlags) *cobra.Command {
	var (
		userID     int64
		propertyID int64
		propType   string
		district   string
		maxPrice   int64
		minArea    string
	)

	cmd := &cobra.Command{
		Use:       "signal {search|view|favorite}",
		Short:     "Apply one user signal to the preference store",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"search", "view", "favorite"},
		RunE: func(cmd *cobra.Command, args []string) error {
			sig := models.Signal{
				UserID:     userID,
				Kind:       models.SignalKind(args[0]),
				PropertyID: propertyID,
			}
			if sig.Kind == models.SignalSearch {
				sig.Filters = models.SearchFilters{
					Type:     models.PropertyType(propType),
					District: district,
					MaxPrice: maxPrice,
				}
				if minArea != "" {
					v, err := units.ParseArea(minArea)
					if err != nil {
						return fmt.Errorf("--min-area: %w", err)
					}
					sig.Filters.MinArea = v
				}
			}

			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			// Signals never invalidate cached lists; a user's personalized
			// entries age out with the cache TTL, so no cache is opened.
			st, err := openStack(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer closeQuietly(st, "store")

			if err := signals.NewDirect(st.service).Submit(ctx, &sig); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "applied %s signal %s\n", sig.Kind, sig.ID)
			return err
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user id (required)")
	cmd.Flags().Int64Var(&propertyID, "property", 0, "property id (view and favorite)")
	cmd.Flags().StringVar(&propType, "type", "", "search filter: land or house")
	cmd.Flags().StringVar(&district, "district", "", "search filter: district")
	cmd.Flags().Int64Var(&maxPrice, "max-price", 0, "search filter: maximum price")
	cmd.Flags().StringVar(&minArea, "min-area", "", `search filter: minimum area, e.g. "4 aana"`)
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

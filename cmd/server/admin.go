// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/units"
)

func newPropertyCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "property",
		Short: "Listing maintenance",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "availability PROPERTY_ID STATUS",
		Short: "Change a listing's status (available, under_offer, sold, withdrawn, expired)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("PROPERTY_ID", args[0])
			if err != nil {
				return err
			}
			status, err := models.ParseAvailability(args[1])
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

			if err := st.service.SetAvailability(ctx, id, status); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "property %d is now %s\n", id, status)
			return err
		},
	})
	return cmd
}

func newPreferenceCmd(flags *globalFlags) *cobra.Command {
	var (
		userID int64
		typ    string
		key    string
		value  string
		weight float64
	)

	set := &cobra.Command{
		Use:   "set",
		Short: "Write an explicit preference, replacing value and weight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pref := models.UserPreference{
				UserID: userID,
				Type:   models.PreferenceType(typ),
				Key:    key,
				Value:  value,
				Weight: weight,
			}
			switch pref.Type {
			case models.PreferenceAreaRange:
				if pref.Key == "" {
					pref.Key = models.KeyMinArea
				}
				sqft, err := units.ParseArea(value)
				if err != nil {
					return fmt.Errorf("--value: %w", err)
				}
				pref.Value = models.FormatNumber(sqft)
			case models.PreferencePriceRange:
				if pref.Key == "" {
					pref.Key = models.KeyMaxPrice
				}
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

			if err := st.service.Updater().SetPreference(ctx, pref); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "user %d: %s=%s\n", userID, pref.Type, pref.Value)
			return err
		},
	}
	set.Flags().Int64Var(&userID, "user", 0, "user id (required)")
	set.Flags().StringVar(&typ, "type", "", "property_type, district, price_range or area_range (required)")
	set.Flags().StringVar(&key, "key", "", "preference key (derived from type and value when empty)")
	set.Flags().StringVar(&value, "value", "", "preference value (required)")
	set.Flags().Float64Var(&weight, "weight", models.DefaultPreferenceWeight, "weight in [0,1]")
	_ = set.MarkFlagRequired("user")
	_ = set.MarkFlagRequired("type")
	_ = set.MarkFlagRequired("value")

	cmd := &cobra.Command{
		Use:   "preference",
		Short: "User preference maintenance",
	}
	cmd.AddCommand(set)
	return cmd
}

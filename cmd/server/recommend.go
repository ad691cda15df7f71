// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/units"
)

// filterFlags are the candidate filter options shared by personalized and trending.
type filterFlags struct {
	limit    int
	propType string
	district string
	minPrice int64
	maxPrice int64
	minArea  string
	maxArea  string
}

func (f *filterFlags) register(cmd *cobra.Command, withFilter bool) {
	cmd.Flags().IntVar(&f.limit, "limit", 10, "number of results")
	if !withFilter {
		return
	}
	cmd.Flags().StringVar(&f.propType, "type", "", "land or house")
	cmd.Flags().StringVar(&f.district, "district", "", "district name")
	cmd.Flags().Int64Var(&f.minPrice, "min-price", 0, "minimum price")
	cmd.Flags().Int64Var(&f.maxPrice, "max-price", 0, "maximum price")
	cmd.Flags().StringVar(&f.minArea, "min-area", "", `minimum area, e.g. 1800 or "4 aana"`)
	cmd.Flags().StringVar(&f.maxArea, "max-area", "", "maximum area")
}

func (f *filterFlags) filter() (models.CandidateFilter, error) {
	out := models.CandidateFilter{
		District: f.district,
		MinPrice: f.minPrice,
		MaxPrice: f.maxPrice,
	}
	if f.propType != "" {
		t, err := models.ParsePropertyType(f.propType)
		if err != nil {
			return out, err
		}
		out.Type = t
	}
	var err error
	if f.minArea != "" {
		if out.MinArea, err = units.ParseArea(f.minArea); err != nil {
			return out, fmt.Errorf("--min-area: %w", err)
		}
	}
	if f.maxArea != "" {
		if out.MaxArea, err = units.ParseArea(f.maxArea); err != nil {
			return out, fmt.Errorf("--max-area: %w", err)
		}
	}
	return out, nil
}

func newRecommendCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print recommendations as JSON",
	}

	var personalized, trending, similar filterFlags

	personalizedCmd := &cobra.Command{
		Use:   "personalized USER_ID",
		Short: "Recommendations for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID("USER_ID", args[0])
			if err != nil {
				return err
			}
			filter, err := personalized.filter()
			if err != nil {
				return err
			}
			return runRecommend(cmd, flags, models.ModePersonalized, func(ctx context.Context, st *stack) ([]models.ScoredCandidate, error) {
				return st.service.GetPersonalizedRecommendations(ctx, userID, personalized.limit, filter)
			})
		},
	}
	personalized.register(personalizedCmd, true)

	trendingCmd := &cobra.Command{
		Use:   "trending",
		Short: "Most viewed and favorited listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := trending.filter()
			if err != nil {
				return err
			}
			return runRecommend(cmd, flags, models.ModeTrending, func(ctx context.Context, st *stack) ([]models.ScoredCandidate, error) {
				return st.service.GetTrendingProperties(ctx, trending.limit, filter)
			})
		},
	}
	trending.register(trendingCmd, true)

	similarCmd := &cobra.Command{
		Use:   "similar PROPERTY_ID",
		Short: "Listings similar to a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			propertyID, err := parseID("PROPERTY_ID", args[0])
			if err != nil {
				return err
			}
			return runRecommend(cmd, flags, models.ModeSimilar, func(ctx context.Context, st *stack) ([]models.ScoredCandidate, error) {
				return st.service.GetSimilarProperties(ctx, propertyID, similar.limit)
			})
		},
	}
	similar.register(similarCmd, false)

	cmd.AddCommand(personalizedCmd, trendingCmd, similarCmd)
	return cmd
}

type recommendFunc func(ctx context.Context, st *stack) ([]models.ScoredCandidate, error)

func runRecommend(cmd *cobra.Command, flags *globalFlags, mode models.Mode, fn recommendFunc) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	st, err := openStack(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer closeQuietly(st, "store")

	items, err := fn(ctx, st)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), map[string]interface{}{
		"mode":  mode,
		"count": len(items),
		"items": items,
	})
}

func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, raw)
	}
	return id, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

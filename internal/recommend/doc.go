// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

// Package recommend ranks available properties for a user, by popularity, or
// by resemblance to a reference property.
//
// # Modes
//
//   - Personalized: additive match against the user's stored preferences
//     (type 0.30, district 0.25, within budget 0.20, minimum area 0.15,
//     popular 0.10). Only scores above recommend.personalized_threshold are kept.
//   - Trending: 0.6*views + 0.4*favorites, unbounded, no threshold.
//   - Similar: type 0.40, district 0.30, price within 30% 0.20,
//     area within 40% 0.10. Scores above recommend.similarity_threshold are
//     kept and the reference is always excluded.
//
// Every list is ordered by score, then newest created_at, then highest id,
// and truncated to the requested limit.
//
// # Preferences
//
// The Updater folds search, view and favorite signals into preference rows
// with single-statement upserts. Categorical rows (type, district) are
// inserted once and never overwritten by signals. View and favorite widen
// max_price and min_area; a search replaces them.
//
// # Errors
//
// ErrInvalidArgument is returned for bad input. Store failures surface as
// featurestore.ErrStoreUnavailable and missing references as
// featurestore.ErrNotFound; neither is turned into an empty list.
//
// # Usage
//
//	svc, err := recommend.NewService(cfg, accessor, logger, recommend.WithCache(backend))
//	list, err := svc.GetPersonalizedRecommendations(ctx, userID, 10, models.CandidateFilter{})
package recommend

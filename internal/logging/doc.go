// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

// Package logging provides the zerolog global logger used across the service.
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Msg("Server starting")
//	logging.Ctx(ctx).Warn().Err(err).Msg("store unavailable")
//
// Components that are constructed once (the recommendation service, the
// signal consumer, the store accessor) take a zerolog.Logger and derive their
// own with a "component" field. NewSlogLogger and NewWatermillLogger bridge the
// same output to suture and watermill.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging

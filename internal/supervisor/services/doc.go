// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

// Package services adapts the server's long-running components to
// suture.Service: the HTTP server, the signal router and the trending
// cache warmer.
package services

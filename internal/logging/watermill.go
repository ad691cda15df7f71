// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package logging

import (
	"github.com/ThreeDotsLabs/watermill"
)

// NewWatermillLogger returns a watermill.LoggerAdapter that writes through
// zerolog, tagged with component "signals".
func NewWatermillLogger() watermill.LoggerAdapter {
	return watermill.NewSlogLogger(NewSlogLoggerFor("signals"))
}

// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

//go:build !nats

package signals

import (
	"errors"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/config"
)

// ErrNATSUnavailable is returned for transport "nats" in builds without the nats tag.
var ErrNATSUnavailable = errors.New("nats signal transport not available: build with -tags=nats")

func openNATS(_ *config.SignalsConfig, _ watermill.LoggerAdapter) (message.Publisher, message.Subscriber, error) {
	return nil, nil, ErrNATSUnavailable
}

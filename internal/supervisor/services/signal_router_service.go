// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// SignalConsumer is the lifecycle of a signals.Consumer.
type SignalConsumer interface {
	Run(ctx context.Context) error
	IsRunning() bool
	Close() error
}

// ConsumerFactory builds a fresh consumer. A stopped watermill router
// cannot be run again, so every restart asks for a new one.
type ConsumerFactory func() (SignalConsumer, error)

// SignalRouterService supervises the signal consumer.
type SignalRouterService struct {
	factory ConsumerFactory
	logger  zerolog.Logger
	current atomic.Pointer[consumerRef]
	name    string
}

type consumerRef struct {
	consumer SignalConsumer
}

// NewSignalRouterService creates the service.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewSignalRouterService(factory ConsumerFactory, logger zerolog.Logger) *SignalRouterService {
	return &SignalRouterService{
		factory: factory,
		logger:  logger.With().Str("service", "signal-router").Logger(),
		name:    "signal-router",
	}
}

// Serve implements suture.Service.
func (s *SignalRouterService) Serve(ctx context.Context) error {
	consumer, err := s.factory()
	if err != nil {
		return fmt.Errorf("build signal consumer: %w", err)
	}
	s.current.Store(&consumerRef{consumer: consumer})
	defer s.current.Store(nil)

	s.logger.Info().Msg("signal router starting")
	runErr := consumer.Run(ctx)

	if closeErr := consumer.Close(); closeErr != nil {
		s.logger.Warn().Err(closeErr).Msg("signal router close failed")
	}

	if ctx.Err() != nil {
		s.logger.Info().Msg("signal router stopped")
		return ctx.Err()
	}
	if runErr == nil {
		runErr = errors.New("signal router exited unexpectedly")
	}
	return fmt.Errorf("signal router: %w", runErr)
}

// IsRunning reports whether a consumer is currently processing messages.
func (s *SignalRouterService) IsRunning() bool {
	ref := s.current.Load()
	return ref != nil && ref.consumer.IsRunning()
}

func (s *SignalRouterService) String() string {
	return s.name
}

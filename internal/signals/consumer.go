// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package signals

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/cache"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/config"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/logging"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/metrics"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/recommend"
)

const (
	handlerName = "apply_signals"

	// dedupCapacity bounds how many signal ids are remembered at once.
	dedupCapacity = cache.DefaultCapacity

	retryMaxIntervalFactor = 10
	retryMultiplier        = 2.0
)

// Consumer subscribes to the signal topic and applies each signal.
//
// Middleware, outer to inner:
//  1. Recoverer turns handler panics into errors
//  2. Deduplicator drops signal ids already seen in the window
//  3. forgetOnFailure un-records ids whose processing failed so redelivery is not dropped
//  4. PoisonQueue parks signals that still fail after every retry
//  5. Retry backs off on store errors
type Consumer struct {
	router  *message.Router
	bus     *Bus
	dedup   *cache.Deduplicator
	applier Applier
	logger  zerolog.Logger

	stateMu  sync.Mutex
	attached bool
	stopped  bool
	ready    chan struct{}
}

// NewConsumer wires a router for bus.Topic() around applier.
func NewConsumer(bus *Bus, applier Applier, cfg *config.SignalsConfig, logger zerolog.Logger) (*Consumer, error) {
	wmLogger := logging.NewWatermillLogger()

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create signal router: %w", err)
	}

	c := &Consumer{
		router:  router,
		bus:     bus,
		applier: applier,
		ready:   make(chan struct{}),
		logger:  logger.With().Str("component", "signals").Logger(),
	}

	router.AddMiddleware(middleware.Recoverer)

	if cfg.DedupWindow > 0 {
		c.dedup = cache.NewDeduplicator(dedupCapacity, cfg.DedupWindow)
		dedup := middleware.Deduplicator{
			KeyFactory: signalKey,
			Repository: dedupRepository{seen: c.dedup},
		}
		router.AddMiddleware(dedup.Middleware, c.forgetOnFailure)
	}

	poisonQueue, err := middleware.PoisonQueue(bus.publisher, bus.PoisonTopic())
	if err != nil {
		return nil, fmt.Errorf("create poison queue middleware: %w", err)
	}
	router.AddMiddleware(poisonQueue)

	if cfg.RetryCount > 0 {
		retry := middleware.Retry{
			MaxRetries:      cfg.RetryCount,
			InitialInterval: cfg.RetryInitialInterval,
			MaxInterval:     cfg.RetryInitialInterval * retryMaxIntervalFactor,
			Multiplier:      retryMultiplier,
			Logger:          wmLogger,
		}
		router.AddMiddleware(retry.Middleware)
	}

	router.AddConsumerHandler(handlerName, bus.Topic(), bus.subscriber, c.handle)
	return c, nil
}

// handle decodes and applies one signal. Signals that can never succeed
// (undecodable or invalid) are acknowledged and dropped.
func (c *Consumer) handle(msg *message.Message) error {
	var sig models.Signal
	if err := json.Unmarshal(msg.Payload, &sig); err != nil {
		c.logger.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("dropping undecodable signal")
		metrics.RecordSignalApplied("unknown", err)
		return nil
	}

	ctx := msg.Context()
	if rid := msg.Metadata.Get(metadataRequestID); rid != "" {
		ctx = logging.ContextWithRequestID(ctx, rid)
	}

	err := c.applier.ApplySignal(ctx, sig)
	if errors.Is(err, recommend.ErrInvalidArgument) {
		c.logger.Warn().Err(err).
			Str("signal_id", sig.ID).
			Int64("user_id", sig.UserID).
			Msg("dropping invalid signal")
		return nil
	}
	return err
}

func (c *Consumer) forgetOnFailure(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		out, err := h(msg)
		if err != nil {
			if key, keyErr := signalKey(msg); keyErr == nil {
				c.dedup.Forget(key)
			}
		}
		return out, err
	}
}

// Run blocks until ctx is canceled or Close is called.
//
// The router runs on a context detached from ctx so that cancellation
// first detaches the consumer from the bus (waiting for in-flight
// publishes) and only then drops the subscription.
func (c *Consumer) Run(ctx context.Context) error {
	inner, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()

	go func() {
		select {
		case <-c.router.Running():
			c.attach()
		case <-inner.Done():
			return
		}
		select {
		case <-ctx.Done():
		case <-inner.Done():
		}
		c.detach()
		cancel()
	}()

	err := c.router.Run(inner)
	c.detach()
	return err
}

// Ready is closed once the consumer is subscribed and attached to the bus.
func (c *Consumer) Ready() <-chan struct{} {
	return c.ready
}

func (c *Consumer) attach() {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	if c.stopped || c.attached {
		return
	}
	c.bus.attach()
	c.attached = true
	close(c.ready)
}

func (c *Consumer) detach() {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.stopped = true
	if c.attached {
		c.bus.detach()
		c.attached = false
	}
}

// Running is closed once the router has subscribed.
func (c *Consumer) Running() chan struct{} {
	return c.router.Running()
}

// IsRunning reports whether the router is processing messages.
func (c *Consumer) IsRunning() bool {
	return c.router.IsRunning()
}

// Close stops the router, waiting up to the configured close timeout.
func (c *Consumer) Close() error {
	c.detach()
	err := c.router.Close()
	if c.dedup != nil {
		err = errors.Join(err, c.dedup.Close())
	}
	return err
}

// signalKey prefers the signal id from metadata; the message UUID is the
// same value for messages published by Bus.
func signalKey(msg *message.Message) (string, error) {
	if id := msg.Metadata.Get(metadataSignalID); id != "" {
		return id, nil
	}
	return msg.UUID, nil
}

// dedupRepository adapts cache.Deduplicator to middleware.ExpiringKeyRepository.
type dedupRepository struct {
	seen *cache.Deduplicator
}

func (r dedupRepository) IsDuplicate(_ context.Context, key string) (bool, error) {
	return r.seen.IsDuplicate(key), nil
}

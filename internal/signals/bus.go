// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package signals

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/config"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/logging"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/metrics"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/recommend"
)

// Transports accepted in config.SignalsConfig.Transport.
const (
	TransportGoChannel = "gochannel"
	TransportNATS      = "nats"
)

// Message metadata keys.
const (
	metadataSignalID  = "signal_id"
	metadataKind      = "kind"
	metadataUserID    = "user_id"
	metadataRequestID = "request_id"

	// JetStream deduplicates on this header when TrackMsgId is on.
	msgIDHeader = "Nats-Msg-Id"
)

// gochannelBuffer is the per-subscriber output buffer of the in-process transport.
const gochannelBuffer = 256

var (
	// ErrBusClosed is returned by Submit after Close.
	ErrBusClosed = errors.New("signal bus closed")

	// ErrNoConsumer is returned by Submit on the in-process transport when
	// no consumer is subscribed and no fallback applier is set.
	ErrNoConsumer = errors.New("no signal consumer running")
)

// Sink accepts signals from the API and CLI.
type Sink interface {
	Submit(ctx context.Context, sig *models.Signal) error
}

// Bus publishes signals onto a watermill topic and hands the matching
// subscriber to the Consumer.
//
// The in-process transport keeps nothing for absent subscribers, so while
// no Consumer is attached Submit applies signals through the fallback
// applier instead of publishing them. Publishing blocks until the consumer
// acknowledges the message.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	topic      string
	transport  string
	shared     bool // publisher and subscriber are the same pubsub
	closed     atomic.Bool

	// attachMu is held shared by Submit and exclusively by attach/detach,
	// so a consumer never leaves while a publish is in flight.
	attachMu sync.RWMutex
	attached int
	fallback Applier
}

// NewBus opens the transport named by cfg.Transport.
func NewBus(cfg *config.SignalsConfig, logger watermill.LoggerAdapter) (*Bus, error) {
	if logger == nil {
		logger = logging.NewWatermillLogger()
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("signal topic is required")
	}

	b := &Bus{topic: cfg.Topic, transport: cfg.Transport}
	switch cfg.Transport {
	case TransportGoChannel, "":
		pubSub := gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer:            gochannelBuffer,
			BlockPublishUntilSubscriberAck: true,
		}, logger)
		b.publisher, b.subscriber = pubSub, pubSub
		b.transport = TransportGoChannel
		b.shared = true
	case TransportNATS:
		pub, sub, err := openNATS(cfg, logger)
		if err != nil {
			return nil, err
		}
		b.publisher, b.subscriber = pub, sub
	default:
		return nil, fmt.Errorf("unknown signal transport %q", cfg.Transport)
	}
	return b, nil
}

// Topic returns the topic signals are published on.
func (b *Bus) Topic() string { return b.topic }

// PoisonTopic receives signals that kept failing after every retry.
func (b *Bus) PoisonTopic() string { return b.topic + ".poison" }

// Transport returns the transport name.
func (b *Bus) Transport() string { return b.transport }

// SetFallback sets the applier used while no consumer is attached to the
// in-process transport. It is ignored by brokered transports, which keep
// messages until a consumer subscribes.
func (b *Bus) SetFallback(applier Applier) {
	b.attachMu.Lock()
	defer b.attachMu.Unlock()
	b.fallback = applier
}

// Attached reports how many consumers are subscribed through this bus.
func (b *Bus) Attached() int {
	b.attachMu.RLock()
	defer b.attachMu.RUnlock()
	return b.attached
}

func (b *Bus) attach() {
	b.attachMu.Lock()
	b.attached++
	b.attachMu.Unlock()
}

// detach waits for in-flight publishes to be acknowledged.
func (b *Bus) detach() {
	b.attachMu.Lock()
	b.attached--
	b.attachMu.Unlock()
}

// Submit validates sig, fills its id and timestamp, and publishes it.
// Validation failures wrap recommend.ErrInvalidArgument.
func (b *Bus) Submit(ctx context.Context, sig *models.Signal) error {
	if b.closed.Load() {
		return ErrBusClosed
	}
	if err := sig.Validate(); err != nil {
		return fmt.Errorf("%w: %v", recommend.ErrInvalidArgument, err)
	}
	Prepare(sig)

	if b.shared {
		b.attachMu.RLock()
		defer b.attachMu.RUnlock()
		if b.attached == 0 {
			return b.applyInline(ctx, sig)
		}
	}

	payload, err := json.Marshal(sig)
	if err != nil {
		return fmt.Errorf("encode signal: %w", err)
	}

	msg := message.NewMessage(sig.ID, payload)
	msg.Metadata.Set(metadataSignalID, sig.ID)
	msg.Metadata.Set(msgIDHeader, sig.ID)
	msg.Metadata.Set(metadataKind, string(sig.Kind))
	msg.Metadata.Set(metadataUserID, strconv.FormatInt(sig.UserID, 10))
	if rid := logging.RequestIDFromContext(ctx); rid != "" {
		msg.Metadata.Set(metadataRequestID, rid)
	}

	if err := b.publisher.Publish(b.topic, msg); err != nil {
		return fmt.Errorf("publish signal %s: %w", sig.ID, err)
	}
	metrics.RecordSignalPublished(string(sig.Kind))
	return nil
}

// applyInline runs the fallback applier. Callers hold attachMu.
func (b *Bus) applyInline(ctx context.Context, sig *models.Signal) error {
	if b.fallback == nil {
		return ErrNoConsumer
	}
	if err := b.fallback.ApplySignal(ctx, *sig); err != nil {
		return err
	}
	metrics.RecordSignalPublished(string(sig.Kind))
	return nil
}

// Close stops publishing and closes the transport.
func (b *Bus) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := b.publisher.Close()
	if !b.shared {
		err = errors.Join(err, b.subscriber.Close())
	}
	return err
}

// Prepare assigns a message id and an occurrence time when missing.
func Prepare(sig *models.Signal) {
	if sig.ID == "" {
		sig.ID = uuid.NewString()
	}
	if sig.OccurredAt.IsZero() {
		sig.OccurredAt = time.Now().UTC()
	}
}

// Applier folds a signal into stored preferences.
type Applier interface {
	ApplySignal(ctx context.Context, sig models.Signal) error
}

// Direct applies signals synchronously. It is the Sink used when the bus
// is disabled.
type Direct struct {
	applier Applier
}

// NewDirect returns a Sink that calls applier inline.
func NewDirect(applier Applier) *Direct {
	return &Direct{applier: applier}
}

// Submit implements Sink.
func (d *Direct) Submit(ctx context.Context, sig *models.Signal) error {
	Prepare(sig)
	if err := d.applier.ApplySignal(ctx, *sig); err != nil {
		return err
	}
	metrics.RecordSignalPublished(string(sig.Kind))
	return nil
}

// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

type fakeConsumer struct {
	runErr  error
	started chan struct{}
	running atomic.Bool
	closed  atomic.Bool
}

func newFakeConsumer(runErr error) *fakeConsumer {
	return &fakeConsumer{runErr: runErr, started: make(chan struct{})}
}

func (c *fakeConsumer) Run(ctx context.Context) error {
	c.running.Store(true)
	defer c.running.Store(false)
	close(c.started)
	if c.runErr != nil {
		return c.runErr
	}
	<-ctx.Done()
	return nil
}

func (c *fakeConsumer) IsRunning() bool { return c.running.Load() }

func (c *fakeConsumer) Close() error {
	c.closed.Store(true)
	return nil
}

var _ suture.Service = (*SignalRouterService)(nil)

func TestSignalRouterService_StopsOnCancel(t *testing.T) {
	consumer := newFakeConsumer(nil)
	svc := NewSignalRouterService(func() (SignalConsumer, error) { return consumer, nil }, zerolog.Nop())

	if svc.IsRunning() {
		t.Fatal("IsRunning before Serve")
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	select {
	case <-consumer.started:
	case <-time.After(time.Second):
		t.Fatal("consumer did not start")
	}
	if !svc.IsRunning() {
		t.Error("IsRunning = false while consumer runs")
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return")
	}
	if !consumer.closed.Load() {
		t.Error("consumer was not closed")
	}
	if svc.IsRunning() {
		t.Error("IsRunning after Serve returned")
	}
}

func TestSignalRouterService_Errors(t *testing.T) {
	tests := []struct {
		name    string
		factory ConsumerFactory
		wantErr error
	}{
		{
			name:    "factory failure",
			factory: func() (SignalConsumer, error) { return nil, errBoom },
			wantErr: errBoom,
		},
		{
			name:    "router failure",
			factory: func() (SignalConsumer, error) { return newFakeConsumer(errBoom), nil },
			wantErr: errBoom,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSignalRouterService(tt.factory, zerolog.Nop()).Serve(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("clean exit without cancel is an error", func(t *testing.T) {
		svc := NewSignalRouterService(func() (SignalConsumer, error) {
			return &immediateConsumer{fakeConsumer: newFakeConsumer(nil)}, nil
		}, zerolog.Nop())
		if err := svc.Serve(context.Background()); err == nil {
			t.Error("expected error when router exits on its own")
		}
	})
}

type immediateConsumer struct {
	*fakeConsumer
}

func (c *immediateConsumer) Run(context.Context) error { return nil }

func TestSignalRouterService_RestartsWithFreshConsumer(t *testing.T) {
	var built atomic.Int32
	second := newFakeConsumer(nil)
	factory := func() (SignalConsumer, error) {
		if built.Add(1) == 1 {
			return newFakeConsumer(errBoom), nil
		}
		return second, nil
	}

	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 5,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          time.Second,
	})
	sup.Add(NewSignalRouterService(factory, zerolog.Nop()))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	select {
	case <-second.started:
	case <-time.After(2 * time.Second):
		t.Fatal("service was not restarted")
	}
	cancel()
	<-errCh

	if built.Load() < 2 {
		t.Errorf("expected at least 2 consumers, got %d", built.Load())
	}
}

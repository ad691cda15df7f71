// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

/*
Package signals carries user interactions (search, view, favorite) from the
API and CLI to the preference updater.

A Bus publishes JSON-encoded models.Signal messages on a watermill topic.
The default transport is an in-process gochannel pub/sub; builds tagged
"nats" can use NATS JetStream instead:

	go build -tags nats ./cmd/server

A Consumer runs a watermill router over the same topic. Signal ids are
deduplicated for signals.dedup_window, store failures are retried with
backoff, and signals that still fail land on "<topic>.poison". Invalid
signals are logged and acknowledged since retrying cannot fix them.

When the bus is disabled, Direct applies signals inline.
*/
package signals

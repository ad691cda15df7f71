// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

/*
Package cache stores encoded recommendation responses.

Three backends implement Backend:

  - Memory: bounded LRU with per-entry TTL and a background sweep. Default.
  - Badger: BadgerDB with native key TTL; on disk, or in memory when no
    path is configured.
  - Redis: shared cache for several API replicas.

Every key is prefixed with KeyPrefix so Clear only removes this service's
entries. Values are opaque bytes; the recommend package encodes lists with
goccy/go-json and revalidates availability on every hit, so a cache never
serves a sold or withdrawn property.

Deduplicator reuses the Memory backend to drop redelivered signal messages.

# Usage

	backend, err := cache.Open(ctx, &cfg.Cache, logger)
	if err != nil {
		return err
	}
	defer backend.Close()
	svc, err := recommend.NewService(recCfg, store, logger, recommend.WithCache(backend))
*/
package cache

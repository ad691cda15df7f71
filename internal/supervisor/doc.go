// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

/*
Package supervisor runs the server's long-lived services under a suture v4
supervision tree. Services live in internal/supervisor/services.

	tree, _ := supervisor.NewSupervisorTree(logging.NewSlogLoggerFor("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
	tree.AddMessagingService(services.NewSignalRouterService(newConsumer, logger))
	tree.AddDataService(services.NewTrendingWarmer(svc, cfg, logger))
	err := tree.Serve(ctx)

A service that returns an error is restarted with backoff; returning
suture.ErrDoNotRestart stops it for good.
*/
package supervisor

// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

/*
Package api exposes the recommendation service over HTTP using the chi router.

Routes (all responses use the APIResponse envelope):

	GET  /api/v1/recommendations/users/{userID}      personalized
	GET  /api/v1/recommendations/trending            trending
	GET  /api/v1/recommendations/similar/{propertyID} similar
	POST /api/v1/signals                             search | view | favorite
	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /metrics                                    Prometheus

Recommendation endpoints accept limit (default 10, at most 100) and the
candidate filters type, district, min_price, max_price, min_area and
max_area. Area filters take square feet or a Nepali unit expression such
as "4 aana" or "1-2-0-0".

Errors map to status codes as follows: invalid arguments 400, unknown
property 404, store or bus unavailable 503, anything else 500.
*/
package api

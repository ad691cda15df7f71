// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

/*
Package models defines the data structures shared by the recommendation service.

Key Components:

  - Property: a listing row read from the relational store
  - UserPreference: one weighted (type, key, value) interest record for a user
  - CandidateFilter: hard filters applied when loading candidate properties
  - ScoredCandidate: a Property with the score and mode that produced it
  - Signal: a search, view or favorite event folded into preferences

Enumerations (PropertyType, Availability, PreferenceType, Mode, SignalKind) carry
Valid and Parse helpers so that the API, the CLI and the store backends share one
definition of the accepted values.
*/
package models

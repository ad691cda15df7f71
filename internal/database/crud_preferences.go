// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

// LoadPreferences implements featurestore.Reader.
func (db *DB) LoadPreferences(ctx context.Context, userID int64) ([]models.UserPreference, error) {
	const op = "load_preferences"

	rows, err := db.conn.QueryContext(ctx, `
		SELECT user_id, preference_type, preference_key, preference_value, preference_weight, updated_at
		FROM user_preferences
		WHERE user_id = ?
		ORDER BY preference_type, preference_key`, userID)
	if err != nil {
		return nil, classify(op, err)
	}
	defer closeQuietly(rows)

	out := make([]models.UserPreference, 0)
	for rows.Next() {
		var (
			p        models.UserPreference
			prefType string
		)
		if err := rows.Scan(&p.UserID, &prefType, &p.Key, &p.Value, &p.Weight, &p.UpdatedAt); err != nil {
			return nil, classify(op, fmt.Errorf("scan preference: %w", err))
		}
		p.Type = models.PreferenceType(prefType)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return out, nil
}

// Stored and incoming values as numbers, NULL when not numeric.
const (
	storedNumeric   = `TRY_CAST(preference_value AS DOUBLE)`
	incomingNumeric = `TRY_CAST(EXCLUDED.preference_value AS DOUBLE)`
)

// conflictClause returns the ON CONFLICT action for mode. Numeric merges keep
// the original text of whichever side wins so values round-trip unchanged.
func conflictClause(mode models.MergeMode) string {
	switch mode {
	case models.MergeKeep:
		return `DO UPDATE SET updated_at = EXCLUDED.updated_at`
	case models.MergeMax:
		return `DO UPDATE SET
			preference_value = CASE
				WHEN ` + incomingNumeric + ` IS NULL THEN preference_value
				WHEN ` + storedNumeric + ` IS NULL OR ` + incomingNumeric + ` > ` + storedNumeric + ` THEN EXCLUDED.preference_value
				ELSE preference_value
			END,
			updated_at = EXCLUDED.updated_at`
	case models.MergeMin:
		return `DO UPDATE SET
			preference_value = CASE
				WHEN ` + incomingNumeric + ` IS NULL THEN preference_value
				WHEN ` + storedNumeric + ` IS NULL OR ` + incomingNumeric + ` < ` + storedNumeric + ` THEN EXCLUDED.preference_value
				ELSE preference_value
			END,
			updated_at = EXCLUDED.updated_at`
	default:
		return `DO UPDATE SET
			preference_value = EXCLUDED.preference_value,
			preference_weight = EXCLUDED.preference_weight,
			updated_at = EXCLUDED.updated_at`
	}
}

// UpsertPreference implements featurestore.Writer. The insert and the conflict
// resolution happen in one statement, so replaying a signal is harmless.
//
//nolint:gocritic // hugeParam
func (db *DB) UpsertPreference(ctx context.Context, pref models.UserPreference, mode models.MergeMode) error {
	const op = "upsert_preference"

	mu := db.acquireRowLock(fmt.Sprintf("pref:%d:%s:%s", pref.UserID, pref.Type, pref.Key))
	defer db.releaseRowLock(mu)

	//nolint:gosec // G202: conflictClause returns constant SQL
	query := `
		INSERT INTO user_preferences (user_id, preference_type, preference_key, preference_value, preference_weight, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, preference_type, preference_key) ` + conflictClause(mode)

	now := time.Now().UTC()
	err := withConflictRetry(ctx, func() error {
		_, err := db.conn.ExecContext(ctx, query,
			pref.UserID, string(pref.Type), pref.Key, pref.Value, pref.Weight, now)
		return err
	})
	return classify(op, err)
}

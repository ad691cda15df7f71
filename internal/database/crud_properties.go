// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/featurestore"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

const propertyColumns = `id, property_type, district, price, area, view_count, favorite_count, availability_status, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row rowScanner) (models.Property, error) {
	var (
		p            models.Property
		propertyType string
		availability string
		createdAt    time.Time
	)
	if err := row.Scan(&p.ID, &propertyType, &p.District, &p.Price, &p.Area,
		&p.ViewCount, &p.FavoriteCount, &availability, &createdAt); err != nil {
		return p, err
	}
	p.Type = models.PropertyType(propertyType)
	p.Availability = models.Availability(availability)
	p.CreatedAt = createdAt.UTC()
	return p, nil
}

// buildCandidateQuery renders the candidate SELECT for filter.
//
//nolint:gocritic // hugeParam
// candidateOrder is the ORDER BY clause deciding which rows a LIMIT keeps.
func candidateOrder(order models.CandidateOrder) string {
	if order == models.OrderPopular {
		return "(3 * view_count + 2 * favorite_count) DESC, created_at DESC, id DESC"
	}
	return "created_at DESC, id DESC"
}

func buildCandidateQuery(filter models.CandidateFilter) (string, []interface{}) {
	var (
		where = []string{"availability_status = ?"}
		args  = []interface{}{string(models.AvailabilityAvailable)}
	)

	if filter.Type != "" {
		where = append(where, "property_type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.District != "" {
		where = append(where, "lower(district) = ?")
		args = append(args, models.CategoricalKey(filter.District))
	}
	if filter.MinPrice > 0 {
		where = append(where, "price >= ?")
		args = append(args, filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		where = append(where, "price <= ?")
		args = append(args, filter.MaxPrice)
	}
	if filter.MinArea > 0 {
		where = append(where, "area >= ?")
		args = append(args, filter.MinArea)
	}
	if filter.MaxArea > 0 {
		where = append(where, "area <= ?")
		args = append(args, filter.MaxArea)
	}
	if len(filter.ExcludeIDs) > 0 {
		placeholders := make([]string, len(filter.ExcludeIDs))
		for i, id := range filter.ExcludeIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		where = append(where, "id NOT IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := "SELECT " + propertyColumns + " FROM properties WHERE " +
		strings.Join(where, " AND ") + " ORDER BY " + candidateOrder(filter.Order)
	if filter.MaxCandidates > 0 {
		query += " LIMIT ?"
		args = append(args, filter.MaxCandidates)
	}
	return query, args
}

// LoadCandidateProperties implements featurestore.Reader.
//
//nolint:gocritic // hugeParam
func (db *DB) LoadCandidateProperties(ctx context.Context, filter models.CandidateFilter) ([]models.Property, error) {
	const op = "load_candidates"

	query, args := buildCandidateQuery(filter)
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer closeQuietly(rows)

	out := make([]models.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, classify(op, fmt.Errorf("scan property: %w", err))
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return out, nil
}

// LoadProperty implements featurestore.Reader.
func (db *DB) LoadProperty(ctx context.Context, id int64) (*models.Property, error) {
	const op = "load_property"

	row := db.conn.QueryRowContext(ctx, "SELECT "+propertyColumns+" FROM properties WHERE id = ?", id)
	p, err := scanProperty(row)
	if err == sql.ErrNoRows {
		return nil, featurestore.NotFound(op, "property %d", id)
	}
	if err != nil {
		return nil, classify(op, err)
	}
	return &p, nil
}

// LoadAvailability implements featurestore.Reader.
func (db *DB) LoadAvailability(ctx context.Context, ids []int64) (map[int64]models.Availability, error) {
	const op = "load_availability"

	out := make(map[int64]models.Availability, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	//nolint:gosec // G202: only placeholders are concatenated
	query := "SELECT id, availability_status FROM properties WHERE id IN (" + strings.Join(placeholders, ", ") + ")"
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		var (
			id     int64
			status string
		)
		if err := rows.Scan(&id, &status); err != nil {
			return nil, classify(op, err)
		}
		out[id] = models.Availability(status)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return out, nil
}

// IncrementCounters implements featurestore.Writer.
func (db *DB) IncrementCounters(ctx context.Context, propertyID, views, favorites int64) error {
	const op = "increment_counters"

	mu := db.acquireRowLock(fmt.Sprintf("property:%d", propertyID))
	defer db.releaseRowLock(mu)

	var affected int64
	err := withConflictRetry(ctx, func() error {
		res, err := db.conn.ExecContext(ctx,
			`UPDATE properties SET view_count = view_count + ?, favorite_count = favorite_count + ? WHERE id = ?`,
			views, favorites, propertyID)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return classify(op, err)
	}
	if affected == 0 {
		return featurestore.NotFound(op, "property %d", propertyID)
	}
	return nil
}

// SetAvailability implements featurestore.Writer.
func (db *DB) SetAvailability(ctx context.Context, propertyID int64, status models.Availability) error {
	const op = "set_availability"

	res, err := db.conn.ExecContext(ctx,
		`UPDATE properties SET availability_status = ? WHERE id = ?`, string(status), propertyID)
	if err != nil {
		return classify(op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return classify(op, err)
	}
	if affected == 0 {
		return featurestore.NotFound(op, "property %d", propertyID)
	}
	return nil
}

// SaveProperty implements featurestore.Writer.
func (db *DB) SaveProperty(ctx context.Context, p *models.Property) error {
	const op = "save_property"

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO properties (`+propertyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			property_type = EXCLUDED.property_type,
			district = EXCLUDED.district,
			price = EXCLUDED.price,
			area = EXCLUDED.area,
			view_count = EXCLUDED.view_count,
			favorite_count = EXCLUDED.favorite_count,
			availability_status = EXCLUDED.availability_status,
			created_at = EXCLUDED.created_at`,
		p.ID, string(p.Type), p.District, p.Price, p.Area,
		p.ViewCount, p.FavoriteCount, string(p.Availability), createdAt)
	return classify(op, err)
}

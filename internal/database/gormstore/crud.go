// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/featurestore"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

// LoadPreferences implements featurestore.Reader.
func (s *Store) LoadPreferences(ctx context.Context, userID int64) ([]models.UserPreference, error) {
	var rows []preferenceRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("preference_type, preference_key").
		Find(&rows).Error
	if err != nil {
		return nil, classify("load_preferences", err)
	}

	out := make([]models.UserPreference, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}

// LoadCandidateProperties implements featurestore.Reader.
//
//nolint:gocritic // hugeParam
func (s *Store) LoadCandidateProperties(ctx context.Context, filter models.CandidateFilter) ([]models.Property, error) {
	q := s.db.WithContext(ctx).
		Model(&propertyRow{}).
		Where("availability_status = ?", string(models.AvailabilityAvailable))

	if filter.Type != "" {
		q = q.Where("property_type = ?", string(filter.Type))
	}
	if d := lower(filter.District); d != "" {
		q = q.Where("lower(district) = ?", d)
	}
	if filter.MinPrice > 0 {
		q = q.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("price <= ?", filter.MaxPrice)
	}
	if filter.MinArea > 0 {
		q = q.Where("area >= ?", filter.MinArea)
	}
	if filter.MaxArea > 0 {
		q = q.Where("area <= ?", filter.MaxArea)
	}
	if len(filter.ExcludeIDs) > 0 {
		q = q.Where("id NOT IN ?", filter.ExcludeIDs)
	}
	if filter.Order == models.OrderPopular {
		q = q.Order("(3 * view_count + 2 * favorite_count) DESC")
	}
	q = q.Order("created_at DESC").Order("id DESC")
	if filter.MaxCandidates > 0 {
		q = q.Limit(filter.MaxCandidates)
	}

	var rows []propertyRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, classify("load_candidates", err)
	}

	out := make([]models.Property, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toModel())
	}
	return out, nil
}

// LoadProperty implements featurestore.Reader.
func (s *Store) LoadProperty(ctx context.Context, id int64) (*models.Property, error) {
	var row propertyRow
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, classify("load_property", err)
	}
	p := row.toModel()
	return &p, nil
}

// LoadAvailability implements featurestore.Reader.
func (s *Store) LoadAvailability(ctx context.Context, ids []int64) (map[int64]models.Availability, error) {
	out := make(map[int64]models.Availability, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []propertyRow
	err := s.db.WithContext(ctx).
		Select("id", "availability_status").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, classify("load_availability", err)
	}
	for i := range rows {
		out[rows[i].ID] = models.Availability(rows[i].AvailabilityStatus)
	}
	return out, nil
}

// UpsertPreference implements featurestore.Writer with a single
// INSERT ... ON CONFLICT statement.
//
//nolint:gocritic // hugeParam
func (s *Store) UpsertPreference(ctx context.Context, pref models.UserPreference, mode models.MergeMode) error {
	row := preferenceRow{
		UserID:           pref.UserID,
		PreferenceType:   string(pref.Type),
		PreferenceKey:    pref.Key,
		PreferenceValue:  pref.Value,
		PreferenceWeight: pref.Weight,
		UpdatedAt:        time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "preference_type"}, {Name: "preference_key"},
			},
			DoUpdates: s.conflictAssignments(mode),
		}).
		Create(&row).Error
	return classify("upsert_preference", err)
}

func (s *Store) conflictAssignments(mode models.MergeMode) clause.Set {
	switch mode {
	case models.MergeKeep:
		return clause.AssignmentColumns([]string{"updated_at"})
	case models.MergeMax, models.MergeMin:
		stored := s.numericExpr("user_preferences.preference_value")
		incoming := s.numericExpr("excluded.preference_value")
		cmp := " > "
		if mode == models.MergeMin {
			cmp = " < "
		}
		return clause.Assignments(map[string]interface{}{
			"preference_value": gorm.Expr(`CASE
				WHEN ` + incoming + ` IS NULL THEN user_preferences.preference_value
				WHEN ` + stored + ` IS NULL OR ` + incoming + cmp + stored + ` THEN excluded.preference_value
				ELSE user_preferences.preference_value
			END`),
			"updated_at": gorm.Expr("excluded.updated_at"),
		})
	default:
		return clause.AssignmentColumns([]string{"preference_value", "preference_weight", "updated_at"})
	}
}

// IncrementCounters implements featurestore.Writer.
func (s *Store) IncrementCounters(ctx context.Context, propertyID, views, favorites int64) error {
	res := s.db.WithContext(ctx).
		Model(&propertyRow{}).
		Where("id = ?", propertyID).
		UpdateColumns(map[string]interface{}{
			"view_count":     gorm.Expr("view_count + ?", views),
			"favorite_count": gorm.Expr("favorite_count + ?", favorites),
		})
	if res.Error != nil {
		return classify("increment_counters", res.Error)
	}
	if res.RowsAffected == 0 {
		return featurestore.NotFound("increment_counters", "property %d", propertyID)
	}
	return nil
}

// SetAvailability implements featurestore.Writer.
func (s *Store) SetAvailability(ctx context.Context, propertyID int64, status models.Availability) error {
	res := s.db.WithContext(ctx).
		Model(&propertyRow{}).
		Where("id = ?", propertyID).
		UpdateColumn("availability_status", string(status))
	if res.Error != nil {
		return classify("set_availability", res.Error)
	}
	if res.RowsAffected == 0 {
		return featurestore.NotFound("set_availability", "property %d", propertyID)
	}
	return nil
}

// SaveProperty implements featurestore.Writer.
func (s *Store) SaveProperty(ctx context.Context, p *models.Property) error {
	row := toPropertyRow(p)
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&row).Error
	return classify("save_property", err)
}

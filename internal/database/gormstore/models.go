// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package gormstore

import (
	"time"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

// propertyRow maps the properties table.
type propertyRow struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement:false"`
	PropertyType       string    `gorm:"size:16;not null"`
	District           string    `gorm:"size:128;not null;index:idx_properties_district"`
	Price              int64     `gorm:"not null"`
	Area               float64   `gorm:"not null"`
	ViewCount          int64     `gorm:"not null"`
	FavoriteCount      int64     `gorm:"not null"`
	AvailabilityStatus string    `gorm:"size:16;not null;index:idx_properties_availability"`
	CreatedAt          time.Time `gorm:"not null;index:idx_properties_created_at"`
}

func (propertyRow) TableName() string { return "properties" }

// preferenceRow maps user_preferences. The composite primary key is the
// (user, type, key) uniqueness the upsert relies on.
type preferenceRow struct {
	UserID           int64     `gorm:"primaryKey;autoIncrement:false"`
	PreferenceType   string    `gorm:"primaryKey;size:32"`
	PreferenceKey    string    `gorm:"primaryKey;size:128"`
	PreferenceValue  string    `gorm:"not null"`
	PreferenceWeight float64   `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (preferenceRow) TableName() string { return "user_preferences" }

func toPropertyRow(p *models.Property) propertyRow {
	return propertyRow{
		ID:                 p.ID,
		PropertyType:       string(p.Type),
		District:           p.District,
		Price:              p.Price,
		Area:               p.Area,
		ViewCount:          p.ViewCount,
		FavoriteCount:      p.FavoriteCount,
		AvailabilityStatus: string(p.Availability),
		CreatedAt:          p.CreatedAt,
	}
}

func (r *propertyRow) toModel() models.Property {
	return models.Property{
		ID:            r.ID,
		Type:          models.PropertyType(r.PropertyType),
		District:      r.District,
		Price:         r.Price,
		Area:          r.Area,
		ViewCount:     r.ViewCount,
		FavoriteCount: r.FavoriteCount,
		Availability:  models.Availability(r.AvailabilityStatus),
		CreatedAt:     r.CreatedAt.UTC(),
	}
}

func (r *preferenceRow) toModel() models.UserPreference {
	return models.UserPreference{
		UserID:    r.UserID,
		Type:      models.PreferenceType(r.PreferenceType),
		Key:       r.PreferenceKey,
		Value:     r.PreferenceValue,
		Weight:    r.PreferenceWeight,
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

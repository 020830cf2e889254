// Package store is the persistence collaborator: gorm models and a
// repository over SQLite for activity records, framework instances, and
// score snapshots.
//
// Emission results themselves are derived data and are never the source
// of truth; only period totals are persisted, for trend analysis.
package store

import (
	"time"

	"github.com/google/uuid"
)

// ActivityRecordRow is one raw activity data entry.
type ActivityRecordRow struct {
	// ID is a ULID assigned at ingestion.
	ID           string    `gorm:"column:id;primaryKey;size:26"`
	CompanyID    uuid.UUID `gorm:"column:company_id;type:uuid;index;not null"`
	ActivityType string    `gorm:"column:activity_type;size:64;not null"`
	Quantity     float64   `gorm:"column:quantity;not null"`
	Unit         string    `gorm:"column:unit;size:16"`
	Scope        int       `gorm:"column:scope;not null"`
	RecordedAt   time.Time `gorm:"column:recorded_at;index;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

// TableName overrides gorm's pluralization.
func (ActivityRecordRow) TableName() string {
	return "activity_records"
}

// FrameworkInstanceRow stores one company/framework disclosure tree. The
// tree is serialized JSON; leaf/branch classification is re-derived on
// decode.
type FrameworkInstanceRow struct {
	CompanyID       uuid.UUID `gorm:"column:company_id;type:uuid;primaryKey"`
	FrameworkID     string    `gorm:"column:framework_id;size:8;primaryKey"`
	Tree            string    `gorm:"column:tree;type:text;not null"`
	ProgressPercent int       `gorm:"column:progress_percent;not null;default:0"`
	Score           int       `gorm:"column:score;not null;default:0"`
	Version         int64     `gorm:"column:version;not null;default:0"`
	LastUpdated     time.Time `gorm:"column:last_updated"`
}

func (FrameworkInstanceRow) TableName() string {
	return "framework_instances"
}

// ScoreSnapshotRow is the persisted aggregate for one company: the single
// source of truth every dashboard reads.
type ScoreSnapshotRow struct {
	CompanyID     uuid.UUID `gorm:"column:company_id;type:uuid;primaryKey"`
	Overall       int       `gorm:"column:overall;not null;default:0"`
	Environmental int       `gorm:"column:environmental;not null;default:0"`
	Social        int       `gorm:"column:social;not null;default:0"`
	Governance    int       `gorm:"column:governance;not null;default:0"`

	// PerFramework is the JSON-serialized per-framework score map.
	PerFramework string    `gorm:"column:per_framework;type:text"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (ScoreSnapshotRow) TableName() string {
	return "score_snapshots"
}

// EmissionTotalRow is one persisted monthly emission total per scope,
// the aggregation the forecaster consumes.
type EmissionTotalRow struct {
	CompanyID   uuid.UUID `gorm:"column:company_id;type:uuid;primaryKey"`
	Year        int       `gorm:"column:year;primaryKey"`
	Month       int       `gorm:"column:month;primaryKey"`
	Scope       int       `gorm:"column:scope;primaryKey"`
	TotalKgCO2e float64   `gorm:"column:total_kg_co2e;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (EmissionTotalRow) TableName() string {
	return "emission_totals"
}

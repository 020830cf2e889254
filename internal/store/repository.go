package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/verdant-io/verdant/internal/disclosure"
	"github.com/verdant-io/verdant/internal/forecast"
	"github.com/verdant-io/verdant/internal/scoring"
)

// InsertActivityRecords persists raw activity entries, assigning each a
// ULID. Quantities are assumed validated at the boundary.
func (s *Store) InsertActivityRecords(ctx context.Context, rows []ActivityRecordRow) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		if rows[i].ID == "" {
			rows[i].ID = ulid.Make().String()
		}
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert activity records: %w", err)
	}
	return nil
}

// LoadActivityRecords returns a company's activity entries recorded in
// [from, to), ordered by time.
func (s *Store) LoadActivityRecords(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]ActivityRecordRow, error) {
	var rows []ActivityRecordRow
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND recorded_at >= ? AND recorded_at < ?", companyID, from, to).
		Order("recorded_at").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load activity records: %w", err)
	}
	return rows, nil
}

// LoadFrameworkInstance returns the stored instance, or nil when the
// company has not started the framework.
func (s *Store) LoadFrameworkInstance(ctx context.Context, companyID uuid.UUID, id disclosure.FrameworkID) (*disclosure.Instance, error) {
	var row FrameworkInstanceRow
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND framework_id = ?", companyID, string(id)).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load framework instance: %w", err)
	}

	tree := &disclosure.Node{}
	if err := json.Unmarshal([]byte(row.Tree), tree); err != nil {
		return nil, fmt.Errorf("decode disclosure tree for %s/%s: %w", companyID, id, err)
	}

	return &disclosure.Instance{
		FrameworkID:     id,
		CompanyID:       companyID,
		Tree:            tree,
		ProgressPercent: row.ProgressPercent,
		Score:           row.Score,
		Version:         row.Version,
		LastUpdated:     row.LastUpdated,
	}, nil
}

// SaveFrameworkInstance upserts an instance. The caller (scoring service)
// owns version bumping; last write wins at instance granularity.
func (s *Store) SaveFrameworkInstance(ctx context.Context, inst *disclosure.Instance) error {
	tree, err := json.Marshal(inst.Tree)
	if err != nil {
		return fmt.Errorf("encode disclosure tree: %w", err)
	}

	row := FrameworkInstanceRow{
		CompanyID:       inst.CompanyID,
		FrameworkID:     string(inst.FrameworkID),
		Tree:            string(tree),
		ProgressPercent: inst.ProgressPercent,
		Score:           inst.Score,
		Version:         inst.Version,
		LastUpdated:     inst.LastUpdated,
	}

	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}, {Name: "framework_id"}},
			UpdateAll: true,
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("save framework instance: %w", err)
	}
	return nil
}

// LoadAllFrameworkScores returns the latest persisted score and progress
// per framework for aggregate recomputation.
func (s *Store) LoadAllFrameworkScores(ctx context.Context, companyID uuid.UUID) (map[disclosure.FrameworkID]scoring.FrameworkScore, error) {
	var rows []FrameworkInstanceRow
	err := s.db.WithContext(ctx).
		Select("framework_id", "score", "progress_percent", "last_updated").
		Where("company_id = ?", companyID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load framework scores: %w", err)
	}

	out := make(map[disclosure.FrameworkID]scoring.FrameworkScore, len(rows))
	for _, row := range rows {
		out[disclosure.FrameworkID(row.FrameworkID)] = scoring.FrameworkScore{
			Score:       row.Score,
			Progress:    row.ProgressPercent,
			LastUpdated: row.LastUpdated,
		}
	}
	return out, nil
}

// SaveScoreSnapshot upserts the company's aggregate scores.
func (s *Store) SaveScoreSnapshot(ctx context.Context, companyID uuid.UUID, scores scoring.Scores) error {
	perFramework, err := json.Marshal(scores.PerFramework)
	if err != nil {
		return fmt.Errorf("encode per-framework scores: %w", err)
	}

	row := ScoreSnapshotRow{
		CompanyID:     companyID,
		Overall:       scores.Overall,
		Environmental: scores.Environmental,
		Social:        scores.Social,
		Governance:    scores.Governance,
		PerFramework:  string(perFramework),
		UpdatedAt:     time.Now(),
	}

	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}},
			UpdateAll: true,
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("save score snapshot: %w", err)
	}
	return nil
}

// LoadScoreSnapshot returns the persisted aggregate, or nil when the
// company has no scores yet.
func (s *Store) LoadScoreSnapshot(ctx context.Context, companyID uuid.UUID) (*scoring.Scores, error) {
	var row ScoreSnapshotRow
	err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load score snapshot: %w", err)
	}

	scores := scoring.Scores{
		Overall:       row.Overall,
		Environmental: row.Environmental,
		Social:        row.Social,
		Governance:    row.Governance,
	}
	if row.PerFramework != "" {
		if err := json.Unmarshal([]byte(row.PerFramework), &scores.PerFramework); err != nil {
			return nil, fmt.Errorf("decode per-framework scores: %w", err)
		}
	}
	return &scores, nil
}

// UpsertEmissionTotal writes one company/month/scope emission total.
func (s *Store) UpsertEmissionTotal(ctx context.Context, row EmissionTotalRow) error {
	row.UpdatedAt = time.Now()
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "company_id"}, {Name: "year"}, {Name: "month"}, {Name: "scope"},
			},
			UpdateAll: true,
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert emission total: %w", err)
	}
	return nil
}

// MonthlyEmissionTotals returns a company's totals summed across scopes,
// ordered by period, in the form the forecaster consumes.
func (s *Store) MonthlyEmissionTotals(ctx context.Context, companyID uuid.UUID) ([]forecast.MonthlyTotal, error) {
	var results []struct {
		Year  int
		Month int
		Total float64
	}
	err := s.db.WithContext(ctx).
		Model(&EmissionTotalRow{}).
		Select("year, month, SUM(total_kg_co2e) AS total").
		Where("company_id = ?", companyID).
		Group("year, month").
		Order("year, month").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("load monthly totals: %w", err)
	}

	out := make([]forecast.MonthlyTotal, len(results))
	for i, r := range results {
		out[i] = forecast.MonthlyTotal{
			Year:        r.Year,
			Month:       time.Month(r.Month),
			TotalKgCO2e: r.Total,
		}
	}
	return out, nil
}

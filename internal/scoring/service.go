package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/verdant-io/verdant/internal/disclosure"
	"github.com/verdant-io/verdant/internal/events"
	"github.com/verdant-io/verdant/internal/logging"
)

// Repository is the persistence collaborator the scoring service needs.
// Implemented by internal/store; defined here so the service depends on
// behavior, not on the storage layer.
type Repository interface {
	LoadFrameworkInstance(ctx context.Context, companyID uuid.UUID, id disclosure.FrameworkID) (*disclosure.Instance, error)
	SaveFrameworkInstance(ctx context.Context, inst *disclosure.Instance) error
	LoadAllFrameworkScores(ctx context.Context, companyID uuid.UUID) (map[disclosure.FrameworkID]FrameworkScore, error)
	SaveScoreSnapshot(ctx context.Context, companyID uuid.UUID, scores Scores) error
}

// Service orchestrates the framework save flow: recompute the instance's
// own progress, persist it, recompute the company aggregate from the
// latest persisted values, persist the snapshot, then emit the domain
// event. Holding no caches, it is safe under concurrent edits of
// different frameworks: every aggregate recompute reads persisted state,
// so a save never overwrites another framework's contribution with stale
// data.
type Service struct {
	repo    Repository
	emitter events.Emitter
	now     func() time.Time
}

// NewService builds a scoring service. A nil emitter disables events.
func NewService(repo Repository, emitter events.Emitter) *Service {
	if emitter == nil {
		emitter = events.Nop{}
	}
	return &Service{repo: repo, emitter: emitter, now: time.Now}
}

// SaveFramework persists an edited framework instance and returns the
// recomputed company scores.
func (s *Service) SaveFramework(ctx context.Context, inst *disclosure.Instance) (Scores, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "scoring").
		Str("framework", string(inst.FrameworkID)).
		Str("company_id", inst.CompanyID.String()).
		Logger()

	progress := inst.RecomputeProgress()

	// Without an external assessment the framework score tracks its
	// completion progress.
	if inst.Score == 0 {
		inst.Score = progress.Percent
	}

	inst.Version++
	inst.LastUpdated = s.now()

	if err := s.repo.SaveFrameworkInstance(ctx, inst); err != nil {
		return Scores{}, fmt.Errorf("save framework %s: %w", inst.FrameworkID, err)
	}

	scores, err := s.RecomputeCompany(ctx, inst.CompanyID)
	if err != nil {
		return Scores{}, err
	}

	logger.Debug().
		Int("progress", progress.Percent).
		Int("score", inst.Score).
		Int64("version", inst.Version).
		Msg("framework saved, aggregate recomputed")

	s.emitter.FrameworkSaved(ctx, events.FrameworkSaved{
		ID:          events.NewEventID(),
		CompanyID:   inst.CompanyID,
		FrameworkID: inst.FrameworkID,
		Progress:    inst.ProgressPercent,
		Score:       inst.Score,
		OccurredAt:  inst.LastUpdated,
	})

	return scores, nil
}

// SetField loads a framework instance, writes one field, and runs the
// full save flow. Missing instances start from the framework template.
func (s *Service) SetField(ctx context.Context, companyID uuid.UUID, id disclosure.FrameworkID, fieldID string, value any) (Scores, error) {
	inst, err := s.repo.LoadFrameworkInstance(ctx, companyID, id)
	if err != nil {
		return Scores{}, fmt.Errorf("load framework %s: %w", id, err)
	}
	if inst == nil {
		inst = disclosure.NewInstance(id, companyID)
	}

	if !inst.SetField(fieldID, value) {
		return Scores{}, fmt.Errorf("framework %s has no field %q", id, fieldID)
	}

	return s.SaveFramework(ctx, inst)
}

// RecomputeCompany rebuilds a company's aggregate scores from the latest
// persisted per-framework values and persists the snapshot.
func (s *Service) RecomputeCompany(ctx context.Context, companyID uuid.UUID) (Scores, error) {
	frameworkScores, err := s.repo.LoadAllFrameworkScores(ctx, companyID)
	if err != nil {
		return Scores{}, fmt.Errorf("load framework scores: %w", err)
	}

	scores := Aggregate(frameworkScores)

	if err := s.repo.SaveScoreSnapshot(ctx, companyID, scores); err != nil {
		return Scores{}, fmt.Errorf("save score snapshot: %w", err)
	}
	return scores, nil
}

// recomputeConcurrency bounds the fan-out of RecomputeAll.
const recomputeConcurrency = 8

// RecomputeAll refreshes aggregates for a set of companies, used after
// factor dataset updates or bulk imports.
func (s *Service) RecomputeAll(ctx context.Context, companyIDs []uuid.UUID) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(recomputeConcurrency)

	for _, id := range companyIDs {
		g.Go(func() error {
			_, err := s.RecomputeCompany(gctx, id)
			return err
		})
	}
	return g.Wait()
}

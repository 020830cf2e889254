package disclosure

import (
	"time"

	"github.com/google/uuid"
)

// Instance is one company's disclosure data for one framework.
type Instance struct {
	FrameworkID FrameworkID `json:"framework_id"`
	CompanyID   uuid.UUID   `json:"company_id"`

	// Tree is the nested disclosure data. Never nil for a persisted
	// instance; an empty framework starts from its template.
	Tree *Node `json:"tree"`

	// ProgressPercent is derived on every save via the framework's
	// progress strategy.
	ProgressPercent int `json:"progress_percent"`

	// Score is the 0-100 framework score, supplied by assessment or
	// derived from progress when no assessment exists.
	Score int `json:"score"`

	// Version is a monotonic counter bumped on every save.
	Version int64 `json:"version"`

	LastUpdated time.Time `json:"last_updated"`
}

// NewInstance creates an empty instance from the framework's template
// tree.
func NewInstance(id FrameworkID, companyID uuid.UUID) *Instance {
	return &Instance{
		FrameworkID: id,
		CompanyID:   companyID,
		Tree:        Template(id),
	}
}

// RecomputeProgress refreshes leaf completion flags and recomputes the
// instance's progress using the framework's strategy. It mutates the
// instance and returns the computed progress.
func (in *Instance) RecomputeProgress() Progress {
	RefreshCompletion(in.Tree)
	progress := ComputerFor(in.FrameworkID)(in.Tree)
	in.ProgressPercent = progress.Percent
	return progress
}

// SetField writes a value to the named field and refreshes its completed
// flag. Returns false when the field does not exist in the tree.
func (in *Instance) SetField(fieldID string, value any) bool {
	f := in.Tree.FindField(fieldID)
	if f == nil {
		return false
	}
	f.Value = value
	f.Refresh()
	return true
}

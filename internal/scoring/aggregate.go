// Package scoring aggregates per-framework progress and scores into
// pillar and overall compliance scores.
//
// The framework-to-pillar membership map and the pillar weights are fixed
// product rules. Every dashboard and export reads the aggregate produced
// here; nothing downstream computes a rival score.
package scoring

import (
	"math"
	"time"

	"github.com/verdant-io/verdant/internal/disclosure"
)

// Pillar is one of the three top-level ESG score categories.
type Pillar string

const (
	PillarEnvironmental Pillar = "environmental"
	PillarSocial        Pillar = "social"
	PillarGovernance    Pillar = "governance"
)

// Overall score weights. Fixed in the current design; per-company weights
// are a possible future extension, not a requirement.
const (
	weightEnvironmental = 0.4
	weightSocial        = 0.3
	weightGovernance    = 0.3
)

// pillarMembership maps each pillar to its member frameworks. The map is
// a product rule and must be preserved exactly.
var pillarMembership = map[Pillar][]disclosure.FrameworkID{
	PillarEnvironmental: {
		disclosure.FrameworkGRI, disclosure.FrameworkTCFD,
		disclosure.FrameworkSBTi, disclosure.FrameworkCDP,
		disclosure.FrameworkSDG, disclosure.FrameworkPCAF,
		disclosure.FrameworkISSB, disclosure.FrameworkSASB,
	},
	PillarSocial: {
		disclosure.FrameworkGRI, disclosure.FrameworkCSRD,
		disclosure.FrameworkSDG, disclosure.FrameworkSASB,
	},
	PillarGovernance: {
		disclosure.FrameworkGRI, disclosure.FrameworkTCFD,
		disclosure.FrameworkCSRD, disclosure.FrameworkISSB,
		disclosure.FrameworkSASB,
	},
}

// FrameworkScore is one framework's contribution to aggregation.
type FrameworkScore struct {
	Score       int       `json:"score"`
	Progress    int       `json:"progress"`
	LastUpdated time.Time `json:"last_updated"`
}

// Scores is the aggregated compliance score set for one company.
type Scores struct {
	Overall       int `json:"overall"`
	Environmental int `json:"environmental"`
	Social        int `json:"social"`
	Governance    int `json:"governance"`

	PerFramework map[disclosure.FrameworkID]FrameworkScore `json:"per_framework"`
}

// Aggregate combines per-framework scores into pillar scores and the
// overall weighted score.
//
// A pillar is the arithmetic mean of its member frameworks that have a
// score above zero; frameworks the company has not started are excluded
// from the average rather than dragging it down. A pillar with no scored
// members is 0. The overall score is the 0.4/0.3/0.3 weighted combination
// of the pillars, rounded.
func Aggregate(frameworkScores map[disclosure.FrameworkID]FrameworkScore) Scores {
	s := Scores{
		Environmental: pillarScore(PillarEnvironmental, frameworkScores),
		Social:        pillarScore(PillarSocial, frameworkScores),
		Governance:    pillarScore(PillarGovernance, frameworkScores),
		PerFramework:  make(map[disclosure.FrameworkID]FrameworkScore, len(frameworkScores)),
	}
	for id, fs := range frameworkScores {
		s.PerFramework[id] = fs
	}

	s.Overall = int(math.Round(
		float64(s.Environmental)*weightEnvironmental +
			float64(s.Social)*weightSocial +
			float64(s.Governance)*weightGovernance))

	return s
}

// pillarScore averages the positive scores of a pillar's members,
// guarding the division when none are scored.
func pillarScore(p Pillar, frameworkScores map[disclosure.FrameworkID]FrameworkScore) int {
	var sum, count int
	for _, id := range pillarMembership[p] {
		fs, ok := frameworkScores[id]
		if !ok || fs.Score <= 0 {
			continue
		}
		sum += fs.Score
		count++
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}

// Members returns the frameworks belonging to a pillar.
func Members(p Pillar) []disclosure.FrameworkID {
	members := pillarMembership[p]
	out := make([]disclosure.FrameworkID, len(members))
	copy(out, members)
	return out
}

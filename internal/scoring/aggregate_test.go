package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verdant-io/verdant/internal/disclosure"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name              string
		scores            map[disclosure.FrameworkID]FrameworkScore
		wantEnvironmental int
		wantSocial        int
		wantGovernance    int
		wantOverall       int
	}{
		{
			name:   "no data at all",
			scores: map[disclosure.FrameworkID]FrameworkScore{},
		},
		{
			// Zero-score frameworks are excluded from the mean, not
			// averaged in: {gri: 0, tcfd: 80} -> environmental 80.
			name: "zero score excluded from pillar mean",
			scores: map[disclosure.FrameworkID]FrameworkScore{
				disclosure.FrameworkGRI:  {Score: 0},
				disclosure.FrameworkTCFD: {Score: 80},
			},
			wantEnvironmental: 80,
			wantGovernance:    80,
			wantOverall:       56, // 80*0.4 + 0*0.3 + 80*0.3
		},
		{
			name: "gri contributes to all three pillars",
			scores: map[disclosure.FrameworkID]FrameworkScore{
				disclosure.FrameworkGRI: {Score: 60},
			},
			wantEnvironmental: 60,
			wantSocial:        60,
			wantGovernance:    60,
			wantOverall:       60,
		},
		{
			name: "csrd is social and governance only",
			scores: map[disclosure.FrameworkID]FrameworkScore{
				disclosure.FrameworkCSRD: {Score: 90},
			},
			wantSocial:     90,
			wantGovernance: 90,
			wantOverall:    54, // 0*0.4 + 90*0.3 + 90*0.3
		},
		{
			name: "pillar mean is rounded",
			scores: map[disclosure.FrameworkID]FrameworkScore{
				disclosure.FrameworkGRI:  {Score: 70},
				disclosure.FrameworkTCFD: {Score: 75},
				disclosure.FrameworkSBTi: {Score: 80},
			},
			wantEnvironmental: 75,
			wantSocial:        70,
			wantGovernance:    73, // round(145/2)
			wantOverall:       73, // round(75*0.4 + 70*0.3 + 72.5->73*0.3) = round(30+21+21.9)
		},
		{
			name: "all frameworks at full score",
			scores: func() map[disclosure.FrameworkID]FrameworkScore {
				m := make(map[disclosure.FrameworkID]FrameworkScore)
				for _, id := range disclosure.AllFrameworks() {
					m[id] = FrameworkScore{Score: 100, Progress: 100}
				}
				return m
			}(),
			wantEnvironmental: 100,
			wantSocial:        100,
			wantGovernance:    100,
			wantOverall:       100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.scores)
			assert.Equal(t, tt.wantEnvironmental, got.Environmental, "environmental")
			assert.Equal(t, tt.wantSocial, got.Social, "social")
			assert.Equal(t, tt.wantGovernance, got.Governance, "governance")
			assert.Equal(t, tt.wantOverall, got.Overall, "overall")
			assert.Len(t, got.PerFramework, len(tt.scores))
		})
	}
}

func TestPillarMembership(t *testing.T) {
	assert.ElementsMatch(t, []disclosure.FrameworkID{
		disclosure.FrameworkGRI, disclosure.FrameworkTCFD,
		disclosure.FrameworkSBTi, disclosure.FrameworkCDP,
		disclosure.FrameworkSDG, disclosure.FrameworkPCAF,
		disclosure.FrameworkISSB, disclosure.FrameworkSASB,
	}, Members(PillarEnvironmental))

	assert.ElementsMatch(t, []disclosure.FrameworkID{
		disclosure.FrameworkGRI, disclosure.FrameworkCSRD,
		disclosure.FrameworkSDG, disclosure.FrameworkSASB,
	}, Members(PillarSocial))

	assert.ElementsMatch(t, []disclosure.FrameworkID{
		disclosure.FrameworkGRI, disclosure.FrameworkTCFD,
		disclosure.FrameworkCSRD, disclosure.FrameworkISSB,
		disclosure.FrameworkSASB,
	}, Members(PillarGovernance))
}

// Package factors holds the emission-factor reference table.
//
// Factors map an activity (category, key) to a CO2e mass per unit of
// activity. The table is immutable after startup: it is built from the
// compiled-in baseline dataset and optionally overlaid with a versioned
// YAML dataset, then shared read-only across all calculator invocations.
package factors

import "fmt"

// Scope identifies a GHG Protocol emission scope.
type Scope int

const (
	// Scope1 covers direct emissions from owned or controlled sources.
	Scope1 Scope = 1

	// Scope2 covers indirect emissions from purchased energy.
	Scope2 Scope = 2

	// Scope3 covers all other value-chain emissions.
	Scope3 Scope = 3
)

// String returns the conventional "scope N" label.
func (s Scope) String() string {
	return fmt.Sprintf("scope %d", int(s))
}

// Unit is the activity unit an emission factor applies to.
type Unit string

const (
	UnitKWh             Unit = "kWh"
	UnitLiter           Unit = "liter"
	UnitKm              Unit = "km"
	UnitPassengerKm     Unit = "passenger-km"
	UnitTonne           Unit = "tonne"
	UnitCurrency        Unit = "currency"
	UnitSquareMeterYear Unit = "m2-year"
)

// Factor categories group keys by the calculator that consumes them.
const (
	CategoryScope1           = "scope1"
	CategoryScope2           = "scope2"
	CategoryScope3           = "scope3"
	CategoryFinancedSector   = "financed.sector"
	CategoryFinancedBuilding = "financed.building"
)

// Factor is one activity-to-CO2e mapping. Values are kilograms of CO2e per
// unit of activity except for CategoryFinancedSector, where the value is
// tonnes of CO2e per million USD of revenue (the PCAF convention).
type Factor struct {
	Category    string  `yaml:"category"`
	Key         string  `yaml:"key"`
	Value       float64 `yaml:"value"`
	Unit        Unit    `yaml:"unit"`
	Scope       Scope   `yaml:"scope"`
	Source      string  `yaml:"source"`
	Uncertainty float64 `yaml:"uncertainty"`

	// QualityTier is the PCAF data-quality tier (1 best, 5 worst) an
	// estimate derived from this factor inherits. Zero for factors that
	// are not part of the financed-emissions hierarchy.
	QualityTier int `yaml:"quality_tier,omitempty"`
}

// ID returns the lookup key for a factor within its table.
func (f Factor) ID() string {
	return f.Category + "/" + f.Key
}

// Table is the read-only factor lookup shared by all calculators.
type Table struct {
	factors map[string]Factor

	// sourceVersions tracks the dataset version applied per source label,
	// used to reject stale overlay datasets.
	sourceVersions map[string]string
}

// NewTable builds a table containing the compiled-in baseline dataset.
func NewTable() *Table {
	t := &Table{
		factors:        make(map[string]Factor, len(baselineFactors)),
		sourceVersions: make(map[string]string),
	}
	for _, f := range baselineFactors {
		t.factors[f.ID()] = f
	}
	t.sourceVersions[BaselineSource] = BaselineVersion
	return t
}

// Lookup returns the factor for (category, key), reporting whether it
// exists. Callers treat a miss as a zero contribution, not an error.
func (t *Table) Lookup(category, key string) (Factor, bool) {
	f, ok := t.factors[category+"/"+key]
	return f, ok
}

// Category returns all factors in the given category, in unspecified order.
func (t *Table) Category(category string) []Factor {
	var out []Factor
	for _, f := range t.factors {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}

// Len reports the number of factors in the table.
func (t *Table) Len() int {
	return len(t.factors)
}

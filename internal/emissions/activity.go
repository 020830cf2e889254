package emissions

import (
	"context"
	"fmt"
	"sort"

	"github.com/verdant-io/verdant/internal/factors"
	"github.com/verdant-io/verdant/internal/logging"
)

// Calculator converts activity quantities into CO2e mass, scope by scope.
// It holds only the read-only factor table and is safe for concurrent use.
type Calculator struct {
	table *factors.Table
}

// NewCalculator returns a calculator backed by the given factor table.
func NewCalculator(table *factors.Table) *Calculator {
	return &Calculator{table: table}
}

// ValidateActivities rejects negative quantities. Boundaries (API, CLI)
// call this before handing data to the calculators.
func ValidateActivities(activities map[string]float64) error {
	for key, qty := range activities {
		if qty < 0 {
			return fmt.Errorf("%w: %s = %v", ErrNegativeQuantity, key, qty)
		}
	}
	return nil
}

// Scope1 computes direct emissions from a map of activity key to quantity.
// Missing activities contribute zero; unknown keys are skipped and listed
// in Result.Skipped with a logged data-quality warning.
func (c *Calculator) Scope1(ctx context.Context, activities map[string]float64) (Result, error) {
	res, err := c.calculate(ctx, factors.Scope1, factors.CategoryScope1, activities, nil)
	if err != nil {
		return Result{}, err
	}
	res.Methodology = "GHG Protocol Scope 1 (fuel-based)"
	return res, nil
}

// Scope2 computes purchased-energy emissions under the selected method.
//
// Location-based always applies the grid-average factor. Market-based
// zeroes grid emissions for a 100% renewable declaration, otherwise scales
// them by (1 - renewable%/100). Transmission & distribution losses are
// computed from the grid electricity quantity and reported as a separate
// line item excluded from the scope 2 total.
func (c *Calculator) Scope2(ctx context.Context, activities map[string]float64, opts Scope2Options) (Result, error) {
	scale := 1.0
	switch opts.Method {
	case Scope2LocationBased:
	case Scope2MarketBased:
		if opts.RenewablePercent < 0 || opts.RenewablePercent > 100 {
			return Result{}, fmt.Errorf("%w: %v", ErrInvalidRenewablePercent, opts.RenewablePercent)
		}
		if opts.FullyRenewable {
			scale = 0
		} else {
			scale = 1 - opts.RenewablePercent/100
		}
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownScope2Method, opts.Method)
	}

	scaler := func(f factors.Factor) (float64, bool) {
		// T&D losses are scope 3; keep them out of the total.
		if f.Scope != factors.Scope2 {
			return 0, false
		}
		return scale, true
	}

	res, err := c.calculate(ctx, factors.Scope2, factors.CategoryScope2, activities, scaler)
	if err != nil {
		return Result{}, err
	}

	if gridKwh, ok := activities["gridElectricityKwh"]; ok && gridKwh > 0 {
		if td, found := c.table.Lookup(factors.CategoryScope2, "tdLossesKwh"); found {
			res.TDLossesKgCO2e = gridKwh * td.Value
		}
	}

	res.Methodology = fmt.Sprintf("GHG Protocol Scope 2 (%s)", opts.Method)
	return res, nil
}

// Scope3 computes value-chain emissions from a map of activity quantities.
func (c *Calculator) Scope3(ctx context.Context, activities map[string]float64) (Result, error) {
	res, err := c.calculate(ctx, factors.Scope3, factors.CategoryScope3, activities, nil)
	if err != nil {
		return Result{}, err
	}
	res.Methodology = "GHG Protocol Scope 3 (activity and spend-based)"
	return res, nil
}

// calculate is the shared per-category loop. scaler, when non-nil, returns
// a multiplier for a factor and whether the factor's mass counts toward
// the total at all.
func (c *Calculator) calculate(
	ctx context.Context,
	scope factors.Scope,
	category string,
	activities map[string]float64,
	scaler func(factors.Factor) (float64, bool),
) (Result, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "emissions").
		Str("category", category).
		Logger()

	if err := ValidateActivities(activities); err != nil {
		return Result{}, err
	}

	res := Result{
		Scope:     scope,
		Breakdown: make(map[string]float64, len(activities)),
	}

	var weightedUncertainty float64

	// Deterministic iteration keeps skip logging and any future rounding
	// stable across runs.
	keys := make([]string, 0, len(activities))
	for key := range activities {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		qty := activities[key]
		if qty == 0 {
			continue
		}

		factor, ok := c.table.Lookup(category, key)
		if !ok {
			logger.Warn().
				Str("activity", key).
				Float64("quantity", qty).
				Msg("no emission factor for activity, contribution treated as zero")
			res.Skipped = append(res.Skipped, key)
			continue
		}

		scale := 1.0
		if scaler != nil {
			var counted bool
			scale, counted = scaler(factor)
			if !counted {
				continue
			}
		}

		kg := qty * factor.Value * scale
		res.Breakdown[key] = kg
		res.TotalKgCO2e += kg
		weightedUncertainty += kg * factor.Uncertainty
	}

	if res.TotalKgCO2e > 0 {
		res.Uncertainty = weightedUncertainty / res.TotalKgCO2e
	}
	res.TotalTonnesCO2e = res.TotalKgCO2e / KgPerTonne

	return res, nil
}

// Package emissions implements the GHG emission calculators.
//
// Calculators are pure functions of their inputs and the shared factor
// table: no I/O, no mutation, safe for concurrent use. Masses are computed
// and carried in kilograms of CO2e; tonnes appear only as derived
// presentation values.
package emissions

import "github.com/verdant-io/verdant/internal/factors"

// KgPerTonne converts between the internal kilogram convention and the
// tonne values shown at presentation boundaries.
const KgPerTonne = 1000.0

// Result is the outcome of one scope calculation.
type Result struct {
	Scope factors.Scope `json:"scope"`

	// TotalKgCO2e is the summed mass across all recognized activities.
	TotalKgCO2e float64 `json:"total_kg_co2e"`

	// TotalTonnesCO2e is TotalKgCO2e / 1000, carried for reporting.
	TotalTonnesCO2e float64 `json:"total_tonnes_co2e"`

	// Breakdown maps each contributing activity key to its mass in kg.
	Breakdown map[string]float64 `json:"breakdown"`

	// Methodology labels the calculation method for report display.
	Methodology string `json:"methodology"`

	// Uncertainty is the mass-weighted uncertainty fraction of the
	// contributing factors, 0 when nothing contributed.
	Uncertainty float64 `json:"uncertainty"`

	// Skipped lists activity keys that had no matching factor and were
	// treated as zero. Non-empty Skipped is a data-quality signal, not
	// an error.
	Skipped []string `json:"skipped,omitempty"`

	// TDLossesKgCO2e reports transmission & distribution losses for
	// scope 2 calculations. T&D losses belong to scope 3 and are never
	// included in TotalKgCO2e.
	TDLossesKgCO2e float64 `json:"td_losses_kg_co2e,omitempty"`
}

// Scope2Method selects the accounting method for purchased electricity.
type Scope2Method string

const (
	// Scope2LocationBased uses the grid-average factor regardless of
	// contractual instruments.
	Scope2LocationBased Scope2Method = "location-based"

	// Scope2MarketBased reflects renewable procurement: a 100% renewable
	// declaration zeroes grid emissions, a partial declaration scales
	// them down proportionally.
	Scope2MarketBased Scope2Method = "market-based"
)

// Scope2Options carries the method selection for a scope 2 calculation.
type Scope2Options struct {
	Method Scope2Method `json:"method"`

	// RenewablePercent is the declared renewable share, 0-100. Only
	// consulted for the market-based method.
	RenewablePercent float64 `json:"renewable_percent"`

	// FullyRenewable declares 100% renewable procurement and forces a
	// zero-emission factor under the market-based method.
	FullyRenewable bool `json:"fully_renewable"`
}

// FinancedInput describes one counterparty exposure for PCAF attribution.
// Optional inputs are zero when unavailable; the calculator's fallback
// hierarchy decides the estimation path and data-quality tier.
type FinancedInput struct {
	// ReportedEmissionsTonnes is the counterparty's own reported total,
	// in tonnes CO2e. Tier 1 when present.
	ReportedEmissionsTonnes float64 `json:"reported_emissions_tonnes"`

	// BuildingAreaM2 is the financed building floor area. Tier 3 when
	// used.
	BuildingAreaM2 float64 `json:"building_area_m2"`

	// RevenueMillionUSD is the counterparty's annual revenue in $M.
	// Tier 4 when used, via sector intensity.
	RevenueMillionUSD float64 `json:"revenue_million_usd"`

	// Sector is the counterparty's sector label for intensity lookup.
	Sector string `json:"sector"`

	OutstandingAmountUSD  float64 `json:"outstanding_amount_usd"`
	TotalAssetOrEquityUSD float64 `json:"total_asset_or_equity_usd"`
}

// FinancedResult is the attributed-emissions outcome for one counterparty.
type FinancedResult struct {
	// CounterpartyEmissionsTonnes is the estimated or reported total for
	// the counterparty before attribution.
	CounterpartyEmissionsTonnes float64 `json:"counterparty_emissions_tonnes"`

	// AttributionFactor is outstanding / totalAssetOrEquity, 0 when the
	// denominator is 0.
	AttributionFactor float64 `json:"attribution_factor"`

	// FinancedEmissionsKgCO2e is the attributed mass in the internal
	// kilogram convention.
	FinancedEmissionsKgCO2e float64 `json:"financed_emissions_kg_co2e"`

	// FinancedEmissionsTonnes is the attributed mass in tonnes.
	FinancedEmissionsTonnes float64 `json:"financed_emissions_tonnes"`

	OutstandingAmountUSD  float64 `json:"outstanding_amount_usd"`
	TotalAssetOrEquityUSD float64 `json:"total_asset_or_equity_usd"`

	// DataQualityTier is the PCAF 1 (best) to 5 (worst) tier of the
	// chosen estimation path.
	DataQualityTier int `json:"data_quality_tier"`

	// Methodology labels the estimation path for the PCAF badge.
	Methodology string `json:"methodology"`

	// PortfolioCarbonIntensity is financed tonnes per $M outstanding,
	// 0 when outstanding is 0.
	PortfolioCarbonIntensity float64 `json:"portfolio_carbon_intensity"`

	// Uncertainty is the uncertainty fraction of the factor used, 0 for
	// tier 1 and tier 5 results.
	Uncertainty float64 `json:"uncertainty"`
}

// PCAF data-quality tiers.
const (
	TierReported    = 1
	TierPhysical    = 3
	TierSectorAvg   = 4
	TierUnavailable = 5
)

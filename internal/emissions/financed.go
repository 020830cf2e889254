package emissions

import (
	"context"
	"fmt"

	"github.com/verdant-io/verdant/internal/factors"
	"github.com/verdant-io/verdant/internal/logging"
)

// Methodology labels for the PCAF data-quality badge.
const (
	methodologyReported    = "PCAF tier 1: counterparty-reported emissions"
	methodologyPhysical    = "PCAF tier 3: physical activity (building intensity)"
	methodologySectorAvg   = "PCAF tier 4: sector-average revenue intensity"
	methodologyUnavailable = "PCAF tier 5: no usable data (proxy zero)"
)

// FinancedCalculator computes attributed emissions for financial
// counterparties using the PCAF attribution formula and data-quality
// hierarchy.
type FinancedCalculator struct {
	table *factors.Table
}

// NewFinancedCalculator returns a financed-emissions calculator backed by
// the given factor table.
func NewFinancedCalculator(table *factors.Table) *FinancedCalculator {
	return &FinancedCalculator{table: table}
}

// Calculate runs the PCAF hierarchy for one counterparty exposure.
//
// Estimation paths are tried strictly in data-quality order:
//
//  1. reported emissions (tier 1)
//  2. building area x intensity (tier 3)
//  3. revenue x sector intensity (tier 4)
//  4. no data: zero with tier 5, flagged so reporting never presents it
//     as a true measurement
//
// Attribution is outstanding / totalAssetOrEquity, guarded to 0 when the
// denominator is 0. The chosen tier and methodology label are retained on
// the result for the PCAF badge.
func (c *FinancedCalculator) Calculate(ctx context.Context, input FinancedInput) (FinancedResult, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "emissions").
		Str("category", "financed").
		Logger()

	if input.OutstandingAmountUSD < 0 || input.TotalAssetOrEquityUSD < 0 {
		return FinancedResult{}, fmt.Errorf("%w: outstanding=%v assets=%v",
			ErrNegativeExposure, input.OutstandingAmountUSD, input.TotalAssetOrEquityUSD)
	}
	if input.ReportedEmissionsTonnes < 0 || input.BuildingAreaM2 < 0 || input.RevenueMillionUSD < 0 {
		return FinancedResult{}, fmt.Errorf("%w: counterparty inputs must be non-negative", ErrNegativeQuantity)
	}

	res := FinancedResult{
		OutstandingAmountUSD:  input.OutstandingAmountUSD,
		TotalAssetOrEquityUSD: input.TotalAssetOrEquityUSD,
	}

	switch {
	case input.ReportedEmissionsTonnes > 0:
		res.CounterpartyEmissionsTonnes = input.ReportedEmissionsTonnes
		res.DataQualityTier = TierReported
		res.Methodology = methodologyReported

	case input.BuildingAreaM2 > 0:
		intensity, ok := c.table.Lookup(factors.CategoryFinancedBuilding, "commercialRealEstate")
		if !ok {
			// Building intensity missing from the table degrades the
			// estimate to tier 5 rather than failing the calculation.
			logger.Warn().Msg("building intensity factor missing, falling through to tier 5")
			break
		}
		res.CounterpartyEmissionsTonnes = input.BuildingAreaM2 * intensity.Value / KgPerTonne
		res.DataQualityTier = TierPhysical
		res.Methodology = methodologyPhysical
		res.Uncertainty = intensity.Uncertainty

	case input.RevenueMillionUSD > 0:
		sector := input.Sector
		intensity, ok := c.table.Lookup(factors.CategoryFinancedSector, sector)
		if !ok {
			logger.Warn().
				Str("sector", sector).
				Str("fallback", factors.DefaultSector).
				Msg("unknown counterparty sector, using default sector intensity")
			sector = factors.DefaultSector
			intensity, ok = c.table.Lookup(factors.CategoryFinancedSector, sector)
		}
		if !ok {
			break
		}
		res.CounterpartyEmissionsTonnes = input.RevenueMillionUSD * intensity.Value
		res.DataQualityTier = TierSectorAvg
		res.Methodology = methodologySectorAvg
		res.Uncertainty = intensity.Uncertainty
	}

	if res.DataQualityTier == 0 {
		res.DataQualityTier = TierUnavailable
		res.Methodology = methodologyUnavailable
		logger.Warn().
			Float64("outstanding_usd", input.OutstandingAmountUSD).
			Msg("no usable counterparty data, financed emissions reported as tier 5 zero")
	}

	if input.TotalAssetOrEquityUSD > 0 {
		res.AttributionFactor = input.OutstandingAmountUSD / input.TotalAssetOrEquityUSD
	}

	res.FinancedEmissionsTonnes = res.CounterpartyEmissionsTonnes * res.AttributionFactor
	res.FinancedEmissionsKgCO2e = res.FinancedEmissionsTonnes * KgPerTonne

	if input.OutstandingAmountUSD > 0 {
		res.PortfolioCarbonIntensity = res.FinancedEmissionsTonnes / (input.OutstandingAmountUSD / 1_000_000)
	}

	return res, nil
}

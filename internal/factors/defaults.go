package factors

// Baseline dataset identity. Overlay datasets carrying the same source
// label must have a semver greater than or equal to BaselineVersion.
const (
	BaselineSource  = "VERDANT-BASELINE"
	BaselineVersion = "1.0.0"
)

// DefaultSector is the sector-average fallback used when a counterparty's
// sector label has no matching intensity factor.
const DefaultSector = "manufacturing"

// baselineFactors is the compiled-in factor set. Stationary and mobile
// combustion values follow the DEFRA 2024 conversion factors; grid
// electricity uses a national average location-based intensity; sector
// intensities are economy-average tonnes CO2e per $M revenue.
var baselineFactors = []Factor{
	// Scope 1: direct combustion.
	{Category: CategoryScope1, Key: "naturalGasKwh", Value: 0.18316, Unit: UnitKWh, Scope: Scope1, Source: BaselineSource, Uncertainty: 0.05},
	{Category: CategoryScope1, Key: "dieselLiters", Value: 2.68787, Unit: UnitLiter, Scope: Scope1, Source: BaselineSource, Uncertainty: 0.05},
	{Category: CategoryScope1, Key: "petrolLiters", Value: 2.31495, Unit: UnitLiter, Scope: Scope1, Source: BaselineSource, Uncertainty: 0.05},
	{Category: CategoryScope1, Key: "lpgLiters", Value: 1.55709, Unit: UnitLiter, Scope: Scope1, Source: BaselineSource, Uncertainty: 0.05},
	{Category: CategoryScope1, Key: "fleetKm", Value: 0.17148, Unit: UnitKm, Scope: Scope1, Source: BaselineSource, Uncertainty: 0.10},

	// Scope 2: purchased energy. tdLossesKwh is reported alongside scope 2
	// but belongs to scope 3 category 3 and is excluded from the scope 2
	// total.
	{Category: CategoryScope2, Key: "gridElectricityKwh", Value: 0.20705, Unit: UnitKWh, Scope: Scope2, Source: BaselineSource, Uncertainty: 0.08},
	{Category: CategoryScope2, Key: "districtHeatKwh", Value: 0.17070, Unit: UnitKWh, Scope: Scope2, Source: BaselineSource, Uncertainty: 0.10},
	{Category: CategoryScope2, Key: "tdLossesKwh", Value: 0.01830, Unit: UnitKWh, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.12},

	// Scope 3: value chain.
	{Category: CategoryScope3, Key: "flightShortHaulPkm", Value: 0.15102, Unit: UnitPassengerKm, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.15},
	{Category: CategoryScope3, Key: "flightLongHaulPkm", Value: 0.14787, Unit: UnitPassengerKm, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.15},
	{Category: CategoryScope3, Key: "railPkm", Value: 0.03549, Unit: UnitPassengerKm, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.12},
	{Category: CategoryScope3, Key: "employeeCommuteKm", Value: 0.17148, Unit: UnitKm, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.20},
	{Category: CategoryScope3, Key: "wasteLandfillTonnes", Value: 467.05, Unit: UnitTonne, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.25},
	{Category: CategoryScope3, Key: "wasteRecycledTonnes", Value: 21.29, Unit: UnitTonne, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.25},
	{Category: CategoryScope3, Key: "purchasedGoodsUsd", Value: 0.54, Unit: UnitCurrency, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.40},
	{Category: CategoryScope3, Key: "capitalGoodsUsd", Value: 0.39, Unit: UnitCurrency, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.40},

	// Financed emissions: building intensity (kg CO2e per m² per year),
	// PCAF tier 3 when used.
	{Category: CategoryFinancedBuilding, Key: "commercialRealEstate", Value: 55.0, Unit: UnitSquareMeterYear, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.30, QualityTier: 3},

	// Financed emissions: sector revenue intensities (tonnes CO2e per $M
	// revenue), PCAF tier 4 when used.
	{Category: CategoryFinancedSector, Key: "energy", Value: 1311.0, Unit: UnitCurrency, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.50, QualityTier: 4},
	{Category: CategoryFinancedSector, Key: "utilities", Value: 2192.0, Unit: UnitCurrency, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.50, QualityTier: 4},
	{Category: CategoryFinancedSector, Key: "mining", Value: 1447.0, Unit: UnitCurrency, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.50, QualityTier: 4},
	{Category: CategoryFinancedSector, Key: "agriculture", Value: 624.0, Unit: UnitCurrency, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.50, QualityTier: 4},
	{Category: CategoryFinancedSector, Key: "transportation", Value: 781.0, Unit: UnitCurrency, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.50, QualityTier: 4},
	{Category: CategoryFinancedSector, Key: "manufacturing", Value: 394.0, Unit: UnitCurrency, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.50, QualityTier: 4},
	{Category: CategoryFinancedSector, Key: "construction", Value: 241.0, Unit: UnitCurrency, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.50, QualityTier: 4},
	{Category: CategoryFinancedSector, Key: "retail", Value: 86.0, Unit: UnitCurrency, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.50, QualityTier: 4},
	{Category: CategoryFinancedSector, Key: "healthcare", Value: 52.0, Unit: UnitCurrency, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.50, QualityTier: 4},
	{Category: CategoryFinancedSector, Key: "technology", Value: 28.0, Unit: UnitCurrency, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.50, QualityTier: 4},
	{Category: CategoryFinancedSector, Key: "finance", Value: 15.0, Unit: UnitCurrency, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.50, QualityTier: 4},
	{Category: CategoryFinancedSector, Key: "services", Value: 33.0, Unit: UnitCurrency, Scope: Scope3, Source: BaselineSource, Uncertainty: 0.50, QualityTier: 4},
}

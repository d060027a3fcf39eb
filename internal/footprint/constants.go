package footprint

// Emission factors in tonnes CO2e per unit of activity.
const (
	// CarPerKmT is tonnes CO2e per km driven in an average passenger car.
	CarPerKmT = 0.0002

	// AirPerHourT is tonnes CO2e per hour of flight.
	AirPerHourT = 0.09

	// ElectricityPerKWhT is tonnes CO2e per kWh of household electricity.
	ElectricityPerKWhT = 0.0007

	// WastePerKgT is tonnes CO2e per kg of household waste.
	WastePerKgT = 0.0012

	// MonthsPerYear converts monthly inputs to annual values.
	MonthsPerYear = 12
)

// Diet baselines in tonnes CO2e per year.
const (
	DietVeganT      = 1.5
	DietVegetarianT = 2.0
	DietLightT      = 2.8
	DietMediumT     = 3.6
	DietHeavyT      = 5.0
)

// GlobalAverageT is the global per-capita footprint used for comparison.
const GlobalAverageT = 4.7

// Recommendation thresholds in tonnes CO2e per year.
const (
	carThresholdT    = 1.0
	airThresholdT    = 1.0
	energyThresholdT = 1.0
	dietThresholdT   = 2.5
	wasteThresholdT  = 0.5
)

// EPA equivalency factors (2024 edition), kg CO2e per unit.
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
const (
	// EPAMilesDrivenFactor is kg CO2e per mile for an average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPATreeSeedlingFactor is kg CO2e absorbed per tree seedling grown for 10 years.
	EPATreeSeedlingFactor = 60.0

	// TonnesToKg converts metric tonnes to kilograms.
	TonnesToKg = 1000.0
)

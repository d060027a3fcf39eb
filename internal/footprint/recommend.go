package footprint

// Advisory messages returned by Recommend.
const (
	AdviceCar      = "Reduce solo car travel: carpool, public transport, or cycling for short trips."
	AdviceAir      = "Cut a flight or choose trains for <1000 km routes when feasible."
	AdviceEnergy   = "Switch to LED lighting and set AC between 24–26°C to cut electricity use."
	AdviceDiet     = "Shift one or two days a week to plant-forward meals."
	AdviceWaste    = "Start composting organics and improve recycling separation."
	AdviceMaintain = "Great job! Maintain habits and consider supporting verified carbon offset projects."
)

// Recommend returns advice for the categories that exceed their thresholds,
// in the fixed order car, air, energy, diet, waste. Diet advice is never
// given to vegans. When nothing triggers, a single maintain-habits message
// is returned, so the result always has between one and five entries.
func Recommend(r Result, diet Diet) []string {
	recs := make([]string, 0, 5) //nolint:mnd // One slot per category.
	if r.Car > carThresholdT {
		recs = append(recs, AdviceCar)
	}
	if r.Air > airThresholdT {
		recs = append(recs, AdviceAir)
	}
	if r.Energy > energyThresholdT {
		recs = append(recs, AdviceEnergy)
	}
	if diet != DietVegan && r.Diet > dietThresholdT {
		recs = append(recs, AdviceDiet)
	}
	if r.Waste > wasteThresholdT {
		recs = append(recs, AdviceWaste)
	}
	if len(recs) == 0 {
		recs = append(recs, AdviceMaintain)
	}
	return recs
}

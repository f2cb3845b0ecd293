package ledger

import (
	"math"
	"strconv"
	"strings"

	"palmroute/internal/models"
)

// Source yields uniform draws in [0,1). *rand.Rand satisfies it; tests
// substitute a fixed source.
type Source interface {
	Float64() float64
}

// Financials is the computed outcome of one dispatch. Monetary fields are
// rounded to two decimal places, DistanceNM to one.
type Financials struct {
	Revenue    float64 `json:"revenue"`
	Costs      float64 `json:"costs"`
	Profit     float64 `json:"profit"`
	DistanceNM float64 `json:"distance_nm"`
}

// Calculator derives per-flight financials from a dispatch, its linked
// records and the active difficulty tier. It is pure over its inputs apart
// from the jitter draw; callers post the resulting ledger mutations.
type Calculator struct {
	Rand Source
}

// Compute implements the dispatch financial computation. crewLogs must be
// ordered most-recently-created first; the first with a numeric fuel_used
// wins. A nil Rand source means zero jitter.
func (c *Calculator) Compute(dispatch *models.Dispatch, manifests []models.CargoManifest, crewLogs []models.CrewLog, difficulty string) Financials {
	if dispatch == nil {
		return Financials{}
	}
	params := Difficulty(difficulty)

	baseRevenue := BaseFlightRevenue * params.RevenueMultiplier

	payload := payloadWeight(dispatch, manifests)
	payloadRevenue := payload * RevenuePerLB

	fuel := fuelQuantity(dispatch, crewLogs)
	fuelCost := fuel * FuelCostPerUnit

	distance := DistanceNM(dispatch.Departure, dispatch.Destination)
	distanceRevenue := distance * RevenuePerNM

	var penalty float64
	if missedDestination(dispatch, crewLogs) {
		penalty = params.PenaltyFraction * (payloadRevenue + distanceRevenue)
	}

	jitter := 0.0
	if c != nil && c.Rand != nil {
		jitter = (c.Rand.Float64()*2 - 1) * params.JitterVariance
	}

	revenue := round2((baseRevenue+payloadRevenue+distanceRevenue)*(1+jitter) - penalty)
	costs := round2(fuelCost + MaintenanceFlat)

	return Financials{
		Revenue:    revenue,
		Costs:      costs,
		Profit:     round2(revenue - costs),
		DistanceNM: distance,
	}
}

// payloadWeight prefers the sum of numeric manifest weights; with no linked
// manifests it falls back to the stored aggregate, then the planned payload.
func payloadWeight(dispatch *models.Dispatch, manifests []models.CargoManifest) float64 {
	if len(manifests) > 0 {
		var sum float64
		for _, m := range manifests {
			if w, ok := ParseNumeric(m.TotalWeight); ok {
				sum += w
			}
		}
		return sum
	}
	if dispatch.ActualCargoWeight != nil {
		if w, ok := ParseNumeric(*dispatch.ActualCargoWeight); ok {
			return w
		}
	}
	if w, ok := ParseNumeric(dispatch.PayloadPlanned); ok {
		return w
	}
	return 0
}

func fuelQuantity(dispatch *models.Dispatch, crewLogs []models.CrewLog) float64 {
	for _, log := range crewLogs {
		if f, ok := ParseNumeric(log.FuelUsed); ok {
			return f
		}
	}
	if f, ok := ParseNumeric(dispatch.FuelPlanned); ok {
		return f
	}
	return 0
}

// missedDestination is true when crew logs exist for the dispatch but none
// reached the planned destination.
func missedDestination(dispatch *models.Dispatch, crewLogs []models.CrewLog) bool {
	if len(crewLogs) == 0 {
		return false
	}
	want := strings.ToLower(strings.TrimSpace(dispatch.Destination))
	for _, log := range crewLogs {
		if strings.ToLower(strings.TrimSpace(log.Destination)) == want {
			return false
		}
	}
	return true
}

// ParseNumeric parses a loose-form numeric field. Non-numeric or empty
// values are reported absent rather than erroring.
func ParseNumeric(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, false
	}
	return val, true
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

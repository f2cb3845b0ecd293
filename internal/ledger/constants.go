package ledger

// Revenue and cost constants for the dispatch financial computation.
// All monetary values are in company-account currency units, weights in
// pounds, fuel in gallons, distances in nautical miles.
const (
	BaseFlightRevenue = 250.0
	RevenuePerLB      = 0.35
	FuelCostPerUnit   = 5.25
	MaintenanceFlat   = 110.0
	RevenuePerNM      = 1.15

	EarthRadiusNM = 3440.065

	// ReconcileThreshold is the smallest fuel cost variance worth posting a
	// reconciliation transaction for.
	ReconcileThreshold = 0.01
)

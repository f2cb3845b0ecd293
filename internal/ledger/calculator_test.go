package ledger

import (
	"math"
	"testing"

	"palmroute/internal/models"
)

// fixedSource always returns the same draw.
type fixedSource struct {
	v float64
}

func (s fixedSource) Float64() float64 {
	return s.v
}

func strPtr(v string) *string { return &v }

func baselineDispatch() *models.Dispatch {
	return &models.Dispatch{
		ID:             1,
		FlightID:       "PRA101",
		Departure:      "KPOC",
		Destination:    "KCRQ",
		PayloadPlanned: "650",
		FuelPlanned:    "28",
	}
}

func TestComputeBaseline(t *testing.T) {
	calc := &Calculator{}
	dispatch := baselineDispatch()
	manifests := []models.CargoManifest{
		{TotalWeight: "400", DispatchID: &dispatch.ID},
		{TotalWeight: "250", DispatchID: &dispatch.ID},
	}
	logs := []models.CrewLog{
		{Destination: "KCRQ", FuelUsed: "28", DispatchID: &dispatch.ID},
	}

	fin := calc.Compute(dispatch, manifests, logs, "Normal")

	if fin.DistanceNM != 63.0 {
		t.Fatalf("distance = %v, want 63.0", fin.DistanceNM)
	}
	if fin.Revenue != 549.95 {
		t.Fatalf("revenue = %v, want 549.95", fin.Revenue)
	}
	if fin.Costs != 257.00 {
		t.Fatalf("costs = %v, want 257.00", fin.Costs)
	}
	if fin.Profit != 292.95 {
		t.Fatalf("profit = %v, want 292.95", fin.Profit)
	}
}

func TestComputeMissedDestinationPenalty(t *testing.T) {
	calc := &Calculator{}
	dispatch := baselineDispatch()
	manifests := []models.CargoManifest{{TotalWeight: "650"}}
	logs := []models.CrewLog{
		{Destination: "KSAN", FuelUsed: "28"},
	}

	fin := calc.Compute(dispatch, manifests, logs, "Normal")

	if fin.Revenue != 474.96 {
		t.Fatalf("penalized revenue = %v, want 474.96", fin.Revenue)
	}
	if fin.Profit != 217.96 {
		t.Fatalf("penalized profit = %v, want 217.96", fin.Profit)
	}
}

func TestComputeDestinationMatchIsCaseInsensitive(t *testing.T) {
	calc := &Calculator{}
	dispatch := baselineDispatch()
	logs := []models.CrewLog{
		{Destination: " kcrq ", FuelUsed: "28"},
	}

	fin := calc.Compute(dispatch, nil, logs, "Normal")
	if fin.Revenue != 549.95 {
		t.Fatalf("revenue = %v, want 549.95 (no penalty)", fin.Revenue)
	}
}

func TestComputeNoLogsNoPenalty(t *testing.T) {
	calc := &Calculator{}
	fin := calc.Compute(baselineDispatch(), nil, nil, "Normal")
	if fin.Revenue != 549.95 {
		t.Fatalf("revenue = %v, want 549.95", fin.Revenue)
	}
}

func TestComputeJitterFixedSource(t *testing.T) {
	// 0.75 maps to jitter +0.025 at Normal variance 0.05.
	calc := &Calculator{Rand: fixedSource{v: 0.75}}
	fin := calc.Compute(baselineDispatch(), nil, nil, "Normal")
	if fin.Revenue != 563.70 {
		t.Fatalf("jittered revenue = %v, want 563.70", fin.Revenue)
	}
}

func TestComputeJitterBounds(t *testing.T) {
	params := Difficulty("Normal")
	base := (&Calculator{}).Compute(baselineDispatch(), nil, nil, "Normal").Revenue

	for _, draw := range []float64{0, 0.25, 0.5, 0.999999} {
		calc := &Calculator{Rand: fixedSource{v: draw}}
		got := calc.Compute(baselineDispatch(), nil, nil, "Normal").Revenue
		lo := base * (1 - params.JitterVariance)
		hi := base * (1 + params.JitterVariance)
		if got < lo-0.01 || got > hi+0.01 {
			t.Fatalf("draw %v: revenue %v outside [%v, %v]", draw, got, lo, hi)
		}
	}
}

func TestComputeEasyTierMultiplier(t *testing.T) {
	calc := &Calculator{}
	fin := calc.Compute(baselineDispatch(), nil, nil, "Easy")
	if fin.Revenue != 587.45 {
		t.Fatalf("easy revenue = %v, want 587.45", fin.Revenue)
	}
}

func TestComputeUnknownDifficultyFallsBack(t *testing.T) {
	calc := &Calculator{}
	got := calc.Compute(baselineDispatch(), nil, nil, "nightmare")
	want := calc.Compute(baselineDispatch(), nil, nil, "Normal")
	if got != want {
		t.Fatalf("unknown tier = %+v, want Normal result %+v", got, want)
	}
}

func TestPayloadFallbackChain(t *testing.T) {
	calc := &Calculator{}

	// Linked manifests win even over the stored aggregate.
	dispatch := baselineDispatch()
	dispatch.ActualCargoWeight = strPtr("999")
	fin := calc.Compute(dispatch, []models.CargoManifest{{TotalWeight: "650"}}, nil, "Normal")
	if fin.Revenue != 549.95 {
		t.Fatalf("manifest payload revenue = %v, want 549.95", fin.Revenue)
	}

	// No manifests: stored aggregate.
	dispatch = baselineDispatch()
	dispatch.ActualCargoWeight = strPtr("650")
	dispatch.PayloadPlanned = "100"
	fin = calc.Compute(dispatch, nil, nil, "Normal")
	if fin.Revenue != 549.95 {
		t.Fatalf("aggregate payload revenue = %v, want 549.95", fin.Revenue)
	}

	// No aggregate: planned payload.
	dispatch = baselineDispatch()
	fin = calc.Compute(dispatch, nil, nil, "Normal")
	if fin.Revenue != 549.95 {
		t.Fatalf("planned payload revenue = %v, want 549.95", fin.Revenue)
	}

	// Nothing numeric anywhere: zero payload.
	dispatch = baselineDispatch()
	dispatch.PayloadPlanned = "tbd"
	fin = calc.Compute(dispatch, nil, nil, "Normal")
	want := round2(250 + 63.0*1.15)
	if fin.Revenue != want {
		t.Fatalf("zero payload revenue = %v, want %v", fin.Revenue, want)
	}
}

func TestFuelFallbackChain(t *testing.T) {
	calc := &Calculator{}
	dispatch := baselineDispatch()

	// Newest numeric log wins; non-numeric entries are skipped.
	logs := []models.CrewLog{
		{Destination: "KCRQ", FuelUsed: "full tanks"},
		{Destination: "KCRQ", FuelUsed: "30"},
		{Destination: "KCRQ", FuelUsed: "25"},
	}
	fin := calc.Compute(dispatch, nil, logs, "Normal")
	if fin.Costs != round2(30*FuelCostPerUnit+MaintenanceFlat) {
		t.Fatalf("costs = %v, want fuel 30", fin.Costs)
	}

	// No usable log fuel: planned fuel.
	logs = []models.CrewLog{{Destination: "KCRQ", FuelUsed: "n/a"}}
	fin = calc.Compute(dispatch, nil, logs, "Normal")
	if fin.Costs != 257.00 {
		t.Fatalf("costs = %v, want planned fuel 28", fin.Costs)
	}

	// Nothing numeric: maintenance only.
	dispatch.FuelPlanned = "unknown"
	fin = calc.Compute(dispatch, nil, logs, "Normal")
	if fin.Costs != MaintenanceFlat {
		t.Fatalf("costs = %v, want %v", fin.Costs, MaintenanceFlat)
	}
}

func TestComputeUnknownAirportsZeroDistance(t *testing.T) {
	calc := &Calculator{}
	dispatch := baselineDispatch()
	dispatch.Departure = "KJFK"
	fin := calc.Compute(dispatch, nil, nil, "Normal")
	if fin.DistanceNM != 0 {
		t.Fatalf("distance = %v, want 0 for unknown departure", fin.DistanceNM)
	}
	if fin.Revenue != round2(250+650*0.35) {
		t.Fatalf("revenue = %v, want no distance component", fin.Revenue)
	}
}

func TestComputeNilDispatch(t *testing.T) {
	calc := &Calculator{}
	if fin := calc.Compute(nil, nil, nil, "Normal"); fin != (Financials{}) {
		t.Fatalf("nil dispatch = %+v, want zero value", fin)
	}
}

func TestProfitIdentity(t *testing.T) {
	calc := &Calculator{Rand: fixedSource{v: 0.123}}
	for _, tier := range DifficultyNames() {
		fin := calc.Compute(baselineDispatch(), nil, nil, tier)
		if diff := math.Abs(fin.Profit - round2(fin.Revenue-fin.Costs)); diff > 1e-9 {
			t.Fatalf("%s: profit %v != revenue-costs %v", tier, fin.Profit, fin.Revenue-fin.Costs)
		}
	}
}

func TestParseNumeric(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"650", 650, true},
		{" 28.5 ", 28.5, true},
		{"-3.2", -3.2, true},
		{"", 0, false},
		{"tbd", 0, false},
		{"12 gal", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseNumeric(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseNumeric(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

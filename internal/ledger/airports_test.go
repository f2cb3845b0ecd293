package ledger

import "testing"

func TestDistanceNM(t *testing.T) {
	if got := DistanceNM("KPOC", "KCRQ"); got != 63.0 {
		t.Fatalf("KPOC-KCRQ = %v, want 63.0", got)
	}
	if got := DistanceNM("KSBA", "KSAN"); got != 167.0 {
		t.Fatalf("KSBA-KSAN = %v, want 167.0", got)
	}
}

func TestDistanceNMSymmetric(t *testing.T) {
	there := DistanceNM("KPOC", "KPSP")
	back := DistanceNM("KPSP", "KPOC")
	if there != back {
		t.Fatalf("asymmetric distance: %v vs %v", there, back)
	}
	if there == 0 {
		t.Fatal("expected nonzero distance for known pair")
	}
}

func TestDistanceNMSameAirport(t *testing.T) {
	if got := DistanceNM("KLAX", "KLAX"); got != 0 {
		t.Fatalf("KLAX-KLAX = %v, want 0", got)
	}
}

func TestDistanceNMUnknownCode(t *testing.T) {
	if got := DistanceNM("KJFK", "KLAX"); got != 0 {
		t.Fatalf("unknown departure = %v, want 0", got)
	}
	if got := DistanceNM("KLAX", ""); got != 0 {
		t.Fatalf("empty arrival = %v, want 0", got)
	}
}

func TestDistanceNMNormalizesCode(t *testing.T) {
	if got := DistanceNM(" kpoc ", "kcrq"); got != 63.0 {
		t.Fatalf("normalized codes = %v, want 63.0", got)
	}
}

func TestKnownAirport(t *testing.T) {
	if !KnownAirport("KPOC") {
		t.Fatal("KPOC should be known")
	}
	if !KnownAirport("kcrq") {
		t.Fatal("lowercase kcrq should be known")
	}
	if KnownAirport("KJFK") {
		t.Fatal("KJFK should not be known")
	}
}

package model

import (
	"math"
	"testing"
)

func TestRoundHalfToEven(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{2.5, 0, 2},
		{3.5, 0, 4},
		{0.125, 2, 0.12},
		{0.375, 2, 0.38},
		{12.34567, 3, 12.346},
	}
	for _, tt := range tests {
		got := Round(tt.v, tt.places)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Round(%g, %d) = %g, want %g", tt.v, tt.places, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(42); got != "42" {
		t.Errorf("expected 42, got %s", got)
	}
	if got := FormatNumber(89.5); got != "89.5" {
		t.Errorf("expected 89.5, got %s", got)
	}
}

func TestSupportDistance(t *testing.T) {
	if SupportDistance("KL 110.400") != KLSupportDistance {
		t.Error("expected KL distance for KL trays")
	}
	if SupportDistance("WSL 100.400") != WSLSupportDistance {
		t.Error("expected WSL distance for other trays")
	}
}

func TestCalculateSupportsWeightKL(t *testing.T) {
	tray := Tray{Type: "KL 110.400", Length: 10000}
	s := CalculateSupportsWeight(tray)

	// 10 m / 2 m + 1 = 6 supports
	if s.Count != 6 {
		t.Fatalf("expected 6 supports, got %d", s.Count)
	}
	if math.Abs(s.TotalWeight-32.496) > 1e-9 {
		t.Errorf("expected total 32.496, got %f", s.TotalWeight)
	}
	if math.Abs(s.WeightPerMeter-3.25) > 1e-9 {
		t.Errorf("expected 3.25 kg/m, got %f", s.WeightPerMeter)
	}
	if s.TotalWeightText != "6 * 5.416 = 32.496 [kg]" {
		t.Errorf("unexpected total text %q", s.TotalWeightText)
	}
}

func TestCalculateSupportsWeightWSLRoundsUp(t *testing.T) {
	tray := Tray{Type: "WSL 100.400", Length: 12000}
	s := CalculateSupportsWeight(tray)
	// 12 / 5.5 + 1 = 3.18 -> 4
	if s.Count != 4 {
		t.Errorf("expected 4 supports, got %d", s.Count)
	}
}

func TestCalculateSupportsWeightZeroLength(t *testing.T) {
	s := CalculateSupportsWeight(Tray{Type: "KL", Length: 0})
	if s.Count != 1 {
		t.Errorf("expected 1 support, got %d", s.Count)
	}
	if s.WeightPerMeter != 0 {
		t.Errorf("expected no per-meter load without length, got %f", s.WeightPerMeter)
	}
}

func TestCalculateTrayOwnWeight(t *testing.T) {
	tray := Tray{Type: "KL 110.400", Length: 10000, Weight: 6.1}
	own := CalculateTrayOwnWeight(tray, CalculateSupportsWeight(tray))

	if math.Abs(own.WeightPerMeter-9.35) > 1e-9 {
		t.Errorf("expected 9.35 kg/m, got %f", own.WeightPerMeter)
	}
	if math.Abs(own.WeightLoad-93.5) > 1e-9 {
		t.Errorf("expected 93.5 kg, got %f", own.WeightLoad)
	}
	if own.WeightPerMeterText != "6.1 + 3.25 = 9.35 [kg/m]" {
		t.Errorf("unexpected text %q", own.WeightPerMeterText)
	}
}

func TestCalculateCablesWeightAddsGroundingCable(t *testing.T) {
	a := NewCableType("A", "Power", 26, 1.1)
	b := NewCableType("B", "Power", 13.5, 0.27)
	cables := []Cable{NewCable("1", &a, "", "", ""), NewCable("2", &b, "", "", "")}

	tray := Tray{Purpose: TrayPurposeTypeB, Length: 2000}
	cw := CalculateCablesWeight(tray, cables)

	if !cw.HasCables {
		t.Fatal("expected HasCables")
	}
	if math.Abs(cw.WeightPerMeter-2.42) > 1e-9 {
		t.Errorf("expected 2.42 kg/m, got %f", cw.WeightPerMeter)
	}
	if cw.WeightPerMeterText != "1.1 + 0.27 + 1.05 = 2.42 [kg/m]" {
		t.Errorf("unexpected text %q", cw.WeightPerMeterText)
	}
	if math.Abs(cw.WeightLoad-4.84) > 1e-9 {
		t.Errorf("expected 4.84 kg, got %f", cw.WeightLoad)
	}

	// Type A trays carry no grounding cable.
	tray.Purpose = TrayPurposeTypeA
	cw = CalculateCablesWeight(tray, cables)
	if math.Abs(cw.WeightPerMeter-1.37) > 1e-9 {
		t.Errorf("expected 1.37 kg/m on type A, got %f", cw.WeightPerMeter)
	}
}

func TestCalculateWeightsWithoutCables(t *testing.T) {
	tray := Tray{Type: "KL 110.400", Purpose: TrayPurposeTypeB, Length: 10000, Weight: 6.1}
	r := CalculateWeights(tray, nil)

	if r.Cables.HasCables {
		t.Error("expected no cables")
	}
	if r.Cables.WeightPerMeterText != NoCablesText {
		t.Errorf("expected %q, got %q", NoCablesText, r.Cables.WeightPerMeterText)
	}
	if r.Total.WeightPerMeter != r.Own.WeightPerMeter || r.Total.WeightLoad != r.Own.WeightLoad {
		t.Error("total must equal own weight without cables")
	}
	if r.Total.WeightLoadText != r.Own.WeightLoadText {
		t.Error("total text must equal own text without cables")
	}
}

func TestCalculateWeightsTotal(t *testing.T) {
	ct := NewCableType("A", "Power", 26, 1.1)
	tray := Tray{Type: "KL 110.400", Purpose: TrayPurposeTypeA, Length: 10000, Weight: 6.1}
	r := CalculateWeights(tray, []Cable{NewCable("1", &ct, "", "", "")})

	// own 9.35 + cables 1.1
	if math.Abs(r.Total.WeightPerMeter-10.45) > 1e-9 {
		t.Errorf("expected 10.45 kg/m, got %f", r.Total.WeightPerMeter)
	}
	// own 93.5 + cables 11
	if math.Abs(r.Total.WeightLoad-104.5) > 1e-9 {
		t.Errorf("expected 104.5 kg, got %f", r.Total.WeightLoad)
	}
}

package calculator

import (
	"math"
	"testing"

	"NepseSentinel/internal/model"

	"github.com/shopspring/decimal"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRSI_InsufficientHistory(t *testing.T) {
	closes := make([]float64, 14)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	if _, ok := RSI(closes, 14); ok {
		t.Error("expected RSI undefined for 14 closes with period 14")
	}
	if _, ok := RSI(nil, 14); ok {
		t.Error("expected RSI undefined for empty history")
	}
	if _, ok := RSI(closes, 0); ok {
		t.Error("expected RSI undefined for non-positive period")
	}
}

func TestRSI_AllGainsIsHundred(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)*2
	}
	rsi, ok := RSI(closes, 14)
	if !ok {
		t.Fatal("expected RSI defined for 20 closes")
	}
	if rsi != 100.0 {
		t.Errorf("expected RSI 100 when there are no losses, got %.4f", rsi)
	}
}

func TestRSI_KnownSeries(t *testing.T) {
	// period 2, deltas +1, -1, +2: seed avgGain=0.5 avgLoss=0.5,
	// then smoothing gives avgGain=1.25 avgLoss=0.25, RSI=83.33...
	closes := []float64{10, 11, 10, 12}
	rsi, ok := RSI(closes, 2)
	if !ok {
		t.Fatal("expected RSI defined")
	}
	want := 100.0 - 100.0/6.0
	if !almostEqual(rsi, want) {
		t.Errorf("expected RSI %.10f, got %.10f", want, rsi)
	}
}

func TestRSI_Bounds(t *testing.T) {
	closes := []float64{50, 52, 49, 53, 48, 55, 47, 56, 46, 57, 45, 58, 44, 59, 43, 60, 42}
	rsi, ok := RSI(closes, 14)
	if !ok {
		t.Fatal("expected RSI defined")
	}
	if rsi < 0 || rsi > 100 {
		t.Errorf("RSI out of bounds: %.4f", rsi)
	}
}

func TestMovingAverage_Windows(t *testing.T) {
	tests := []struct {
		closes []float64
		window int
		want   float64
	}{
		{nil, 10, 0},
		{[]float64{100}, 10, 100},
		{[]float64{95, 98}, 10, 96.5},
		{[]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, 10, 7.5},
		{[]float64{10, 20, 30}, 0, 0},
	}
	for _, tt := range tests {
		got := MovingAverage(tt.closes, tt.window)
		if !almostEqual(got, tt.want) {
			t.Errorf("MovingAverage(%v, %d): expected %.4f, got %.4f", tt.closes, tt.window, tt.want, got)
		}
	}
}

func TestVolatility_Degenerate(t *testing.T) {
	if got := Volatility(nil, 30); got != 0 {
		t.Errorf("expected 0 for empty history, got %.4f", got)
	}
	if got := Volatility([]float64{100}, 30); got != 0 {
		t.Errorf("expected 0 for single close, got %.4f", got)
	}
	// two closes produce one return, whose deviation from its own mean is 0
	if got := Volatility([]float64{95, 98}, 30); got != 0 {
		t.Errorf("expected 0 for a single return, got %.4f", got)
	}
}

func TestVolatility_ScaleInvariant(t *testing.T) {
	closes := []float64{100, 104, 98, 103, 97, 106, 95, 108}
	scaled := make([]float64, len(closes))
	for i, c := range closes {
		scaled[i] = c * 2
	}
	a := Volatility(closes, 30)
	b := Volatility(scaled, 30)
	if a <= 0 {
		t.Fatalf("expected positive volatility, got %.4f", a)
	}
	if !almostEqual(a, b) {
		t.Errorf("volatility should be scale invariant: %.6f vs %.6f", a, b)
	}
}

func TestVolatility_UsesLastWindow(t *testing.T) {
	flat := []float64{1000, 1000, 1000, 1000}
	swings := append([]float64{10, 90, 10, 90}, flat...)
	if got := Volatility(swings, 4); got != 0 {
		t.Errorf("expected 0 when the last window is flat, got %.4f", got)
	}
}

func TestVolumeSpike_Boundaries(t *testing.T) {
	tests := []struct {
		volumes []int64
		want    bool
	}{
		{nil, false},
		{[]int64{1200}, false},
		{[]int64{1000, 1200}, false},  // 1200 <= 1.5*1000
		{[]int64{1000, 1500}, false},  // strictly greater required
		{[]int64{1000, 1501}, true},
		{[]int64{1000, 1000, 1000, 3000}, true},
	}
	for _, tt := range tests {
		if got := VolumeSpike(tt.volumes, 10); got != tt.want {
			t.Errorf("VolumeSpike(%v): expected %v, got %v", tt.volumes, tt.want, got)
		}
	}
}

func TestVolumeSpike_MonotonicInLatest(t *testing.T) {
	trailing := []int64{1000, 1100, 900, 1000, 1000}
	spiked := false
	for latest := int64(500); latest <= 3000; latest += 100 {
		got := VolumeSpike(append(append([]int64{}, trailing...), latest), 10)
		if spiked && !got {
			t.Fatalf("spike flag regressed at latest volume %d", latest)
		}
		if got {
			spiked = true
		}
	}
	if !spiked {
		t.Error("expected spike to trigger for large latest volume")
	}
}

func TestVolumeSpike_ExcludesLatestFromAverage(t *testing.T) {
	// Trailing average is 1000; including the 10000 latest would mask the spike.
	volumes := []int64{1000, 1000, 1000, 10000}
	if !VolumeSpike(volumes, 10) {
		t.Error("expected spike when latest greatly exceeds trailing average")
	}
}

func TestNearHigh_Thresholds(t *testing.T) {
	closes := []float64{80, 100, 90}
	tests := []struct {
		current float64
		want    bool
	}{
		{95, true}, // exactly 0.95 * 100
		{96, true},
		{94.99, false},
	}
	for _, tt := range tests {
		if got := NearHigh(closes, tt.current); got != tt.want {
			t.Errorf("NearHigh(current=%.2f): expected %v, got %v", tt.current, tt.want, got)
		}
	}
	if NearHigh(nil, 100) {
		t.Error("expected false for empty history")
	}
}

func TestCompute_EmptyHistory(t *testing.T) {
	ind := Compute("NABIL", nil, decimal.NewFromFloat(500))
	if ind.RSIDefined {
		t.Error("expected undefined RSI for empty history")
	}
	if ind.MAValue != 0 {
		t.Errorf("expected MA 0, got %.4f", ind.MAValue)
	}
	if !ind.AboveMA {
		t.Error("expected positive price above zero MA")
	}
	if ind.VolatilityPct != 0 || ind.VolumeSpike || ind.NearHigh {
		t.Errorf("expected degraded defaults, got %+v", ind)
	}
}

func TestCompute_ShortHistory(t *testing.T) {
	hist := model.SymbolHistory{
		{Symbol: "MOCK1", Close: decimal.NewFromFloat(95), Volume: 1000, Seq: 0},
		{Symbol: "MOCK1", Close: decimal.NewFromFloat(98), Volume: 1200, Seq: 1},
	}
	ind := Compute("MOCK1", hist, decimal.NewFromFloat(100))
	if ind.RSIDefined {
		t.Error("expected undefined RSI for 2-point history")
	}
	if ind.EffectiveRSI() != 50 {
		t.Errorf("expected effective RSI 50, got %.2f", ind.EffectiveRSI())
	}
	if !almostEqual(ind.MAValue, 96.5) {
		t.Errorf("expected MA 96.5, got %.4f", ind.MAValue)
	}
	if !ind.AboveMA {
		t.Error("expected 100 above MA 96.5")
	}
	if ind.VolatilityPct != 0 {
		t.Errorf("expected 0 volatility for a single return, got %.4f", ind.VolatilityPct)
	}
	if ind.VolumeSpike {
		t.Error("expected no spike: 1200 <= 1.5*1000")
	}
	if !ind.NearHigh {
		t.Error("expected 100 within 5 percent of high 98")
	}
}

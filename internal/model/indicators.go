package model

import "github.com/shopspring/decimal"

// IndicatorSet holds all computed technical indicators for one symbol in
// one poll cycle. It is rebuilt wholesale each cycle and never mutated.
type IndicatorSet struct {
	Symbol        string
	RSI           float64
	RSIDefined    bool // false when history is shorter than period+1
	MAValue       float64
	AboveMA       bool
	VolatilityPct float64
	VolumeSpike   bool
	NearHigh      bool
	Current       decimal.Decimal
}

// EffectiveRSI substitutes the neutral midpoint when the history was too
// short to define RSI. Classification and alerts both use this value.
func (s IndicatorSet) EffectiveRSI() float64 {
	if !s.RSIDefined {
		return 50
	}
	return s.RSI
}

// TrendLabel renders the moving-average trend as shown in alerts.
func (s IndicatorSet) TrendLabel() string {
	if s.AboveMA {
		return "Above MA"
	}
	return "Below MA"
}

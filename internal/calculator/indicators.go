package calculator

import (
	"NepseSentinel/internal/model"

	"github.com/shopspring/decimal"
)

// Indicator windows tuned for NEPSE daily data.
const (
	rsiPeriod        = 14
	maWindow         = 10
	volatilityWindow = 30
	volumeWindow     = 10
	spikeRatio       = 1.5
	nearHighRatio    = 0.95
)

// Compute derives the full indicator set for one symbol from its history
// and latest quote. Insufficient history degrades each indicator to its
// defined default instead of erroring.
func Compute(symbol string, hist model.SymbolHistory, current decimal.Decimal) model.IndicatorSet {
	closes := hist.Closes()
	volumes := hist.Volumes()
	cur, _ := current.Float64()

	rsi, defined := RSI(closes, rsiPeriod)
	ma := MovingAverage(closes, maWindow)

	return model.IndicatorSet{
		Symbol:        symbol,
		RSI:           rsi,
		RSIDefined:    defined,
		MAValue:       ma,
		AboveMA:       cur > ma,
		VolatilityPct: Volatility(closes, volatilityWindow),
		VolumeSpike:   VolumeSpike(volumes, volumeWindow),
		NearHigh:      NearHigh(closes, cur),
		Current:       current,
	}
}

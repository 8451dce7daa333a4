package model

import "github.com/shopspring/decimal"

// PricePoint is a single historical record for one symbol. Points carry no
// timestamps; their position in the series is the only ordering guarantee.
type PricePoint struct {
	Symbol string
	Close  decimal.Decimal
	Volume int64
	Seq    int
}

// SymbolHistory holds chronologically ordered price points, oldest first.
type SymbolHistory []PricePoint

// Closes extracts the closing prices as floats for indicator math.
func (h SymbolHistory) Closes() []float64 {
	closes := make([]float64, len(h))
	for i, p := range h {
		closes[i], _ = p.Close.Float64()
	}
	return closes
}

// Volumes extracts the traded quantities.
func (h SymbolHistory) Volumes() []int64 {
	volumes := make([]int64, len(h))
	for i, p := range h {
		volumes[i] = p.Volume
	}
	return volumes
}

// Quote is one row of a market snapshot.
type Quote struct {
	Symbol string
	Close  decimal.Decimal
}

// Snapshot is the result of one market fetch. Synthetic marks data served
// by the fallback source rather than the live feed.
type Snapshot struct {
	Source    string
	Quotes    []Quote
	Synthetic bool
}

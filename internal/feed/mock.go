package feed

import (
	"context"

	"NepseSentinel/internal/model"

	"github.com/shopspring/decimal"
)

// MockSource serves clearly labeled synthetic data. It is the configured
// fallback when the live feed stays down, and a controllable stand-in for
// tests: leave Quotes or History nil to get the built-in dataset.
type MockSource struct {
	Quotes  []model.Quote
	History map[string]model.SymbolHistory
}

func (m *MockSource) Name() string { return "mock" }

// FetchSnapshot returns the synthetic snapshot. It never fails.
func (m *MockSource) FetchSnapshot(_ context.Context) (model.Snapshot, error) {
	quotes := m.Quotes
	if quotes == nil {
		quotes = []model.Quote{
			{Symbol: "MOCK1", Close: decimal.NewFromFloat(100.0)},
			{Symbol: "MOCK2", Close: decimal.NewFromFloat(200.0)},
		}
	}
	return model.Snapshot{Source: m.Name(), Quotes: quotes, Synthetic: true}, nil
}

// FetchHistory returns the symbol's synthetic history, empty for symbols
// outside the dataset.
func (m *MockSource) FetchHistory(_ context.Context, symbol string) (model.SymbolHistory, error) {
	if m.History != nil {
		return m.History[symbol], nil
	}
	switch symbol {
	case "MOCK1":
		return mockHistory(symbol, []float64{95.0, 98.0}, []int64{1000, 1200}), nil
	case "MOCK2":
		return mockHistory(symbol, []float64{190.0, 195.0}, []int64{800, 900}), nil
	default:
		return nil, nil
	}
}

func mockHistory(symbol string, closes []float64, volumes []int64) model.SymbolHistory {
	hist := make(model.SymbolHistory, len(closes))
	for i := range closes {
		hist[i] = model.PricePoint{
			Symbol: symbol,
			Close:  decimal.NewFromFloat(closes[i]),
			Volume: volumes[i],
			Seq:    i,
		}
	}
	return hist
}

package market

import "sort"

// Quote is one symbol's latest state as served by /api/stocks.
type Quote struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// Direction is the display class for the quote's daily move.
// A flat day still reads as positive.
func (q Quote) Direction() string {
	if q.Change < 0 {
		return "negative"
	}
	return "positive"
}

// Snapshot maps symbol to quote. A snapshot always replaces the previous one
// wholesale on the render side.
type Snapshot map[string]Quote

// Symbols returns the snapshot's symbols in sorted order for stable display.
func (s Snapshot) Symbols() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Candle is one daily bar from the EOD history feed.
type Candle struct {
	Date     string  `json:"date"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	AdjClose float64 `json:"adjusted_close"`
	Volume   int64   `json:"volume"`
}

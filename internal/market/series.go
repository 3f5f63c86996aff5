package market

import (
	"sort"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

// SortDedupe returns candles ordered by time with one entry per timestamp.
// When timestamps collide the later element in the input wins.
func SortDedupe(candles []models.Candle) []models.Candle {
	if len(candles) == 0 {
		return []models.Candle{}
	}
	byTime := make(map[int64]models.Candle, len(candles))
	for _, c := range candles {
		byTime[c.Time] = c
	}
	out := make([]models.Candle, 0, len(byTime))
	for _, c := range byTime {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// FilterRegularHours drops candles outside regular trading hours.
func FilterRegularHours(candles []models.Candle) []models.Candle {
	out := make([]models.Candle, 0, len(candles))
	for _, c := range candles {
		if IsRegularHours(c.Time) {
			out = append(out, c)
		}
	}
	return out
}

// Normalize applies the session rules for symbol/interval to an already
// sorted, deduplicated series.
//
// Intraday series of non-24h assets are filtered to regular hours unless
// includePrePost is set, and then wick-clipped. Everything else passes
// through untouched.
func Normalize(symbol, interval string, includePrePost bool, candles []models.Candle) []models.Candle {
	if !NeedsSessionRules(symbol, interval) {
		return candles
	}
	if !includePrePost {
		candles = FilterRegularHours(candles)
	}
	return ClipWicks(candles)
}

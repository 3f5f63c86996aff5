package market

import (
	"math"
	"sort"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

const (
	// MinCandlesForClipping is the series length below which clipping is skipped.
	MinCandlesForClipping = 10
	// WickBodyMultiple bounds a wick to this many median bodies past the body.
	WickBodyMultiple = 10.0
)

// ClipWicks bounds every candle's wicks to WickBodyMultiple times the median
// non-zero body of the series. Open and close are never changed. Series shorter
// than MinCandlesForClipping, or with no non-zero body, are returned as-is.
// The input slice is not modified.
func ClipWicks(candles []models.Candle) []models.Candle {
	if len(candles) < MinCandlesForClipping {
		return candles
	}
	median := MedianBody(candles)
	if median <= 0 {
		return candles
	}
	maxWick := WickBodyMultiple * median

	out := make([]models.Candle, len(candles))
	for i, c := range candles {
		top := math.Max(c.Open, c.Close)
		bottom := math.Min(c.Open, c.Close)
		c.High = math.Min(c.High, top+maxWick)
		c.Low = math.Max(c.Low, bottom-maxWick)
		out[i] = c
	}
	return out
}

// MedianBody returns the median of |close-open| over candles with a non-zero
// body, or 0 if there are none.
func MedianBody(candles []models.Candle) float64 {
	bodies := make([]float64, 0, len(candles))
	for _, c := range candles {
		if b := math.Abs(c.Close - c.Open); b > 0 {
			bodies = append(bodies, b)
		}
	}
	if len(bodies) == 0 {
		return 0
	}
	sort.Float64s(bodies)
	mid := len(bodies) / 2
	if len(bodies)%2 == 1 {
		return bodies[mid]
	}
	return (bodies[mid-1] + bodies[mid]) / 2
}

package market

import (
	"math"
	"math/rand"
	"testing"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

func flatSeries(n int, start int64) []models.Candle {
	out := make([]models.Candle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Candle{
			Time:  start + int64(i)*60,
			Open:  100,
			Close: 101,
			High:  101.5,
			Low:   99.5,
		})
	}
	return out
}

func TestClipWicks_ClampsOutlier(t *testing.T) {
	candles := flatSeries(11, 1_700_000_000)
	candles = append(candles, models.Candle{
		Time:  1_700_000_000 + 11*60,
		Open:  100,
		Close: 150,
		High:  230,
		Low:   95,
	})

	got := ClipWicks(candles)

	if m := MedianBody(candles); m != 1 {
		t.Fatalf("median body=%v, want 1", m)
	}
	last := got[len(got)-1]
	if last.High != 160 {
		t.Fatalf("outlier high=%v, want 160", last.High)
	}
	if last.Low != 95 {
		t.Fatalf("low within bound must be kept, got %v", last.Low)
	}
	if last.Open != 100 || last.Close != 150 {
		t.Fatalf("open/close must not change: %+v", last)
	}
	if candles[len(candles)-1].High != 230 {
		t.Fatalf("input slice was modified")
	}
	for i := 0; i < 11; i++ {
		if got[i] != candles[i] {
			t.Fatalf("candle %d changed: %+v -> %+v", i, candles[i], got[i])
		}
	}
}

func TestClipWicks_ShortSeriesUntouched(t *testing.T) {
	candles := flatSeries(9, 0)
	candles[4].High = 10_000
	got := ClipWicks(candles)
	if got[4].High != 10_000 {
		t.Fatalf("series under %d candles must not be clipped", MinCandlesForClipping)
	}
}

func TestClipWicks_NoBodiesUntouched(t *testing.T) {
	candles := make([]models.Candle, 12)
	for i := range candles {
		candles[i] = models.Candle{Time: int64(i), Open: 5, Close: 5, High: 50, Low: 1}
	}
	got := ClipWicks(candles)
	if got[0].High != 50 || got[0].Low != 1 {
		t.Fatalf("doji-only series must pass through, got %+v", got[0])
	}
}

func TestClipWicks_BoundHoldsForRandomSeries(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		n := MinCandlesForClipping + r.Intn(40)
		candles := make([]models.Candle, n)
		for i := range candles {
			o := 50 + r.Float64()*10
			c := o + (r.Float64()-0.5)*2
			candles[i] = models.Candle{
				Time:  int64(i),
				Open:  o,
				Close: c,
				High:  math.Max(o, c) + r.Float64()*100,
				Low:   math.Min(o, c) - r.Float64()*100,
			}
		}
		maxWick := WickBodyMultiple * MedianBody(candles)
		for i, c := range ClipWicks(candles) {
			top := math.Max(c.Open, c.Close)
			bottom := math.Min(c.Open, c.Close)
			if c.High-top > maxWick+1e-9 {
				t.Fatalf("round %d candle %d upper wick %v exceeds %v", round, i, c.High-top, maxWick)
			}
			if bottom-c.Low > maxWick+1e-9 {
				t.Fatalf("round %d candle %d lower wick %v exceeds %v", round, i, bottom-c.Low, maxWick)
			}
			if c.Open != candles[i].Open || c.Close != candles[i].Close {
				t.Fatalf("round %d candle %d open/close changed", round, i)
			}
		}
	}
}

func TestMedianBody_EvenCount(t *testing.T) {
	candles := []models.Candle{
		{Open: 1, Close: 2},
		{Open: 1, Close: 4},
		{Open: 1, Close: 1},
		{Open: 5, Close: 1},
		{Open: 1, Close: 6},
	}
	// bodies 1,3,4,5 (doji skipped)
	if got := MedianBody(candles); got != 3.5 {
		t.Fatalf("MedianBody=%v, want 3.5", got)
	}
}

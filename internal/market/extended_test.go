package market

import (
	"math"
	"testing"
	"time"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

func f64(v float64) *float64 { return &v }

func tradingDay(t *testing.T) *models.TradingPeriod {
	return &models.TradingPeriod{
		Pre:     models.Window{Start: ny(t, 2024, time.July, 10, 4, 0), End: ny(t, 2024, time.July, 10, 9, 30)},
		Regular: models.Window{Start: ny(t, 2024, time.July, 10, 9, 30), End: ny(t, 2024, time.July, 10, 16, 0)},
	}
}

func at(t *testing.T, hh, mm int) time.Time {
	return time.Unix(ny(t, 2024, time.July, 10, hh, mm), 0)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPercentChange(t *testing.T) {
	if got := PercentChange(5, 100); got != 5 {
		t.Fatalf("PercentChange(5,100)=%v", got)
	}
	if got := PercentChange(5, 0); got != 0 {
		t.Fatalf("zero base must give 0, got %v", got)
	}
	if got := PercentChange(5, -1); got != 0 {
		t.Fatalf("negative base must give 0, got %v", got)
	}
}

func TestDeriveExtended_PreFromMeta(t *testing.T) {
	meta := models.ChartMeta{RegularMarketPrice: 100, PreMarketPrice: f64(101.5), TradingPeriod: tradingDay(t)}

	ext := DeriveExtended(meta, nil, at(t, 8, 0))
	if ext == nil {
		t.Fatalf("expected pre-market data")
	}
	if ext.State != models.ExtPre || ext.Price != 101.5 || !near(ext.Change, 1.5) || !near(ext.ChangePercent, 1.5) {
		t.Fatalf("unexpected ext: %+v", ext)
	}
}

func TestDeriveExtended_PostFromMeta(t *testing.T) {
	meta := models.ChartMeta{RegularMarketPrice: 200, PostMarketPrice: f64(190), TradingPeriod: tradingDay(t)}

	ext := DeriveExtended(meta, nil, at(t, 17, 0))
	if ext == nil || ext.State != models.ExtPost {
		t.Fatalf("expected post data, got %+v", ext)
	}
	if !near(ext.Change, -10) || !near(ext.ChangePercent, -5) {
		t.Fatalf("unexpected ext: %+v", ext)
	}
}

func TestDeriveExtended_NoneDuringRegular(t *testing.T) {
	meta := models.ChartMeta{RegularMarketPrice: 100, PostMarketPrice: f64(99), TradingPeriod: tradingDay(t)}
	if ext := DeriveExtended(meta, sessionDay(t), at(t, 11, 0)); ext != nil {
		t.Fatalf("regular session must not carry ext data, got %+v", ext)
	}
}

func TestDeriveExtended_PostFromCandles(t *testing.T) {
	meta := models.ChartMeta{RegularMarketPrice: 101, TradingPeriod: tradingDay(t)}
	candles := []models.Candle{
		{Time: ny(t, 2024, time.July, 10, 15, 58), Close: 100},
		{Time: ny(t, 2024, time.July, 10, 15, 59), Close: 102},
		{Time: ny(t, 2024, time.July, 10, 16, 30), Close: 103},
		{Time: ny(t, 2024, time.July, 10, 17, 45), Close: 104.04},
	}

	ext := DeriveExtended(meta, candles, at(t, 18, 0))
	if ext == nil || ext.State != models.ExtPost {
		t.Fatalf("expected post data, got %+v", ext)
	}
	if ext.Price != 104.04 || !near(ext.Change, 2.04) || !near(ext.ChangePercent, 2) {
		t.Fatalf("unexpected ext: %+v", ext)
	}
}

func TestDeriveExtended_PostFromCandlesNeedsPostBar(t *testing.T) {
	meta := models.ChartMeta{RegularMarketPrice: 101, TradingPeriod: tradingDay(t)}
	candles := []models.Candle{
		{Time: ny(t, 2024, time.July, 10, 15, 58), Close: 100},
		{Time: ny(t, 2024, time.July, 10, 15, 59), Close: 102},
	}
	if ext := DeriveExtended(meta, candles, at(t, 16, 5)); ext != nil {
		t.Fatalf("no post-market bar yet, got %+v", ext)
	}
}

func TestDeriveExtended_PreFromCandles(t *testing.T) {
	meta := models.ChartMeta{RegularMarketPrice: 50, TradingPeriod: tradingDay(t)}
	candles := []models.Candle{
		{Time: ny(t, 2024, time.July, 9, 15, 59), Close: 50},
		{Time: ny(t, 2024, time.July, 10, 7, 0), Close: 51},
		{Time: ny(t, 2024, time.July, 10, 8, 15), Close: 49},
	}

	ext := DeriveExtended(meta, candles, at(t, 8, 30))
	if ext == nil || ext.State != models.ExtPre {
		t.Fatalf("expected pre data, got %+v", ext)
	}
	if ext.Price != 49 || !near(ext.Change, -1) || !near(ext.ChangePercent, -2) {
		t.Fatalf("unexpected ext: %+v", ext)
	}
}

func TestDeriveExtended_PreWithoutBars(t *testing.T) {
	meta := models.ChartMeta{RegularMarketPrice: 50, TradingPeriod: tradingDay(t)}
	candles := []models.Candle{{Time: ny(t, 2024, time.July, 9, 15, 59), Close: 50}}
	if ext := DeriveExtended(meta, candles, at(t, 5, 0)); ext != nil {
		t.Fatalf("yesterday's bar is not pre-market data, got %+v", ext)
	}
}

func TestBuildQuote(t *testing.T) {
	meta := models.ChartMeta{
		Symbol:             "AAPL",
		Name:               "Apple Inc.",
		RegularMarketPrice: 100,
		PreviousClose:      80,
		RegularVolume:      1234,
		PreMarketPrice:     f64(101.5),
		TradingPeriod:      tradingDay(t),
	}
	q := BuildQuote(meta, nil, at(t, 8, 0))
	if q.Symbol != "AAPL" || q.Price != 100 || q.Change != 20 || q.ChangePercent != 25 || q.Volume != 1234 {
		t.Fatalf("unexpected quote: %+v", q)
	}
	if q.MarketCap != nil {
		t.Fatalf("market cap is unknown from chart metadata, got %v", *q.MarketCap)
	}
	if !q.HasExtended() || *q.ExtMarketState != models.ExtPre || !near(*q.ExtChange, 1.5) {
		t.Fatalf("expected pre ext fields, got %+v", q)
	}

	q = BuildQuote(meta, nil, at(t, 12, 0))
	if q.HasExtended() {
		t.Fatalf("regular session quote must not carry ext fields")
	}
}

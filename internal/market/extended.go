package market

import (
	"time"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

// PercentChange returns change/base*100, or 0 when base <= 0.
func PercentChange(change, base float64) float64 {
	if base <= 0 {
		return 0
	}
	return change / base * 100
}

// Phase is where now sits relative to a trading period.
type Phase struct {
	InPre     bool
	InRegular bool
}

// PhaseAt classifies now against tp. A nil period is neither pre nor regular.
func PhaseAt(tp *models.TradingPeriod, now time.Time) Phase {
	if tp == nil {
		return Phase{}
	}
	n := now.Unix()
	return Phase{InPre: tp.Pre.Contains(n), InRegular: tp.Regular.Contains(n)}
}

// DeriveExtended picks the extended-hours price for a quote. First match wins:
//
//  1. pre-market window and a pre-market price in meta
//  2. outside the regular session and a post-market price in meta
//  3. outside the regular session: scan candles (chronological) for the price
//
// It returns nil when no extended price applies.
func DeriveExtended(meta models.ChartMeta, candles []models.Candle, now time.Time) *models.Extended {
	base := meta.RegularMarketPrice
	phase := PhaseAt(meta.TradingPeriod, now)

	switch {
	case phase.InPre && meta.PreMarketPrice != nil:
		return extended(models.ExtPre, *meta.PreMarketPrice, base)
	case !phase.InRegular && meta.PostMarketPrice != nil:
		return extended(models.ExtPost, *meta.PostMarketPrice, base)
	case phase.InRegular:
		return nil
	case phase.InPre:
		return preFromCandles(meta, candles)
	default:
		return postFromCandles(meta, candles)
	}
}

func extended(state models.ExtState, price, base float64) *models.Extended {
	change := price - base
	return &models.Extended{
		State:         state,
		Price:         price,
		Change:        change,
		ChangePercent: PercentChange(change, base),
	}
}

// preFromCandles uses the latest close before the regular session opens,
// measured against the price today's session opens from.
func preFromCandles(meta models.ChartMeta, candles []models.Candle) *models.Extended {
	tp := meta.TradingPeriod
	for i := len(candles) - 1; i >= 0; i-- {
		c := candles[i]
		if c.Time >= tp.Regular.Start {
			continue
		}
		if !tp.Pre.Contains(c.Time) {
			// nothing traded yet this pre-market
			return nil
		}
		return extended(models.ExtPre, c.Close, meta.RegularMarketPrice)
	}
	return nil
}

// postFromCandles compares the latest close with the last regular-session
// close, found by scanning backward. Gaps in the series can make that close
// an earlier bar than the true session close.
func postFromCandles(meta models.ChartMeta, candles []models.Candle) *models.Extended {
	if len(candles) == 0 {
		return nil
	}
	latest := candles[len(candles)-1]
	if IsRegularHours(latest.Time) {
		return nil
	}
	for i := len(candles) - 2; i >= 0; i-- {
		c := candles[i]
		if meta.TradingPeriod != nil && c.Time > meta.TradingPeriod.Regular.End {
			continue
		}
		if !IsRegularHours(c.Time) {
			continue
		}
		return extended(models.ExtPost, latest.Close, c.Close)
	}
	return nil
}

// BuildQuote assembles a quote from chart metadata and its candles.
// MarketCap stays nil because chart metadata does not carry it; callers that
// need it use the batch endpoint.
func BuildQuote(meta models.ChartMeta, candles []models.Candle, now time.Time) models.Quote {
	change := meta.RegularMarketPrice - meta.PreviousClose
	q := models.Quote{
		Symbol:        meta.Symbol,
		Name:          meta.Name,
		Price:         meta.RegularMarketPrice,
		Change:        change,
		ChangePercent: PercentChange(change, meta.PreviousClose),
		Volume:        meta.RegularVolume,
	}
	if ext := DeriveExtended(meta, candles, now); ext != nil {
		q.SetExtended(*ext)
	}
	return q
}

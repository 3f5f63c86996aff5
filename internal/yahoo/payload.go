package yahoo

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/market"
	"github.com/guttosm/marketpulse/internal/vendorerr"
)

// This file is the single normalization boundary between raw vendor JSON and
// the domain model: absent or null vendor fields become nil pointers or zero
// values here and nowhere else.

func parseRoot(op string, body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, &vendorerr.DataError{Op: op, Reason: "response is not valid JSON"}
	}
	return gjson.ParseBytes(body), nil
}

// optFloat returns nil for a missing or null value.
func optFloat(r gjson.Result) *float64 {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	v := r.Float()
	return &v
}

func firstString(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		if s := strings.TrimSpace(r.Get(p).String()); s != "" {
			return s
		}
	}
	return ""
}

func window(r gjson.Result) models.Window {
	return models.Window{Start: r.Get("start").Int(), End: r.Get("end").Int()}
}

// parseChart turns a v8 chart payload into metadata and a clean, ascending,
// timestamp-unique candle series. Rows with a null close are dropped.
func parseChart(op string, body []byte) (models.ChartMeta, []models.Candle, error) {
	root, err := parseRoot(op, body)
	if err != nil {
		return models.ChartMeta{}, nil, err
	}
	if desc := firstString(root, "chart.error.description", "chart.error.code"); desc != "" {
		return models.ChartMeta{}, nil, &vendorerr.DataError{Op: op, Reason: desc}
	}
	res := root.Get("chart.result.0")
	meta := res.Get("meta")
	if !meta.Exists() || !meta.IsObject() {
		return models.ChartMeta{}, nil, &vendorerr.DataError{Op: op, Reason: "no chart metadata"}
	}
	return parseMeta(meta), parseCandles(res), nil
}

func parseMeta(meta gjson.Result) models.ChartMeta {
	m := models.ChartMeta{
		Symbol:             meta.Get("symbol").String(),
		Name:               firstString(meta, "longName", "shortName"),
		Currency:           meta.Get("currency").String(),
		ExchangeTimezone:   meta.Get("exchangeTimezoneName").String(),
		RegularMarketPrice: meta.Get("regularMarketPrice").Float(),
		RegularVolume:      meta.Get("regularMarketVolume").Float(),
		PreMarketPrice:     optFloat(meta.Get("preMarketPrice")),
		PostMarketPrice:    optFloat(meta.Get("postMarketPrice")),
	}
	// previousClose is only present on short ranges; chartPreviousClose on all.
	if pc := meta.Get("previousClose"); pc.Exists() && pc.Type != gjson.Null {
		m.PreviousClose = pc.Float()
	} else {
		m.PreviousClose = meta.Get("chartPreviousClose").Float()
	}
	if tp := meta.Get("currentTradingPeriod"); tp.Exists() && tp.Get("regular").Exists() {
		m.TradingPeriod = &models.TradingPeriod{
			Pre:     window(tp.Get("pre")),
			Regular: window(tp.Get("regular")),
		}
	}
	return m
}

func parseCandles(res gjson.Result) []models.Candle {
	stamps := res.Get("timestamp").Array()
	q := res.Get("indicators.quote.0")
	opens := q.Get("open").Array()
	highs := q.Get("high").Array()
	lows := q.Get("low").Array()
	closes := q.Get("close").Array()
	volumes := q.Get("volume").Array()

	at := func(arr []gjson.Result, i int) *float64 {
		if i >= len(arr) {
			return nil
		}
		return optFloat(arr[i])
	}

	candles := make([]models.Candle, 0, len(stamps))
	for i, ts := range stamps {
		closePx := at(closes, i)
		if closePx == nil {
			continue
		}
		c := models.Candle{
			Time:   ts.Int(),
			Open:   *closePx,
			High:   *closePx,
			Low:    *closePx,
			Close:  *closePx,
			Volume: at(volumes, i),
		}
		if v := at(opens, i); v != nil {
			c.Open = *v
		}
		if v := at(highs, i); v != nil {
			c.High = *v
		}
		if v := at(lows, i); v != nil {
			c.Low = *v
		}
		candles = append(candles, c)
	}
	return market.SortDedupe(candles)
}

// batchRecord is one normalized row of a v7 quote response.
type batchRecord struct {
	quote models.Quote
	state models.MarketState
	pre   *models.Extended
	post  *models.Extended
}

func parseBatch(op string, body []byte) ([]batchRecord, error) {
	root, err := parseRoot(op, body)
	if err != nil {
		return nil, err
	}
	if desc := firstString(root, "quoteResponse.error.description", "finance.error.description"); desc != "" {
		return nil, &vendorerr.DataError{Op: op, Reason: desc}
	}
	result := root.Get("quoteResponse.result")
	if !result.IsArray() {
		return nil, &vendorerr.DataError{Op: op, Reason: "no quote results"}
	}

	var out []batchRecord
	result.ForEach(func(_, r gjson.Result) bool {
		symbol := r.Get("symbol").String()
		if symbol == "" {
			return true
		}
		price := r.Get("regularMarketPrice").Float()
		out = append(out, batchRecord{
			quote: models.Quote{
				Symbol:        symbol,
				Name:          firstString(r, "longName", "shortName", "displayName"),
				Price:         price,
				Change:        r.Get("regularMarketChange").Float(),
				ChangePercent: r.Get("regularMarketChangePercent").Float(),
				Volume:        r.Get("regularMarketVolume").Float(),
				MarketCap:     optFloat(r.Get("marketCap")),
			},
			state: models.MarketState(strings.ToUpper(r.Get("marketState").String())),
			pre:   extendedLeg(r, models.ExtPre, "preMarket", price),
			post:  extendedLeg(r, models.ExtPost, "postMarket", price),
		})
		return true
	})
	return out, nil
}

// extendedLeg reads <prefix>Price/Change/ChangePercent. Change and percent are
// derived from the regular price when the vendor omits them.
func extendedLeg(r gjson.Result, state models.ExtState, prefix string, regular float64) *models.Extended {
	price := optFloat(r.Get(prefix + "Price"))
	if price == nil {
		return nil
	}
	e := &models.Extended{State: state, Price: *price}
	if v := optFloat(r.Get(prefix + "Change")); v != nil {
		e.Change = *v
	} else {
		e.Change = *price - regular
	}
	if v := optFloat(r.Get(prefix + "ChangePercent")); v != nil {
		e.ChangePercent = *v
	} else {
		e.ChangePercent = market.PercentChange(e.Change, regular)
	}
	return e
}

func parseSearch(op string, body []byte) ([]models.SearchResult, []models.Article, error) {
	root, err := parseRoot(op, body)
	if err != nil {
		return nil, nil, err
	}
	if desc := firstString(root, "finance.error.description"); desc != "" {
		return nil, nil, &vendorerr.DataError{Op: op, Reason: desc}
	}

	results := []models.SearchResult{}
	root.Get("quotes").ForEach(func(_, q gjson.Result) bool {
		symbol := q.Get("symbol").String()
		if symbol == "" {
			return true
		}
		results = append(results, models.SearchResult{
			Symbol:   symbol,
			Name:     firstString(q, "longname", "shortname"),
			Exchange: firstString(q, "exchDisp", "exchange"),
			Type:     firstString(q, "typeDisp", "quoteType"),
		})
		return true
	})

	articles := []models.Article{}
	root.Get("news").ForEach(func(_, n gjson.Result) bool {
		title := strings.TrimSpace(n.Get("title").String())
		if title == "" {
			return true
		}
		articles = append(articles, models.Article{
			Title:       title,
			Publisher:   n.Get("publisher").String(),
			Link:        n.Get("link").String(),
			PublishedAt: n.Get("providerPublishTime").Int(),
			Thumbnail:   n.Get("thumbnail.resolutions.0.url").String(),
		})
		return true
	})
	return results, articles, nil
}

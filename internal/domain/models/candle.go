package models

// Candle is one OHLCV interval of a price series.
//
// Time is a unix timestamp in seconds. Volume is nil when the vendor
// reported no volume for the interval. A normalized series is strictly
// ascending by Time with no duplicate timestamps.
//
// swagger:model Candle
type Candle struct {
	Time   int64    `json:"time" example:"1729085400"`
	Open   float64  `json:"open" example:"231.4"`
	High   float64  `json:"high" example:"232.1"`
	Low    float64  `json:"low" example:"231.0"`
	Close  float64  `json:"close" example:"231.9"`
	Volume *float64 `json:"volume" example:"120300"`
}

// Window is a half-open [Start, End) range of unix seconds.
type Window struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t int64) bool {
	return t >= w.Start && t < w.End
}

// TradingPeriod describes the pre-market and regular phases of one trading day.
type TradingPeriod struct {
	Pre     Window `json:"pre"`
	Regular Window `json:"regular"`
}

// ChartMeta is the normalized metadata block that accompanies a chart payload.
// Optional vendor fields are nil when the vendor omitted them.
type ChartMeta struct {
	Symbol             string         `json:"symbol"`
	Name               string         `json:"name"`
	Currency           string         `json:"currency"`
	ExchangeTimezone   string         `json:"exchangeTimezone"`
	RegularMarketPrice float64        `json:"regularMarketPrice"`
	PreviousClose      float64        `json:"previousClose"`
	RegularVolume      float64        `json:"regularMarketVolume"`
	PreMarketPrice     *float64       `json:"preMarketPrice,omitempty"`
	PostMarketPrice    *float64       `json:"postMarketPrice,omitempty"`
	TradingPeriod      *TradingPeriod `json:"tradingPeriod,omitempty"`
}

// Chart is a normalized candle series plus its metadata.
//
// swagger:model Chart
type Chart struct {
	Meta    ChartMeta `json:"meta"`
	Candles []Candle  `json:"candles"`
}

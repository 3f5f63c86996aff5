// Package market holds the vendor-independent rules applied to price data:
// asset classification, regular-hours filtering, wick clipping, series
// cleanup and extended-hours derivation. Everything here is pure.
package market

import (
	"strings"
	"time"
	_ "time/tzdata" // exchange time zone must resolve on minimal images
)

// ExchangeTimezone is the zone regular trading hours are defined in.
const ExchangeTimezone = "America/New_York"

const (
	regularOpenMinute  = 9*60 + 30
	regularCloseMinute = 16 * 60
)

var newYork = mustLoad(ExchangeTimezone)

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("market: load " + name + ": " + err.Error())
	}
	return loc
}

// twentyFourHourSuffixes marks symbols that trade around the clock and must
// never be filtered to regular hours.
var twentyFourHourSuffixes = []string{
	"=X",    // currency pairs, EURUSD=X
	"=F",    // futures, ES=F
	"-USD",  // crypto quoted in fiat, BTC-USD
	"-USDT", // crypto quoted in stablecoins
	"-USDC",
	"-EUR",
	"-GBP",
	"-BTC", // crypto crosses, ETH-BTC
	"-ETH",
}

// Is24HourAsset reports whether symbol looks like a currency pair, future or
// crypto pair based on its suffix.
func Is24HourAsset(symbol string) bool {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	for _, suffix := range twentyFourHourSuffixes {
		if strings.HasSuffix(s, suffix) && len(s) > len(suffix) {
			return true
		}
	}
	return false
}

var intradayIntervals = map[string]struct{}{
	"1m": {}, "2m": {}, "5m": {}, "15m": {}, "30m": {}, "60m": {}, "90m": {}, "1h": {},
}

// IsIntraday reports whether interval is finer than one day.
func IsIntraday(interval string) bool {
	_, ok := intradayIntervals[strings.ToLower(interval)]
	return ok
}

// IsRegularHours reports whether the unix timestamp falls within
// 09:30 <= t < 16:00 exchange local time. DST is handled by the zone database.
func IsRegularHours(unix int64) bool {
	t := time.Unix(unix, 0).In(newYork)
	m := t.Hour()*60 + t.Minute()
	return m >= regularOpenMinute && m < regularCloseMinute
}

// NeedsSessionRules reports whether regular-hours filtering and wick clipping
// apply to a series of symbol at interval.
func NeedsSessionRules(symbol, interval string) bool {
	return IsIntraday(interval) && !Is24HourAsset(symbol)
}

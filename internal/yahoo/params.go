package yahoo

import "strings"

var validRanges = map[string]struct{}{
	"1d": {}, "5d": {}, "1mo": {}, "3mo": {}, "6mo": {}, "1y": {}, "2y": {}, "5y": {}, "10y": {}, "ytd": {}, "max": {},
}

var validIntervals = map[string]struct{}{
	"1m": {}, "2m": {}, "5m": {}, "15m": {}, "30m": {}, "60m": {}, "90m": {}, "1h": {},
	"1d": {}, "5d": {}, "1wk": {}, "1mo": {}, "3mo": {},
}

// ValidRange reports whether the vendor accepts r as a chart range.
func ValidRange(r string) bool {
	_, ok := validRanges[strings.ToLower(r)]
	return ok
}

// ValidInterval reports whether the vendor accepts i as a chart interval.
func ValidInterval(i string) bool {
	_, ok := validIntervals[strings.ToLower(i)]
	return ok
}

// CleanSymbols upper-cases and trims symbols, dropping blanks and duplicates
// while keeping first-seen order.
func CleanSymbols(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

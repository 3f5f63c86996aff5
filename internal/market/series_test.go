package market

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

func TestSortDedupe(t *testing.T) {
	in := []models.Candle{
		{Time: 300, Close: 3},
		{Time: 100, Close: 1},
		{Time: 200, Close: 2},
		{Time: 100, Close: 11},
	}
	want := []models.Candle{
		{Time: 100, Close: 11},
		{Time: 200, Close: 2},
		{Time: 300, Close: 3},
	}
	if diff := cmp.Diff(want, SortDedupe(in)); diff != "" {
		t.Fatalf("SortDedupe mismatch (-want +got):\n%s", diff)
	}
	if got := SortDedupe(nil); got == nil || len(got) != 0 {
		t.Fatalf("empty input should give empty non-nil slice, got %#v", got)
	}
}

func sessionDay(t *testing.T) []models.Candle {
	t.Helper()
	var out []models.Candle
	for _, hm := range [][2]int{{8, 0}, {9, 29}, {9, 30}, {12, 0}, {15, 59}, {16, 0}, {18, 30}} {
		out = append(out, models.Candle{
			Time:  ny(t, 2024, time.July, 10, hm[0], hm[1]),
			Open:  100,
			Close: 101,
			High:  102,
			Low:   99,
		})
	}
	return out
}

func TestNormalize_FiltersIntradayEquity(t *testing.T) {
	got := Normalize("AAPL", "1m", false, sessionDay(t))
	if len(got) != 3 {
		t.Fatalf("want 3 regular-hours candles, got %d", len(got))
	}
	for _, c := range got {
		if !IsRegularHours(c.Time) {
			t.Fatalf("candle at %d is outside regular hours", c.Time)
		}
	}
}

func TestNormalize_KeepsExtendedWhenRequested(t *testing.T) {
	in := sessionDay(t)
	if got := Normalize("AAPL", "1m", true, in); len(got) != len(in) {
		t.Fatalf("includePrePost must keep all candles, got %d of %d", len(got), len(in))
	}
}

func TestNormalize_PassThrough(t *testing.T) {
	in := sessionDay(t)
	for _, tc := range []struct{ symbol, interval string }{
		{"BTC-USD", "1m"},
		{"EURUSD=X", "5m"},
		{"AAPL", "1d"},
	} {
		got := Normalize(tc.symbol, tc.interval, false, in)
		if diff := cmp.Diff(in, got); diff != "" {
			t.Fatalf("%s %s should pass through (-want +got):\n%s", tc.symbol, tc.interval, diff)
		}
	}
}

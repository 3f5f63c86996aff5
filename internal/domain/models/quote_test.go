package models

import "testing"

func TestQuote_ExtendedFieldsMoveTogether(t *testing.T) {
	var q Quote
	if q.HasExtended() {
		t.Fatalf("zero quote must not carry extended data")
	}

	q.SetExtended(Extended{State: ExtPre, Price: 101.5, Change: 1.5, ChangePercent: 1.5})
	if !q.HasExtended() {
		t.Fatalf("expected extended data after SetExtended")
	}
	if *q.ExtPrice != 101.5 || *q.ExtChange != 1.5 || *q.ExtMarketState != ExtPre {
		t.Fatalf("unexpected ext fields: price=%v change=%v state=%v", *q.ExtPrice, *q.ExtChange, *q.ExtMarketState)
	}

	q.ClearExtended()
	if q.ExtPrice != nil || q.ExtChange != nil || q.ExtChangePercent != nil || q.ExtMarketState != nil {
		t.Fatalf("ClearExtended left fields behind: %+v", q)
	}
}

func TestWindow_Contains(t *testing.T) {
	w := Window{Start: 100, End: 200}
	cases := []struct {
		at   int64
		want bool
	}{
		{99, false},
		{100, true},
		{199, true},
		{200, false},
	}
	for _, c := range cases {
		if got := w.Contains(c.at); got != c.want {
			t.Fatalf("Contains(%d)=%v, want %v", c.at, got, c.want)
		}
	}
}

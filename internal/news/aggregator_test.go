package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

func rssOf(items ...string) string {
	return "<rss><channel>" + strings.Join(items, "") + "</channel></rss>"
}

func rssItem(title string, at time.Time) string {
	return fmt.Sprintf("<item><title>%s</title><link>https://example.com/%d</link><pubDate>%s</pubDate></item>",
		title, at.Unix(), at.UTC().Format(time.RFC1123Z))
}

func TestFetchMarketNews_MergesFeedsAndSkipsFailures(t *testing.T) {
	now := time.Date(2024, time.October, 16, 18, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/google":
			_, _ = w.Write([]byte(rssOf(
				rssItem("Chipmakers surge - Reuters", now.Add(-1*time.Hour)),
				rssItem("Oil slides - Bloomberg", now.Add(-3*time.Hour)),
			)))
		case "/wire":
			_, _ = w.Write([]byte(rssOf(
				rssItem("Chipmakers surge", now.Add(-30*time.Minute)),
				rssItem("Treasury yields climb", now.Add(-2*time.Hour)),
			)))
		case "/broken":
			http.Error(w, "down", http.StatusBadGateway)
		case "/html":
			_, _ = w.Write([]byte("<html>consent page</html>"))
		}
	}))
	t.Cleanup(srv.Close)

	agg := NewAggregator(Config{Feeds: []Feed{
		{Name: "Google", URL: srv.URL + "/google", Provider: ProviderGoogle},
		{Name: "Wire", URL: srv.URL + "/wire", Provider: ProviderGeneric},
		{Name: "Broken", URL: srv.URL + "/broken"},
		{Name: "Consent", URL: srv.URL + "/html"},
	}}, nil, nil, nil)
	agg.now = func() time.Time { return now }

	got, err := agg.FetchMarketNews(context.Background())
	if err != nil {
		t.Fatalf("FetchMarketNews: %v", err)
	}

	var titles []string
	for _, a := range got {
		titles = append(titles, a.Title+"|"+a.Publisher)
	}
	want := "Chipmakers surge|Reuters,Treasury yields climb|Wire,Oil slides|Bloomberg"
	if strings.Join(titles, ",") != want {
		t.Fatalf("got %v, want %s", titles, want)
	}
}

func TestMerge_DedupesAndSortsNewestFirst(t *testing.T) {
	a := []models.Article{{Title: "x", Publisher: "A", PublishedAt: 10}, {Title: "y", PublishedAt: 30}}
	b := []models.Article{{Title: "x", Publisher: "B", PublishedAt: 50}, {Title: "z", PublishedAt: 20}}

	got := Merge(a, b)
	if len(got) != 3 {
		t.Fatalf("want 3 unique titles, got %+v", got)
	}
	if got[0].Title != "y" || got[1].Title != "z" || got[2].Title != "x" || got[2].Publisher != "A" {
		t.Fatalf("unexpected order or winner: %+v", got)
	}
}

func TestPreferRecent(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	mk := func(n int, age time.Duration) []models.Article {
		out := make([]models.Article, n)
		for i := range out {
			out[i] = models.Article{Title: fmt.Sprintf("%s-%d", age, i), PublishedAt: now.Add(-age).Unix()}
		}
		return out
	}

	fewRecent := append(mk(4, time.Hour), mk(3, 48*time.Hour)...)
	if got := PreferRecent(fewRecent, now, 24*time.Hour, 5); len(got) != 7 {
		t.Fatalf("under 5 recent articles keeps all, got %d", len(got))
	}

	manyRecent := append(mk(5, time.Hour), mk(3, 48*time.Hour)...)
	if got := PreferRecent(manyRecent, now, 24*time.Hour, 5); len(got) != 5 {
		t.Fatalf("5 recent articles should drop old ones, got %d", len(got))
	}
}

func TestFetchMarketNews_LimitAndThumbnails(t *testing.T) {
	now := time.Date(2024, time.October, 16, 18, 0, 0, 0, time.UTC)
	var items []string
	for i := 0; i < 40; i++ {
		items = append(items, rssItem(fmt.Sprintf("Headline %02d", i), now.Add(-time.Duration(i)*time.Minute)))
	}

	pages := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<head><meta property="og:image" content="/thumb.jpg"></head>`))
	}))
	t.Cleanup(pages.Close)
	feed := strings.ReplaceAll(rssOf(items...), "https://example.com", pages.URL)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(feed))
	}))
	t.Cleanup(srv.Close)

	agg := NewAggregator(Config{Feeds: []Feed{{Name: "Wire", URL: srv.URL}}, Limit: 20}, nil, nil, NewThumbnailScraper(nil))
	agg.now = func() time.Time { return now }

	got, err := agg.FetchMarketNews(context.Background())
	if err != nil {
		t.Fatalf("FetchMarketNews: %v", err)
	}
	if len(got) != 20 {
		t.Fatalf("want 20 articles, got %d", len(got))
	}
	if got[0].Title != "Headline 00" {
		t.Fatalf("newest first expected, got %q", got[0].Title)
	}
	for i, a := range got {
		hasThumb := a.Thumbnail == pages.URL+"/thumb.jpg"
		if i < ThumbnailCandidates && !hasThumb {
			t.Fatalf("article %d should have a thumbnail: %+v", i, a)
		}
		if i >= ThumbnailCandidates && a.Thumbnail != "" {
			t.Fatalf("article %d should not be scraped: %+v", i, a)
		}
	}
}

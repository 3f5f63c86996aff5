package news

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/httpx"
	"github.com/guttosm/marketpulse/internal/logger"
)

const (
	DefaultLimit = 30
	FeedTimeout  = 8 * time.Second
	// RecentWindow is the age under which articles are preferred.
	RecentWindow = 24 * time.Hour
	// MinRecent is how many recent articles are needed to drop older ones.
	MinRecent = 5
	// ThumbnailCandidates is how many leading articles get a scraped image.
	ThumbnailCandidates = 15

	feedMaxBytes = 4 << 20
)

// Config lists the feeds to merge and how many articles to return.
// Empty values use DefaultFeeds and DefaultLimit.
type Config struct {
	Feeds []Feed
	Limit int
}

// Aggregator merges several feeds. Feed failures are logged and the feed is
// left out; they never fail the aggregation.
type Aggregator struct {
	feeds  []Feed
	limit  int
	http   *httpx.Client
	parser Parser
	thumbs *ThumbnailScraper
	log    zerolog.Logger
	now    func() time.Time
}

// NewAggregator builds an Aggregator. A nil parser means TagParser; a nil
// scraper disables thumbnails.
func NewAggregator(cfg Config, client *httpx.Client, parser Parser, thumbs *ThumbnailScraper) *Aggregator {
	if len(cfg.Feeds) == 0 {
		cfg.Feeds = DefaultFeeds
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if client == nil {
		client = httpx.New("")
	}
	if parser == nil {
		parser = TagParser{}
	}
	return &Aggregator{
		feeds:  cfg.Feeds,
		limit:  cfg.Limit,
		http:   client,
		parser: parser,
		thumbs: thumbs,
		log:    logger.With("news"),
		now:    time.Now,
	}
}

// Feeds returns the configured sources.
func (a *Aggregator) Feeds() []Feed { return a.feeds }

// FetchMarketNews fetches every feed concurrently and returns at most limit
// articles, newest first, unique by title. Articles from the last 24 hours are
// preferred unless fewer than MinRecent exist.
func (a *Aggregator) FetchMarketNews(ctx context.Context) ([]models.Article, error) {
	perFeed := make([][]models.Article, len(a.feeds))

	var g errgroup.Group
	for i, feed := range a.feeds {
		i, feed := i, feed
		g.Go(func() error {
			articles, err := a.fetchFeed(ctx, feed)
			if err != nil {
				a.log.Warn().Err(err).Str("feed", feed.Name).Msg("feed fetch failed, skipping")
				return nil
			}
			perFeed[i] = articles
			return nil
		})
	}
	_ = g.Wait()

	articles := Merge(perFeed...)
	articles = PreferRecent(articles, a.now(), RecentWindow, MinRecent)
	if len(articles) > a.limit {
		articles = articles[:a.limit]
	}
	if a.thumbs != nil {
		a.thumbs.Enrich(ctx, articles[:min(ThumbnailCandidates, len(articles))])
	}

	a.log.Debug().Int("feeds", len(a.feeds)).Int("articles", len(articles)).Msg("market news aggregated")
	return articles, nil
}

func (a *Aggregator) fetchFeed(ctx context.Context, feed Feed) ([]models.Article, error) {
	resp, err := a.http.Get(ctx, "fetch feed "+feed.Name, feed.URL, FeedTimeout, nil, feedMaxBytes)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(feed.URL); err != nil {
		return nil, err
	}
	items, err := a.parser.Items(resp.Body)
	if err != nil {
		return nil, err
	}
	out := make([]models.Article, 0, len(items))
	for _, it := range items {
		if art, ok := feed.Article(it); ok {
			out = append(out, art)
		}
	}
	return out, nil
}

// Merge concatenates article lists, keeps the first article seen for each
// exact title, and orders the result newest first.
func Merge(lists ...[]models.Article) []models.Article {
	seen := make(map[string]struct{})
	out := []models.Article{}
	for _, list := range lists {
		for _, art := range list {
			if _, dup := seen[art.Title]; dup {
				continue
			}
			seen[art.Title] = struct{}{}
			out = append(out, art)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PublishedAt > out[j].PublishedAt })
	return out
}

// PreferRecent keeps only articles published within window of now when at
// least minCount of them exist; otherwise articles is returned unchanged.
func PreferRecent(articles []models.Article, now time.Time, window time.Duration, minCount int) []models.Article {
	cutoff := now.Add(-window).Unix()
	recent := make([]models.Article, 0, len(articles))
	for _, art := range articles {
		if art.PublishedAt >= cutoff {
			recent = append(recent, art)
		}
	}
	if len(recent) < minCount {
		return articles
	}
	return recent
}

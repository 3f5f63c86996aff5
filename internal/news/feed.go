// Package news aggregates market headlines from several RSS feeds into one
// deduplicated, recency-ordered list, enriched with preview images.
package news

import (
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

// Providers with feed-specific post-processing.
const (
	ProviderGeneric = "generic"
	// ProviderGoogle feeds append " - Publisher" to every title.
	ProviderGoogle = "google"
)

// Feed is one configured news source.
type Feed struct {
	Name     string
	URL      string
	Provider string
}

// DefaultFeeds is used when no feeds are configured.
var DefaultFeeds = []Feed{
	{Name: "Google News", URL: "https://news.google.com/rss/search?q=stock+market&hl=en-US&gl=US&ceid=US:en", Provider: ProviderGoogle},
	{Name: "CNBC", URL: "https://search.cnbc.com/rs/search/combinedcms/view.xml?partnerId=wrss01&id=100003114", Provider: ProviderGeneric},
	{Name: "MarketWatch", URL: "https://feeds.content.dowjones.io/public/rss/mw_topstories", Provider: ProviderGeneric},
	{Name: "Yahoo Finance", URL: "https://finance.yahoo.com/news/rssindex", Provider: ProviderGeneric},
}

// ParseFeeds reads "name|provider|url" entries separated by ';'. The provider
// may be empty. An empty string yields DefaultFeeds.
func ParseFeeds(s string) ([]Feed, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return append([]Feed(nil), DefaultFeeds...), nil
	}
	var feeds []Feed
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "|", 3)
		if len(parts) != 3 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[2]) == "" {
			return nil, fmt.Errorf("invalid feed entry %q: want name|provider|url", entry)
		}
		provider := strings.ToLower(strings.TrimSpace(parts[1]))
		if provider == "" {
			provider = ProviderGeneric
		}
		feeds = append(feeds, Feed{
			Name:     strings.TrimSpace(parts[0]),
			Provider: provider,
			URL:      strings.TrimSpace(parts[2]),
		})
	}
	return feeds, nil
}

// Article converts a raw item into an article attributed to this feed.
// Items without a title are rejected.
func (f Feed) Article(item FeedItem) (models.Article, bool) {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		return models.Article{}, false
	}
	publisher := f.Name

	if f.Provider == ProviderGoogle {
		if i := strings.LastIndex(title, " - "); i > 0 {
			publisher = strings.TrimSpace(title[i+3:])
			title = strings.TrimSpace(title[:i])
		} else if src := strings.TrimSpace(item.Source); src != "" {
			publisher = src
		}
	}

	return models.Article{
		Title:       title,
		Publisher:   publisher,
		Link:        strings.TrimSpace(item.Link),
		PublishedAt: ParsePubDate(item.PubDate),
	}, true
}

var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
}

// ParsePubDate returns unix seconds, or 0 when no known layout matches.
func ParsePubDate(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Unix()
		}
	}
	return 0
}

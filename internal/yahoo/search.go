package yahoo

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/guttosm/marketpulse/internal/domain/models"
)

const (
	DefaultSearchCount = 10
	DefaultNewsCount   = 10
)

// Search returns ranked symbol matches for a free-text query.
func (c *Client) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	params := url.Values{}
	params.Set("q", strings.TrimSpace(query))
	params.Set("quotesCount", strconv.Itoa(DefaultSearchCount))
	params.Set("newsCount", "0")

	body, err := c.get(ctx, "search", "/v1/finance/search", params, SearchTimeout)
	if err != nil {
		return nil, err
	}
	results, _, err := parseSearch("search", body)
	return results, err
}

// FetchNews returns up to count recent articles the vendor associates with symbol.
func (c *Client) FetchNews(ctx context.Context, symbol string, count int) ([]models.Article, error) {
	if count <= 0 {
		count = DefaultNewsCount
	}
	params := url.Values{}
	params.Set("q", strings.ToUpper(strings.TrimSpace(symbol)))
	params.Set("quotesCount", "0")
	params.Set("newsCount", strconv.Itoa(count))

	body, err := c.get(ctx, "fetch news", "/v1/finance/search", params, SearchTimeout)
	if err != nil {
		return nil, err
	}
	_, articles, err := parseSearch("fetch news", body)
	if err != nil {
		return nil, err
	}
	if len(articles) > count {
		articles = articles[:count]
	}
	return articles, nil
}

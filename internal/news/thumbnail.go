package news

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/marketpulse/internal/domain/models"
	"github.com/guttosm/marketpulse/internal/httpx"
)

const (
	ThumbnailTimeout     = 4 * time.Second
	ThumbnailMaxBytes    = 50 << 10
	ThumbnailConcurrency = 5
)

// ThumbnailScraper finds a preview image on an article page. Every failure
// degrades to "no thumbnail".
type ThumbnailScraper struct {
	http        *httpx.Client
	timeout     time.Duration
	maxBytes    int64
	concurrency int
}

// NewThumbnailScraper creates a scraper with the default timeout, byte budget
// and concurrency.
func NewThumbnailScraper(client *httpx.Client) *ThumbnailScraper {
	if client == nil {
		client = httpx.New("")
	}
	return &ThumbnailScraper{
		http:        client,
		timeout:     ThumbnailTimeout,
		maxBytes:    ThumbnailMaxBytes,
		concurrency: ThumbnailConcurrency,
	}
}

// Enrich fills Thumbnail in place for articles that lack one.
func (s *ThumbnailScraper) Enrich(ctx context.Context, articles []models.Article) {
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range articles {
		if articles[i].Thumbnail != "" || articles[i].Link == "" {
			continue
		}
		i := i
		g.Go(func() error {
			articles[i].Thumbnail = s.Scrape(ctx, articles[i].Link)
			return nil
		})
	}
	_ = g.Wait()
}

// Scrape returns the absolute og:image (or twitter:image) URL of pageURL, or "".
// At most maxBytes are read and reading stops at </head>.
func (s *ThumbnailScraper) Scrape(ctx context.Context, pageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Accept", "text/html")
	resp, err := s.http.Do(req)
	if err != nil {
		return ""
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ""
	}

	img := ExtractPreviewImage(io.LimitReader(resp.Body, s.maxBytes))
	if img == "" {
		return ""
	}
	ref, err := url.Parse(img)
	if err != nil {
		return ""
	}
	// redirects may have moved the page
	return resp.Request.URL.ResolveReference(ref).String()
}

// ExtractPreviewImage scans the document head for og:image, falling back to
// twitter:image. It stops at </head> or <body>.
func ExtractPreviewImage(r io.Reader) string {
	z := html.NewTokenizer(r)
	var twitter string
	for {
		switch z.Next() {
		case html.ErrorToken:
			return twitter
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "head" {
				return twitter
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "body":
				return twitter
			case "meta":
				if !hasAttr {
					continue
				}
				key, content := metaAttrs(z)
				switch key {
				case "og:image", "og:image:url", "og:image:secure_url":
					if content != "" {
						return content
					}
				case "twitter:image", "twitter:image:src":
					if twitter == "" {
						twitter = content
					}
				}
			}
		}
	}
}

func metaAttrs(z *html.Tokenizer) (key, content string) {
	for {
		k, v, more := z.TagAttr()
		switch string(k) {
		case "property", "name":
			if key == "" {
				key = strings.ToLower(strings.TrimSpace(string(v)))
			}
		case "content":
			content = strings.TrimSpace(string(v))
		}
		if !more {
			return key, content
		}
	}
}

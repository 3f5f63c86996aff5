package news

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/guttosm/marketpulse/internal/vendorerr"
)

// FeedItem is one raw <item> of an RSS document.
type FeedItem struct {
	Title   string
	Link    string
	PubDate string
	Source  string
}

// Parser turns a feed document into items. TagParser is the default; a
// stricter XML implementation can be swapped in without touching callers.
type Parser interface {
	Items(body []byte) ([]FeedItem, error)
}

// TagParser extracts items with tolerant tag matching. It accepts the
// slightly broken markup many news feeds serve.
type TagParser struct{}

var (
	itemPattern  = regexp.MustCompile(`(?is)<item\b[^>]*>(.*?)</item>`)
	cdataPattern = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	markup       = regexp.MustCompile(`(?s)<[^>]*>`)

	tagPatterns sync.Map // tag -> *regexp.Regexp

	errNotAFeed = errors.New("document has no rss channel")
)

// Items returns every <item> in body. A document without an RSS channel is a
// *vendorerr.ParseError; a channel with no items is not.
func (TagParser) Items(body []byte) ([]FeedItem, error) {
	lower := bytes.ToLower(body)
	if !bytes.Contains(lower, []byte("<rss")) && !bytes.Contains(lower, []byte("<channel")) {
		return nil, &vendorerr.ParseError{Source: "rss", Err: errNotAFeed}
	}

	matches := itemPattern.FindAllSubmatch(body, -1)
	items := make([]FeedItem, 0, len(matches))
	for _, m := range matches {
		block := string(m[1])
		items = append(items, FeedItem{
			Title:   ExtractTag(block, "title"),
			Link:    ExtractTag(block, "link"),
			PubDate: ExtractTag(block, "pubDate"),
			Source:  ExtractTag(block, "source"),
		})
	}
	return items, nil
}

// ExtractTag returns the text of the first <tag> in block. CDATA sections
// contribute their payload as-is wherever they appear; text outside them has
// nested markup dropped. Entities are decoded in both. A missing tag yields "".
func ExtractTag(block, tag string) string {
	m := tagPattern(tag).FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	inner := m[1]

	var b strings.Builder
	last := 0
	for _, loc := range cdataPattern.FindAllStringSubmatchIndex(inner, -1) {
		b.WriteString(markup.ReplaceAllString(inner[last:loc[0]], ""))
		b.WriteString(inner[loc[2]:loc[3]])
		last = loc[1]
	}
	b.WriteString(markup.ReplaceAllString(inner[last:], ""))
	return strings.TrimSpace(DecodeEntities(b.String()))
}

// DecodeEntities resolves named and numeric character references.
func DecodeEntities(s string) string {
	return html.UnescapeString(s)
}

func tagPattern(tag string) *regexp.Regexp {
	if re, ok := tagPatterns.Load(tag); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?is)<` + regexp.QuoteMeta(tag) + `\b[^>]*>(.*?)</` + regexp.QuoteMeta(tag) + `\s*>`)
	actual, _ := tagPatterns.LoadOrStore(tag, re)
	return actual.(*regexp.Regexp)
}

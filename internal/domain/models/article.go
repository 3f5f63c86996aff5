package models

// Article is a normalized news item.
//
// Articles are deduplicated by exact Title within one aggregation run.
//
// swagger:model Article
type Article struct {
	Title       string `json:"title" example:"Stocks rally as yields fall"`
	Publisher   string `json:"publisher" example:"Reuters"`
	Link        string `json:"link" example:"https://example.com/a"`
	PublishedAt int64  `json:"publishedAt" example:"1729085400"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

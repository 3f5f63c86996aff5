package models

// ExtState is the extended-hours phase a quote's ext* fields describe.
type ExtState string

const (
	ExtPre  ExtState = "pre"
	ExtPost ExtState = "post"
)

// MarketState is the vendor's market-state enum as reported on batch quotes.
type MarketState string

const (
	MarketPrePre   MarketState = "PREPRE"
	MarketPre      MarketState = "PRE"
	MarketRegular  MarketState = "REGULAR"
	MarketPost     MarketState = "POST"
	MarketPostPost MarketState = "POSTPOST"
	MarketClosed   MarketState = "CLOSED"
)

// Quote is the unified quote record served to the frontend.
//
// MarketCap is nil when unknown: the batch endpoint reports it, chart
// metadata does not.
//
// The extended-hours fields are either all set (together with ExtMarketState)
// or all nil. Use SetExtended and ClearExtended to keep them consistent.
//
// swagger:model Quote
type Quote struct {
	Symbol           string    `json:"symbol" example:"AAPL"`
	Name             string    `json:"name" example:"Apple Inc."`
	Price            float64   `json:"price" example:"231.9"`
	Change           float64   `json:"change" example:"1.2"`
	ChangePercent    float64   `json:"changePercent" example:"0.52"`
	Volume           float64   `json:"volume" example:"40213000"`
	MarketCap        *float64  `json:"marketCap,omitempty" example:"3500000000000"`
	ExtPrice         *float64  `json:"extPrice"`
	ExtChange        *float64  `json:"extChange"`
	ExtChangePercent *float64  `json:"extChangePercent"`
	ExtMarketState   *ExtState `json:"extMarketState"`
}

// Extended is a derived extended-hours price.
type Extended struct {
	State         ExtState
	Price         float64
	Change        float64
	ChangePercent float64
}

// SetExtended fills all extended-hours fields at once.
func (q *Quote) SetExtended(e Extended) {
	price, change, pct, state := e.Price, e.Change, e.ChangePercent, e.State
	q.ExtPrice = &price
	q.ExtChange = &change
	q.ExtChangePercent = &pct
	q.ExtMarketState = &state
}

// ClearExtended drops all extended-hours fields.
func (q *Quote) ClearExtended() {
	q.ExtPrice = nil
	q.ExtChange = nil
	q.ExtChangePercent = nil
	q.ExtMarketState = nil
}

// HasExtended reports whether the quote carries extended-hours data.
func (q *Quote) HasExtended() bool {
	return q.ExtMarketState != nil && q.ExtPrice != nil && q.ExtChange != nil && q.ExtChangePercent != nil
}

// SearchResult is one ranked symbol match from the vendor search endpoint.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
}

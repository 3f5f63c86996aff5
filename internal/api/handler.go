package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/marketpulse/internal/domain/dto"
	"github.com/guttosm/marketpulse/internal/service"
)

// Handler exposes the market-data operations over HTTP.
//
// Handlers parse and type-check query parameters, delegate to the service and
// translate errors into statuses (see statusFor). Business validation lives in
// the service.
type Handler struct {
	svc service.MarketService
}

// NewHandler creates a Handler backed by the given market service.
//
// Parameters:
//   - svc (service.MarketService): validation and vendor access for every route.
//
// Returns:
//   - *Handler: ready to be mounted by NewRouter.
func NewHandler(svc service.MarketService) *Handler {
	return &Handler{svc: svc}
}

func badRequest(c *gin.Context, msg string, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(msg, err))
}

// GetChart godoc
// @Summary      Price chart
// @Description  Normalized candles for a symbol. Intraday equity series are limited to regular hours unless prepost=true and have illiquid wicks clipped.
// @Tags         market
// @Produce      json
// @Param        symbol    path      string  true   "Ticker"                       example(AAPL)
// @Param        range     query     string  false  "Vendor range (1d, 5d, 1mo…)"  default(1d)
// @Param        interval  query     string  false  "Bar size (1m, 5m, 1h, 1d…)"   default(5m)
// @Param        prepost   query     bool    false  "Include extended hours"       default(false)
// @Success      200       {object}  dto.ChartResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Failure      502       {object}  dto.ErrorResponse
// @Failure      503       {object}  dto.ErrorResponse
// @Failure      504       {object}  dto.ErrorResponse
// @Router       /api/v1/chart/{symbol} [get]
func (h *Handler) GetChart(c *gin.Context) {
	prepost := false
	if s := c.Query("prepost"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			badRequest(c, "prepost must be a boolean", err)
			return
		}
		prepost = v
	}
	rng := c.DefaultQuery("range", service.DefaultRange)
	interval := c.DefaultQuery("interval", service.DefaultInterval)

	chart, err := h.svc.GetChart(c.Request.Context(), c.Param("symbol"), rng, interval, prepost)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ChartResponse{
		Symbol:         chart.Meta.Symbol,
		Range:          strings.ToLower(rng),
		Interval:       strings.ToLower(interval),
		IncludePrePost: prepost,
		Meta:           chart.Meta,
		Candles:        chart.Candles,
	})
}

// GetQuote godoc
// @Summary      Single quote
// @Description  Latest price and day change, plus extended-hours price when outside the regular session.
// @Tags         market
// @Produce      json
// @Param        symbol  path      string  true  "Ticker"  example(AAPL)
// @Success      200     {object}  models.Quote
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Failure      503     {object}  dto.ErrorResponse
// @Failure      504     {object}  dto.ErrorResponse
// @Router       /api/v1/quote/{symbol} [get]
func (h *Handler) GetQuote(c *gin.Context) {
	q, err := h.svc.GetQuote(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// GetQuotes godoc
// @Summary      Batch quotes
// @Description  Quotes for many symbols. Symbols the vendor does not return are omitted; partial upstream failures do not fail the request.
// @Tags         market
// @Produce      json
// @Param        symbols  query     string  true  "Comma-separated tickers"  example(AAPL,MSFT,BTC-USD)
// @Success      200      {object}  dto.QuotesResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/v1/quotes [get]
func (h *Handler) GetQuotes(c *gin.Context) {
	raw := c.Query("symbols")
	symbols := strings.Split(raw, ",")

	quotes, err := h.svc.GetQuotes(c.Request.Context(), symbols)
	if err != nil {
		respondError(c, err)
		return
	}
	requested := 0
	for _, s := range symbols {
		if strings.TrimSpace(s) != "" {
			requested++
		}
	}
	c.JSON(http.StatusOK, dto.QuotesResponse{Requested: requested, Returned: len(quotes), Quotes: quotes})
}

// GetCryptoChart godoc
// @Summary      Crypto candle history
// @Description  Up to seven days of candles for a crypto pair from the exchange feed.
// @Tags         crypto
// @Produce      json
// @Param        symbol       path      string  true   "Pair"                                    example(BTC-USD)
// @Param        granularity  query     int     false  "Seconds: 60, 300, 900, 3600, 21600, 86400"  default(300)
// @Success      200          {object}  dto.CryptoChartResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Failure      404          {object}  dto.ErrorResponse
// @Failure      502          {object}  dto.ErrorResponse
// @Failure      504          {object}  dto.ErrorResponse
// @Router       /api/v1/crypto/{symbol}/chart [get]
func (h *Handler) GetCryptoChart(c *gin.Context) {
	granularity := service.DefaultGranularity
	if s := c.Query("granularity"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			badRequest(c, "granularity must be an integer number of seconds", err)
			return
		}
		granularity = v
	}
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))

	candles, err := h.svc.GetCryptoChart(c.Request.Context(), symbol, granularity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CryptoChartResponse{Symbol: symbol, Granularity: granularity, Candles: candles})
}

// GetMarketNews godoc
// @Summary      Market headlines
// @Description  Recent headlines merged from the configured feeds, newest first, one entry per title.
// @Tags         news
// @Produce      json
// @Success      200  {object}  dto.NewsResponse
// @Router       /api/v1/news [get]
func (h *Handler) GetMarketNews(c *gin.Context) {
	articles, err := h.svc.GetMarketNews(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewsResponse{Count: len(articles), Articles: articles})
}

// GetSymbolNews godoc
// @Summary      Symbol news
// @Description  Recent articles the vendor associates with a symbol.
// @Tags         news
// @Produce      json
// @Param        symbol  path      string  true   "Ticker"             example(NVDA)
// @Param        count   query     int     false  "Maximum articles"   default(10)
// @Success      200     {object}  dto.NewsResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Router       /api/v1/news/{symbol} [get]
func (h *Handler) GetSymbolNews(c *gin.Context) {
	count := 0
	if s := c.Query("count"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			badRequest(c, "count must be an integer", err)
			return
		}
		count = v
	}
	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))

	articles, err := h.svc.GetSymbolNews(c.Request.Context(), symbol, count)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewsResponse{Symbol: symbol, Count: len(articles), Articles: articles})
}

// Search godoc
// @Summary      Symbol search
// @Tags         market
// @Produce      json
// @Param        q    query     string  true  "Free-text query"  example(apple)
// @Success      200  {object}  dto.SearchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/v1/search [get]
func (h *Handler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	results, err := h.svc.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SearchResponse{Query: q, Results: results})
}

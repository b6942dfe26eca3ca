package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/finansgold/backend/internal/quote"
	"github.com/finansgold/backend/internal/service"
)

type MarketHandler struct {
	market *service.MarketService
	log    zerolog.Logger
}

func NewMarketHandler(market *service.MarketService, log zerolog.Logger) *MarketHandler {
	return &MarketHandler{market: market, log: log}
}

// GetMarketData never fails; missing quotes fall back to the stored snapshot
func (h *MarketHandler) GetMarketData(c *gin.Context) {
	c.JSON(http.StatusOK, h.market.MarketData(c.Request.Context()))
}

func (h *MarketHandler) GetPrices(c *gin.Context) {
	c.JSON(http.StatusOK, h.market.Prices(c.Request.Context()))
}

func (h *MarketHandler) GetCandles(c *gin.Context) {
	period := c.DefaultQuery("period", quote.DefaultPeriod)

	series, err := h.market.Candles(c.Request.Context(), c.Param("symbol"), period)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

func (h *MarketHandler) GetEconomicCalendar(c *gin.Context) {
	c.JSON(http.StatusOK, service.EconomicCalendar())
}

package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vickeyy980-dotcom/trade-summary-system/internal/export"
	"github.com/vickeyy980-dotcom/trade-summary-system/internal/models"
	"github.com/vickeyy980-dotcom/trade-summary-system/internal/report"
	"github.com/vickeyy980-dotcom/trade-summary-system/internal/repository"
	"github.com/vickeyy980-dotcom/trade-summary-system/internal/service"
)

// Router wires all handlers.
func Router(summarySvc *service.SummaryService, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logMiddleware(logger))

	r.POST("/trades", func(c *gin.Context) {
		handleCreateTrade(c, summarySvc)
	})
	r.GET("/trades", func(c *gin.Context) {
		handleListTrades(c, summarySvc)
	})
	r.PUT("/trades/:id", func(c *gin.Context) {
		handleUpdateTrade(c, summarySvc)
	})
	r.DELETE("/trades/:id", func(c *gin.Context) {
		handleDeleteTrade(c, summarySvc)
	})
	r.GET("/rates", func(c *gin.Context) {
		handleGetRates(c, summarySvc)
	})
	r.PUT("/rates/flat", func(c *gin.Context) {
		handleSetFlatRate(c, summarySvc)
	})
	r.PUT("/rates/lots/:symbol", func(c *gin.Context) {
		handleSetLotRate(c, summarySvc)
	})
	r.DELETE("/rates/lots/:symbol", func(c *gin.Context) {
		handleDeleteLotRate(c, summarySvc)
	})
	r.GET("/report", func(c *gin.Context) {
		handleReport(c, summarySvc)
	})
	r.GET("/report/export", func(c *gin.Context) {
		handleExport(c, summarySvc)
	})
	return r
}

type tradeRequest struct {
	Action   string `json:"action"`
	Quantity string `json:"quantity"`
	Price    string `json:"price"`
	Symbol   string `json:"symbol"`
	Kind     string `json:"kind"`
	Exchange string `json:"exchange"`
}

func (r tradeRequest) toInput() service.TradeInput {
	return service.TradeInput{
		Action:   r.Action,
		Quantity: r.Quantity,
		Price:    r.Price,
		Symbol:   r.Symbol,
		Kind:     r.Kind,
		Exchange: r.Exchange,
	}
}

type flatRateRequest struct {
	Rate string `json:"rate" binding:"required"`
}

type lotRateRequest struct {
	LotSize    string `json:"lotSize" binding:"required"`
	RatePerLot string `json:"ratePerLot" binding:"required"`
}

func handleCreateTrade(c *gin.Context, svc *service.SummaryService) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trade, err := svc.CreateTrade(c.Request.Context(), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trade)
}

func handleListTrades(c *gin.Context, svc *service.SummaryService) {
	trades, err := svc.ListTrades(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trades": trades})
}

func handleUpdateTrade(c *gin.Context, svc *service.SummaryService) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	trade, err := svc.UpdateTrade(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trade)
}

func handleDeleteTrade(c *gin.Context, svc *service.SummaryService) {
	if err := svc.DeleteTrade(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func handleGetRates(c *gin.Context, svc *service.SummaryService) {
	rates, err := svc.GetRates(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rates)
}

func handleSetFlatRate(c *gin.Context, svc *service.SummaryService) {
	var req flatRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rate must be a decimal string"})
		return
	}
	if err := svc.SetFlatRate(c.Request.Context(), rate); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flatRate": rate.String()})
}

func handleSetLotRate(c *gin.Context, svc *service.SummaryService) {
	var req lotRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lotSize, err := decimal.NewFromString(req.LotSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lotSize must be a decimal string"})
		return
	}
	ratePerLot, err := decimal.NewFromString(req.RatePerLot)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ratePerLot must be a decimal string"})
		return
	}
	symbol := c.Param("symbol")
	if err := svc.SetLotRate(c.Request.Context(), symbol, models.LotRate{LotSize: lotSize, RatePerLot: ratePerLot}); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"symbol":     models.NormalizeSymbol(symbol),
		"lotSize":    lotSize.String(),
		"ratePerLot": ratePerLot.String(),
	})
}

func handleDeleteLotRate(c *gin.Context, svc *service.SummaryService) {
	if err := svc.RemoveLotRate(c.Request.Context(), c.Param("symbol")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func handleReport(c *gin.Context, svc *service.SummaryService) {
	groups, err := svc.BuildSummary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	// Grand totals are a view concern: folded here, never stored on the report.
	c.JSON(http.StatusOK, gin.H{
		"groups": groups,
		"totals": report.GrandTotals(groups),
	})
}

func handleExport(c *gin.Context, svc *service.SummaryService) {
	groups, err := svc.BuildSummary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := export.RenderHTML(c.Writer, groups); err != nil {
		_ = c.Error(err)
	}
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, service.ErrValidation) {
		status = http.StatusBadRequest
	}
	if errors.Is(err, service.ErrTradeNotFound) || errors.Is(err, repository.ErrLotRateNotFound) {
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func logMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"status":   c.Writer.Status(),
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"latency":  time.Since(start).String(),
			"clientIP": c.ClientIP(),
		}).Info("request completed")
	}
}

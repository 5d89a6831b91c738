package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"stock-predictor/internal/catalog"
	"stock-predictor/internal/screener"
	"stock-predictor/internal/types"
)

// ScreenRequest selects the securities to screen. Catalog entries come first,
// explicit tickers are appended.
type ScreenRequest struct {
	Catalog   string   `json:"catalog"`
	Tickers   []string `json:"tickers" validate:"omitempty,dive,required"`
	Market    string   `json:"market"`
	SortBy    string   `json:"sort_by" default:"confidence" validate:"oneof=confidence score"`
	Ascending bool     `json:"ascending"`
	Limit     int      `json:"limit" validate:"gte=0,lte=10000"`
	Stream    bool     `json:"stream"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return successResponse(c, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(c echo.Context) error {
	ticker := strings.TrimSpace(c.Param("ticker"))
	market, err := types.ParseMarket(c.QueryParam("market"))
	if err != nil {
		return dataResponse(c, http.StatusBadRequest, []ValidationError{{Code: "ERR_ONEOF", Field: "market", Message: err.Error()}})
	}
	name := strings.TrimSpace(c.QueryParam("name"))
	if name == "" {
		name = ticker
	}

	a, err := s.deps.Analyzer.Analyze(c.Request().Context(), types.Security{Name: name, Ticker: ticker}, market)
	if err != nil {
		return errorResponse(c, http.StatusBadGateway, err.Error())
	}
	return successResponse(c, a)
}

func (s *Server) handleScreen(c echo.Context) error {
	var req ScreenRequest
	if errs := bindRequest(c, &req); errs != nil {
		return dataResponse(c, http.StatusBadRequest, errs)
	}
	ctx := c.Request().Context()

	entries, market, status, err := s.resolveEntries(ctx, req)
	if err != nil {
		return errorResponse(c, status, err.Error())
	}
	if req.Limit > 0 && len(entries) > req.Limit {
		entries = entries[:req.Limit]
	}

	if req.Stream && s.deps.Streamer != nil {
		return s.streamRows(c, entries, market)
	}

	report, err := s.deps.Screener.Run(ctx, entries, market)
	switch {
	case errors.Is(err, screener.ErrNothingAnalyzed):
		return c.JSON(http.StatusUnprocessableEntity, APIResponse{
			Status:  http.StatusUnprocessableEntity,
			Message: err.Error(),
			Data:    report,
		})
	case err != nil:
		return errorResponse(c, http.StatusServiceUnavailable, err.Error())
	}
	if err := screener.SortRows(report.Rows, req.SortBy, !req.Ascending); err != nil {
		return errorResponse(c, http.StatusBadRequest, err.Error())
	}
	return successResponse(c, report)
}

// resolveEntries loads the catalog and appends explicit tickers. The market
// defaults to the catalog's own market, then India.
func (s *Server) resolveEntries(ctx context.Context, req ScreenRequest) ([]types.Security, types.Market, int, error) {
	if req.Catalog == "" && len(req.Tickers) == 0 {
		return nil, "", http.StatusBadRequest, errors.New("catalog or tickers is required")
	}

	var entries []types.Security
	marketName := req.Market
	if req.Catalog != "" {
		if s.deps.Catalogs == nil {
			return nil, "", http.StatusNotFound, catalog.ErrUnknownCatalog
		}
		list, err := s.deps.Catalogs.Load(ctx, req.Catalog)
		switch {
		case errors.Is(err, catalog.ErrUnknownCatalog):
			return nil, "", http.StatusNotFound, err
		case err != nil:
			return nil, "", http.StatusBadGateway, err
		}
		entries = append(entries, list...)
		if info, ok := s.deps.Catalogs.Info(req.Catalog); ok && marketName == "" {
			marketName = string(info.Market)
		}
	}
	for _, t := range req.Tickers {
		t = strings.TrimSpace(t)
		entries = append(entries, types.Security{Name: t, Ticker: t})
	}

	market, err := types.ParseMarket(marketName)
	if err != nil {
		return nil, "", http.StatusBadRequest, err
	}
	return entries, market, http.StatusOK, nil
}

// streamRows writes one JSON row per line as the screener completes them.
// The status line waits for the first row, so a screen that yields nothing
// still answers 422 like the buffered path.
func (s *Server) streamRows(c echo.Context, entries []types.Security, market types.Market) error {
	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	res := c.Response()
	enc := json.NewEncoder(res)
	written := 0
	for row := range s.deps.Streamer.Stream(ctx, entries, market) {
		if written == 0 {
			res.Header().Set(echo.HeaderContentType, "application/x-ndjson")
			res.WriteHeader(http.StatusOK)
		}
		if err := enc.Encode(row); err != nil {
			return err
		}
		res.Flush()
		written++
	}
	if written > 0 || ctx.Err() != nil {
		return nil
	}
	return c.JSON(http.StatusUnprocessableEntity, APIResponse{
		Status:  http.StatusUnprocessableEntity,
		Message: screener.ErrNothingAnalyzed.Error(),
		Data:    &types.ScreenReport{Total: len(entries), Skipped: len(entries)},
	})
}

func (s *Server) handleCatalogs(c echo.Context) error {
	if s.deps.Catalogs == nil {
		return successResponse(c, []catalog.Info{})
	}
	return successResponse(c, s.deps.Catalogs.List())
}

func (s *Server) handleCatalog(c echo.Context) error {
	name := c.Param("name")
	if s.deps.Catalogs == nil {
		return errorResponse(c, http.StatusNotFound, catalog.ErrUnknownCatalog.Error())
	}
	list, err := s.deps.Catalogs.Load(c.Request().Context(), name)
	switch {
	case errors.Is(err, catalog.ErrUnknownCatalog):
		return errorResponse(c, http.StatusNotFound, err.Error())
	case err != nil:
		return errorResponse(c, http.StatusBadGateway, err.Error())
	}
	info, _ := s.deps.Catalogs.Info(name)
	return successResponse(c, map[string]interface{}{
		"catalog": info,
		"entries": list,
	})
}

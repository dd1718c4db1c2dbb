// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/hooplens/prospectrank/internal/domain/model"
	"github.com/hooplens/prospectrank/internal/domain/trend"
)

const defaultTrendWindow = "7d"

// TrendingDependencies defines the interface for trend queries.
type TrendingDependencies interface {
	Trending(ctx context.Context, window string, k int) (rising, falling []model.TrendResult, err error)
}

// TrendingHandler handles top-mover requests.
type TrendingHandler struct {
	deps TrendingDependencies
}

// NewTrendingHandler creates a new trending handler.
func NewTrendingHandler(deps TrendingDependencies) *TrendingHandler {
	return &TrendingHandler{deps: deps}
}

type trendingResponse struct {
	Window  string              `json:"window"`
	Rising  []model.TrendResult `json:"rising"`
	Falling []model.TrendResult `json:"falling"`
}

// HandleGetTrending handles GET /trending?window=7d&limit=N requests.
func (h *TrendingHandler) HandleGetTrending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	window := r.URL.Query().Get("window")
	if window == "" {
		window = defaultTrendWindow
	}
	k := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		k = parsed
	}
	rising, falling, err := h.deps.Trending(r.Context(), window, k)
	if err != nil {
		if errors.Is(err, trend.ErrInvalidWindow) {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, trendingResponse{
		Window:  window,
		Rising:  rising,
		Falling: falling,
	})
}

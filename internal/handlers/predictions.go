package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/engine"
	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/models"
)

// CreatePrediction scores a single factor against a match context
// @Summary Create Prediction
// @Tags Predictions
// @Accept json
// @Produce json
// @Param request body models.PredictRequest true "Factor and context"
// @Success 200 {object} models.Prediction
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /predictions [post]
func (h *Handler) CreatePrediction(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "factor is required")
		return
	}

	pred, err := h.engine.Predict(r.Context(), req.Factor, req.Context)
	if err != nil {
		h.engineError(w, err)
		return
	}

	h.pushRecent(r.Context(), pred)
	h.jsonResponse(w, http.StatusOK, pred)
}

// CreateMultiPrediction combines several factors into one consensus prediction
// @Summary Create Multi-Factor Prediction
// @Tags Predictions
// @Accept json
// @Produce json
// @Param request body models.PredictMultiRequest true "Factors, context and optional weights"
// @Success 200 {object} models.CombinedPrediction
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /predictions/multi [post]
func (h *Handler) CreateMultiPrediction(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.PredictMultiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "at least one factor is required")
		return
	}

	combined, err := h.engine.PredictMultiple(r.Context(), req.Factors, req.Context, req.Weights)
	if err != nil {
		h.engineError(w, err)
		return
	}

	h.pushRecent(r.Context(), combined)
	h.jsonResponse(w, http.StatusOK, combined)
}

// RecentPredictions returns the latest predictions from the Redis feed
// @Summary List Recent Predictions
// @Tags Predictions
// @Produce json
// @Success 200 {array} json.RawMessage
// @Router /predictions/recent [get]
func (h *Handler) RecentPredictions(w http.ResponseWriter, r *http.Request) {
	if h.redis == nil {
		h.jsonResponse(w, http.StatusOK, []json.RawMessage{})
		return
	}

	entries, err := h.redis.LRange(r.Context(), recentFeedKey, 0, int64(h.recentFeedSize)-1).Result()
	if err != nil {
		h.logger.Warnw("Failed to read recent predictions feed", "error", err)
		h.jsonResponse(w, http.StatusOK, []json.RawMessage{})
		return
	}

	out := make([]json.RawMessage, 0, len(entries))
	for _, entry := range entries {
		out = append(out, json.RawMessage(entry))
	}
	h.jsonResponse(w, http.StatusOK, out)
}

// ListSports enumerates the supported sport/competition registry
// @Summary List Supported Sports
// @Tags Predictions
// @Produce json
// @Success 200 {array} models.SportInfo
// @Router /sports [get]
func (h *Handler) ListSports(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, h.engine.Sports())
}

// engineError maps engine validation errors to client errors; anything else
// is a server fault.
func (h *Handler) engineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidFactor),
		errors.Is(err, engine.ErrInvalidFactorCount),
		errors.Is(err, engine.ErrInvalidWeights):
		h.errorResponse(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Errorw("Prediction failed", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to compute prediction")
	}
}

// pushRecent appends a prediction to the Redis feed. Feed failures are
// logged only; the prediction response is already committed.
func (h *Handler) pushRecent(ctx context.Context, pred interface{}) {
	if h.redis == nil {
		return
	}

	data, err := json.Marshal(pred)
	if err != nil {
		return
	}

	pipe := h.redis.Pipeline()
	pipe.LPush(ctx, recentFeedKey, data)
	pipe.LTrim(ctx, recentFeedKey, 0, int64(h.recentFeedSize)-1)
	if _, err := pipe.Exec(ctx); err != nil {
		h.logger.Warnw("Failed to update recent predictions feed", "error", err)
	}
}

package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

type contextKey string

const tierKey contextKey = "subscription_tier"

// hashAPIKey creates a SHA256 hash of an API key for secure storage lookup
func hashAPIKey(key string) string {
	h := sha256.New()
	h.Write([]byte(key))
	return hex.EncodeToString(h.Sum(nil))
}

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check all dependencies
	checks := map[string]bool{
		"postgres":   h.pgReady(ctx),
		"clickhouse": h.ch != nil && h.ch.Ping(ctx) == nil,
		"redis":      h.redis != nil && h.redis.Ping(ctx).Err() == nil,
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":  allHealthy,
		"checks": checks,
	})
}

func (h *Handler) pgReady(ctx context.Context) bool {
	if h.pg == nil {
		return false
	}
	_, err := h.pg.Exec(ctx, "SELECT 1")
	return err == nil
}

// APIKeyMiddleware validates API keys against the api_keys table and attaches
// the caller's subscription tier to the request context.
func (h *Handler) APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-API-Key")
		if key == "" {
			h.errorResponse(w, http.StatusUnauthorized, "Missing API key")
			return
		}

		ctx := r.Context()
		var tier string
		err := h.pg.QueryRow(ctx,
			"SELECT tier FROM api_keys WHERE key_hash = $1 AND is_active = true",
			hashAPIKey(key)).Scan(&tier)
		if err != nil {
			h.logger.Warnw("API key lookup failed", "error", err)
			h.errorResponse(w, http.StatusUnauthorized, "Invalid API key")
			return
		}

		ctx = context.WithValue(ctx, tierKey, tier)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RateLimitMiddleware enforces a fixed per-minute request window keyed by API
// key hash, with the limit chosen by subscription tier. Redis being down
// fails open: rate limiting is protection, not a correctness dependency.
func (h *Handler) RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.redis == nil {
			next.ServeHTTP(w, r)
			return
		}

		tier, _ := r.Context().Value(tierKey).(string)
		limit, ok := h.rateLimits[tier]
		if !ok {
			limit = h.rateLimits["free"]
		}

		window := time.Now().Unix() / 60
		bucket := fmt.Sprintf("ratelimit:%s:%s:%d", hashAPIKey(r.Header.Get("X-API-Key")), tier, window)

		count, err := h.redis.Incr(r.Context(), bucket).Result()
		if err != nil {
			h.logger.Warnw("Rate limit check failed, allowing request", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			h.redis.Expire(r.Context(), bucket, time.Minute)
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
		if count > int64(limit) {
			h.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

package engine

import (
	"strings"
	"sync"

	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/models"
)

// predictionCache memoizes completed predictions for the lifetime of the
// engine. PredictMultiple fans out across goroutines, so access is guarded.
// Entries are replaced, never mutated: callers may hold returned predictions
// safely.
type predictionCache struct {
	mu       sync.RWMutex
	single   map[string]*models.Prediction
	combined map[string]*models.CombinedPrediction
}

func newPredictionCache() *predictionCache {
	return &predictionCache{
		single:   make(map[string]*models.Prediction),
		combined: make(map[string]*models.CombinedPrediction),
	}
}

func (c *predictionCache) getSingle(key string) (*models.Prediction, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.single[key]
	return p, ok
}

func (c *predictionCache) setSingle(key string, p *models.Prediction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.single[key] = p
}

func (c *predictionCache) getCombined(key string) (*models.CombinedPrediction, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.combined[key]
	return p, ok
}

func (c *predictionCache) setCombined(key string, p *models.CombinedPrediction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.combined[key] = p
}

// contextSignature identifies a context for cache keying.
func contextSignature(c models.Context) string {
	return c.Sport + "|" + c.Competition + "|" + strings.Join(c.Participants, ",")
}

func singleKey(factor string, c models.Context) string {
	return factor + "|" + contextSignature(c)
}

// combinedKey joins the ordered factor list; order matters, two calls with
// reordered factors are distinct entries.
func combinedKey(factors []string, c models.Context) string {
	return strings.Join(factors, " || ") + "|" + contextSignature(c)
}

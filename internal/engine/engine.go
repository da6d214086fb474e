// Package engine implements the heuristic multi-factor outcome-prediction
// pipeline: factor classification, context evaluation, historical learning,
// probability synthesis and insight generation, plus the weighted multi-factor
// consensus on top.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/models"
)

// Validation errors. Raised before any analysis runs and never leave partial
// cache or persistence state behind.
var (
	ErrInvalidFactor      = errors.New("factor text must be non-empty")
	ErrInvalidFactorCount = errors.New("factor count outside allowed range")
	ErrInvalidWeights     = errors.New("weights must match factors and carry positive total weight")
)

// DefaultMaxFactors caps a multi-factor call unless configured otherwise.
const DefaultMaxFactors = 5

// PredictionStore is the engine's view of the append-only persistence
// collaborator. Both methods may fail freely; the engine degrades gracefully.
type PredictionStore interface {
	Insert(ctx context.Context, rec *models.PredictionRecord) error
	FindRecent(ctx context.Context, factor, sport, competition string, limit int) ([]models.PredictionRecord, error)
}

// Config configures an Engine. Store may be nil, which disables persistence
// and history learning but keeps predictions fully functional.
type Config struct {
	Store      PredictionStore
	Logger     *zap.Logger
	MaxFactors int
	// Seed pins the participant-strength jitter source. Zero means seed from
	// the wall clock.
	Seed int64
	// ExtraSports extends the built-in sport registry (sport -> competitions,
	// lower-cased).
	ExtraSports map[string][]string
}

// Engine is a self-contained prediction engine value: it owns its cache,
// store handle and random source. No package-level singleton exists; share an
// instance by passing it around.
type Engine struct {
	store      PredictionStore
	logger     *zap.SugaredLogger
	cache      *predictionCache
	evaluator  *contextEvaluator
	registry   map[string][]string
	maxFactors int
}

func New(cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.MaxFactors <= 0 {
		cfg.MaxFactors = DefaultMaxFactors
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	registry := make(map[string][]string, len(defaultSports)+len(cfg.ExtraSports))
	for sport, comps := range defaultSports {
		registry[sport] = comps
	}
	for sport, comps := range cfg.ExtraSports {
		registry[strings.ToLower(sport)] = comps
	}

	return &Engine{
		store:      cfg.Store,
		logger:     cfg.Logger.Sugar(),
		cache:      newPredictionCache(),
		evaluator:  newContextEvaluator(registry, rand.New(rand.NewSource(seed))),
		registry:   registry,
		maxFactors: cfg.MaxFactors,
	}
}

// MaxFactors returns the configured multi-factor cap.
func (e *Engine) MaxFactors() int {
	return e.maxFactors
}

// Sports returns a copy of the sport registry for read-only exposure.
func (e *Engine) Sports() []models.SportInfo {
	out := make([]models.SportInfo, 0, len(e.registry))
	for sport, comps := range e.registry {
		out = append(out, models.SportInfo{
			Sport:        sport,
			Competitions: append([]string(nil), comps...),
			DrawCapable:  isDrawCapable(sport),
		})
	}
	return out
}

// Predict scores one free-text factor against a match context.
// Persistence failures are logged and never surfaced: the prediction is still
// returned, just not durably recorded.
func (e *Engine) Predict(ctx context.Context, factor string, mc models.Context) (*models.Prediction, error) {
	factor = strings.TrimSpace(factor)
	if factor == "" {
		return nil, ErrInvalidFactor
	}
	mc = normalizeContext(mc)

	key := singleKey(factor, mc)
	if cached, ok := e.cache.getSingle(key); ok {
		cacheHits.Inc()
		return cached, nil
	}

	start := time.Now()
	cls := classifyFactor(factor)
	ev := e.evaluator.evaluate(mc)
	hist := e.learnHistory(ctx, factor, mc)
	probs := synthesize(cls, ev, hist, mc.Sport)

	pred := &models.Prediction{
		ID:            uuid.NewString(),
		Factor:        factor,
		Context:       mc,
		Probabilities: probs,
		Confidence:    computeConfidence(cls, ev, hist),
		Insights:      buildInsights(mc, cls, ev, probs),
		CreatedAt:     time.Now().UTC(),
	}
	synthesisDuration.Observe(time.Since(start).Seconds())
	predictionsComputed.Inc()

	e.cache.setSingle(key, pred)
	e.persist(ctx, singleRecord(pred))

	return pred, nil
}

// PredictMultiple scores each factor independently (concurrently) and folds
// the results into one weighted consensus. A nil weights slice assigns equal
// weight; supplied weights need not sum to 1.
func (e *Engine) PredictMultiple(ctx context.Context, factors []string, mc models.Context, weights []float64) (*models.CombinedPrediction, error) {
	if len(factors) == 0 || len(factors) > e.maxFactors {
		return nil, ErrInvalidFactorCount
	}
	// Validate everything up front so no sub-prediction runs on bad input.
	for _, f := range factors {
		if strings.TrimSpace(f) == "" {
			return nil, ErrInvalidFactor
		}
	}
	if weights == nil {
		weights = make([]float64, len(factors))
		for i := range weights {
			weights[i] = 1.0 / float64(len(factors))
		}
	} else if len(weights) != len(factors) {
		return nil, ErrInvalidWeights
	}
	var totalWeight float64
	for _, w := range weights {
		totalWeight += w
	}
	if totalWeight <= 0 {
		return nil, ErrInvalidWeights
	}

	mc = normalizeContext(mc)
	key := combinedKey(factors, mc)
	if cached, ok := e.cache.getCombined(key); ok {
		cacheHits.Inc()
		return cached, nil
	}

	// Fan out the independent sub-predictions. A persistence failure inside
	// one sub-prediction never aborts the others (Predict swallows it).
	predictions := make([]*models.Prediction, len(factors))
	g, gctx := errgroup.WithContext(ctx)
	for i, factor := range factors {
		i, factor := i, factor
		g.Go(func() error {
			pred, err := e.Predict(gctx, factor, mc)
			if err != nil {
				return err
			}
			predictions[i] = pred
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var home, away, draw, confidence float64
	for i, pred := range predictions {
		home += pred.Probabilities.Home * weights[i]
		away += pred.Probabilities.Away * weights[i]
		draw += pred.Probabilities.Draw * weights[i]
		confidence += pred.Confidence * weights[i]
	}
	home /= totalWeight
	away /= totalWeight
	draw /= totalWeight
	confidence = clamp01(confidence / totalWeight)

	probs := roundProbabilities(home, away, draw)

	weighted := make([]models.WeightedFactor, len(factors))
	for i, factor := range factors {
		weighted[i] = models.WeightedFactor{Factor: factor, Weight: weights[i] / totalWeight}
	}

	combined := &models.CombinedPrediction{
		ID:            uuid.NewString(),
		Factors:       weighted,
		Context:       mc,
		Probabilities: probs,
		Confidence:    round4(confidence),
		Insights:      combinedInsights(mc, weighted, probs, confidence),
		CreatedAt:     time.Now().UTC(),
	}
	combinedComputed.Inc()

	e.cache.setCombined(key, combined)
	e.persist(ctx, combinedRecord(combined))

	return combined, nil
}

// computeConfidence blends classifier reliability and context quality, pulled
// toward the historical average when history exists. Always in [0, 1].
func computeConfidence(cls models.FactorClassification, ev models.ContextEvaluation, hist models.HistorySignal) float64 {
	base := (cls.Reliability + ev.OverallQuality) / 2
	if hist.HasHistory {
		base = 0.7*base + 0.3*hist.HistoryConfidence
	}
	return round4(clamp01(base))
}

// combinedInsights renders the consensus explanation: headline, most
// influential factor, optional draw note, confidence qualifier.
func combinedInsights(mc models.Context, factors []models.WeightedFactor, probs models.Probabilities, confidence float64) []string {
	insights := make([]string, 0, 4)
	insights = append(insights, headline(mc, probs))

	// Highest weight wins; ties break to the first occurrence.
	top := 0
	for i := 1; i < len(factors); i++ {
		if factors[i].Weight > factors[top].Weight {
			top = i
		}
	}
	insights = append(insights, mostInfluentialInsight(factors[top]))

	if probs.Draw > drawInsightThreshold {
		insights = append(insights, drawInsight(probs))
	}

	insights = append(insights, confidenceInsight(confidence))
	return insights
}

func mostInfluentialInsight(f models.WeightedFactor) string {
	return fmt.Sprintf("Most influential factor: %q (weight %.2f).", f.Factor, f.Weight)
}

func confidenceInsight(confidence float64) string {
	level := "low"
	switch {
	case confidence > 0.7:
		level = "high"
	case confidence > 0.5:
		level = "moderate"
	}
	return fmt.Sprintf("Overall confidence in this consensus is %s (%.2f).", level, confidence)
}

// persist writes a record through the store, degrading gracefully on failure.
func (e *Engine) persist(ctx context.Context, rec *models.PredictionRecord) {
	if e.store == nil {
		return
	}
	if err := e.store.Insert(ctx, rec); err != nil {
		persistenceFailures.Inc()
		e.logger.Warnw("Failed to persist prediction",
			"error", err,
			"prediction_id", rec.ID,
			"kind", rec.Kind,
		)
	}
}

// normalizeContext applies the documented defaults without mutating the
// caller's value.
func normalizeContext(c models.Context) models.Context {
	if strings.TrimSpace(c.Sport) == "" {
		c.Sport = "general"
	}
	if strings.TrimSpace(c.Competition) == "" {
		c.Competition = "all"
	}
	if c.ReferenceDate.IsZero() {
		c.ReferenceDate = time.Now().UTC()
	}
	return c
}

func singleRecord(p *models.Prediction) *models.PredictionRecord {
	return &models.PredictionRecord{
		ID:           p.ID,
		Kind:         models.RecordKindSingle,
		Factor:       p.Factor,
		Sport:        p.Context.Sport,
		Competition:  p.Context.Competition,
		Participants: p.Context.Participants,
		ProbHome:     p.Probabilities.Home,
		ProbAway:     p.Probabilities.Away,
		ProbDraw:     p.Probabilities.Draw,
		Confidence:   p.Confidence,
		Insights:     p.Insights,
		CreatedAt:    p.CreatedAt,
	}
}

func combinedRecord(p *models.CombinedPrediction) *models.PredictionRecord {
	texts := make([]string, len(p.Factors))
	for i, f := range p.Factors {
		texts[i] = f.Factor
	}
	return &models.PredictionRecord{
		ID:           p.ID,
		Kind:         models.RecordKindCombined,
		Factor:       strings.Join(texts, " || "),
		Sport:        p.Context.Sport,
		Competition:  p.Context.Competition,
		Participants: p.Context.Participants,
		ProbHome:     p.Probabilities.Home,
		ProbAway:     p.Probabilities.Away,
		ProbDraw:     p.Probabilities.Draw,
		Confidence:   p.Confidence,
		Insights:     p.Insights,
		CreatedAt:    p.CreatedAt,
	}
}

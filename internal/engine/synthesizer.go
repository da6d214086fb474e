package engine

import (
	"math"

	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/models"
)

// Synthesis constants. The adjustment order and the draw formula are part of
// the engine's contract: callers depend on reproducible shape, so none of
// these steps may be reordered.
const (
	baselineHome = 0.55
	baselineAway = 0.45

	sentimentWeight = 0.2
	contextWeight   = 0.1
	historyWeight   = 0.1
	strengthWeight  = 0.2

	drawFactor = 0.25
)

// synthesize combines the classifier, context and history signals into a
// normalized probability distribution over {home, away, draw}.
func synthesize(cls models.FactorClassification, ev models.ContextEvaluation, hist models.HistorySignal, sport string) models.Probabilities {
	home := baselineHome
	away := baselineAway

	// Sentiment shifts toward the home side when positive, away when negative.
	switch cls.Sentiment {
	case models.SentimentPositive:
		home += cls.Strength * sentimentWeight
		away -= cls.Strength * sentimentWeight
	case models.SentimentNegative:
		away += cls.Strength * sentimentWeight
		home -= cls.Strength * sentimentWeight
	}

	// Low-quality context damps the home advantage.
	contextShift := (0.5 - ev.OverallQuality) * contextWeight
	away += contextShift
	home -= contextShift

	// History bias shifts toward the away side.
	historyShift := hist.HistoricalBias * historyWeight
	away += historyShift
	home -= historyShift

	// Relative participant strength, only meaningful for a two-sided matchup.
	if len(ev.ParticipantStrengths) == 2 {
		strengthShift := (ev.ParticipantStrengths[0] - ev.ParticipantStrengths[1]) * strengthWeight
		home += strengthShift
		away -= strengthShift
	}

	// Two-way renormalization before the draw is considered.
	total := home + away
	home /= total
	away /= total

	draw := 0.0
	if isDrawCapable(sport) {
		draw = drawFactor * (1 - math.Abs(home-away))
		total = home + away + draw
		home /= total
		away /= total
		draw /= total
	}

	return roundProbabilities(home, away, draw)
}

// roundProbabilities rounds for presentation while preserving the sum-to-1
// invariant: home and draw are rounded, away absorbs the remainder.
func roundProbabilities(home, away, draw float64) models.Probabilities {
	h := round4(home)
	d := round4(draw)
	return models.Probabilities{
		Home: h,
		Away: round4(1 - h - d),
		Draw: d,
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package models

import "time"

// Factor type categories, in classification priority order.
const (
	FactorPerformance   = "performance"
	FactorPlayer        = "player"
	FactorSituational   = "situational"
	FactorStatistical   = "statistical"
	FactorExternal      = "external"
	FactorPsychological = "psychological"
	FactorGeneral       = "general"
)

// Sentiment values for a classified factor.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Context is the match envelope a factor is evaluated within.
// The first participant, if present, is treated as the home side.
type Context struct {
	Sport         string    `json:"sport"`
	Competition   string    `json:"competition"`
	Participants  []string  `json:"participants,omitempty"`
	ReferenceDate time.Time `json:"reference_date,omitempty"`
}

// FactorClassification is the deterministic breakdown of a free-text factor.
type FactorClassification struct {
	Type        string   `json:"type"`
	Strength    float64  `json:"strength"`
	Reliability float64  `json:"reliability"`
	Sentiment   string   `json:"sentiment"`
	Complexity  float64  `json:"complexity"`
	Keywords    []string `json:"keywords"`
}

// ContextEvaluation carries the context-quality signals used during synthesis.
type ContextEvaluation struct {
	SportSupported       bool      `json:"sport_supported"`
	CompetitionSupported bool      `json:"competition_supported"`
	ParticipantStrengths []float64 `json:"participant_strengths"`
	OverallQuality       float64   `json:"overall_quality"`
}

// HistorySignal summarizes prior stored predictions for the same factor+context.
type HistorySignal struct {
	HasHistory        bool    `json:"has_history"`
	HistoryConfidence float64 `json:"history_confidence"`
	HistoricalBias    float64 `json:"historical_bias"` // in [-0.5, 0.5]
}

// Probabilities is a normalized win/draw/loss distribution.
// Draw is exactly 0 for sports that structurally disallow a draw.
type Probabilities struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
	Draw float64 `json:"draw"`
}

// Prediction is the outcome of scoring a single factor against a context.
// Immutable once returned; persisted verbatim.
type Prediction struct {
	ID            string        `json:"id"`
	Factor        string        `json:"factor"`
	Context       Context       `json:"context"`
	Probabilities Probabilities `json:"probabilities"`
	Confidence    float64       `json:"confidence"`
	Insights      []string      `json:"insights"`
	CreatedAt     time.Time     `json:"created_at"`
}

// WeightedFactor pairs an input factor with its normalized weight in a consensus.
type WeightedFactor struct {
	Factor string  `json:"factor"`
	Weight float64 `json:"weight"`
}

// CombinedPrediction is the weighted consensus over several single-factor predictions.
type CombinedPrediction struct {
	ID            string           `json:"id"`
	Factors       []WeightedFactor `json:"factors"`
	Context       Context          `json:"context"`
	Probabilities Probabilities    `json:"probabilities"`
	Confidence    float64          `json:"confidence"`
	Insights      []string         `json:"insights"`
	CreatedAt     time.Time        `json:"created_at"`
}

// Prediction record kinds as stored.
const (
	RecordKindSingle   = "single"
	RecordKindCombined = "combined"
)

// PredictionRecord is the flattened row written to the append-only store.
type PredictionRecord struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Factor       string    `json:"factor"`
	Sport        string    `json:"sport"`
	Competition  string    `json:"competition"`
	Participants []string  `json:"participants"`
	ProbHome     float64   `json:"prob_home"`
	ProbAway     float64   `json:"prob_away"`
	ProbDraw     float64   `json:"prob_draw"`
	Confidence   float64   `json:"confidence"`
	Insights     []string  `json:"insights"`
	CreatedAt    time.Time `json:"created_at"`
}

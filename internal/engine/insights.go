package engine

import (
	"fmt"
	"math"

	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/models"
)

// drawInsightThreshold gates the optional draw sentence.
const drawInsightThreshold = 0.15

// typeInsights maps a factor type to its reliability/impact sentence.
// Parameterized by (reliability*100, strength*100).
var typeInsights = map[string]string{
	models.FactorPerformance:   "Recent-performance factors are among the most dependable signals (%.0f%% reliability, %.0f%% impact).",
	models.FactorPlayer:        "Player availability factors carry %.0f%% reliability but hinge on lineup confirmation (%.0f%% impact).",
	models.FactorSituational:   "Situational factors such as venue and scheduling show %.0f%% reliability with %.0f%% impact on outcomes.",
	models.FactorStatistical:   "Statistical factors are the most reliable category tracked (%.0f%% reliability, %.0f%% impact).",
	models.FactorExternal:      "External conditions are volatile: %.0f%% reliability and a modest %.0f%% impact.",
	models.FactorPsychological: "Psychological factors are hard to verify, rating %.0f%% reliability and %.0f%% impact.",
	models.FactorGeneral:       "Unclassified factors default to %.0f%% reliability with %.0f%% impact until more signal is available.",
}

// buildInsights renders the ordered explanation for a single-factor
// prediction. Index 0 is always the headline naming the favored side.
func buildInsights(c models.Context, cls models.FactorClassification, ev models.ContextEvaluation, p models.Probabilities) []string {
	insights := make([]string, 0, 4)

	insights = append(insights, headline(c, p))
	insights = append(insights, relevanceInsight(c, cls, ev))
	if p.Draw > drawInsightThreshold {
		insights = append(insights, drawInsight(p))
	}
	insights = append(insights, typeInsight(cls))

	return insights
}

func headline(c models.Context, p models.Probabilities) string {
	favored, other := favoredSides(c, p)
	pct := math.Max(p.Home, p.Away) * 100
	if other != "" {
		return fmt.Sprintf("%s is favored over %s with a %.1f%% chance of winning.", favored, other, pct)
	}
	return fmt.Sprintf("%s has a %.1f%% chance of winning.", favored, pct)
}

// favoredSides names the favored participant and, when a two-sided matchup is
// known, its opponent. Ties go to the home side.
func favoredSides(c models.Context, p models.Probabilities) (favored, other string) {
	home := "The home side"
	away := "the away side"
	if len(c.Participants) > 0 && c.Participants[0] != "" {
		home = c.Participants[0]
	}
	if len(c.Participants) > 1 && c.Participants[1] != "" {
		away = c.Participants[1]
	}

	if p.Home >= p.Away {
		if len(c.Participants) > 1 {
			return home, away
		}
		return home, ""
	}
	if len(c.Participants) > 1 {
		return away, home
	}
	return away, ""
}

func relevanceInsight(c models.Context, cls models.FactorClassification, ev models.ContextEvaluation) string {
	coverage := "limited"
	switch {
	case ev.SportSupported && ev.CompetitionSupported:
		coverage = "full"
	case ev.SportSupported:
		coverage = "partial"
	}
	return fmt.Sprintf("This %s factor has %s coverage for %s (%s) matchups.",
		cls.Type, coverage, c.Sport, c.Competition)
}

func drawInsight(p models.Probabilities) string {
	return fmt.Sprintf("A draw is a realistic outcome at %.1f%% probability.", p.Draw*100)
}

func typeInsight(cls models.FactorClassification) string {
	template, ok := typeInsights[cls.Type]
	if !ok {
		template = typeInsights[models.FactorGeneral]
	}
	return fmt.Sprintf(template, cls.Reliability*100, cls.Strength*100)
}

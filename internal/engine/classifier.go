package engine

import (
	"strings"

	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/models"
)

// factorCategory is one row of the classification rule table. Categories are
// checked in slice order; the first keyword hit wins, which keeps ties
// deterministic across runs.
type factorCategory struct {
	name        string
	strength    float64
	reliability float64
	keywords    []string
}

var factorCategories = []factorCategory{
	{
		name:        models.FactorPerformance,
		strength:    0.8,
		reliability: 0.85,
		keywords: []string{
			"form", "record", "streak", "results", "momentum", "performance",
			"winning run", "losing run", "recent games", "last five", "last ten",
		},
	},
	{
		name:        models.FactorPlayer,
		strength:    0.75,
		reliability: 0.8,
		keywords: []string{
			"player", "striker", "goalkeeper", "quarterback", "pitcher", "captain",
			"lineup", "squad", "roster", "star", "top scorer", "injury", "injured",
			"suspended", "returning",
		},
	},
	{
		name:        models.FactorSituational,
		strength:    0.7,
		reliability: 0.75,
		keywords: []string{
			"home advantage", "venue", "travel", "schedule", "rest", "back-to-back",
			"derby", "rivalry", "must-win", "playoff", "relegation", "altitude",
		},
	},
	{
		name:        models.FactorStatistical,
		strength:    0.85,
		reliability: 0.9,
		keywords: []string{
			"average", "percentage", "ratio", "rate", "statistics", "stats",
			"expected goals", "xg", "possession", "conversion", "per game",
		},
	},
	{
		name:        models.FactorExternal,
		strength:    0.6,
		reliability: 0.65,
		keywords: []string{
			"weather", "rain", "wind", "snow", "pitch condition", "referee",
			"crowd", "attendance", "transfer", "ownership", "stadium",
		},
	},
	{
		name:        models.FactorPsychological,
		strength:    0.65,
		reliability: 0.7,
		keywords: []string{
			"pressure", "morale", "motivation", "mental", "nerves", "revenge",
			"complacency", "belief", "momentum shift", "choke",
		},
	},
}

// Sentiment word lists. Scanned independently of the category table; the
// first list with a hit decides, positive checked before negative.
var (
	positiveWords = []string{
		"strong", "excellent", "dominant", "unbeaten", "impressive", "superb",
		"confident", "clinical", "thriving", "outstanding", "surging",
	}
	negativeWords = []string{
		"weak", "poor", "struggling", "winless", "fatigued", "depleted",
		"slumping", "rusty", "demoralized", "injured", "suspended",
	}
)

// stopWords are dropped from the keyword set along with words of length <= 2.
var stopWords = map[string]bool{
	"the": true, "and": true, "has": true, "have": true, "had": true,
	"for": true, "with": true, "from": true, "this": true, "that": true,
	"are": true, "was": true, "were": true, "will": true, "been": true,
	"but": true, "not": true, "its": true, "his": true, "her": true,
	"their": true, "they": true, "them": true, "when": true, "what": true,
	"who": true, "how": true, "all": true, "any": true, "can": true,
	"could": true, "should": true, "would": true, "into": true, "over": true,
	"under": true, "more": true, "most": true, "than": true, "then": true,
	"out": true, "off": true, "our": true, "your": true,
}

// classifyFactor derives a classification from arbitrary factor text. It never
// fails: empty or unmatched text falls through to the general category.
func classifyFactor(text string) models.FactorClassification {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)
	words := strings.Fields(lower)

	cls := models.FactorClassification{
		Type:        models.FactorGeneral,
		Strength:    0.5,
		Reliability: 0.5,
		Sentiment:   models.SentimentNeutral,
		Complexity:  complexity(len(words)),
		Keywords:    extractKeywords(words),
	}
	if trimmed == "" {
		return cls
	}

	for _, cat := range factorCategories {
		if matchesAny(lower, cat.keywords) {
			cls.Type = cat.name
			cls.Strength = cat.strength
			cls.Reliability = cat.reliability
			break
		}
	}

	if matchesAny(lower, positiveWords) {
		cls.Sentiment = models.SentimentPositive
	} else if matchesAny(lower, negativeWords) {
		cls.Sentiment = models.SentimentNegative
	}

	return cls
}

func matchesAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func complexity(wordCount int) float64 {
	c := float64(wordCount) / 10.0
	if c > 1 {
		return 1
	}
	return c
}

func extractKeywords(words []string) []string {
	keywords := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?\"'()")
		if len(w) <= 2 || stopWords[w] {
			continue
		}
		keywords = append(keywords, w)
	}
	return keywords
}

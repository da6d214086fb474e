package engine

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/models"
)

// Confidence contributed by a supported vs unsupported sport/competition lookup.
const (
	supportedConfidence   = 0.8
	unsupportedConfidence = 0.5
)

// Participant strength is 0.5 plus a bounded jitter. The jitter is a stand-in
// for real team-strength data and is the only non-deterministic input in the
// pipeline, so it lives behind a seedable source.
const strengthJitter = 0.2

// defaultSports maps each supported sport to its known competitions,
// lower-cased. The competition "all" is accepted for any supported sport.
var defaultSports = map[string][]string{
	"soccer": {
		"premier league", "la liga", "serie a", "bundesliga", "ligue 1",
		"champions league", "europa league", "mls", "world cup",
	},
	"football":   {"nfl", "ncaa", "cfl"},
	"basketball": {"nba", "wnba", "euroleague", "ncaa"},
	"baseball":   {"mlb", "npb", "kbo"},
	"hockey":     {"nhl", "khl", "shl"},
	"tennis":     {"atp", "wta", "grand slam"},
	"mma":        {"ufc", "bellator", "one"},
}

// drawCapableSports lists the football-family sports whose matches can
// structurally end level. Everything else gets draw == 0 exactly.
var drawCapableSports = map[string]bool{
	"soccer":   true,
	"football": true,
}

// contextEvaluator estimates context quality and participant strengths.
// The rand source is shared across concurrent evaluations, hence the mutex.
type contextEvaluator struct {
	registry map[string][]string

	mu  sync.Mutex
	rng *rand.Rand
}

func newContextEvaluator(registry map[string][]string, rng *rand.Rand) *contextEvaluator {
	return &contextEvaluator{registry: registry, rng: rng}
}

// evaluate never fails: unsupported sports and competitions only lower the
// resulting quality, they are not errors.
func (e *contextEvaluator) evaluate(c models.Context) models.ContextEvaluation {
	sport := strings.ToLower(c.Sport)
	competition := strings.ToLower(c.Competition)

	competitions, sportSupported := e.registry[sport]
	competitionSupported := false
	if sportSupported {
		if competition == "all" {
			competitionSupported = true
		} else {
			for _, known := range competitions {
				if known == competition {
					competitionSupported = true
					break
				}
			}
		}
	}

	sportConfidence := unsupportedConfidence
	if sportSupported {
		sportConfidence = supportedConfidence
	}
	competitionConfidence := unsupportedConfidence
	if competitionSupported {
		competitionConfidence = supportedConfidence
	}

	strengths := make([]float64, len(c.Participants))
	for i := range c.Participants {
		strengths[i] = 0.5 + e.jitter()
	}

	return models.ContextEvaluation{
		SportSupported:       sportSupported,
		CompetitionSupported: competitionSupported,
		ParticipantStrengths: strengths,
		OverallQuality:       (sportConfidence + competitionConfidence) / 2,
	}
}

func (e *contextEvaluator) jitter() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Float64()*2*strengthJitter - strengthJitter
}

func isDrawCapable(sport string) bool {
	return drawCapableSports[strings.ToLower(sport)]
}

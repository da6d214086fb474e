package engine

import (
	"context"

	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/models"
)

// historyLookback caps how many prior predictions feed the history signal.
const historyLookback = 10

// stronglyFavorableThreshold marks a stored prediction as strongly favoring
// one side.
const stronglyFavorableThreshold = 0.6

// learnHistory derives a bias signal from previously stored predictions whose
// factor text, sport and competition match exactly. Store failures are
// swallowed: the engine must keep answering when persistence is down, it just
// loses the historical adjustment.
func (e *Engine) learnHistory(ctx context.Context, factor string, c models.Context) models.HistorySignal {
	neutral := models.HistorySignal{HasHistory: false, HistoryConfidence: 0.5, HistoricalBias: 0}

	if e.store == nil {
		return neutral
	}

	records, err := e.store.FindRecent(ctx, factor, c.Sport, c.Competition, historyLookback)
	if err != nil {
		historyLookupFailures.Inc()
		e.logger.Debugw("History lookup failed, proceeding without history",
			"error", err,
			"factor", factor,
			"sport", c.Sport,
		)
		return neutral
	}
	if len(records) == 0 {
		return neutral
	}

	var confidenceSum float64
	var stronglyFavorable int
	for _, rec := range records {
		confidenceSum += rec.Confidence
		if rec.ProbHome > stronglyFavorableThreshold || rec.ProbAway > stronglyFavorableThreshold {
			stronglyFavorable++
		}
	}

	return models.HistorySignal{
		HasHistory:        true,
		HistoryConfidence: confidenceSum / float64(len(records)),
		HistoricalBias:    float64(stronglyFavorable)/float64(len(records)) - 0.5,
	}
}

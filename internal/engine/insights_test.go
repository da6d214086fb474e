package engine

import (
	"strings"
	"testing"

	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/models"
)

func TestBuildInsightsHeadlineNamesBothTeams(t *testing.T) {
	c := models.Context{
		Sport:        "soccer",
		Competition:  "Premier League",
		Participants: []string{"Manchester City", "Liverpool"},
	}
	cls := classifyFactor("Liverpool has better defensive record away from home")
	ev := models.ContextEvaluation{SportSupported: true, CompetitionSupported: true, OverallQuality: 0.8}
	p := models.Probabilities{Home: 0.449, Away: 0.3673, Draw: 0.1837}

	insights := buildInsights(c, cls, ev, p)
	if len(insights) == 0 {
		t.Fatal("insights must never be empty")
	}

	headline := insights[0]
	if !strings.Contains(headline, "Manchester City") || !strings.Contains(headline, "Liverpool") {
		t.Errorf("headline %q must name both participants", headline)
	}
	if !strings.Contains(headline, "44.9%") {
		t.Errorf("headline %q must carry the winning percentage", headline)
	}
}

func TestBuildInsightsOrder(t *testing.T) {
	c := models.Context{Sport: "soccer", Competition: "all", Participants: []string{"A", "B"}}
	cls := models.FactorClassification{Type: models.FactorPerformance, Strength: 0.8, Reliability: 0.85}
	ev := models.ContextEvaluation{SportSupported: true, CompetitionSupported: true}
	p := models.Probabilities{Home: 0.449, Away: 0.3673, Draw: 0.1837}

	insights := buildInsights(c, cls, ev, p)
	if len(insights) != 4 {
		t.Fatalf("insights length = %d, want 4 (headline, relevance, draw, type)", len(insights))
	}
	if !strings.Contains(insights[1], "performance") {
		t.Errorf("insights[1] = %q, want relevance sentence naming the factor type", insights[1])
	}
	if !strings.Contains(insights[2], "draw") && !strings.Contains(insights[2], "A draw") {
		t.Errorf("insights[2] = %q, want draw sentence", insights[2])
	}
	if !strings.Contains(insights[3], "reliability") {
		t.Errorf("insights[3] = %q, want type reliability sentence", insights[3])
	}
}

func TestBuildInsightsDrawThreshold(t *testing.T) {
	c := models.Context{Sport: "basketball", Competition: "nba"}
	cls := neutralClassification()
	ev := models.ContextEvaluation{}

	insights := buildInsights(c, cls, ev, models.Probabilities{Home: 0.55, Away: 0.45})
	if len(insights) != 3 {
		t.Fatalf("insights length = %d, want 3 when draw is not in play", len(insights))
	}
	for _, s := range insights {
		if strings.Contains(s, "draw is a realistic outcome") {
			t.Errorf("unexpected draw sentence: %q", s)
		}
	}
}

func TestBuildInsightsAwayFavored(t *testing.T) {
	c := models.Context{Sport: "soccer", Competition: "all", Participants: []string{"Home FC", "Away FC"}}
	p := models.Probabilities{Home: 0.3, Away: 0.6, Draw: 0.1}

	insights := buildInsights(c, neutralClassification(), models.ContextEvaluation{}, p)
	if !strings.HasPrefix(insights[0], "Away FC") {
		t.Errorf("headline %q must lead with the favored side", insights[0])
	}
	if !strings.Contains(insights[0], "60.0%") {
		t.Errorf("headline %q must carry the away winning percentage", insights[0])
	}
}

func TestBuildInsightsNoParticipants(t *testing.T) {
	c := models.Context{Sport: "general", Competition: "all"}
	insights := buildInsights(c, neutralClassification(), models.ContextEvaluation{}, models.Probabilities{Home: 0.55, Away: 0.45})
	if !strings.HasPrefix(insights[0], "The home side") {
		t.Errorf("headline %q must fall back to generic side naming", insights[0])
	}
}

func TestTypeInsightCoversAllTypes(t *testing.T) {
	types := []string{
		models.FactorPerformance, models.FactorPlayer, models.FactorSituational,
		models.FactorStatistical, models.FactorExternal, models.FactorPsychological,
		models.FactorGeneral,
	}
	for _, typ := range types {
		s := typeInsight(models.FactorClassification{Type: typ, Strength: 0.5, Reliability: 0.5})
		if s == "" || strings.Contains(s, "%!") {
			t.Errorf("type %s produced malformed insight %q", typ, s)
		}
	}
}

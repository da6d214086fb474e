package engine

import (
	"reflect"
	"strings"
	"testing"

	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/models"
)

func TestClassifyFactorTypes(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantType      string
		wantSentiment string
	}{
		{
			name:          "Performance via record",
			text:          "Liverpool has better defensive record away from home",
			wantType:      models.FactorPerformance,
			wantSentiment: models.SentimentNeutral,
		},
		{
			name:          "Player with negative sentiment",
			text:          "Star striker is injured and will miss the match",
			wantType:      models.FactorPlayer,
			wantSentiment: models.SentimentNegative,
		},
		{
			name:          "Situational",
			text:          "Long travel and little rest before the derby",
			wantType:      models.FactorSituational,
			wantSentiment: models.SentimentNeutral,
		},
		{
			name:          "Statistical",
			text:          "Possession percentage averages above sixty per game",
			wantType:      models.FactorStatistical,
			wantSentiment: models.SentimentNeutral,
		},
		{
			name:          "External",
			text:          "Heavy rain expected at the stadium tonight",
			wantType:      models.FactorExternal,
			wantSentiment: models.SentimentNeutral,
		},
		{
			name:          "Psychological",
			text:          "Huge pressure on the visitors after last week",
			wantType:      models.FactorPsychological,
			wantSentiment: models.SentimentNeutral,
		},
		{
			name:          "General with positive sentiment",
			text:          "Dominant showing at home this season",
			wantType:      models.FactorGeneral,
			wantSentiment: models.SentimentPositive,
		},
		{
			name:          "Priority: performance beats player",
			text:          "Goalkeeper form has dipped over recent games",
			wantType:      models.FactorPerformance,
			wantSentiment: models.SentimentNeutral,
		},
		{
			name:          "Empty",
			text:          "   ",
			wantType:      models.FactorGeneral,
			wantSentiment: models.SentimentNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := classifyFactor(tt.text)
			if cls.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", cls.Type, tt.wantType)
			}
			if cls.Sentiment != tt.wantSentiment {
				t.Errorf("Sentiment = %q, want %q", cls.Sentiment, tt.wantSentiment)
			}
			if cls.Strength < 0 || cls.Strength > 1 {
				t.Errorf("Strength = %v, out of [0,1]", cls.Strength)
			}
			if cls.Reliability < 0 || cls.Reliability > 1 {
				t.Errorf("Reliability = %v, out of [0,1]", cls.Reliability)
			}
		})
	}
}

func TestClassifyFactorEmptyDefaults(t *testing.T) {
	cls := classifyFactor("")
	if cls.Type != models.FactorGeneral {
		t.Errorf("Type = %q, want general", cls.Type)
	}
	if cls.Reliability != 0.5 {
		t.Errorf("Reliability = %v, want 0.5", cls.Reliability)
	}
	if cls.Complexity != 0 {
		t.Errorf("Complexity = %v, want 0", cls.Complexity)
	}
	if len(cls.Keywords) != 0 {
		t.Errorf("Keywords = %v, want empty", cls.Keywords)
	}
}

func TestClassifyFactorComplexity(t *testing.T) {
	short := classifyFactor("one two three four five")
	if short.Complexity != 0.5 {
		t.Errorf("Complexity = %v, want 0.5", short.Complexity)
	}

	long := classifyFactor(strings.Repeat("word ", 25))
	if long.Complexity != 1 {
		t.Errorf("Complexity = %v, want capped at 1", long.Complexity)
	}
}

func TestClassifyFactorKeywords(t *testing.T) {
	cls := classifyFactor("The Team has WON at Anfield")
	want := []string{"team", "won", "anfield"}
	if !reflect.DeepEqual(cls.Keywords, want) {
		t.Errorf("Keywords = %v, want %v", cls.Keywords, want)
	}
}

func TestClassifyFactorNonASCII(t *testing.T) {
	cls := classifyFactor("Bayern München hat eine beeindruckende Serie von Siegen")
	if cls.Type == "" || cls.Sentiment == "" {
		t.Fatal("classification must always be populated")
	}
	if cls.Strength < 0 || cls.Strength > 1 || cls.Reliability < 0 || cls.Reliability > 1 {
		t.Errorf("bounds violated: strength=%v reliability=%v", cls.Strength, cls.Reliability)
	}
}

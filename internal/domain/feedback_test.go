package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestOverallScore(t *testing.T) {
	cultural := 4

	tests := []struct {
		name     string
		feedback Feedback
		want     float64
	}{
		{
			"three scores only",
			Feedback{TechnicalScore: 5, CommunicationScore: 4, ProblemSolvingScore: 3},
			4.0,
		},
		{
			"with cultural fit",
			Feedback{TechnicalScore: 5, CommunicationScore: 4, ProblemSolvingScore: 5, CulturalFitScore: &cultural},
			4.5,
		},
		{
			"all minimum",
			Feedback{TechnicalScore: 1, CommunicationScore: 1, ProblemSolvingScore: 1},
			1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.feedback.OverallScore(); got != tt.want {
				t.Errorf("OverallScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFeedbackJSONCarriesOverallScore(t *testing.T) {
	f := &Feedback{
		ID:                  uuid.New(),
		TechnicalScore:      5,
		CommunicationScore:  4,
		ProblemSolvingScore: 3,
		Recommendation:      RecommendHire,
	}

	raw, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got, ok := body["overallScore"].(float64); !ok || got != 4.0 {
		t.Errorf("overallScore = %v, want 4", body["overallScore"])
	}
	if body["id"] != f.ID.String() || body["recommendation"] != string(RecommendHire) {
		t.Error("existing fields missing from serialized feedback")
	}
}

func TestRecommendationPositive(t *testing.T) {
	if !RecommendStrongHire.Positive() || !RecommendHire.Positive() {
		t.Error("STRONG_HIRE and HIRE must be positive")
	}
	if RecommendMaybe.Positive() || RecommendNoHire.Positive() {
		t.Error("MAYBE and NO_HIRE must not be positive")
	}
}

func TestValidRecommendation(t *testing.T) {
	for _, r := range []Recommendation{RecommendStrongHire, RecommendHire, RecommendMaybe, RecommendNoHire} {
		if !ValidRecommendation(r) {
			t.Errorf("ValidRecommendation(%s) = false", r)
		}
	}
	if ValidRecommendation("LEAN_HIRE") {
		t.Error("ValidRecommendation accepted unknown verdict")
	}
}

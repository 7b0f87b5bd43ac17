package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Recommendation is the hiring verdict attached to feedback and screenings.
type Recommendation string

const (
	RecommendStrongHire Recommendation = "STRONG_HIRE"
	RecommendHire       Recommendation = "HIRE"
	RecommendMaybe      Recommendation = "MAYBE"
	RecommendNoHire     Recommendation = "NO_HIRE"
)

// ValidRecommendation reports whether r is a known verdict.
func ValidRecommendation(r Recommendation) bool {
	switch r {
	case RecommendStrongHire, RecommendHire, RecommendMaybe, RecommendNoHire:
		return true
	}
	return false
}

// Positive reports whether the verdict counts toward positive feedback.
func (r Recommendation) Positive() bool {
	return r == RecommendStrongHire || r == RecommendHire
}

// Feedback is one interviewer's structured assessment of one interview.
// At most one feedback exists per (interview, interviewer) pair.
type Feedback struct {
	ID                  uuid.UUID      `json:"id" db:"id"`
	InterviewID         uuid.UUID      `json:"interviewId" db:"interview_id"`
	InterviewerID       uuid.UUID      `json:"interviewerId" db:"interviewer_id"`
	TechnicalScore      int            `json:"technicalScore" db:"technical_score"`
	CommunicationScore  int            `json:"communicationScore" db:"communication_score"`
	ProblemSolvingScore int            `json:"problemSolvingScore" db:"problem_solving_score"`
	CulturalFitScore    *int           `json:"culturalFitScore,omitempty" db:"cultural_fit_score"`
	Strengths           string         `json:"strengths,omitempty" db:"strengths"`
	Weaknesses          string         `json:"weaknesses,omitempty" db:"weaknesses"`
	Comments            string         `json:"comments,omitempty" db:"comments"`
	Recommendation      Recommendation `json:"recommendation" db:"recommendation"`
	SubmittedAt         time.Time      `json:"submittedAt" db:"submitted_at"`
}

// OverallScore is the arithmetic mean of the scores that are present.
func (f *Feedback) OverallScore() float64 {
	sum := f.TechnicalScore + f.CommunicationScore + f.ProblemSolvingScore
	n := 3
	if f.CulturalFitScore != nil {
		sum += *f.CulturalFitScore
		n++
	}
	return float64(sum) / float64(n)
}

// MarshalJSON adds the derived overallScore to every serialized feedback.
func (f *Feedback) MarshalJSON() ([]byte, error) {
	type alias Feedback
	return json.Marshal(struct {
		*alias
		OverallScore float64 `json:"overallScore"`
	}{(*alias)(f), f.OverallScore()})
}

// SubmitFeedbackRequest carries the fields of POST /api/feedback.
type SubmitFeedbackRequest struct {
	InterviewID         uuid.UUID      `json:"interviewId" binding:"required"`
	InterviewerID       uuid.UUID      `json:"interviewerId" binding:"required"`
	TechnicalScore      int            `json:"technicalScore" binding:"required"`
	CommunicationScore  int            `json:"communicationScore" binding:"required"`
	ProblemSolvingScore int            `json:"problemSolvingScore" binding:"required"`
	CulturalFitScore    *int           `json:"culturalFitScore"`
	Strengths           string         `json:"strengths"`
	Weaknesses          string         `json:"weaknesses"`
	Comments            string         `json:"comments"`
	Recommendation      Recommendation `json:"recommendation" binding:"required"`
}

// FeedbackAverages holds the per-candidate mean scores across all feedback
// attached to the candidate's completed interviews.
type FeedbackAverages struct {
	Technical      float64 `json:"technical"`
	Communication  float64 `json:"communication"`
	ProblemSolving float64 `json:"problemSolving"`
	Count          int64   `json:"count"`
}

// InterviewerStats aggregates one interviewer's feedback record.
type InterviewerStats struct {
	AvgTechnicalScore     float64 `json:"avgTechnicalScore"`
	AvgCommunicationScore float64 `json:"avgCommunicationScore"`
	TotalFeedbacks        int64   `json:"totalFeedbacks"`
	StrongHireCount       int64   `json:"strongHireCount"`
}

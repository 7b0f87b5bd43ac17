package domain

import (
	"time"

	"github.com/google/uuid"
)

// AISystemPrincipal is the reserved actor recorded on stage transitions
// performed by the screening pipeline.
const AISystemPrincipal = "AI_SYSTEM"

// AIScreening is an immutable record of one LLM-driven resume analysis.
// A candidate accumulates a historical sequence of screenings.
type AIScreening struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	CandidateID     uuid.UUID      `json:"candidateId" db:"candidate_id"`
	SkillsMatched   string         `json:"skillsMatched" db:"skills_matched"`
	ExperienceYears float64        `json:"experienceYears" db:"experience_years"`
	EducationLevel  string         `json:"educationLevel" db:"education_level"`
	CulturalFit     string         `json:"culturalFit" db:"cultural_fit"`
	MatchScore      int            `json:"matchScore" db:"match_score"`
	AnalysisText    string         `json:"analysisText" db:"analysis_text"`
	Recommendation  Recommendation `json:"recommendation" db:"recommendation"`
	ModelUsed       string         `json:"modelUsed" db:"model_used"`
	ProcessingMs    int64          `json:"processingMs" db:"processing_ms"`
	ScreenedAt      time.Time      `json:"screenedAt" db:"screened_at"`
}

// AnalysisResult is the structured output of the resume analyzer, before
// it is persisted as an AIScreening.
type AnalysisResult struct {
	SkillsMatched   string
	ExperienceYears float64
	EducationLevel  string
	CulturalFit     string
	MatchScore      int
	AnalysisText    string
	Recommendation  Recommendation
}

// BulkScreeningRequest carries the body of POST /api/screenings/bulk.
type BulkScreeningRequest struct {
	CandidateIDs   []uuid.UUID `json:"candidateIds" binding:"required,min=1"`
	JobDescription string      `json:"jobDescription"`
}

// TopCandidate is a dashboard projection row: a candidate joined with the
// maximum match score across their screenings.
type TopCandidate struct {
	CandidateID  uuid.UUID      `json:"candidateId"`
	Name         string         `json:"candidateName"`
	Email        string         `json:"email"`
	CurrentStage CandidateStage `json:"currentStage"`
	MatchScore   int            `json:"matchScore"`
	ScreenedAt   time.Time      `json:"screenedAt"`
}

// ScreeningStatistics summarizes screening activity.
type ScreeningStatistics struct {
	TotalScreenings     int64   `json:"totalScreenings"`
	HighScoreCandidates int64   `json:"highScoreCandidates"`
	AverageScore        float64 `json:"averageScore"`
	ScreeningsToday     int64   `json:"screeningsToday"`
}

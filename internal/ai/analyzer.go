package ai

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

const (
	// maxResumeChars bounds the resume text embedded in the prompt; the
	// model's context window is the constraint.
	maxResumeChars = 4000

	defaultJobDescription = "General software engineering position"
	defaultMatchScore     = 50
)

const promptTemplate = `You are an expert HR recruiter analyzing a candidate's resume.

RESUME CONTENT:
%s

JOB REQUIREMENTS:
%s

Please analyze this resume and provide a structured response in the following format:

SKILLS:
List the technical skills found (one per line, format: "Skill - Proficiency Level - Years")

EXPERIENCE:
Total years of professional experience (just a number)

EDUCATION:
Highest education level and field (one line)

CULTURAL_FIT:
Rate teamwork, leadership, and communication (High/Medium/Low for each)

MATCH_SCORE:
Overall match score from 0-100 (just the number)

ANALYSIS:
Brief summary (2-3 sentences) explaining the match score and key strengths/weaknesses.

RECOMMENDATION:
One of: STRONG_HIRE, HIRE, MAYBE, REJECT

Be concise and format your response EXACTLY as shown above with the section headers.`

// ChatClient is the slice of Client the analyzer needs.
type ChatClient interface {
	Chat(ctx context.Context, model string, messages []Message) (string, error)
}

// Analyzer turns resume text into a structured screening result. When the
// model call or response parsing fails it degrades to a keyword heuristic,
// so Analyze itself never fails.
type Analyzer struct {
	client ChatClient
	model  string
	logger zerolog.Logger
}

func NewAnalyzer(client ChatClient, model string, logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		client: client,
		model:  model,
		logger: logger.With().Str("component", "resume_analyzer").Logger(),
	}
}

// Model is the configured model name, recorded on every screening.
func (a *Analyzer) Model() string {
	return a.model
}

// Analyze runs the model over the resume and parses the sectioned
// response. Any failure along the way falls back to keyword analysis.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jobDescription string) *domain.AnalysisResult {
	a.logger.Info().Int("resume_chars", len(resumeText)).Msg("starting resume analysis")

	prompt := BuildPrompt(resumeText, jobDescription)
	response, err := a.client.Chat(ctx, a.model, []Message{{Role: "user", Content: prompt}})
	if err != nil {
		a.logger.Warn().Err(err).Msg("model call failed, using fallback analysis")
		return FallbackAnalysis(resumeText)
	}

	result, err := parseResponse(response)
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to parse model response, using fallback analysis")
		return FallbackAnalysis(resumeText)
	}

	a.logger.Info().Int("match_score", result.MatchScore).Msg("resume analysis complete")
	return result
}

// BuildPrompt assembles the sectioned analysis prompt. Resumes longer
// than maxResumeChars are truncated with an ellipsis.
func BuildPrompt(resumeText, jobDescription string) string {
	if len(resumeText) > maxResumeChars {
		resumeText = resumeText[:maxResumeChars] + "..."
	}
	if jobDescription == "" {
		jobDescription = defaultJobDescription
	}
	return fmt.Sprintf(promptTemplate, resumeText, jobDescription)
}

var numberPattern = regexp.MustCompile(`(\d+\.?\d*)`)

// parseResponse extracts the structured sections from the model's
// response. An empty SKILLS or ANALYSIS section is an error; the caller
// falls back rather than persist a hollow screening.
func parseResponse(response string) (*domain.AnalysisResult, error) {
	result := &domain.AnalysisResult{
		SkillsMatched:   extractSection(response, "SKILLS:", "EXPERIENCE:"),
		ExperienceYears: extractExperience(response),
		EducationLevel:  extractSection(response, "EDUCATION:", "CULTURAL_FIT:"),
		CulturalFit:     extractSection(response, "CULTURAL_FIT:", "MATCH_SCORE:"),
		MatchScore:      extractMatchScore(response),
		AnalysisText:    extractSection(response, "ANALYSIS:", "RECOMMENDATION:"),
		Recommendation:  extractRecommendation(response),
	}

	if result.SkillsMatched == "" && result.AnalysisText == "" {
		return nil, fmt.Errorf("response contains no recognizable sections")
	}
	if result.AnalysisText == "" {
		result.AnalysisText = "AI analysis completed successfully."
	}
	if result.SkillsMatched == "" {
		result.SkillsMatched = "Skills analysis pending manual review."
	}
	return result, nil
}

// extractSection returns the trimmed text between two headers. An empty
// endMarker means everything to the end of the response.
func extractSection(text, startMarker, endMarker string) string {
	start := strings.Index(text, startMarker)
	if start == -1 {
		return ""
	}
	start += len(startMarker)

	end := len(text)
	if endMarker != "" {
		if idx := strings.Index(text[start:], endMarker); idx != -1 {
			end = start + idx
		}
	}
	return strings.TrimSpace(text[start:end])
}

func extractExperience(text string) float64 {
	section := extractSection(text, "EXPERIENCE:", "EDUCATION:")
	if m := numberPattern.FindString(section); m != "" {
		if years, err := strconv.ParseFloat(m, 64); err == nil {
			return years
		}
	}
	return 0
}

func extractMatchScore(text string) int {
	section := extractSection(text, "MATCH_SCORE:", "ANALYSIS:")
	if m := regexp.MustCompile(`(\d+)`).FindString(section); m != "" {
		if score, err := strconv.Atoi(m); err == nil {
			return clampScore(score)
		}
	}
	return defaultMatchScore
}

// extractRecommendation maps the free-form verdict onto the closed set.
// STRONG_HIRE is checked before HIRE because the latter is a substring of
// the former; REJECT maps to NO_HIRE.
func extractRecommendation(text string) domain.Recommendation {
	rec := strings.ToUpper(extractSection(text, "RECOMMENDATION:", ""))
	switch {
	case strings.Contains(rec, "STRONG_HIRE") || strings.Contains(rec, "STRONG HIRE"):
		return domain.RecommendStrongHire
	case strings.Contains(rec, "NO_HIRE") || strings.Contains(rec, "REJECT"):
		return domain.RecommendNoHire
	case strings.Contains(rec, "MAYBE"):
		return domain.RecommendMaybe
	case strings.Contains(rec, "HIRE"):
		return domain.RecommendHire
	}
	return domain.RecommendMaybe
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// fallbackKeywords are the technical terms counted by the keyword
// heuristic; each match is worth 5 points up to a cap of 30.
var fallbackKeywords = []string{
	"java", "python", "javascript", "react", "spring", "sql",
	"aws", "docker", "kubernetes", "git", "api", "microservices",
}

// FallbackAnalysis is the deterministic keyword heuristic used when the
// model is unreachable or its output cannot be parsed.
func FallbackAnalysis(resumeText string) *domain.AnalysisResult {
	lower := strings.ToLower(resumeText)

	skillCount := 0
	var skills strings.Builder
	for _, keyword := range fallbackKeywords {
		if strings.Contains(lower, keyword) {
			skillCount++
			skills.WriteString(keyword)
			skills.WriteString(" - Mentioned\n")
		}
	}

	var experienceYears float64
	switch {
	case strings.Contains(lower, "senior") || strings.Contains(lower, "lead"):
		experienceYears = 5.0
	case strings.Contains(lower, "junior") || strings.Contains(lower, "intern"):
		experienceYears = 1.0
	default:
		experienceYears = 3.0
	}

	var education string
	switch {
	case strings.Contains(lower, "master") || strings.Contains(lower, "phd"):
		education = "Master's degree or higher"
	case strings.Contains(lower, "bachelor") || strings.Contains(lower, "b.tech") || strings.Contains(lower, "b.e"):
		education = "Bachelor's degree"
	default:
		education = "Education information not clearly specified"
	}

	skillBonus := skillCount * 5
	if skillBonus > 30 {
		skillBonus = 30
	}
	matchScore := 40 + skillBonus

	recommendation := domain.RecommendMaybe
	if matchScore >= 70 {
		recommendation = domain.RecommendHire
	}

	return &domain.AnalysisResult{
		SkillsMatched:   skills.String(),
		ExperienceYears: experienceYears,
		EducationLevel:  education,
		CulturalFit:     "Teamwork: Medium, Leadership: Medium, Communication: Medium",
		MatchScore:      matchScore,
		AnalysisText: fmt.Sprintf(
			"Basic analysis completed. Found %d relevant technical skills. "+
				"Resume shows %v years of experience. Further manual review recommended.",
			skillCount, experienceYears),
		Recommendation: recommendation,
	}
}

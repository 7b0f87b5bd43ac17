package domain

// HiringFunnel is the per-stage breakdown with the overall conversion
// rate (hired / total candidates).
type HiringFunnel struct {
	Applied               int64   `json:"applied"`
	Screening             int64   `json:"screening"`
	InterviewScheduled    int64   `json:"interviewScheduled"`
	InterviewCompleted    int64   `json:"interviewCompleted"`
	Hired                 int64   `json:"hired"`
	Rejected              int64   `json:"rejected"`
	TotalCandidates       int64   `json:"totalCandidates"`
	OverallConversionRate float64 `json:"overallConversionRate"`
}

// DashboardStats is the read-only composite projection behind
// GET /api/dashboard.
type DashboardStats struct {
	TotalCandidates         int64                      `json:"totalCandidates"`
	CandidatesThisMonth     int64                      `json:"candidatesThisMonth"`
	InterviewsToday         int64                      `json:"interviewsScheduledToday"`
	PendingFeedbackCount    int64                      `json:"pendingFeedbackCount"`
	CandidatesByStage       map[CandidateStage]int64   `json:"candidatesByStage"`
	RecentActivity          []*RecentActivity          `json:"recentActivity"`
	TopCandidates           []*TopCandidate            `json:"topCandidates"`
	AverageScoreByStage     map[CandidateStage]float64 `json:"averageScoreByStage"`
	Funnel                  *HiringFunnel              `json:"hiringFunnel"`
}

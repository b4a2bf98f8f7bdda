package models

// DoctorAggregate is one doctor's activity over a period.
// Times are in minutes, working hours in hours.
type DoctorAggregate struct {
	ID                 int     `json:"id"`
	LastName           string  `json:"nom"`
	FirstName          string  `json:"prenom"`
	Name               string  `json:"name"`
	UniquePatients     int     `json:"uniquePatients"`
	TotalVisits        int     `json:"totalVisits"`
	NewPatients        int     `json:"newPatients"`
	AvgPatientTime     float64 `json:"avgPatientTime"`
	AvgWaitingTime     float64 `json:"avgWaitingTime"`
	TotalRevenue       float64 `json:"totalRevenue"`
	TotalWorkingHours  float64 `json:"totalWorkingHours"`
	RevenuePerHour     float64 `json:"revenuePerHour"`
	AvgRevenuePerVisit float64 `json:"avgRevenuePerVisit"`
}

// ScoredDoctor adds the composite score and loyalty rate.
type ScoredDoctor struct {
	DoctorAggregate
	GlobalScore float64 `json:"globalScore"`
	LoyaltyRate float64 `json:"loyaltyRate"`
}

// Badge categories.
const (
	BadgeTopPerformer  = "top_performer"
	BadgeTopRevenue    = "meilleur_ca"
	BadgeTopLoyalty    = "meilleure_fidelisation"
	BadgeTopHourlyRate = "meilleur_ca_horaire"
)

// Badge names the best doctor of a category.
type Badge struct {
	Category   string  `json:"category"`
	Title      string  `json:"title"`
	DoctorID   int     `json:"doctorId"`
	DoctorName string  `json:"doctorName"`
	Value      float64 `json:"value"`
}

// ScoreResult is the output of ScoreDoctors.
type ScoreResult struct {
	Scored []ScoredDoctor `json:"doctors"`
	Badges []Badge        `json:"badges"`
}

// Improvement is an improvement axis with the action recommended for it.
type Improvement struct {
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

// SuggestionEntry lists a doctor's strengths and improvement axes.
// Neither list is ever empty.
type SuggestionEntry struct {
	DoctorID     int           `json:"doctorId"`
	DoctorName   string        `json:"doctorName"`
	Strengths    []string      `json:"strengths"`
	Improvements []Improvement `json:"improvements"`
}

// RankEntry is one line of a per-metric KPI ranking.
type RankEntry struct {
	Rank       int     `json:"rank"`
	DoctorID   int     `json:"doctorId"`
	DoctorName string  `json:"doctorName"`
	Value      float64 `json:"value"`
}

// KPIRanking orders the doctors on one metric, best first.
type KPIRanking struct {
	Metric  string      `json:"metric"`
	Label   string      `json:"label"`
	Entries []RankEntry `json:"entries"`
}

// ComparisonRequest is the body of POST /api/doctor-comparison.
type ComparisonRequest struct {
	DoctorIDs []int  `json:"doctorIds"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ComparisonPeriod echoes the requested window.
type ComparisonPeriod struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ComparisonResponse is returned by the comparison endpoint.
type ComparisonResponse struct {
	Doctors     []ScoredDoctor    `json:"doctors"`
	Badges      []Badge           `json:"badges"`
	Suggestions []SuggestionEntry `json:"suggestions"`
	Rankings    []KPIRanking      `json:"rankings"`
	Period      ComparisonPeriod  `json:"period"`
}

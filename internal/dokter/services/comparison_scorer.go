package services

import (
	commonModels "github.com/c14220110/poliklinik-analytics/internal/common/models"
	"github.com/c14220110/poliklinik-analytics/internal/dokter/models"
	"github.com/c14220110/poliklinik-analytics/pkg/utils"
)

// Normalisation ceilings. A metric at or above its ceiling scores 100.
const (
	VisitsCeiling         = 200.0
	RevenuePerHourCeiling = 150.0
	UniquePatientsCeiling = 150.0
	NewPatientsCeiling    = 50.0
	// WaitingTimeCeiling is the wait, in minutes, at which the waiting score hits 0.
	WaitingTimeCeiling = 30.0
)

type scoreComponent struct {
	weight    float64
	normalize func(d models.DoctorAggregate) float64
}

// scoreComponents is summed in this order; weights add up to 1.
var scoreComponents = []scoreComponent{
	{0.20, func(d models.DoctorAggregate) float64 {
		return capped(float64(d.TotalVisits), VisitsCeiling)
	}},
	{0.30, func(d models.DoctorAggregate) float64 {
		return capped(d.RevenuePerHour, RevenuePerHourCeiling)
	}},
	{0.20, func(d models.DoctorAggregate) float64 {
		return capped(float64(d.UniquePatients), UniquePatientsCeiling)
	}},
	{0.15, func(d models.DoctorAggregate) float64 {
		return capped(float64(d.NewPatients), NewPatientsCeiling)
	}},
	{0.15, func(d models.DoctorAggregate) float64 {
		return utils.Clamp(100-(d.AvgWaitingTime/WaitingTimeCeiling)*100, 0, 100)
	}},
}

func capped(v, ceiling float64) float64 {
	return utils.Clamp(v/ceiling*100, 0, 100)
}

// GlobalScore is the weighted 0-100 composite, rounded to one decimal.
// It only depends on the doctor's own metrics.
func GlobalScore(d models.DoctorAggregate) float64 {
	var score float64
	for _, c := range scoreComponents {
		score += c.weight * c.normalize(d)
	}
	return utils.Clamp(utils.Round(score, 1), 0, 100)
}

// LoyaltyRate is the share of unique patients that are not new, in percent.
func LoyaltyRate(d models.DoctorAggregate) float64 {
	if d.UniquePatients <= 0 {
		return 0
	}
	rate := float64(d.UniquePatients-d.NewPatients) / float64(d.UniquePatients) * 100
	return utils.Clamp(rate, 0, 100)
}

type badgeRule struct {
	category string
	title    string
	value    func(d models.ScoredDoctor) float64
}

var badgeRules = []badgeRule{
	{models.BadgeTopPerformer, "Top Performer", func(d models.ScoredDoctor) float64 { return d.GlobalScore }},
	{models.BadgeTopRevenue, "Meilleur CA", func(d models.ScoredDoctor) float64 { return d.TotalRevenue }},
	{models.BadgeTopLoyalty, "Meilleure Fidélisation", func(d models.ScoredDoctor) float64 { return d.LoyaltyRate }},
	{models.BadgeTopHourlyRate, "Meilleur CA Horaire", func(d models.ScoredDoctor) float64 { return d.RevenuePerHour }},
}

// ScoreDoctors scores every doctor and awards one badge per category.
// An empty input yields an empty result; a single doctor cannot be compared.
func ScoreDoctors(records []models.DoctorAggregate) (models.ScoreResult, error) {
	if len(records) == 0 {
		return models.ScoreResult{Scored: []models.ScoredDoctor{}, Badges: []models.Badge{}}, nil
	}
	if len(records) < 2 {
		return models.ScoreResult{}, commonModels.NewValidationError("doctorIds",
			"at least 2 doctors are required for a comparison, got %d", len(records))
	}

	scored := make([]models.ScoredDoctor, 0, len(records))
	for _, d := range records {
		scored = append(scored, models.ScoredDoctor{
			DoctorAggregate: d,
			GlobalScore:     GlobalScore(d),
			LoyaltyRate:     LoyaltyRate(d),
		})
	}
	return models.ScoreResult{Scored: scored, Badges: Badges(scored)}, nil
}

// Badges picks the maximum of each category. Ties go to the earliest doctor.
func Badges(scored []models.ScoredDoctor) []models.Badge {
	badges := make([]models.Badge, 0, len(badgeRules))
	if len(scored) == 0 {
		return badges
	}
	for _, rule := range badgeRules {
		winner := scored[0]
		for _, d := range scored[1:] {
			if rule.value(d) > rule.value(winner) {
				winner = d
			}
		}
		badges = append(badges, models.Badge{
			Category:   rule.category,
			Title:      rule.title,
			DoctorID:   winner.ID,
			DoctorName: winner.Name,
			Value:      rule.value(winner),
		})
	}
	return badges
}

package services

import (
	"sort"

	"github.com/c14220110/poliklinik-analytics/internal/dokter/models"
	"github.com/c14220110/poliklinik-analytics/pkg/utils"
)

type rankingRule struct {
	metric        string
	label         string
	lowerIsBetter bool
	value         func(d models.ScoredDoctor) float64
}

var rankingRules = []rankingRule{
	{"globalScore", "Score global", false, func(d models.ScoredDoctor) float64 { return d.GlobalScore }},
	{"totalRevenue", "Chiffre d'affaires", false, func(d models.ScoredDoctor) float64 { return d.TotalRevenue }},
	{"revenuePerHour", "CA par heure", false, func(d models.ScoredDoctor) float64 { return d.RevenuePerHour }},
	{"totalVisits", "Visites", false, func(d models.ScoredDoctor) float64 { return float64(d.TotalVisits) }},
	{"uniquePatients", "Patients uniques", false, func(d models.ScoredDoctor) float64 { return float64(d.UniquePatients) }},
	{"newPatients", "Nouveaux patients", false, func(d models.ScoredDoctor) float64 { return float64(d.NewPatients) }},
	{"loyaltyRate", "Taux de fidélisation", false, func(d models.ScoredDoctor) float64 { return d.LoyaltyRate }},
	{"avgWaitingTime", "Temps d'attente moyen", true, func(d models.ScoredDoctor) float64 { return d.AvgWaitingTime }},
}

// RankDoctors orders the doctors on each KPI, best first. Equal values keep
// input order and share a rank.
func RankDoctors(scored []models.ScoredDoctor) []models.KPIRanking {
	rankings := make([]models.KPIRanking, 0, len(rankingRules))
	for _, rule := range rankingRules {
		ordered := make([]models.ScoredDoctor, len(scored))
		copy(ordered, scored)
		sort.SliceStable(ordered, func(i, j int) bool {
			if rule.lowerIsBetter {
				return rule.value(ordered[i]) < rule.value(ordered[j])
			}
			return rule.value(ordered[i]) > rule.value(ordered[j])
		})

		entries := make([]models.RankEntry, 0, len(ordered))
		for i, d := range ordered {
			rank := i + 1
			if i > 0 && rule.value(d) == rule.value(ordered[i-1]) {
				rank = entries[i-1].Rank
			}
			entries = append(entries, models.RankEntry{
				Rank:       rank,
				DoctorID:   d.ID,
				DoctorName: d.Name,
				Value:      utils.Round2(rule.value(d)),
			})
		}
		rankings = append(rankings, models.KPIRanking{Metric: rule.metric, Label: rule.label, Entries: entries})
	}
	return rankings
}

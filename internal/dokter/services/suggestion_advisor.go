package services

import (
	"fmt"
	"math"

	"github.com/c14220110/poliklinik-analytics/internal/dokter/models"
)

const (
	FallbackStrength    = "Performance globale dans la moyenne"
	FallbackImprovement = "Maintenir les bonnes pratiques actuelles"
)

// thresholdTolerance absorbs the rounding of mean×factor so a value sitting
// exactly on a threshold counts as reaching it.
const thresholdTolerance = 1e-9

func atLeast(v, bound float64) bool {
	return v >= bound-thresholdTolerance*math.Abs(bound)
}

func atMost(v, bound float64) bool {
	return v <= bound+thresholdTolerance*math.Abs(bound)
}

// advisorMetric compares one doctor metric against the group mean.
// For lowerIsBetter metrics a strength is a value at or below
// strengthFactor×mean and an improvement one at or above improvementFactor×mean.
type advisorMetric struct {
	value             func(d models.ScoredDoctor) float64
	strengthFactor    float64
	improvementFactor float64
	lowerIsBetter     bool
	strength          func(d models.ScoredDoctor, mean float64) string
	improvement       func(d models.ScoredDoctor, mean float64) string
	action            string
}

var advisorMetrics = []advisorMetric{
	{
		value:             func(d models.ScoredDoctor) float64 { return d.TotalRevenue },
		strengthFactor:    1.2,
		improvementFactor: 0.8,
		strength: func(d models.ScoredDoctor, mean float64) string {
			return fmt.Sprintf("Excellent chiffre d'affaires (%.0f%% au-dessus de la moyenne)", (d.TotalRevenue/mean-1)*100)
		},
		improvement: func(d models.ScoredDoctor, mean float64) string {
			return fmt.Sprintf("Chiffre d'affaires à améliorer (%.0f%% en dessous de la moyenne)", (1-d.TotalRevenue/mean)*100)
		},
		action: "Analyser le mix d'actes et les tarifs pratiqués",
	},
	{
		value:             func(d models.ScoredDoctor) float64 { return d.RevenuePerHour },
		strengthFactor:    1.2,
		improvementFactor: 0.8,
		strength: func(d models.ScoredDoctor, _ float64) string {
			return fmt.Sprintf("Productivité horaire élevée (%.2f par heure)", d.RevenuePerHour)
		},
		improvement: func(d models.ScoredDoctor, _ float64) string {
			return fmt.Sprintf("CA horaire inférieur à la moyenne (%.2f par heure)", d.RevenuePerHour)
		},
		action: "Réduire les temps morts entre les consultations",
	},
	{
		value:             func(d models.ScoredDoctor) float64 { return float64(d.TotalVisits) },
		strengthFactor:    1.15,
		improvementFactor: 0.85,
		strength: func(d models.ScoredDoctor, _ float64) string {
			return fmt.Sprintf("Volume d'activité élevé (%d visites)", d.TotalVisits)
		},
		improvement: func(d models.ScoredDoctor, _ float64) string {
			return fmt.Sprintf("Augmenter le nombre de consultations (actuellement %d visites)", d.TotalVisits)
		},
		action: "Ouvrir des créneaux de consultation supplémentaires",
	},
	{
		value:             func(d models.ScoredDoctor) float64 { return d.LoyaltyRate },
		strengthFactor:    1.1,
		improvementFactor: 0.9,
		strength: func(d models.ScoredDoctor, _ float64) string {
			return fmt.Sprintf("Excellente fidélisation des patients (%.1f%%)", d.LoyaltyRate)
		},
		improvement: func(d models.ScoredDoctor, _ float64) string {
			return fmt.Sprintf("Améliorer la rétention des patients (taux actuel: %.1f%%)", d.LoyaltyRate)
		},
		action: "Mettre en place des rappels de suivi pour les patients",
	},
	{
		value:             func(d models.ScoredDoctor) float64 { return d.AvgRevenuePerVisit },
		strengthFactor:    1.15,
		improvementFactor: 0.85,
		strength: func(d models.ScoredDoctor, _ float64) string {
			return fmt.Sprintf("Revenus par visite optimisés (%.2f)", d.AvgRevenuePerVisit)
		},
		improvement: func(d models.ScoredDoctor, _ float64) string {
			return "Optimiser le panier moyen par consultation"
		},
		action: "Proposer les actes complémentaires pertinents lors de la visite",
	},
	{
		value:             func(d models.ScoredDoctor) float64 { return float64(d.NewPatients) },
		strengthFactor:    1.15,
		improvementFactor: 0.85,
		strength: func(d models.ScoredDoctor, _ float64) string {
			return fmt.Sprintf("Bonne acquisition de nouveaux patients (%d)", d.NewPatients)
		},
		improvement: func(d models.ScoredDoctor, _ float64) string {
			return fmt.Sprintf("Attirer davantage de nouveaux patients (%d sur la période)", d.NewPatients)
		},
		action: "Renforcer l'orientation des nouveaux patients vers ce praticien",
	},
	{
		value:             func(d models.ScoredDoctor) float64 { return d.AvgWaitingTime },
		strengthFactor:    0.8,
		improvementFactor: 1.2,
		lowerIsBetter:     true,
		strength: func(d models.ScoredDoctor, _ float64) string {
			return fmt.Sprintf("Temps d'attente réduit (%.0f min)", d.AvgWaitingTime)
		},
		improvement: func(d models.ScoredDoctor, _ float64) string {
			return fmt.Sprintf("Temps d'attente supérieur à la moyenne (%.0f min)", d.AvgWaitingTime)
		},
		action: "Revoir l'espacement des rendez-vous",
	},
	{
		value:             func(d models.ScoredDoctor) float64 { return d.AvgPatientTime },
		strengthFactor:    0.85,
		improvementFactor: 1.15,
		lowerIsBetter:     true,
		strength: func(d models.ScoredDoctor, _ float64) string {
			return fmt.Sprintf("Consultations efficaces (%.0f min en moyenne)", d.AvgPatientTime)
		},
		improvement: func(d models.ScoredDoctor, _ float64) string {
			return fmt.Sprintf("Durée de consultation supérieure à la moyenne (%.0f min)", d.AvgPatientTime)
		},
		action: "Standardiser le déroulé des consultations courantes",
	},
}

// AdviseDoctors compares every doctor with the group mean of each tracked
// metric. Output follows input order.
func AdviseDoctors(scored []models.ScoredDoctor) []models.SuggestionEntry {
	entries := make([]models.SuggestionEntry, 0, len(scored))
	if len(scored) == 0 {
		return entries
	}

	means := make([]float64, len(advisorMetrics))
	for i, m := range advisorMetrics {
		var sum float64
		for _, d := range scored {
			sum += m.value(d)
		}
		means[i] = sum / float64(len(scored))
	}

	for _, d := range scored {
		entry := models.SuggestionEntry{
			DoctorID:     d.ID,
			DoctorName:   d.Name,
			Strengths:    []string{},
			Improvements: []models.Improvement{},
		}
		for i, m := range advisorMetrics {
			mean := means[i]
			if mean <= 0 {
				continue
			}
			v := m.value(d)
			isStrength, isImprovement := atLeast(v, mean*m.strengthFactor), atMost(v, mean*m.improvementFactor)
			if m.lowerIsBetter {
				isStrength, isImprovement = atMost(v, mean*m.strengthFactor), atLeast(v, mean*m.improvementFactor)
			}
			switch {
			case isStrength:
				entry.Strengths = append(entry.Strengths, m.strength(d, mean))
			case isImprovement:
				entry.Improvements = append(entry.Improvements, models.Improvement{
					Message: m.improvement(d, mean),
					Action:  m.action,
				})
			}
		}
		if len(entry.Strengths) == 0 {
			entry.Strengths = append(entry.Strengths, FallbackStrength)
		}
		if len(entry.Improvements) == 0 {
			entry.Improvements = append(entry.Improvements, models.Improvement{Message: FallbackImprovement})
		}
		entries = append(entries, entry)
	}
	return entries
}

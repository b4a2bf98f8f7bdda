package services

import (
	"sort"

	"github.com/c14220110/poliklinik-analytics/internal/rentabilite/models"
	"github.com/c14220110/poliklinik-analytics/pkg/utils"
)

// ComputeSuggestions proposes a per-unit price for every procedure that has
// both revenue and visits, using the proportional inversion.
func ComputeSuggestions(records []models.ProcedureAggregate, remunerationPct, costPct, targetMarginPct float64) ([]models.TariffSuggestion, error) {
	return ComputeSuggestionsWithMode(records, remunerationPct, costPct, targetMarginPct, models.InversionProportional)
}

// ComputeSuggestionsWithMode is ComputeSuggestions with an explicit inversion mode.
//
// proportional: suggested = current × (100 − target) / (100 − rem − cost)
// fixed_cost:   suggested = current × (rem + cost) / (100 − target)
func ComputeSuggestionsWithMode(records []models.ProcedureAggregate, remunerationPct, costPct, targetMarginPct float64, mode models.InversionMode) ([]models.TariffSuggestion, error) {
	if mode == "" {
		mode = models.InversionProportional
	}
	if err := ValidateSuggestionParams(remunerationPct, costPct, targetMarginPct, mode); err != nil {
		return nil, err
	}

	currentMargin := 100 - remunerationPct - costPct
	var factor float64
	switch mode {
	case models.InversionFixedCost:
		factor = (remunerationPct + costPct) / (100 - targetMarginPct)
	default:
		factor = (100 - targetMarginPct) / currentMargin
	}

	out := make([]models.TariffSuggestion, 0, len(records))
	for _, p := range records {
		if p.TotalVisits <= 0 || p.Revenue <= 0 {
			continue
		}
		current := p.Revenue / float64(p.TotalVisits)
		suggested := current * factor
		out = append(out, models.TariffSuggestion{
			ProcedureID:        p.ProcedureID,
			Acte:               p.Name,
			CurrentUnitPrice:   utils.Round2(current),
			SuggestedUnitPrice: utils.Round2(suggested),
			VariationPct:       utils.Round2((suggested/current - 1) * 100),
			CurrentMarginPct:   utils.Round2(currentMargin),
			TargetMarginPct:    targetMarginPct,
			CurrentRevenue:     utils.Round2(p.Revenue),
			ProjectedRevenue:   utils.Round2(suggested * float64(p.TotalVisits)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CurrentRevenue > out[j].CurrentRevenue
	})
	return out, nil
}

// SummarizeSuggestions counts prices to raise or lower and averages the variation.
func SummarizeSuggestions(suggestions []models.TariffSuggestion) models.SuggestionSummary {
	var s models.SuggestionSummary
	if len(suggestions) == 0 {
		return s
	}
	var totalVariation float64
	for _, sg := range suggestions {
		switch {
		case sg.VariationPct > 0:
			s.ToIncrease++
		case sg.VariationPct < 0:
			s.ToDecrease++
		default:
			s.Unchanged++
		}
		totalVariation += sg.VariationPct
		s.CurrentRevenue += sg.CurrentRevenue
		s.ProjectedRevenue += sg.ProjectedRevenue
	}
	s.AvgVariationPct = utils.Round2(totalVariation / float64(len(suggestions)))
	s.CurrentRevenue = utils.Round2(s.CurrentRevenue)
	s.ProjectedRevenue = utils.Round2(s.ProjectedRevenue)
	return s
}

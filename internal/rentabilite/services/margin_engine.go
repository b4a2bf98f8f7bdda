package services

import (
	"sort"

	"github.com/c14220110/poliklinik-analytics/internal/rentabilite/models"
	"github.com/c14220110/poliklinik-analytics/pkg/utils"
)

// ComputeMargins splits each procedure's revenue into doctor remuneration,
// centre cost and gross margin. Procedures without revenue are dropped.
// Results are ordered by revenue descending; equal revenues keep input order.
func ComputeMargins(records []models.ProcedureAggregate, remunerationPct, costPct float64) (models.MarginBatch, error) {
	if err := ValidateMarginParams(remunerationPct, costPct); err != nil {
		return models.MarginBatch{}, err
	}

	batch := models.MarginBatch{
		Parameters: models.SimulationParameters{RemunerationPct: remunerationPct, CostPct: costPct},
		Results:    make([]models.MarginResult, 0, len(records)),
	}
	marginShare := 1 - (remunerationPct+costPct)/100

	for _, p := range records {
		if p.Revenue <= 0 {
			continue
		}
		gross := p.Revenue * marginShare
		res := models.MarginResult{
			Procedure:          p,
			RemunerationAmount: utils.Round2(p.Revenue * remunerationPct / 100),
			CostAmount:         utils.Round2(p.Revenue * costPct / 100),
			GrossMargin:        utils.Round2(gross),
		}
		if p.TotalHours > 0 {
			res.MarginPerHour = ptr(utils.Round2(gross / p.TotalHours))
			res.RevenuePerHour = ptr(utils.Round2(p.Revenue / p.TotalHours))
		}
		if p.TotalVisits > 0 {
			res.AvgUnitPrice = ptr(utils.Round2(p.Revenue / float64(p.TotalVisits)))
		}
		batch.Results = append(batch.Results, res)
	}

	sort.SliceStable(batch.Results, func(i, j int) bool {
		return batch.Results[i].Procedure.Revenue > batch.Results[j].Procedure.Revenue
	})
	return batch, nil
}

func ptr(v float64) *float64 { return &v }

package services

import (
	"testing"

	commonModels "github.com/c14220110/poliklinik-analytics/internal/common/models"
	"github.com/c14220110/poliklinik-analytics/internal/rentabilite/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSuggestions_WorkedExample(t *testing.T) {
	out, err := ComputeSuggestions([]models.ProcedureAggregate{
		{ProcedureID: 9, Name: "Blanchiment", TotalVisits: 10, Revenue: 1000},
	}, 40, 25, 30)
	require.NoError(t, err)
	require.Len(t, out, 1)

	s := out[0]
	assert.Equal(t, 100.0, s.CurrentUnitPrice)
	assert.Equal(t, 200.0, s.SuggestedUnitPrice)
	assert.Equal(t, 100.0, s.VariationPct)
	assert.Equal(t, 35.0, s.CurrentMarginPct)
	assert.Equal(t, 30.0, s.TargetMarginPct)
	assert.Equal(t, 1000.0, s.CurrentRevenue)
	assert.Equal(t, 2000.0, s.ProjectedRevenue)
	assert.Equal(t, 9, s.ProcedureID)
}

func TestComputeSuggestions_ExcludesNoVisitsAndNoRevenue(t *testing.T) {
	out, err := ComputeSuggestions(sampleProcedures(), 40, 25, 30)
	require.NoError(t, err)
	var names []string
	for _, s := range out {
		names = append(names, s.Acte)
	}
	assert.Equal(t, []string{"Couronne", "Détartrage", "Consultation"}, names)
}

func TestComputeSuggestions_ProportionalVariationSign(t *testing.T) {
	// proportional inversion raises the price when 100-target exceeds the current margin
	procs := []models.ProcedureAggregate{{Name: "A", TotalVisits: 2, Revenue: 200}}

	up, err := ComputeSuggestions(procs, 40, 25, 30)
	require.NoError(t, err)
	assert.Greater(t, up[0].VariationPct, 0.0)

	down, err := ComputeSuggestions(procs, 10, 10, 70)
	require.NoError(t, err)
	assert.Less(t, down[0].VariationPct, 0.0)

	flat, err := ComputeSuggestions(procs, 30, 20, 50)
	require.NoError(t, err)
	assert.Equal(t, 0.0, flat[0].VariationPct)
}

func TestComputeSuggestions_FixedCostMode(t *testing.T) {
	procs := []models.ProcedureAggregate{{Name: "A", TotalVisits: 10, Revenue: 1000}}

	// remuneration and cost per unit stay at 40; the price drops to leave 50%
	out, err := ComputeSuggestionsWithMode(procs, 20, 20, 50, models.InversionFixedCost)
	require.NoError(t, err)
	assert.Equal(t, 80.0, out[0].SuggestedUnitPrice)
	assert.Equal(t, -20.0, out[0].VariationPct)
	assert.Equal(t, 800.0, out[0].ProjectedRevenue)

	// target below current margin lowers the price
	out, err = ComputeSuggestionsWithMode(procs, 40, 25, 30, models.InversionFixedCost)
	require.NoError(t, err)
	assert.Equal(t, 92.86, out[0].SuggestedUnitPrice)
	assert.Less(t, out[0].VariationPct, 0.0)

	// target equal to current margin keeps it
	out, err = ComputeSuggestionsWithMode(procs, 40, 25, 35, models.InversionFixedCost)
	require.NoError(t, err)
	assert.Equal(t, 100.0, out[0].SuggestedUnitPrice)
}

func TestComputeSuggestions_Validation(t *testing.T) {
	cases := []struct {
		name              string
		rem, cost, target float64
		mode              models.InversionMode
	}{
		{"three-way sum over 100", 40, 25, 40, models.InversionProportional},
		{"pair over 100", 70, 40, 0, models.InversionProportional},
		{"target out of range", 10, 10, 120, models.InversionProportional},
		{"zero current margin", 60, 40, 0, models.InversionProportional},
		{"fixed cost without cost base", 0, 0, 30, models.InversionFixedCost},
		{"unknown mode", 40, 25, 30, models.InversionMode("magic")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := ComputeSuggestionsWithMode(sampleProcedures(), tc.rem, tc.cost, tc.target, tc.mode)
			require.Error(t, err)
			assert.True(t, commonModels.IsValidationError(err))
			assert.Nil(t, out)
		})
	}
}

func TestComputeSuggestions_EmptyInput(t *testing.T) {
	out, err := ComputeSuggestions([]models.ProcedureAggregate{}, 40, 25, 30)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSummarizeSuggestions(t *testing.T) {
	s := SummarizeSuggestions([]models.TariffSuggestion{
		{VariationPct: 10, CurrentRevenue: 100, ProjectedRevenue: 110},
		{VariationPct: -20, CurrentRevenue: 50, ProjectedRevenue: 40},
		{VariationPct: 0, CurrentRevenue: 10, ProjectedRevenue: 10},
	})
	assert.Equal(t, 1, s.ToIncrease)
	assert.Equal(t, 1, s.ToDecrease)
	assert.Equal(t, 1, s.Unchanged)
	assert.Equal(t, -3.33, s.AvgVariationPct)
	assert.Equal(t, 160.0, s.CurrentRevenue)
	assert.Equal(t, 160.0, s.ProjectedRevenue)

	assert.Equal(t, models.SuggestionSummary{}, SummarizeSuggestions(nil))
}

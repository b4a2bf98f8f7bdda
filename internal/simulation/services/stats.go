package services

import (
	"strconv"
	"strings"

	rentModels "github.com/c14220110/poliklinik-analytics/internal/rentabilite/models"
	"github.com/c14220110/poliklinik-analytics/internal/simulation/models"
	"github.com/c14220110/poliklinik-analytics/pkg/utils"
)

// FilterAll selects every row regardless of doctor.
const FilterAll = "all"

// FilterRows keeps the rows tagged with the given doctor id. An empty or
// "all" filter returns every row, as does any filter when no row carries a
// doctor tag. A filter that is not a doctor id matches no tagged row.
func FilterRows(rows []rentModels.MarginRow, doctorFilter string) []rentModels.MarginRow {
	doctorFilter = strings.TrimSpace(doctorFilter)
	if doctorFilter == "" || strings.EqualFold(doctorFilter, FilterAll) {
		return rows
	}
	id, err := strconv.Atoi(doctorFilter)
	matchable := err == nil

	tagged := false
	out := make([]rentModels.MarginRow, 0, len(rows))
	for _, row := range rows {
		if row.DoctorID == nil {
			continue
		}
		tagged = true
		if matchable && *row.DoctorID == id {
			out = append(out, row)
		}
	}
	if !tagged {
		return rows
	}
	return out
}

// ComputeGlobalStats totals the rows. The mean margin is weighted by revenue.
func ComputeGlobalStats(rows []rentModels.MarginRow) models.GlobalStats {
	var stats models.GlobalStats
	if len(rows) == 0 {
		return stats
	}
	var weighted float64
	for _, row := range rows {
		stats.TotalCA += row.CA
		stats.TotalMarge += row.MargeBrute
		weighted += row.MargeBrutePct * row.CA
		stats.TotalVisites += row.TotalVisits
	}
	if stats.TotalCA > 0 {
		stats.MargeMoyenne = utils.Round2(weighted / stats.TotalCA)
	}
	stats.TotalCA = utils.Round2(stats.TotalCA)
	stats.TotalMarge = utils.Round2(stats.TotalMarge)
	stats.NombreActes = len(rows)
	return stats
}

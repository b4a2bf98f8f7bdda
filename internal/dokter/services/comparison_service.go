package services

import (
	"context"

	commonModels "github.com/c14220110/poliklinik-analytics/internal/common/models"
	"github.com/c14220110/poliklinik-analytics/internal/dokter/models"
	"go.uber.org/zap"
)

// ComparisonService runs a full doctor comparison for a period.
type ComparisonService struct {
	Provider DoctorAggregateProvider
	Logger   *zap.Logger
}

func NewComparisonService(provider DoctorAggregateProvider, logger *zap.Logger) *ComparisonService {
	return &ComparisonService{Provider: provider, Logger: logger}
}

// Compare validates the request, fetches the aggregates and scores, advises
// and ranks the doctors.
func (s *ComparisonService) Compare(ctx context.Context, req models.ComparisonRequest) (models.ComparisonResponse, error) {
	ids := dedupe(req.DoctorIDs)
	if len(ids) < 2 {
		return models.ComparisonResponse{}, commonModels.NewValidationError("doctorIds",
			"Au moins 2 médecins doivent être sélectionnés")
	}
	if req.StartDate == "" || req.EndDate == "" {
		return models.ComparisonResponse{}, commonModels.NewValidationError("period",
			"Les dates de début et de fin sont requises")
	}
	start, end, err := commonModels.ParsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return models.ComparisonResponse{}, err
	}

	records, err := s.Provider.FetchDoctors(ctx, DoctorQuery{DoctorIDs: ids, Start: start, End: end})
	if err != nil {
		s.Logger.Error("fetch doctor aggregates", zap.Ints("doctor_ids", ids), zap.Error(err))
		return models.ComparisonResponse{}, err
	}

	scored, err := ScoreDoctors(records)
	if err != nil {
		return models.ComparisonResponse{}, err
	}

	return models.ComparisonResponse{
		Doctors:     scored.Scored,
		Badges:      scored.Badges,
		Suggestions: AdviseDoctors(scored.Scored),
		Rankings:    RankDoctors(scored.Scored),
		Period:      models.ComparisonPeriod{StartDate: req.StartDate, EndDate: req.EndDate},
	}, nil
}

func dedupe(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

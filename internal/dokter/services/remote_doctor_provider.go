package services

import (
	"context"
	"fmt"

	commonModels "github.com/c14220110/poliklinik-analytics/internal/common/models"
	"github.com/c14220110/poliklinik-analytics/internal/dokter/models"
	"github.com/c14220110/poliklinik-analytics/pkg/upstream"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// RemoteDoctorProvider reads doctor aggregates from the BI API.
type RemoteDoctorProvider struct {
	Client *resty.Client
	Logger *zap.Logger
}

func NewRemoteDoctorProvider(client *resty.Client, logger *zap.Logger) *RemoteDoctorProvider {
	return &RemoteDoctorProvider{Client: client, Logger: logger}
}

type doctorAggregateRequest struct {
	DoctorIDs []int  `json:"doctorIds"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (p *RemoteDoctorProvider) FetchDoctors(ctx context.Context, q DoctorQuery) ([]models.DoctorAggregate, error) {
	var env upstream.Envelope[[]RawDoctor]
	resp, err := p.Client.R().
		SetContext(ctx).
		SetBody(doctorAggregateRequest{
			DoctorIDs: q.DoctorIDs,
			StartDate: q.Start.Format(commonModels.DateLayout),
			EndDate:   q.End.Format(commonModels.DateLayout),
		}).
		SetResult(&env).
		Post("/aggregates/doctors")
	if err := upstream.CheckResponse(resp, err); err != nil {
		return nil, err
	}

	byID := make(map[int]RawDoctor, len(env.Data))
	for _, raw := range env.Data {
		byID[raw.ID] = raw
	}
	out := make([]models.DoctorAggregate, 0, len(q.DoctorIDs))
	for _, id := range q.DoctorIDs {
		raw, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrDoctorNotFound, id)
		}
		out = append(out, NormalizeDoctor(raw))
	}
	p.Logger.Debug("remote doctor aggregates", zap.Int("count", len(out)))
	return out, nil
}

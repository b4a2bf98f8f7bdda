package services

import (
	"context"
	"strconv"

	commonModels "github.com/c14220110/poliklinik-analytics/internal/common/models"
	"github.com/c14220110/poliklinik-analytics/internal/rentabilite/models"
	"github.com/c14220110/poliklinik-analytics/pkg/upstream"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// RemoteProcedureProvider reads procedure aggregates from the BI API.
type RemoteProcedureProvider struct {
	Client *resty.Client
	Logger *zap.Logger
}

func NewRemoteProcedureProvider(client *resty.Client, logger *zap.Logger) *RemoteProcedureProvider {
	return &RemoteProcedureProvider{Client: client, Logger: logger}
}

func (p *RemoteProcedureProvider) FetchProcedures(ctx context.Context, q ProcedureQuery) ([]models.ProcedureAggregate, error) {
	var env upstream.Envelope[[]RawProcedure]
	req := p.Client.R().
		SetContext(ctx).
		SetQueryParam("start", q.Start.Format(commonModels.DateLayout)).
		SetQueryParam("end", q.End.Format(commonModels.DateLayout)).
		SetResult(&env)
	if q.DoctorID != nil {
		req.SetQueryParam("doctorId", strconv.Itoa(*q.DoctorID))
	}
	resp, err := req.Get("/aggregates/procedures")
	if err := upstream.CheckResponse(resp, err); err != nil {
		return nil, err
	}

	out := NormalizeProcedures(env.Data)
	if q.DoctorID != nil {
		for i := range out {
			if out[i].DoctorID == nil {
				out[i].DoctorID = q.DoctorID
			}
		}
	}
	p.Logger.Debug("remote procedure aggregates", zap.Int("count", len(out)))
	return out, nil
}

package store

import (
	"context"
	"fmt"

	"github.com/c14220110/poliklinik-analytics/internal/simulation/models"
	json "github.com/goccy/go-json"
)

// Store persists the single simulation slot. Load returns nil, nil when the
// slot is empty. Concurrent saves are last-write-wins.
type Store interface {
	Save(ctx context.Context, record *models.SimulationRecord) error
	Load(ctx context.Context) (*models.SimulationRecord, error)
	Clear(ctx context.Context) error
}

func encode(record *models.SimulationRecord) ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode simulation record: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*models.SimulationRecord, error) {
	var record models.SimulationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode simulation record: %w", err)
	}
	return &record, nil
}

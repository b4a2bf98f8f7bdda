package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/c14220110/poliklinik-analytics/internal/simulation/models"
	"go.uber.org/zap"
)

// SQLiteStore keeps the slot as one row of simulation_slot.
type SQLiteStore struct {
	DB     *sql.DB
	Slot   string
	Logger *zap.Logger
}

func NewSQLiteStore(db *sql.DB, slot string, logger *zap.Logger) *SQLiteStore {
	return &SQLiteStore{DB: db, Slot: slot, Logger: logger}
}

// EnsureSchema creates the slot table if needed.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS simulation_slot (
			slot       TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create simulation_slot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, record *models.SimulationRecord) error {
	data, err := encode(record)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO simulation_slot (slot, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		s.Slot, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert simulation slot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*models.SimulationRecord, error) {
	var payload string
	err := s.DB.QueryRowContext(ctx, `SELECT payload FROM simulation_slot WHERE slot = ?`, s.Slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select simulation slot: %w", err)
	}
	record, err := decode([]byte(payload))
	if err != nil {
		s.Logger.Warn("unreadable simulation payload", zap.String("slot", s.Slot), zap.Error(err))
		return nil, err
	}
	return record, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM simulation_slot WHERE slot = ?`, s.Slot); err != nil {
		return fmt.Errorf("delete simulation slot: %w", err)
	}
	return nil
}

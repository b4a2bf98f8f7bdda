package services

import (
	"context"
	"fmt"
	"time"

	commonModels "github.com/c14220110/poliklinik-analytics/internal/common/models"
	rentModels "github.com/c14220110/poliklinik-analytics/internal/rentabilite/models"
	rentServices "github.com/c14220110/poliklinik-analytics/internal/rentabilite/services"
	"github.com/c14220110/poliklinik-analytics/internal/simulation/models"
	"github.com/c14220110/poliklinik-analytics/internal/simulation/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Events published when the slot changes.
const (
	EventSimulationSaved   = "simulation.saved"
	EventSimulationCleared = "simulation.cleared"
)

const (
	NoSimulationInfo = "Aucune simulation disponible"
	AllDoctorsLabel  = "Tous les médecins"
	infoTimeLayout   = "02/01/2006 15:04"
)

// Notifier receives slot change events.
type Notifier interface {
	Publish(event string, payload interface{})
}

type SimulationService struct {
	Store      store.Store
	Procedures rentServices.ProcedureAggregateProvider
	Notifier   Notifier
	Logger     *zap.Logger
	now        func() time.Time
}

func NewSimulationService(st store.Store, procedures rentServices.ProcedureAggregateProvider, notifier Notifier, logger *zap.Logger) *SimulationService {
	return &SimulationService{
		Store:      st,
		Procedures: procedures,
		Notifier:   notifier,
		Logger:     logger,
		now:        time.Now,
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// Run computes margins and tariff suggestions for a period and stores them
// as the current simulation.
func (s *SimulationService) Run(ctx context.Context, req models.RunRequest) (*models.SimulationRecord, error) {
	start, end, err := commonModels.ParsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	rem := orDefault(req.RemunerationMedecin, rentServices.DefaultRemunerationPct)
	cost := orDefault(req.CoutCentre, rentServices.DefaultCostPct)
	target := orDefault(req.MargeCible, rentServices.DefaultTargetMarginPct)
	mode := rentModels.InversionMode(req.Mode)
	if mode == "" {
		mode = rentModels.InversionProportional
	}
	if err := rentServices.ValidateSuggestionParams(rem, cost, target, mode); err != nil {
		return nil, err
	}

	procedures, err := s.Procedures.FetchProcedures(ctx, rentServices.ProcedureQuery{Start: start, End: end, DoctorID: req.DoctorID})
	if err != nil {
		return nil, fmt.Errorf("fetch procedures: %w", err)
	}
	batch, err := rentServices.ComputeMargins(procedures, rem, cost)
	if err != nil {
		return nil, err
	}
	suggestions, err := rentServices.ComputeSuggestionsWithMode(procedures, rem, cost, target, mode)
	if err != nil {
		return nil, err
	}
	summary := rentServices.SummarizeSuggestions(suggestions)

	doctorName := req.DoctorName
	if doctorName == "" && req.DoctorID == nil {
		doctorName = AllDoctorsLabel
	}
	record := &models.SimulationRecord{
		Parameters: rentModels.SimulationParameters{
			RemunerationPct: rem,
			CostPct:         cost,
			TargetMarginPct: &target,
		},
		Results:        batch.Rows(),
		Suggestions:    suggestions,
		Summary:        &summary,
		DoctorFilterID: req.DoctorID,
		DoctorName:     doctorName,
		Period:         commonModels.Period{StartDate: req.StartDate, EndDate: req.EndDate},
	}
	if err := s.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Save overwrites the slot. A missing id or timestamp is filled in.
func (s *SimulationService) Save(ctx context.Context, record *models.SimulationRecord) error {
	if record == nil {
		return commonModels.NewValidationError("record", "must not be empty")
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = s.now().UTC().Round(0)
	}
	if err := s.Store.Save(ctx, record); err != nil {
		s.Logger.Error("save simulation", zap.Error(err))
		return err
	}
	s.Logger.Info("simulation saved",
		zap.String("id", record.ID.String()),
		zap.Int("actes", len(record.Results)),
		zap.Any("doctor_id", record.DoctorFilterID))
	s.publish(EventSimulationSaved, map[string]interface{}{
		"id":        record.ID,
		"timestamp": record.Timestamp,
		"info":      Info(record),
	})
	return nil
}

func (s *SimulationService) Load(ctx context.Context) (*models.SimulationRecord, error) {
	return s.Store.Load(ctx)
}

func (s *SimulationService) Clear(ctx context.Context) error {
	if err := s.Store.Clear(ctx); err != nil {
		s.Logger.Error("clear simulation", zap.Error(err))
		return err
	}
	s.Logger.Info("simulation cleared")
	s.publish(EventSimulationCleared, nil)
	return nil
}

func (s *SimulationService) publish(event string, payload interface{}) {
	if s.Notifier != nil {
		s.Notifier.Publish(event, payload)
	}
}

func (s *SimulationService) rows(ctx context.Context) ([]rentModels.MarginRow, error) {
	record, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return []rentModels.MarginRow{}, nil
	}
	return record.Results, nil
}

// FilteredProcedures returns the stored margin rows for a doctor filter.
func (s *SimulationService) FilteredProcedures(ctx context.Context, doctorFilter string) ([]rentModels.MarginRow, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}
	return FilterRows(rows, doctorFilter), nil
}

// GlobalStats totals the stored rows for a doctor filter. An empty slot
// gives zeros.
func (s *SimulationService) GlobalStats(ctx context.Context, doctorFilter string) (models.GlobalStats, error) {
	rows, err := s.FilteredProcedures(ctx, doctorFilter)
	if err != nil {
		return models.GlobalStats{}, err
	}
	return ComputeGlobalStats(rows), nil
}

// ProcedureByName returns the first stored row named name, or nil.
func (s *SimulationService) ProcedureByName(ctx context.Context, name string) (*rentModels.MarginRow, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].Acte == name {
			row := rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

// ProceduresBelowMargin returns the rows of a doctor filter whose margin is
// strictly below threshold.
func (s *SimulationService) ProceduresBelowMargin(ctx context.Context, threshold float64, doctorFilter string) ([]rentModels.MarginRow, error) {
	return s.selectRows(ctx, doctorFilter, func(r rentModels.MarginRow) bool { return r.MargeBrutePct < threshold })
}

// ProceduresAboveMargin returns the rows of a doctor filter whose margin is
// at least threshold.
func (s *SimulationService) ProceduresAboveMargin(ctx context.Context, threshold float64, doctorFilter string) ([]rentModels.MarginRow, error) {
	return s.selectRows(ctx, doctorFilter, func(r rentModels.MarginRow) bool { return r.MargeBrutePct >= threshold })
}

func (s *SimulationService) selectRows(ctx context.Context, doctorFilter string, keep func(rentModels.MarginRow) bool) ([]rentModels.MarginRow, error) {
	rows, err := s.FilteredProcedures(ctx, doctorFilter)
	if err != nil {
		return nil, err
	}
	out := make([]rentModels.MarginRow, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Info describes the stored simulation in one line.
func (s *SimulationService) Info(ctx context.Context) (string, error) {
	record, err := s.Store.Load(ctx)
	if err != nil {
		return "", err
	}
	return Info(record), nil
}

func Info(record *models.SimulationRecord) string {
	if record == nil {
		return NoSimulationInfo
	}
	name := record.DoctorName
	switch {
	case name != "":
	case record.DoctorFilterID != nil:
		name = fmt.Sprintf("Médecin #%d", *record.DoctorFilterID)
	default:
		name = AllDoctorsLabel
	}
	return fmt.Sprintf("Simulation du %s - %s - Période: %s au %s",
		record.Timestamp.Format(infoTimeLayout), name, record.Period.StartDate, record.Period.EndDate)
}

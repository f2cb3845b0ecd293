package service

import (
	"context"

	"go.uber.org/zap"

	"palmroute/internal/models"
	"palmroute/internal/repository"
)

// CrewLogService records executed flight legs and triggers fuel
// reconciliation whenever a log's fuel figures may have changed.
type CrewLogService struct {
	Repo   repository.CrewLogStore
	Ledger *LedgerService
	Logger *zap.Logger
}

func (s *CrewLogService) Create(ctx context.Context, log *models.CrewLog) error {
	if s == nil || s.Repo == nil || log == nil {
		return nil
	}
	if err := s.Repo.InsertCrewLog(ctx, log); err != nil {
		return err
	}
	return s.Ledger.ReconcileFuel(ctx, log)
}

func (s *CrewLogService) Update(ctx context.Context, log *models.CrewLog) error {
	if s == nil || s.Repo == nil || log == nil || log.ID == 0 {
		return nil
	}
	if err := s.Repo.UpdateCrewLog(ctx, log); err != nil {
		return err
	}
	return s.Ledger.ReconcileFuel(ctx, log)
}

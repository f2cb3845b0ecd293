package service

import (
	"context"

	"go.uber.org/zap"

	"palmroute/internal/ledger"
	"palmroute/internal/models"
	"palmroute/internal/repository"
)

// DispatchService creates and edits dispatch releases. A dispatch is settled
// financially at creation; edits trigger retroactive correction of its
// primary transactions.
type DispatchService struct {
	Repo   repository.DispatchStore
	Ledger *LedgerService
	Logger *zap.Logger
}

func (s *DispatchService) Create(ctx context.Context, dispatch *models.Dispatch) (ledger.Financials, error) {
	if s == nil || s.Repo == nil || dispatch == nil {
		return ledger.Financials{}, nil
	}
	if err := s.Repo.InsertDispatch(ctx, dispatch); err != nil {
		return ledger.Financials{}, err
	}
	return s.Ledger.SettleDispatch(ctx, dispatch)
}

func (s *DispatchService) Update(ctx context.Context, dispatch *models.Dispatch) (ledger.Financials, error) {
	if s == nil || s.Repo == nil || dispatch == nil || dispatch.ID == 0 {
		return ledger.Financials{}, nil
	}
	if err := s.Repo.UpdateDispatch(ctx, dispatch); err != nil {
		return ledger.Financials{}, err
	}
	return s.Ledger.ReconcileDispatch(ctx, dispatch)
}

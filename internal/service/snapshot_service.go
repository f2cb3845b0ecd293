package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"palmroute/internal/models"
	"palmroute/internal/repository"
)

// SnapshotService records the running balance periodically so the balance
// history survives transaction corrections.
type SnapshotService struct {
	Repo   repository.LedgerStore
	Logger *zap.Logger
}

func (s *SnapshotService) SnapshotBalance(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	account, err := s.Repo.EnsureCompanyAccount(ctx)
	if err != nil || account == nil {
		return err
	}
	total, err := s.Repo.CountTransactions(ctx, repository.ListTransactionsParams{})
	if err != nil {
		return err
	}
	item := &models.BalanceSnapshot{
		SnapshotAt:       time.Now().UTC(),
		Balance:          account.Balance,
		TransactionCount: total,
	}
	if err := s.Repo.InsertBalanceSnapshot(ctx, item); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("balance snapshot taken",
			zap.String("balance", account.Balance.String()),
			zap.Int64("transactions", total),
		)
	}
	return nil
}

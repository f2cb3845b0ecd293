package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"palmroute/internal/ledger"
	"palmroute/internal/models"
	"palmroute/internal/repository"
)

// LedgerService applies dispatch financials to the company ledger: primary
// settlement at creation, retroactive correction on edit, and fuel-variance
// reconciliation from crew logs. Ledger mutations run synchronously within
// one request; the account row assumes a single writer.
type LedgerService struct {
	Repo     repository.LedgerRepository
	Calc     *ledger.Calculator
	Settings *SettingsService
	Logger   *zap.Logger
}

// SettleDispatch computes financials for a freshly created dispatch and
// posts its primary revenue and expense transactions.
func (s *LedgerService) SettleDispatch(ctx context.Context, dispatch *models.Dispatch) (ledger.Financials, error) {
	if s == nil || s.Repo == nil || dispatch == nil || dispatch.ID == 0 {
		return ledger.Financials{}, nil
	}
	fin, err := s.computeFor(ctx, dispatch)
	if err != nil {
		return ledger.Financials{}, err
	}

	revenue := decimal.NewFromFloat(fin.Revenue)
	tx := &models.Transaction{
		Kind:        models.TxKindRevenue,
		Category:    models.TxCategoryPrimaryRevenue,
		Amount:      revenue,
		Description: primaryDescription(dispatch, "revenue"),
		DispatchID:  &dispatch.ID,
	}
	if err := s.Repo.InsertTransaction(ctx, tx); err != nil {
		return fin, err
	}
	if err := s.Repo.AdjustCompanyBalance(ctx, revenue); err != nil {
		return fin, err
	}

	if fin.Costs > 0 {
		costs := decimal.NewFromFloat(fin.Costs)
		tx := &models.Transaction{
			Kind:        models.TxKindExpense,
			Category:    models.TxCategoryPrimaryExpense,
			Amount:      costs,
			Description: primaryDescription(dispatch, "operating costs"),
			DispatchID:  &dispatch.ID,
		}
		if err := s.Repo.InsertTransaction(ctx, tx); err != nil {
			return fin, err
		}
		if err := s.Repo.AdjustCompanyBalance(ctx, costs.Neg()); err != nil {
			return fin, err
		}
	}

	if s.Logger != nil {
		s.Logger.Info("dispatch settled",
			zap.Uint64("dispatch_id", dispatch.ID),
			zap.Float64("revenue", fin.Revenue),
			zap.Float64("costs", fin.Costs),
			zap.Float64("profit", fin.Profit),
		)
	}
	return fin, nil
}

// ReconcileDispatch recomputes financials after a dispatch edit and corrects
// the previously posted primary transactions in place: the stored amount is
// replaced and only the difference is applied to the balance, so repeating
// an identical edit is a no-op.
func (s *LedgerService) ReconcileDispatch(ctx context.Context, dispatch *models.Dispatch) (ledger.Financials, error) {
	if s == nil || s.Repo == nil || dispatch == nil || dispatch.ID == 0 {
		return ledger.Financials{}, nil
	}
	fin, err := s.computeFor(ctx, dispatch)
	if err != nil {
		return ledger.Financials{}, err
	}

	if err := s.correctPrimary(ctx, dispatch, models.TxCategoryPrimaryRevenue,
		models.TxKindRevenue, decimal.NewFromFloat(fin.Revenue),
		primaryDescription(dispatch, "revenue")); err != nil {
		return fin, err
	}
	if err := s.correctPrimary(ctx, dispatch, models.TxCategoryPrimaryExpense,
		models.TxKindExpense, decimal.NewFromFloat(fin.Costs),
		primaryDescription(dispatch, "operating costs")); err != nil {
		return fin, err
	}
	return fin, nil
}

func (s *LedgerService) correctPrimary(ctx context.Context, dispatch *models.Dispatch, category, kind string, amount decimal.Decimal, description string) error {
	existing, err := s.Repo.GetPrimaryTransaction(ctx, dispatch.ID, category)
	if err != nil {
		return err
	}
	if existing == nil {
		if amount.IsZero() {
			return nil
		}
		tx := &models.Transaction{
			Kind:        kind,
			Category:    category,
			Amount:      amount,
			Description: description,
			DispatchID:  &dispatch.ID,
		}
		if err := s.Repo.InsertTransaction(ctx, tx); err != nil {
			return err
		}
		return s.Repo.AdjustCompanyBalance(ctx, tx.Effect())
	}

	delta := amount.Sub(existing.Amount)
	if delta.IsZero() {
		return nil
	}
	if err := s.Repo.UpdateTransactionAmount(ctx, existing.ID, amount); err != nil {
		return err
	}
	if kind == models.TxKindExpense {
		delta = delta.Neg()
	}
	return s.Repo.AdjustCompanyBalance(ctx, delta)
}

// ReconcileFuel posts an offsetting transaction when a crew log's actual
// fuel burn diverges from the dispatch's plan. Any prior reconciliation for
// the same crew log is reversed first, so at most one exists per log.
func (s *LedgerService) ReconcileFuel(ctx context.Context, log *models.CrewLog) error {
	if s == nil || s.Repo == nil || log == nil || log.ID == 0 {
		return nil
	}

	existing, err := s.Repo.GetFuelReconciliationTransaction(ctx, log.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		if err := s.Repo.AdjustCompanyBalance(ctx, existing.Effect().Neg()); err != nil {
			return err
		}
		if err := s.Repo.DeleteTransaction(ctx, existing.ID); err != nil {
			return err
		}
	}

	if log.DispatchID == nil {
		return nil
	}
	actual, ok := ledger.ParseNumeric(log.FuelUsed)
	if !ok {
		return nil
	}
	dispatch, err := s.Repo.GetDispatchByID(ctx, *log.DispatchID)
	if err != nil || dispatch == nil {
		return err
	}
	planned, ok := ledger.ParseNumeric(dispatch.FuelPlanned)
	if !ok {
		return nil
	}

	diff := decimal.NewFromFloat(actual).
		Sub(decimal.NewFromFloat(planned)).
		Mul(decimal.NewFromFloat(ledger.FuelCostPerUnit)).
		Round(2)
	if diff.Abs().LessThan(decimal.NewFromFloat(ledger.ReconcileThreshold)) {
		return nil
	}

	kind := models.TxKindRevenue
	amount := diff.Neg()
	note := "fuel savings"
	if diff.IsPositive() {
		kind = models.TxKindExpense
		amount = diff
		note = "fuel overrun"
	}
	tx := &models.Transaction{
		Kind:        kind,
		Category:    models.TxCategoryFuelReconciliation,
		Amount:      amount,
		Description: fmt.Sprintf("flight %s %s", strings.TrimSpace(log.FlightID), note),
		DispatchID:  log.DispatchID,
		CrewLogID:   &log.ID,
	}
	if err := s.Repo.InsertTransaction(ctx, tx); err != nil {
		return err
	}
	if err := s.Repo.AdjustCompanyBalance(ctx, tx.Effect()); err != nil {
		return err
	}

	if s.Logger != nil {
		s.Logger.Info("fuel variance reconciled",
			zap.Uint64("crew_log_id", log.ID),
			zap.Uint64("dispatch_id", *log.DispatchID),
			zap.String("kind", kind),
			zap.String("amount", amount.String()),
		)
	}
	return nil
}

// Preview computes financials for a dispatch without posting anything. The
// jitter draw is suppressed so repeated previews agree.
func (s *LedgerService) Preview(ctx context.Context, dispatch *models.Dispatch) (ledger.Financials, error) {
	if s == nil || s.Repo == nil || dispatch == nil {
		return ledger.Financials{}, nil
	}
	manifests, logs, err := s.linked(ctx, dispatch.ID)
	if err != nil {
		return ledger.Financials{}, err
	}
	calc := &ledger.Calculator{}
	return calc.Compute(dispatch, manifests, logs, s.Settings.Difficulty(ctx)), nil
}

// VerifyResult reports whether the account balance matches the signed sum of
// live transactions.
type VerifyResult struct {
	Balance   decimal.Decimal `json:"balance"`
	EffectSum decimal.Decimal `json:"effect_sum"`
	Balanced  bool            `json:"balanced"`
}

func (s *LedgerService) VerifyBalance(ctx context.Context) (VerifyResult, error) {
	var out VerifyResult
	if s == nil || s.Repo == nil {
		out.Balanced = true
		return out, nil
	}
	account, err := s.Repo.EnsureCompanyAccount(ctx)
	if err != nil {
		return out, err
	}
	sum, err := s.Repo.SumTransactionEffects(ctx)
	if err != nil {
		return out, err
	}
	if account != nil {
		out.Balance = account.Balance
	}
	out.EffectSum = sum
	out.Balanced = out.Balance.Equal(sum)
	return out, nil
}

func (s *LedgerService) computeFor(ctx context.Context, dispatch *models.Dispatch) (ledger.Financials, error) {
	manifests, logs, err := s.linked(ctx, dispatch.ID)
	if err != nil {
		return ledger.Financials{}, err
	}
	return s.Calc.Compute(dispatch, manifests, logs, s.Settings.Difficulty(ctx)), nil
}

func (s *LedgerService) linked(ctx context.Context, dispatchID uint64) ([]models.CargoManifest, []models.CrewLog, error) {
	manifests, err := s.Repo.ListCargoManifestsByDispatchID(ctx, dispatchID)
	if err != nil {
		return nil, nil, err
	}
	logs, err := s.Repo.ListCrewLogsByDispatchID(ctx, dispatchID)
	if err != nil {
		return nil, nil, err
	}
	return manifests, logs, nil
}

func primaryDescription(dispatch *models.Dispatch, suffix string) string {
	flight := strings.TrimSpace(dispatch.FlightID)
	if flight == "" {
		flight = fmt.Sprintf("dispatch %d", dispatch.ID)
	}
	return fmt.Sprintf("flight %s %s", flight, suffix)
}

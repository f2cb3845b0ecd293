package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"palmroute/internal/ledger"
	"palmroute/internal/models"
	"palmroute/internal/repository"
)

// fakeRepo is an in-memory repository.LedgerRepository.
type fakeRepo struct {
	dispatches   map[uint64]*models.Dispatch
	manifests    map[uint64]*models.CargoManifest
	crewLogs     map[uint64]*models.CrewLog
	transactions map[uint64]*models.Transaction
	account      models.CompanyAccount
	snapshots    []models.BalanceSnapshot
	nextID       uint64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		dispatches:   map[uint64]*models.Dispatch{},
		manifests:    map[uint64]*models.CargoManifest{},
		crewLogs:     map[uint64]*models.CrewLog{},
		transactions: map[uint64]*models.Transaction{},
		account:      models.CompanyAccount{ID: 1},
	}
}

func (f *fakeRepo) id() uint64 {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) InsertDispatch(_ context.Context, item *models.Dispatch) error {
	if item.ID == 0 {
		item.ID = f.id()
	}
	cp := *item
	f.dispatches[item.ID] = &cp
	return nil
}

func (f *fakeRepo) GetDispatchByID(_ context.Context, id uint64) (*models.Dispatch, error) {
	item, ok := f.dispatches[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (f *fakeRepo) UpdateDispatch(_ context.Context, item *models.Dispatch) error {
	cp := *item
	f.dispatches[item.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateDispatchCargoWeight(_ context.Context, id uint64, weight *string) error {
	if item, ok := f.dispatches[id]; ok {
		item.ActualCargoWeight = weight
	}
	return nil
}

func (f *fakeRepo) ListDispatches(_ context.Context, _ repository.ListDispatchesParams) ([]models.Dispatch, error) {
	var out []models.Dispatch
	for _, item := range f.dispatches {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeRepo) CountDispatches(_ context.Context, _ repository.ListDispatchesParams) (int64, error) {
	return int64(len(f.dispatches)), nil
}

func (f *fakeRepo) InsertCargoManifest(_ context.Context, item *models.CargoManifest) error {
	if item.ID == 0 {
		item.ID = f.id()
	}
	cp := *item
	f.manifests[item.ID] = &cp
	return nil
}

func (f *fakeRepo) GetCargoManifestByID(_ context.Context, id uint64) (*models.CargoManifest, error) {
	item, ok := f.manifests[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (f *fakeRepo) UpdateCargoManifest(_ context.Context, item *models.CargoManifest) error {
	cp := *item
	f.manifests[item.ID] = &cp
	return nil
}

func (f *fakeRepo) ListCargoManifests(_ context.Context, _ repository.ListCargoManifestsParams) ([]models.CargoManifest, error) {
	var out []models.CargoManifest
	for _, item := range f.manifests {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeRepo) CountCargoManifests(_ context.Context, _ repository.ListCargoManifestsParams) (int64, error) {
	return int64(len(f.manifests)), nil
}

func (f *fakeRepo) ListCargoManifestsByDispatchID(_ context.Context, dispatchID uint64) ([]models.CargoManifest, error) {
	var out []models.CargoManifest
	for id := uint64(1); id <= f.nextID; id++ {
		item, ok := f.manifests[id]
		if ok && item.DispatchID != nil && *item.DispatchID == dispatchID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeRepo) InsertCrewLog(_ context.Context, item *models.CrewLog) error {
	if item.ID == 0 {
		item.ID = f.id()
	}
	cp := *item
	f.crewLogs[item.ID] = &cp
	return nil
}

func (f *fakeRepo) GetCrewLogByID(_ context.Context, id uint64) (*models.CrewLog, error) {
	item, ok := f.crewLogs[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (f *fakeRepo) UpdateCrewLog(_ context.Context, item *models.CrewLog) error {
	cp := *item
	f.crewLogs[item.ID] = &cp
	return nil
}

func (f *fakeRepo) ListCrewLogs(_ context.Context, _ repository.ListCrewLogsParams) ([]models.CrewLog, error) {
	var out []models.CrewLog
	for _, item := range f.crewLogs {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeRepo) CountCrewLogs(_ context.Context, _ repository.ListCrewLogsParams) (int64, error) {
	return int64(len(f.crewLogs)), nil
}

func (f *fakeRepo) ListCrewLogsByDispatchID(_ context.Context, dispatchID uint64) ([]models.CrewLog, error) {
	var out []models.CrewLog
	for id := f.nextID; id >= 1; id-- {
		item, ok := f.crewLogs[id]
		if ok && item.DispatchID != nil && *item.DispatchID == dispatchID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeRepo) InsertTransaction(_ context.Context, item *models.Transaction) error {
	if item.ID == 0 {
		item.ID = f.id()
	}
	cp := *item
	f.transactions[item.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateTransactionAmount(_ context.Context, id uint64, amount decimal.Decimal) error {
	if item, ok := f.transactions[id]; ok {
		item.Amount = amount
	}
	return nil
}

func (f *fakeRepo) DeleteTransaction(_ context.Context, id uint64) error {
	delete(f.transactions, id)
	return nil
}

func (f *fakeRepo) GetPrimaryTransaction(_ context.Context, dispatchID uint64, category string) (*models.Transaction, error) {
	for _, item := range f.transactions {
		if item.Category == category && item.DispatchID != nil && *item.DispatchID == dispatchID {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetFuelReconciliationTransaction(_ context.Context, crewLogID uint64) (*models.Transaction, error) {
	for _, item := range f.transactions {
		if item.Category == models.TxCategoryFuelReconciliation && item.CrewLogID != nil && *item.CrewLogID == crewLogID {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListTransactions(_ context.Context, _ repository.ListTransactionsParams) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, item := range f.transactions {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeRepo) CountTransactions(_ context.Context, _ repository.ListTransactionsParams) (int64, error) {
	return int64(len(f.transactions)), nil
}

func (f *fakeRepo) SumTransactionEffects(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, item := range f.transactions {
		sum = sum.Add(item.Effect())
	}
	return sum, nil
}

func (f *fakeRepo) EnsureCompanyAccount(_ context.Context) (*models.CompanyAccount, error) {
	cp := f.account
	return &cp, nil
}

func (f *fakeRepo) GetCompanyAccount(_ context.Context) (*models.CompanyAccount, error) {
	cp := f.account
	return &cp, nil
}

func (f *fakeRepo) AdjustCompanyBalance(_ context.Context, delta decimal.Decimal) error {
	f.account.Balance = f.account.Balance.Add(delta)
	return nil
}

func (f *fakeRepo) InsertBalanceSnapshot(_ context.Context, item *models.BalanceSnapshot) error {
	if item.ID == 0 {
		item.ID = f.id()
	}
	f.snapshots = append(f.snapshots, *item)
	return nil
}

func (f *fakeRepo) ListBalanceSnapshots(_ context.Context, _ repository.ListBalanceSnapshotsParams) ([]models.BalanceSnapshot, error) {
	return append([]models.BalanceSnapshot(nil), f.snapshots...), nil
}

func (f *fakeRepo) transactionsByCategory(category string) []*models.Transaction {
	var out []*models.Transaction
	for id := uint64(1); id <= f.nextID; id++ {
		if item, ok := f.transactions[id]; ok && item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

func newLedgerService(repo *fakeRepo) *LedgerService {
	return &LedgerService{
		Repo: repo,
		Calc: &ledger.Calculator{},
	}
}

func testDispatch() *models.Dispatch {
	return &models.Dispatch{
		FlightID:       "PRA101",
		Departure:      "KPOC",
		Destination:    "KCRQ",
		PayloadPlanned: "650",
		FuelPlanned:    "28",
	}
}

func mustEqual(t *testing.T, got decimal.Decimal, want string, label string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s = %s, want %s", label, got.String(), want)
	}
}

func TestSettleDispatchPostsPrimaries(t *testing.T) {
	repo := newFakeRepo()
	svc := newLedgerService(repo)
	ctx := context.Background()

	dispatch := testDispatch()
	if err := repo.InsertDispatch(ctx, dispatch); err != nil {
		t.Fatal(err)
	}

	fin, err := svc.SettleDispatch(ctx, dispatch)
	if err != nil {
		t.Fatal(err)
	}
	if fin.Revenue != 549.95 || fin.Costs != 257.00 {
		t.Fatalf("financials = %+v, want revenue 549.95 costs 257.00", fin)
	}

	if len(repo.transactions) != 2 {
		t.Fatalf("transactions = %d, want 2", len(repo.transactions))
	}
	revs := repo.transactionsByCategory(models.TxCategoryPrimaryRevenue)
	if len(revs) != 1 || revs[0].DispatchID == nil || *revs[0].DispatchID != dispatch.ID {
		t.Fatalf("want one revenue transaction tagged to dispatch %d", dispatch.ID)
	}
	mustEqual(t, revs[0].Amount, "549.95", "revenue amount")

	exps := repo.transactionsByCategory(models.TxCategoryPrimaryExpense)
	if len(exps) != 1 {
		t.Fatalf("want one expense transaction, got %d", len(exps))
	}
	mustEqual(t, exps[0].Amount, "257", "expense amount")

	mustEqual(t, repo.account.Balance, "292.95", "balance")
}

func TestReconcileDispatchIdenticalEditIsNoop(t *testing.T) {
	repo := newFakeRepo()
	svc := newLedgerService(repo)
	ctx := context.Background()

	dispatch := testDispatch()
	repo.InsertDispatch(ctx, dispatch)
	if _, err := svc.SettleDispatch(ctx, dispatch); err != nil {
		t.Fatal(err)
	}
	before := repo.account.Balance

	for i := 0; i < 3; i++ {
		if _, err := svc.ReconcileDispatch(ctx, dispatch); err != nil {
			t.Fatal(err)
		}
	}

	if !repo.account.Balance.Equal(before) {
		t.Fatalf("balance drifted: %s -> %s", before, repo.account.Balance)
	}
	if len(repo.transactions) != 2 {
		t.Fatalf("transactions = %d, want 2 after repeated reconcile", len(repo.transactions))
	}
}

func TestReconcileDispatchAppliesDelta(t *testing.T) {
	repo := newFakeRepo()
	svc := newLedgerService(repo)
	ctx := context.Background()

	dispatch := testDispatch()
	repo.InsertDispatch(ctx, dispatch)
	svc.SettleDispatch(ctx, dispatch)

	// 1000 lb raises payload revenue by 122.50.
	dispatch.PayloadPlanned = "1000"
	repo.UpdateDispatch(ctx, dispatch)
	fin, err := svc.ReconcileDispatch(ctx, dispatch)
	if err != nil {
		t.Fatal(err)
	}
	if fin.Revenue != 672.45 {
		t.Fatalf("revenue = %v, want 672.45", fin.Revenue)
	}

	revs := repo.transactionsByCategory(models.TxCategoryPrimaryRevenue)
	if len(revs) != 1 {
		t.Fatalf("revenue transactions = %d, want 1 (corrected in place)", len(revs))
	}
	mustEqual(t, revs[0].Amount, "672.45", "corrected revenue amount")
	mustEqual(t, repo.account.Balance, "415.45", "balance after correction")
}

func TestReconcileDispatchCreatesMissingPrimaries(t *testing.T) {
	repo := newFakeRepo()
	svc := newLedgerService(repo)
	ctx := context.Background()

	dispatch := testDispatch()
	repo.InsertDispatch(ctx, dispatch)

	// No settlement happened; reconcile must backfill both primaries.
	if _, err := svc.ReconcileDispatch(ctx, dispatch); err != nil {
		t.Fatal(err)
	}
	if len(repo.transactions) != 2 {
		t.Fatalf("transactions = %d, want 2", len(repo.transactions))
	}
	mustEqual(t, repo.account.Balance, "292.95", "balance")
}

func TestReconcileFuelPostsOverrun(t *testing.T) {
	repo := newFakeRepo()
	svc := newLedgerService(repo)
	ctx := context.Background()

	dispatch := testDispatch()
	repo.InsertDispatch(ctx, dispatch)

	log := &models.CrewLog{
		FlightID:    "PRA101",
		Destination: "KCRQ",
		FuelUsed:    "32",
		DispatchID:  &dispatch.ID,
	}
	repo.InsertCrewLog(ctx, log)

	if err := svc.ReconcileFuel(ctx, log); err != nil {
		t.Fatal(err)
	}

	recons := repo.transactionsByCategory(models.TxCategoryFuelReconciliation)
	if len(recons) != 1 {
		t.Fatalf("reconciliation transactions = %d, want 1", len(recons))
	}
	tx := recons[0]
	if tx.Kind != models.TxKindExpense {
		t.Fatalf("kind = %s, want expense for overrun", tx.Kind)
	}
	// (32 - 28) * 5.25
	mustEqual(t, tx.Amount, "21", "overrun amount")
	if tx.CrewLogID == nil || *tx.CrewLogID != log.ID {
		t.Fatal("reconciliation not tagged to crew log")
	}
	mustEqual(t, repo.account.Balance, "-21", "balance")
}

func TestReconcileFuelEditReplacesPrior(t *testing.T) {
	repo := newFakeRepo()
	svc := newLedgerService(repo)
	ctx := context.Background()

	dispatch := testDispatch()
	repo.InsertDispatch(ctx, dispatch)
	log := &models.CrewLog{FuelUsed: "32", DispatchID: &dispatch.ID}
	repo.InsertCrewLog(ctx, log)
	svc.ReconcileFuel(ctx, log)

	// Edited down to a saving: (26 - 28) * 5.25 = -10.50.
	log.FuelUsed = "26"
	repo.UpdateCrewLog(ctx, log)
	if err := svc.ReconcileFuel(ctx, log); err != nil {
		t.Fatal(err)
	}

	recons := repo.transactionsByCategory(models.TxCategoryFuelReconciliation)
	if len(recons) != 1 {
		t.Fatalf("reconciliation transactions = %d, want exactly 1", len(recons))
	}
	if recons[0].Kind != models.TxKindRevenue {
		t.Fatalf("kind = %s, want revenue for saving", recons[0].Kind)
	}
	mustEqual(t, recons[0].Amount, "10.5", "saving amount")
	mustEqual(t, repo.account.Balance, "10.5", "balance after replacement")
}

func TestReconcileFuelNonNumericReverses(t *testing.T) {
	repo := newFakeRepo()
	svc := newLedgerService(repo)
	ctx := context.Background()

	dispatch := testDispatch()
	repo.InsertDispatch(ctx, dispatch)
	log := &models.CrewLog{FuelUsed: "32", DispatchID: &dispatch.ID}
	repo.InsertCrewLog(ctx, log)
	svc.ReconcileFuel(ctx, log)

	log.FuelUsed = "fumes"
	repo.UpdateCrewLog(ctx, log)
	if err := svc.ReconcileFuel(ctx, log); err != nil {
		t.Fatal(err)
	}

	if n := len(repo.transactionsByCategory(models.TxCategoryFuelReconciliation)); n != 0 {
		t.Fatalf("reconciliation transactions = %d, want 0", n)
	}
	mustEqual(t, repo.account.Balance, "0", "balance restored")
}

func TestReconcileFuelBelowThreshold(t *testing.T) {
	repo := newFakeRepo()
	svc := newLedgerService(repo)
	ctx := context.Background()

	dispatch := testDispatch()
	repo.InsertDispatch(ctx, dispatch)
	log := &models.CrewLog{FuelUsed: "28", DispatchID: &dispatch.ID}
	repo.InsertCrewLog(ctx, log)

	if err := svc.ReconcileFuel(ctx, log); err != nil {
		t.Fatal(err)
	}
	if len(repo.transactions) != 0 {
		t.Fatalf("transactions = %d, want none for zero variance", len(repo.transactions))
	}
}

func TestReconcileFuelUnlinkedLog(t *testing.T) {
	repo := newFakeRepo()
	svc := newLedgerService(repo)
	ctx := context.Background()

	log := &models.CrewLog{FuelUsed: "32"}
	repo.InsertCrewLog(ctx, log)
	if err := svc.ReconcileFuel(ctx, log); err != nil {
		t.Fatal(err)
	}
	if len(repo.transactions) != 0 {
		t.Fatal("unlinked log must not produce transactions")
	}
}

func TestVerifyBalance(t *testing.T) {
	repo := newFakeRepo()
	svc := newLedgerService(repo)
	ctx := context.Background()

	dispatch := testDispatch()
	repo.InsertDispatch(ctx, dispatch)
	svc.SettleDispatch(ctx, dispatch)

	log := &models.CrewLog{FuelUsed: "32", DispatchID: &dispatch.ID}
	repo.InsertCrewLog(ctx, log)
	svc.ReconcileFuel(ctx, log)

	out, err := svc.VerifyBalance(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Balanced {
		t.Fatalf("expected balanced ledger, got balance %s vs sum %s", out.Balance, out.EffectSum)
	}

	repo.account.Balance = repo.account.Balance.Add(decimal.NewFromInt(1))
	out, err = svc.VerifyBalance(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if out.Balanced {
		t.Fatal("tampered balance must not verify")
	}
}

func TestSettleDispatchUsesLinkedRecords(t *testing.T) {
	repo := newFakeRepo()
	svc := newLedgerService(repo)
	ctx := context.Background()

	dispatch := testDispatch()
	dispatch.PayloadPlanned = "100"
	repo.InsertDispatch(ctx, dispatch)

	// Linked manifests override the planned payload; the newest numeric crew
	// log fuel overrides the plan.
	repo.InsertCargoManifest(ctx, &models.CargoManifest{TotalWeight: "400", DispatchID: &dispatch.ID})
	repo.InsertCargoManifest(ctx, &models.CargoManifest{TotalWeight: "250", DispatchID: &dispatch.ID})
	repo.InsertCrewLog(ctx, &models.CrewLog{Destination: "KCRQ", FuelUsed: "25", DispatchID: &dispatch.ID})
	repo.InsertCrewLog(ctx, &models.CrewLog{Destination: "KCRQ", FuelUsed: "30", DispatchID: &dispatch.ID})

	fin, err := svc.SettleDispatch(ctx, dispatch)
	if err != nil {
		t.Fatal(err)
	}
	if fin.Revenue != 549.95 {
		t.Fatalf("revenue = %v, want 549.95 from manifest payload", fin.Revenue)
	}
	if fin.Costs != 267.50 {
		t.Fatalf("costs = %v, want 267.50 from newest log fuel", fin.Costs)
	}
}

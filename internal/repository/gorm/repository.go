package gormrepository

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"palmroute/internal/models"
	"palmroute/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- dispatches -------------------------------------------------------------

func (s *Store) InsertDispatch(ctx context.Context, item *models.Dispatch) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetDispatchByID(ctx context.Context, id uint64) (*models.Dispatch, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.Dispatch
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpdateDispatch(ctx context.Context, item *models.Dispatch) error {
	if s == nil || s.db == nil || item == nil || item.ID == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) UpdateDispatchCargoWeight(ctx context.Context, id uint64, weight *string) error {
	if s == nil || s.db == nil || id == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Dispatch{}).
		Where("id = ?", id).
		Update("actual_cargo_weight", weight).Error
}

func (s *Store) ListDispatches(ctx context.Context, params repository.ListDispatchesParams) ([]models.Dispatch, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Dispatch{})
	if params.FlightID != nil && strings.TrimSpace(*params.FlightID) != "" {
		query = query.Where("flight_id = ?", strings.TrimSpace(*params.FlightID))
	}
	if params.Completed != nil {
		query = query.Where("completed = ?", *params.Completed)
	}
	query = applyOrder(query, params.OrderBy, params.Asc, "id")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.Dispatch
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountDispatches(ctx context.Context, params repository.ListDispatchesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Dispatch{})
	if params.FlightID != nil && strings.TrimSpace(*params.FlightID) != "" {
		query = query.Where("flight_id = ?", strings.TrimSpace(*params.FlightID))
	}
	if params.Completed != nil {
		query = query.Where("completed = ?", *params.Completed)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// --- cargo manifests --------------------------------------------------------

func (s *Store) InsertCargoManifest(ctx context.Context, item *models.CargoManifest) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetCargoManifestByID(ctx context.Context, id uint64) (*models.CargoManifest, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.CargoManifest
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpdateCargoManifest(ctx context.Context, item *models.CargoManifest) error {
	if s == nil || s.db == nil || item == nil || item.ID == 0 {
		return nil
	}
	// Save with a select list so a cleared dispatch link (nil) is persisted.
	return s.db.WithContext(ctx).
		Model(item).
		Select("date", "flight_id", "aircraft", "departure", "arrival",
			"total_weight", "pieces", "notes", "dispatch_id", "updated_at").
		Updates(item).Error
}

func (s *Store) ListCargoManifests(ctx context.Context, params repository.ListCargoManifestsParams) ([]models.CargoManifest, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.cargoQuery(ctx, params)
	query = applyOrder(query, params.OrderBy, params.Asc, "id")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.CargoManifest
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountCargoManifests(ctx context.Context, params repository.ListCargoManifestsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.cargoQuery(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) cargoQuery(ctx context.Context, params repository.ListCargoManifestsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.CargoManifest{})
	if params.FlightID != nil && strings.TrimSpace(*params.FlightID) != "" {
		query = query.Where("flight_id = ?", strings.TrimSpace(*params.FlightID))
	}
	if params.DispatchID != nil {
		query = query.Where("dispatch_id = ?", *params.DispatchID)
	}
	return query
}

func (s *Store) ListCargoManifestsByDispatchID(ctx context.Context, dispatchID uint64) ([]models.CargoManifest, error) {
	if s == nil || s.db == nil || dispatchID == 0 {
		return nil, nil
	}
	var items []models.CargoManifest
	if err := s.db.WithContext(ctx).
		Where("dispatch_id = ?", dispatchID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- crew logs --------------------------------------------------------------

func (s *Store) InsertCrewLog(ctx context.Context, item *models.CrewLog) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetCrewLogByID(ctx context.Context, id uint64) (*models.CrewLog, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.CrewLog
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpdateCrewLog(ctx context.Context, item *models.CrewLog) error {
	if s == nil || s.db == nil || item == nil || item.ID == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(item).
		Select("date", "flight_id", "origin", "destination", "aircraft",
			"block_off", "block_on", "block_time", "cargo_weight", "fuel_used",
			"remarks", "dispatch_id", "updated_at").
		Updates(item).Error
}

func (s *Store) ListCrewLogs(ctx context.Context, params repository.ListCrewLogsParams) ([]models.CrewLog, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.CrewLog{})
	if params.FlightID != nil && strings.TrimSpace(*params.FlightID) != "" {
		query = query.Where("flight_id = ?", strings.TrimSpace(*params.FlightID))
	}
	if params.DispatchID != nil {
		query = query.Where("dispatch_id = ?", *params.DispatchID)
	}
	query = applyOrder(query, params.OrderBy, params.Asc, "id")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.CrewLog
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountCrewLogs(ctx context.Context, params repository.ListCrewLogsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := s.db.WithContext(ctx).Model(&models.CrewLog{})
	if params.FlightID != nil && strings.TrimSpace(*params.FlightID) != "" {
		query = query.Where("flight_id = ?", strings.TrimSpace(*params.FlightID))
	}
	if params.DispatchID != nil {
		query = query.Where("dispatch_id = ?", *params.DispatchID)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) ListCrewLogsByDispatchID(ctx context.Context, dispatchID uint64) ([]models.CrewLog, error) {
	if s == nil || s.db == nil || dispatchID == 0 {
		return nil, nil
	}
	var items []models.CrewLog
	if err := s.db.WithContext(ctx).
		Where("dispatch_id = ?", dispatchID).
		Order("id desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- ledger -----------------------------------------------------------------

func (s *Store) InsertTransaction(ctx context.Context, item *models.Transaction) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) UpdateTransactionAmount(ctx context.Context, id uint64, amount decimal.Decimal) error {
	if s == nil || s.db == nil || id == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ?", id).
		Update("amount", amount).Error
}

func (s *Store) DeleteTransaction(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil || id == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&models.Transaction{}, "id = ?", id).Error
}

func (s *Store) GetPrimaryTransaction(ctx context.Context, dispatchID uint64, category string) (*models.Transaction, error) {
	if s == nil || s.db == nil || dispatchID == 0 {
		return nil, nil
	}
	var item models.Transaction
	err := s.db.WithContext(ctx).
		Where("dispatch_id = ?", dispatchID).
		Where("category = ?", category).
		Order("id asc").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetFuelReconciliationTransaction(ctx context.Context, crewLogID uint64) (*models.Transaction, error) {
	if s == nil || s.db == nil || crewLogID == 0 {
		return nil, nil
	}
	var item models.Transaction
	err := s.db.WithContext(ctx).
		Where("crew_log_id = ?", crewLogID).
		Where("category = ?", models.TxCategoryFuelReconciliation).
		Order("id asc").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListTransactions(ctx context.Context, params repository.ListTransactionsParams) ([]models.Transaction, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.transactionQuery(ctx, params)
	query = applyOrder(query, params.OrderBy, params.Asc, "id")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.Transaction
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountTransactions(ctx context.Context, params repository.ListTransactionsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.transactionQuery(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) transactionQuery(ctx context.Context, params repository.ListTransactionsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Transaction{})
	if params.Kind != nil && strings.TrimSpace(*params.Kind) != "" {
		query = query.Where("kind = ?", strings.TrimSpace(*params.Kind))
	}
	if params.Category != nil && strings.TrimSpace(*params.Category) != "" {
		query = query.Where("category = ?", strings.TrimSpace(*params.Category))
	}
	if params.DispatchID != nil {
		query = query.Where("dispatch_id = ?", *params.DispatchID)
	}
	if params.CrewLogID != nil {
		query = query.Where("crew_log_id = ?", *params.CrewLogID)
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", *params.Since)
	}
	return query
}

func (s *Store) SumTransactionEffects(ctx context.Context) (decimal.Decimal, error) {
	if s == nil || s.db == nil {
		return decimal.Zero, nil
	}
	var out decimal.NullDecimal
	err := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN kind = 'expense' THEN -amount ELSE amount END), 0)").
		Scan(&out).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !out.Valid {
		return decimal.Zero, nil
	}
	return out.Decimal, nil
}

func (s *Store) EnsureCompanyAccount(ctx context.Context) (*models.CompanyAccount, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	account, err := s.GetCompanyAccount(ctx)
	if err != nil || account != nil {
		return account, err
	}
	item := &models.CompanyAccount{Balance: decimal.Zero}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Store) GetCompanyAccount(ctx context.Context) (*models.CompanyAccount, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.CompanyAccount
	err := s.db.WithContext(ctx).Order("id asc").First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) AdjustCompanyBalance(ctx context.Context, delta decimal.Decimal) error {
	if s == nil || s.db == nil || delta.IsZero() {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.CompanyAccount{}).
		Where("id = (SELECT MIN(id) FROM company_accounts)").
		Update("balance", gorm.Expr("balance + ?", delta)).Error
}

func (s *Store) InsertBalanceSnapshot(ctx context.Context, item *models.BalanceSnapshot) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListBalanceSnapshots(ctx context.Context, params repository.ListBalanceSnapshotsParams) ([]models.BalanceSnapshot, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.BalanceSnapshot{})
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("snapshot_at >= ?", *params.Since)
	}
	if params.Until != nil && !params.Until.IsZero() {
		query = query.Where("snapshot_at <= ?", *params.Until)
	}
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.BalanceSnapshot
	if err := query.Order("snapshot_at desc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- settings ---------------------------------------------------------------

func (s *Store) UpsertSetting(ctx context.Context, item *models.Setting) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.Key) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"value",
			"description",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetSettingByKey(ctx context.Context, key string) (*models.Setting, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	var item models.Setting
	err := s.db.WithContext(ctx).First(&item, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListSettings(ctx context.Context, params repository.ListSettingsParams) ([]models.Setting, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Setting{})
	if params.Prefix != nil && strings.TrimSpace(*params.Prefix) != "" {
		query = query.Where("key LIKE ?", strings.TrimSpace(*params.Prefix)+"%")
	}
	query = applyOrder(query, params.OrderBy, params.Asc, "key")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.Setting
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountSettings(ctx context.Context, params repository.ListSettingsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Setting{})
	if params.Prefix != nil && strings.TrimSpace(*params.Prefix) != "" {
		query = query.Where("key LIKE ?", strings.TrimSpace(*params.Prefix)+"%")
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// --- NOTAMs & fleet ---------------------------------------------------------

func (s *Store) InsertNotam(ctx context.Context, item *models.Notam) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetNotamByID(ctx context.Context, id uint64) (*models.Notam, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.Notam
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpdateNotam(ctx context.Context, item *models.Notam) error {
	if s == nil || s.db == nil || item == nil || item.ID == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) ListNotams(ctx context.Context, params repository.ListNotamsParams) ([]models.Notam, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.notamQuery(ctx, params)
	query = applyOrder(query, params.OrderBy, params.Asc, "id")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.Notam
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountNotams(ctx context.Context, params repository.ListNotamsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.notamQuery(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) notamQuery(ctx context.Context, params repository.ListNotamsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Notam{})
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	if params.Area != nil && strings.TrimSpace(*params.Area) != "" {
		query = query.Where("area = ?", strings.TrimSpace(*params.Area))
	}
	return query
}

func (s *Store) InsertFleetEntry(ctx context.Context, item *models.FleetEntry) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetFleetEntryByID(ctx context.Context, id uint64) (*models.FleetEntry, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.FleetEntry
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpdateFleetEntry(ctx context.Context, item *models.FleetEntry) error {
	if s == nil || s.db == nil || item == nil || item.ID == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) ListFleetEntries(ctx context.Context, params repository.ListFleetEntriesParams) ([]models.FleetEntry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.fleetQuery(ctx, params)
	query = applyOrder(query, params.OrderBy, params.Asc, "id")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.FleetEntry
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountFleetEntries(ctx context.Context, params repository.ListFleetEntriesParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.fleetQuery(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) fleetQuery(ctx context.Context, params repository.ListFleetEntriesParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.FleetEntry{})
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	if params.Base != nil && strings.TrimSpace(*params.Base) != "" {
		query = query.Where("base = ?", strings.TrimSpace(*params.Base))
	}
	return query
}

func (s *Store) DashboardCounts(ctx context.Context) (repository.DashboardCounts, error) {
	var out repository.DashboardCounts
	if s == nil || s.db == nil {
		return out, nil
	}
	counts := []struct {
		model any
		dst   *int64
	}{
		{&models.CargoManifest{}, &out.CargoManifests},
		{&models.Dispatch{}, &out.DispatchReleases},
		{&models.CrewLog{}, &out.CrewLogs},
		{&models.Notam{}, &out.CompanyNotams},
		{&models.FleetEntry{}, &out.FleetEntries},
	}
	for _, c := range counts {
		if err := s.db.WithContext(ctx).Model(c.model).Count(c.dst).Error; err != nil {
			return out, err
		}
	}
	return out, nil
}

// --- helpers ----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(strings.ToLower(orderBy))
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"palmroute/internal/models"
)

type DispatchStore interface {
	InsertDispatch(ctx context.Context, item *models.Dispatch) error
	GetDispatchByID(ctx context.Context, id uint64) (*models.Dispatch, error)
	UpdateDispatch(ctx context.Context, item *models.Dispatch) error
	UpdateDispatchCargoWeight(ctx context.Context, id uint64, weight *string) error
	ListDispatches(ctx context.Context, params ListDispatchesParams) ([]models.Dispatch, error)
	CountDispatches(ctx context.Context, params ListDispatchesParams) (int64, error)
}

type CargoStore interface {
	InsertCargoManifest(ctx context.Context, item *models.CargoManifest) error
	GetCargoManifestByID(ctx context.Context, id uint64) (*models.CargoManifest, error)
	UpdateCargoManifest(ctx context.Context, item *models.CargoManifest) error
	ListCargoManifests(ctx context.Context, params ListCargoManifestsParams) ([]models.CargoManifest, error)
	CountCargoManifests(ctx context.Context, params ListCargoManifestsParams) (int64, error)
	ListCargoManifestsByDispatchID(ctx context.Context, dispatchID uint64) ([]models.CargoManifest, error)
}

type CrewLogStore interface {
	InsertCrewLog(ctx context.Context, item *models.CrewLog) error
	GetCrewLogByID(ctx context.Context, id uint64) (*models.CrewLog, error)
	UpdateCrewLog(ctx context.Context, item *models.CrewLog) error
	ListCrewLogs(ctx context.Context, params ListCrewLogsParams) ([]models.CrewLog, error)
	CountCrewLogs(ctx context.Context, params ListCrewLogsParams) (int64, error)

	// ListCrewLogsByDispatchID returns logs newest-first; the financial
	// computation takes the first numeric fuel_used.
	ListCrewLogsByDispatchID(ctx context.Context, dispatchID uint64) ([]models.CrewLog, error)
}

type LedgerStore interface {
	InsertTransaction(ctx context.Context, item *models.Transaction) error
	UpdateTransactionAmount(ctx context.Context, id uint64, amount decimal.Decimal) error
	DeleteTransaction(ctx context.Context, id uint64) error
	GetPrimaryTransaction(ctx context.Context, dispatchID uint64, category string) (*models.Transaction, error)
	GetFuelReconciliationTransaction(ctx context.Context, crewLogID uint64) (*models.Transaction, error)
	ListTransactions(ctx context.Context, params ListTransactionsParams) ([]models.Transaction, error)
	CountTransactions(ctx context.Context, params ListTransactionsParams) (int64, error)

	// SumTransactionEffects is the signed sum over all live transactions
	// (revenue positive, expense negative); it must equal the account balance.
	SumTransactionEffects(ctx context.Context) (decimal.Decimal, error)

	EnsureCompanyAccount(ctx context.Context) (*models.CompanyAccount, error)
	GetCompanyAccount(ctx context.Context) (*models.CompanyAccount, error)
	AdjustCompanyBalance(ctx context.Context, delta decimal.Decimal) error

	InsertBalanceSnapshot(ctx context.Context, item *models.BalanceSnapshot) error
	ListBalanceSnapshots(ctx context.Context, params ListBalanceSnapshotsParams) ([]models.BalanceSnapshot, error)
}

type SettingsStore interface {
	UpsertSetting(ctx context.Context, item *models.Setting) error
	GetSettingByKey(ctx context.Context, key string) (*models.Setting, error)
	ListSettings(ctx context.Context, params ListSettingsParams) ([]models.Setting, error)
	CountSettings(ctx context.Context, params ListSettingsParams) (int64, error)
}

type OpsStore interface {
	InsertNotam(ctx context.Context, item *models.Notam) error
	GetNotamByID(ctx context.Context, id uint64) (*models.Notam, error)
	UpdateNotam(ctx context.Context, item *models.Notam) error
	ListNotams(ctx context.Context, params ListNotamsParams) ([]models.Notam, error)
	CountNotams(ctx context.Context, params ListNotamsParams) (int64, error)

	InsertFleetEntry(ctx context.Context, item *models.FleetEntry) error
	GetFleetEntryByID(ctx context.Context, id uint64) (*models.FleetEntry, error)
	UpdateFleetEntry(ctx context.Context, item *models.FleetEntry) error
	ListFleetEntries(ctx context.Context, params ListFleetEntriesParams) ([]models.FleetEntry, error)
	CountFleetEntries(ctx context.Context, params ListFleetEntriesParams) (int64, error)

	DashboardCounts(ctx context.Context) (DashboardCounts, error)
}

// LedgerRepository is what the ledger service needs: the dispatch graph plus
// the transaction ledger and account.
type LedgerRepository interface {
	DispatchStore
	CargoStore
	CrewLogStore
	LedgerStore
}

// CargoRepository covers manifest mutation plus the dispatch aggregate it
// maintains.
type CargoRepository interface {
	DispatchStore
	CargoStore
}

// Repository is the unified store handed to handlers and wiring.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	DispatchStore
	CargoStore
	CrewLogStore
	LedgerStore
	SettingsStore
	OpsStore
}

type ListDispatchesParams struct {
	Limit     int
	Offset    int
	FlightID  *string
	Completed *bool
	OrderBy   string
	Asc       *bool
}

type ListCargoManifestsParams struct {
	Limit      int
	Offset     int
	FlightID   *string
	DispatchID *uint64
	OrderBy    string
	Asc        *bool
}

type ListCrewLogsParams struct {
	Limit      int
	Offset     int
	FlightID   *string
	DispatchID *uint64
	OrderBy    string
	Asc        *bool
}

type ListTransactionsParams struct {
	Limit      int
	Offset     int
	Kind       *string
	Category   *string
	DispatchID *uint64
	CrewLogID  *uint64
	Since      *time.Time
	OrderBy    string
	Asc        *bool
}

type ListSettingsParams struct {
	Limit   int
	Offset  int
	Prefix  *string
	OrderBy string
	Asc     *bool
}

type ListNotamsParams struct {
	Limit   int
	Offset  int
	Status  *string
	Area    *string
	OrderBy string
	Asc     *bool
}

type ListFleetEntriesParams struct {
	Limit   int
	Offset  int
	Status  *string
	Base    *string
	OrderBy string
	Asc     *bool
}

type ListBalanceSnapshotsParams struct {
	Limit  int
	Offset int
	Since  *time.Time
	Until  *time.Time
}

type DashboardCounts struct {
	CargoManifests   int64 `json:"cargo_manifests"`
	DispatchReleases int64 `json:"dispatch_releases"`
	CrewLogs         int64 `json:"crew_logs"`
	CompanyNotams    int64 `json:"company_notams"`
	FleetEntries     int64 `json:"fleet_entries"`
}

package service

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"palmroute/internal/ledger"
	"palmroute/internal/models"
	"palmroute/internal/repository"
)

// CargoService maintains the manifest-to-dispatch linkage and keeps each
// dispatch's aggregated actual_cargo_weight in sync with it.
type CargoService struct {
	Repo   repository.CargoRepository
	Logger *zap.Logger
}

func (s *CargoService) Create(ctx context.Context, manifest *models.CargoManifest) error {
	if s == nil || s.Repo == nil || manifest == nil {
		return nil
	}
	if err := s.validateLink(ctx, manifest.DispatchID); err != nil {
		return err
	}
	if err := s.Repo.InsertCargoManifest(ctx, manifest); err != nil {
		return err
	}
	return s.refresh(ctx, manifest.DispatchID, nil)
}

// Update persists an edited manifest and refreshes the aggregate on both the
// previous and the current link target.
func (s *CargoService) Update(ctx context.Context, manifest *models.CargoManifest, previousDispatchID *uint64) error {
	if s == nil || s.Repo == nil || manifest == nil || manifest.ID == 0 {
		return nil
	}
	if err := s.validateLink(ctx, manifest.DispatchID); err != nil {
		return err
	}
	if err := s.Repo.UpdateCargoManifest(ctx, manifest); err != nil {
		return err
	}
	return s.refresh(ctx, manifest.DispatchID, previousDispatchID)
}

func (s *CargoService) Link(ctx context.Context, manifestID, dispatchID uint64) (*models.CargoManifest, error) {
	if s == nil || s.Repo == nil || manifestID == 0 || dispatchID == 0 {
		return nil, nil
	}
	manifest, err := s.Repo.GetCargoManifestByID(ctx, manifestID)
	if err != nil || manifest == nil {
		return nil, err
	}
	if err := s.validateLink(ctx, &dispatchID); err != nil {
		return nil, err
	}
	previous := manifest.DispatchID
	manifest.DispatchID = &dispatchID
	if err := s.Repo.UpdateCargoManifest(ctx, manifest); err != nil {
		return nil, err
	}
	if err := s.refresh(ctx, manifest.DispatchID, previous); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (s *CargoService) Unlink(ctx context.Context, manifestID uint64) (*models.CargoManifest, error) {
	if s == nil || s.Repo == nil || manifestID == 0 {
		return nil, nil
	}
	manifest, err := s.Repo.GetCargoManifestByID(ctx, manifestID)
	if err != nil || manifest == nil {
		return nil, err
	}
	previous := manifest.DispatchID
	manifest.DispatchID = nil
	if err := s.Repo.UpdateCargoManifest(ctx, manifest); err != nil {
		return nil, err
	}
	if err := s.refresh(ctx, nil, previous); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (s *CargoService) validateLink(ctx context.Context, dispatchID *uint64) error {
	if dispatchID == nil {
		return nil
	}
	dispatch, err := s.Repo.GetDispatchByID(ctx, *dispatchID)
	if err != nil {
		return err
	}
	if dispatch == nil {
		return fmt.Errorf("dispatch %d not found", *dispatchID)
	}
	return nil
}

func (s *CargoService) refresh(ctx context.Context, current, previous *uint64) error {
	if previous != nil {
		if err := s.RefreshDispatchCargo(ctx, *previous); err != nil {
			return err
		}
	}
	if current != nil && (previous == nil || *current != *previous) {
		if err := s.RefreshDispatchCargo(ctx, *current); err != nil {
			return err
		}
	}
	return nil
}

// RefreshDispatchCargo recomputes a dispatch's aggregated cargo weight from
// its currently linked manifests. The stored form is integer-formatted for
// whole sums, one decimal place otherwise, and NULL when no linked manifest
// carries a numeric weight.
func (s *CargoService) RefreshDispatchCargo(ctx context.Context, dispatchID uint64) error {
	if s == nil || s.Repo == nil || dispatchID == 0 {
		return nil
	}
	manifests, err := s.Repo.ListCargoManifestsByDispatchID(ctx, dispatchID)
	if err != nil {
		return err
	}

	var sum float64
	numeric := false
	for _, m := range manifests {
		if w, ok := ledger.ParseNumeric(m.TotalWeight); ok {
			sum += w
			numeric = true
		}
	}

	var weight *string
	if numeric {
		formatted := formatWeight(sum)
		weight = &formatted
	}
	if err := s.Repo.UpdateDispatchCargoWeight(ctx, dispatchID, weight); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Debug("dispatch cargo aggregate refreshed",
			zap.Uint64("dispatch_id", dispatchID),
			zap.Int("manifests", len(manifests)),
		)
	}
	return nil
}

func formatWeight(sum float64) string {
	if sum == math.Trunc(sum) {
		return strconv.FormatInt(int64(sum), 10)
	}
	return strconv.FormatFloat(sum, 'f', 1, 64)
}

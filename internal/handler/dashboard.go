package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"palmroute/internal/repository"
)

type DashboardHandler struct {
	Repo repository.Repository
}

func (h *DashboardHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/dashboard", h.dashboard)
}

// dashboard returns record counts plus the five most recent entries of each
// collection.
func (h *DashboardHandler) dashboard(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	ctx := c.Request.Context()

	counts, err := h.Repo.DashboardCounts(ctx)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}

	desc := boolPtr(false)
	dispatches, err := h.Repo.ListDispatches(ctx, repository.ListDispatchesParams{
		Limit: 5, OrderBy: "id", Asc: desc,
	})
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	manifests, err := h.Repo.ListCargoManifests(ctx, repository.ListCargoManifestsParams{
		Limit: 5, OrderBy: "id", Asc: desc,
	})
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	logs, err := h.Repo.ListCrewLogs(ctx, repository.ListCrewLogsParams{
		Limit: 5, OrderBy: "id", Asc: desc,
	})
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	notams, err := h.Repo.ListNotams(ctx, repository.ListNotamsParams{
		Limit: 5, OrderBy: "id", Asc: desc,
	})
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	fleet, err := h.Repo.ListFleetEntries(ctx, repository.ListFleetEntriesParams{
		Limit: 5, OrderBy: "id", Asc: desc,
	})
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	account, err := h.Repo.GetCompanyAccount(ctx)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}

	Ok(c, gin.H{
		"counts":          counts,
		"dispatches":      dispatches,
		"cargo_manifests": manifests,
		"crew_logs":       logs,
		"notams":          notams,
		"fleet":           fleet,
		"account":         account,
	}, nil)
}

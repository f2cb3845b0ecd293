package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"palmroute/internal/models"
	"palmroute/internal/repository"
	"palmroute/internal/service"
)

type DispatchHandler struct {
	Repo    repository.Repository
	Service *service.DispatchService
	Ledger  *service.LedgerService
}

func (h *DispatchHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/dispatches")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.GET("/:id/financials", h.financials)
}

type dispatchRequest struct {
	Date           string `json:"date"`
	FlightID       string `json:"flight_id"`
	Aircraft       string `json:"aircraft"`
	Departure      string `json:"departure"`
	Destination    string `json:"destination"`
	Offblocks      string `json:"offblocks"`
	Arrival        string `json:"arrival"`
	Route          string `json:"route"`
	PayloadPlanned string `json:"payload_planned"`
	FuelPlanned    string `json:"fuel_planned"`
	Completed      *bool  `json:"completed"`
}

func (r dispatchRequest) apply(item *models.Dispatch) {
	item.Date = r.Date
	item.FlightID = r.FlightID
	item.Aircraft = r.Aircraft
	item.Departure = r.Departure
	item.Destination = r.Destination
	item.Offblocks = r.Offblocks
	item.Arrival = r.Arrival
	item.Route = r.Route
	item.PayloadPlanned = r.PayloadPlanned
	item.FuelPlanned = r.FuelPlanned
	if r.Completed != nil {
		item.Completed = *r.Completed
	}
}

func (h *DispatchHandler) create(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "dispatch service unavailable", nil)
		return
	}
	var req dispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	item := &models.Dispatch{}
	req.apply(item)
	fin, err := h.Service.Create(c.Request.Context(), item)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, map[string]any{"financials": fin})
}

func (h *DispatchHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListDispatchesParams{
		Limit:     limit,
		Offset:    offset,
		FlightID:  strQueryPtr(c, "flight_id"),
		Completed: boolQueryPtr(c, "completed"),
		OrderBy:   "id",
		Asc:       boolPtr(false),
	}
	items, err := h.Repo.ListDispatches(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountDispatches(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

func (h *DispatchHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetDispatchByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "dispatch not found", nil)
		return
	}
	manifests, _ := h.Repo.ListCargoManifestsByDispatchID(c.Request.Context(), id)
	logs, _ := h.Repo.ListCrewLogsByDispatchID(c.Request.Context(), id)
	Ok(c, item, map[string]any{
		"cargo_manifests": manifests,
		"crew_logs":       logs,
	})
}

func (h *DispatchHandler) update(c *gin.Context) {
	if h.Repo == nil || h.Service == nil {
		Error(c, http.StatusInternalServerError, "dispatch service unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetDispatchByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "dispatch not found", nil)
		return
	}
	var req dispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	req.apply(item)
	fin, err := h.Service.Update(c.Request.Context(), item)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, map[string]any{"financials": fin})
}

// financials computes a deterministic preview without touching the ledger.
func (h *DispatchHandler) financials(c *gin.Context) {
	if h.Repo == nil || h.Ledger == nil {
		Error(c, http.StatusInternalServerError, "ledger service unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetDispatchByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "dispatch not found", nil)
		return
	}
	fin, err := h.Ledger.Preview(c.Request.Context(), item)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, fin, nil)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"palmroute/internal/models"
	"palmroute/internal/repository"
)

type FleetHandler struct {
	Repo repository.Repository
}

func (h *FleetHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/fleet")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
}

type fleetEntryRequest struct {
	AircraftType     string `json:"aircraft_type"`
	Registration     string `json:"registration"`
	Base             string `json:"base"`
	Status           string `json:"status"`
	MaxTakeoffWeight string `json:"max_takeoff_weight"`
	UsefulLoad       string `json:"useful_load"`
	Notes            string `json:"notes"`
}

func (r fleetEntryRequest) apply(item *models.FleetEntry) {
	item.AircraftType = r.AircraftType
	item.Registration = r.Registration
	item.Base = r.Base
	item.Status = r.Status
	item.MaxTakeoffWeight = r.MaxTakeoffWeight
	item.UsefulLoad = r.UsefulLoad
	item.Notes = r.Notes
}

func (h *FleetHandler) create(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req fleetEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	item := &models.FleetEntry{}
	req.apply(item)
	if err := h.Repo.InsertFleetEntry(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

func (h *FleetHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListFleetEntriesParams{
		Limit:   limit,
		Offset:  offset,
		Status:  strQueryPtr(c, "status"),
		Base:    strQueryPtr(c, "base"),
		OrderBy: "id",
		Asc:     boolPtr(false),
	}
	items, err := h.Repo.ListFleetEntries(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountFleetEntries(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

func (h *FleetHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetFleetEntryByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "fleet entry not found", nil)
		return
	}
	Ok(c, item, nil)
}

func (h *FleetHandler) update(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetFleetEntryByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "fleet entry not found", nil)
		return
	}
	var req fleetEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	req.apply(item)
	if err := h.Repo.UpdateFleetEntry(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

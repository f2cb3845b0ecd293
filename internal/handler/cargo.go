package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"palmroute/internal/models"
	"palmroute/internal/repository"
	"palmroute/internal/service"
)

type CargoHandler struct {
	Repo    repository.Repository
	Service *service.CargoService
}

func (h *CargoHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/cargo-manifests")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.POST("/:id/link", h.link)
	g.POST("/:id/unlink", h.unlink)
}

type cargoManifestRequest struct {
	Date        string  `json:"date"`
	FlightID    string  `json:"flight_id"`
	Aircraft    string  `json:"aircraft"`
	Departure   string  `json:"departure"`
	Arrival     string  `json:"arrival"`
	TotalWeight string  `json:"total_weight"`
	Pieces      string  `json:"pieces"`
	Notes       string  `json:"notes"`
	DispatchID  *uint64 `json:"dispatch_id"`
}

func (r cargoManifestRequest) apply(item *models.CargoManifest) {
	item.Date = r.Date
	item.FlightID = r.FlightID
	item.Aircraft = r.Aircraft
	item.Departure = r.Departure
	item.Arrival = r.Arrival
	item.TotalWeight = r.TotalWeight
	item.Pieces = r.Pieces
	item.Notes = r.Notes
	item.DispatchID = r.DispatchID
}

func (h *CargoHandler) create(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "cargo service unavailable", nil)
		return
	}
	var req cargoManifestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	item := &models.CargoManifest{}
	req.apply(item)
	if err := h.Service.Create(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

func (h *CargoHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListCargoManifestsParams{
		Limit:      limit,
		Offset:     offset,
		FlightID:   strQueryPtr(c, "flight_id"),
		DispatchID: uint64QueryPtr(c, "dispatch_id"),
		OrderBy:    "id",
		Asc:        boolPtr(false),
	}
	items, err := h.Repo.ListCargoManifests(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountCargoManifests(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

func (h *CargoHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetCargoManifestByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "cargo manifest not found", nil)
		return
	}
	Ok(c, item, nil)
}

func (h *CargoHandler) update(c *gin.Context) {
	if h.Repo == nil || h.Service == nil {
		Error(c, http.StatusInternalServerError, "cargo service unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetCargoManifestByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "cargo manifest not found", nil)
		return
	}
	var req cargoManifestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	previous := item.DispatchID
	req.apply(item)
	if err := h.Service.Update(c.Request.Context(), item, previous); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

type linkRequest struct {
	DispatchID uint64 `json:"dispatch_id"`
}

func (h *CargoHandler) link(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "cargo service unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DispatchID == 0 {
		Error(c, http.StatusBadRequest, "invalid dispatch_id", nil)
		return
	}
	item, err := h.Service.Link(c.Request.Context(), id, req.DispatchID)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "cargo manifest not found", nil)
		return
	}
	Ok(c, item, nil)
}

func (h *CargoHandler) unlink(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "cargo service unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Service.Unlink(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "cargo manifest not found", nil)
		return
	}
	Ok(c, item, nil)
}

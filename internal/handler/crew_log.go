package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"palmroute/internal/models"
	"palmroute/internal/repository"
	"palmroute/internal/service"
)

type CrewLogHandler struct {
	Repo    repository.Repository
	Service *service.CrewLogService
}

func (h *CrewLogHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/crew-logs")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
}

type crewLogRequest struct {
	Date        string  `json:"date"`
	FlightID    string  `json:"flight_id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Aircraft    string  `json:"aircraft"`
	BlockOff    string  `json:"block_off"`
	BlockOn     string  `json:"block_on"`
	BlockTime   string  `json:"block_time"`
	CargoWeight string  `json:"cargo_weight"`
	FuelUsed    string  `json:"fuel_used"`
	Remarks     string  `json:"remarks"`
	DispatchID  *uint64 `json:"dispatch_id"`
}

func (r crewLogRequest) apply(item *models.CrewLog) {
	item.Date = r.Date
	item.FlightID = r.FlightID
	item.Origin = r.Origin
	item.Destination = r.Destination
	item.Aircraft = r.Aircraft
	item.BlockOff = r.BlockOff
	item.BlockOn = r.BlockOn
	item.BlockTime = r.BlockTime
	item.CargoWeight = r.CargoWeight
	item.FuelUsed = r.FuelUsed
	item.Remarks = r.Remarks
	item.DispatchID = r.DispatchID
}

func (h *CrewLogHandler) create(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "crew log service unavailable", nil)
		return
	}
	var req crewLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	item := &models.CrewLog{}
	req.apply(item)
	if err := h.Service.Create(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

func (h *CrewLogHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListCrewLogsParams{
		Limit:      limit,
		Offset:     offset,
		FlightID:   strQueryPtr(c, "flight_id"),
		DispatchID: uint64QueryPtr(c, "dispatch_id"),
		OrderBy:    "id",
		Asc:        boolPtr(false),
	}
	items, err := h.Repo.ListCrewLogs(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountCrewLogs(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

func (h *CrewLogHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetCrewLogByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "crew log not found", nil)
		return
	}
	Ok(c, item, nil)
}

func (h *CrewLogHandler) update(c *gin.Context) {
	if h.Repo == nil || h.Service == nil {
		Error(c, http.StatusInternalServerError, "crew log service unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetCrewLogByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "crew log not found", nil)
		return
	}
	var req crewLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	req.apply(item)
	if err := h.Service.Update(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"palmroute/internal/models"
	"palmroute/internal/repository"
)

type NotamHandler struct {
	Repo repository.Repository
}

func (h *NotamHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/notams")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
}

type notamRequest struct {
	NotamID string `json:"notam_id"`
	Subject string `json:"subject"`
	Area    string `json:"area"`
	Text    string `json:"text"`
	Status  string `json:"status"`
}

func (r notamRequest) apply(item *models.Notam) {
	item.NotamID = r.NotamID
	item.Subject = r.Subject
	item.Area = r.Area
	item.Text = r.Text
	item.Status = r.Status
}

func (h *NotamHandler) create(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req notamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	item := &models.Notam{}
	req.apply(item)
	if err := h.Repo.InsertNotam(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

func (h *NotamHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListNotamsParams{
		Limit:   limit,
		Offset:  offset,
		Status:  strQueryPtr(c, "status"),
		Area:    strQueryPtr(c, "area"),
		OrderBy: "id",
		Asc:     boolPtr(false),
	}
	items, err := h.Repo.ListNotams(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountNotams(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

func (h *NotamHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetNotamByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "notam not found", nil)
		return
	}
	Ok(c, item, nil)
}

func (h *NotamHandler) update(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetNotamByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "notam not found", nil)
		return
	}
	var req notamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	req.apply(item)
	if err := h.Repo.UpdateNotam(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

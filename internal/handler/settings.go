package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"palmroute/internal/ledger"
	"palmroute/internal/models"
	"palmroute/internal/repository"
	"palmroute/internal/service"
)

type SettingsHandler struct {
	Repo    repository.Repository
	Service *service.SettingsService
}

func (h *SettingsHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/settings")
	g.GET("", h.list)
	g.GET("/:key", h.get)
	g.PUT("/:key", h.put)

	sim := r.Group("/api/v1/sim")
	sim.GET("/difficulty", h.getDifficulty)
	sim.PUT("/difficulty", h.putDifficulty)
}

func (h *SettingsHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 100)
	offset := intQuery(c, "offset", 0)
	params := repository.ListSettingsParams{
		Limit:   limit,
		Offset:  offset,
		Prefix:  strQueryPtr(c, "prefix"),
		OrderBy: "key",
		Asc:     boolPtr(true),
	}
	items, err := h.Repo.ListSettings(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountSettings(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

func (h *SettingsHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	key := c.Param("key")
	item, err := h.Repo.GetSettingByKey(c.Request.Context(), key)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "setting not found", nil)
		return
	}
	Ok(c, item, nil)
}

type settingRequest struct {
	Value       json.RawMessage `json:"value"`
	Description string          `json:"description"`
}

func (h *SettingsHandler) put(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	key := c.Param("key")
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Value) == 0 {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	if !json.Valid(req.Value) {
		Error(c, http.StatusBadRequest, "value must be valid JSON", nil)
		return
	}
	item := &models.Setting{
		Key:         key,
		Value:       datatypes.JSON(req.Value),
		Description: req.Description,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := h.Repo.UpsertSetting(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

func (h *SettingsHandler) getDifficulty(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "settings service unavailable", nil)
		return
	}
	name := h.Service.Difficulty(c.Request.Context())
	Ok(c, gin.H{"difficulty": name}, map[string]any{
		"known": ledger.DifficultyNames(),
	})
}

type difficultyRequest struct {
	Difficulty string `json:"difficulty"`
}

func (h *SettingsHandler) putDifficulty(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "settings service unavailable", nil)
		return
	}
	var req difficultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	if err := h.Service.SetDifficulty(c.Request.Context(), req.Difficulty); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"difficulty": req.Difficulty}, nil)
}

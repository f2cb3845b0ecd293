package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"palmroute/internal/repository"
	"palmroute/internal/service"
)

type LedgerHandler struct {
	Repo    repository.Repository
	Service *service.LedgerService
}

func (h *LedgerHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/ledger")
	g.GET("/transactions", h.transactions)
	g.GET("/account", h.account)
	g.GET("/verify", h.verify)
	g.GET("/snapshots", h.snapshots)
}

func (h *LedgerHandler) transactions(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListTransactionsParams{
		Limit:      limit,
		Offset:     offset,
		Kind:       strQueryPtr(c, "kind"),
		Category:   strQueryPtr(c, "category"),
		DispatchID: uint64QueryPtr(c, "dispatch_id"),
		CrewLogID:  uint64QueryPtr(c, "crew_log_id"),
		OrderBy:    "id",
		Asc:        boolPtr(false),
	}
	items, err := h.Repo.ListTransactions(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountTransactions(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

func (h *LedgerHandler) account(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	account, err := h.Repo.EnsureCompanyAccount(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, account, nil)
}

func (h *LedgerHandler) verify(c *gin.Context) {
	if h.Service == nil {
		Error(c, http.StatusInternalServerError, "ledger service unavailable", nil)
		return
	}
	out, err := h.Service.VerifyBalance(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, out, nil)
}

func (h *LedgerHandler) snapshots(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListBalanceSnapshotsParams{
		Limit:  limit,
		Offset: offset,
	}
	items, err := h.Repo.ListBalanceSnapshots(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

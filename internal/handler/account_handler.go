package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkyard/petstock-api/internal/service"
	"github.com/inkyard/petstock-api/pkg/response"
)

// AccountHandler handles the administrator-only account surface.
type AccountHandler struct {
	service *service.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(svc *service.AccountService) *AccountHandler {
	return &AccountHandler{service: svc}
}

// List godoc
// @Summary List accounts
// @Description List every account; administrator only
// @Tags Accounts
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, accounts)
}

// ToggleStatus godoc
// @Summary Toggle account status
// @Description Flip a standard account between ACTIVE and BLOCKED; administrators and unknown ids are never toggled
// @Tags Accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} response.Envelope
// @Success 204 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /accounts/{id}/status [patch]
func (h *AccountHandler) ToggleStatus(c *gin.Context) {
	info, err := h.service.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if info == nil {
		response.NoContent(c)
		return
	}

	response.JSON(c, http.StatusOK, info)
}

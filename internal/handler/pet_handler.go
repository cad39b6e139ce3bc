package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkyard/petstock-api/internal/models"
	"github.com/inkyard/petstock-api/internal/service"
	appErrors "github.com/inkyard/petstock-api/pkg/errors"
	"github.com/inkyard/petstock-api/pkg/response"
)

// PetHandler handles inventory endpoints.
type PetHandler struct {
	inventory *service.InventoryService
	advice    *service.AdviceService
	export    *service.ExportService
}

// NewPetHandler constructs a pet handler.
func NewPetHandler(inventory *service.InventoryService, advice *service.AdviceService, export *service.ExportService) *PetHandler {
	return &PetHandler{inventory: inventory, advice: advice, export: export}
}

// List godoc
// @Summary List pets
// @Description List the inventory newest-first with optional status and search filters
// @Tags Pets
// @Produce json
// @Param status query string false "Status filter (IN_STOCK, SOLD, DECEASED)"
// @Param search query string false "Substring match on species, gene, id, barcode"
// @Success 200 {object} response.Envelope
// @Router /pets [get]
func (h *PetHandler) List(c *gin.Context) {
	filter := petFilterFromQuery(c)

	pets, err := h.inventory.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, pets)
}

// Intake godoc
// @Summary Register a pet
// @Description Register a new pet record at status IN_STOCK
// @Tags Pets
// @Accept json
// @Produce json
// @Param payload body models.IntakeRequest true "Intake payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /pets [post]
func (h *PetHandler) Intake(c *gin.Context) {
	var req models.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid intake payload"))
		return
	}

	pet, err := h.inventory.Intake(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, pet)
}

// Lookup godoc
// @Summary Lookup by code
// @Description Resolve a decoded scan string by exact barcode or id match
// @Tags Pets
// @Produce json
// @Param code query string true "Barcode or pet id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /pets/lookup [get]
func (h *PetHandler) Lookup(c *gin.Context) {
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "code is required"))
		return
	}

	pet, err := h.inventory.LookupByCode(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, pet)
}

// Export godoc
// @Summary Export stock report
// @Description Download the filtered inventory as a CSV or PDF report
// @Tags Pets
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf (default csv)"
// @Param status query string false "Status filter"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /pets/export [get]
func (h *PetHandler) Export(c *gin.Context) {
	format := service.ExportFormat(strings.ToLower(c.DefaultQuery("format", "csv")))
	filter := petFilterFromQuery(c)

	result, err := h.export.StockReport(c.Request.Context(), filter, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// Get godoc
// @Summary Get pet by id
// @Tags Pets
// @Produce json
// @Param id path string true "Pet ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /pets/{id} [get]
func (h *PetHandler) Get(c *gin.Context) {
	pet, err := h.inventory.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, pet)
}

// Advice godoc
// @Summary Feeding advice
// @Description Best-effort generated feeding advice; degrades to a placeholder on failure
// @Tags Pets
// @Produce json
// @Param id path string true "Pet ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /pets/{id}/advice [get]
func (h *PetHandler) Advice(c *gin.Context) {
	pet, err := h.inventory.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	text := h.advice.FeedingAdvice(c.Request.Context(), *pet)
	response.JSON(c, http.StatusOK, gin.H{"advice": text})
}

// Transition godoc
// @Summary Transition pet status
// @Description Move an in-stock pet to SOLD or DECEASED; both are terminal
// @Tags Pets
// @Accept json
// @Produce json
// @Param id path string true "Pet ID"
// @Param payload body models.TransitionRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /pets/{id}/status [patch]
func (h *PetHandler) Transition(c *gin.Context) {
	var req models.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid transition payload"))
		return
	}

	pet, err := h.inventory.Transition(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, pet)
}

// Remove godoc
// @Summary Remove pet record
// @Description Irrevocably delete a record; removing an unknown id is a no-op
// @Tags Pets
// @Produce json
// @Param id path string true "Pet ID"
// @Success 204 {object} response.Envelope
// @Router /pets/{id} [delete]
func (h *PetHandler) Remove(c *gin.Context) {
	if err := h.inventory.Remove(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func petFilterFromQuery(c *gin.Context) models.PetFilter {
	var filter models.PetFilter
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		st := models.PetStatus(strings.ToUpper(status))
		filter.Status = &st
	}
	filter.Search = c.Query("search")
	return filter
}

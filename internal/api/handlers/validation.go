package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tayashahzad4-eng/Idea-validater/internal/api/dto"
	"github.com/tayashahzad4-eng/Idea-validater/internal/api/middleware"
	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/validation"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/errors"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/logger"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/utils"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/validator"
)

// ValidationHandler handles idea validation requests
type ValidationHandler struct {
	validationService validation.Service
	logger            *logger.Logger
	validator         *validator.Validator
}

// NewValidationHandler creates a new validation handler
func NewValidationHandler(
	validationService validation.Service,
	log *logger.Logger,
	val *validator.Validator,
) *ValidationHandler {
	return &ValidationHandler{
		validationService: validationService,
		logger:            log,
		validator:         val,
	}
}

// Create submits an idea for AI analysis and persists the result
func (h *ValidationHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	var req dto.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	rec, err := h.validationService.Submit(r.Context(), accountID, req.Submission())
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, dto.NewValidationCreatedResponse(rec))
}

// List returns the account's validation history, newest first
func (h *ValidationHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	records, err := h.validationService.List(r.Context(), accountID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	// Always serialize as an array, never null
	if records == nil {
		records = []*validation.Record{}
	}
	utils.WriteJSON(w, http.StatusOK, records)
}

// Get returns one validation record owned by the account
func (h *ValidationHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid validation ID"))
		return
	}

	rec, err := h.validationService.Get(r.Context(), accountID, id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, rec)
}

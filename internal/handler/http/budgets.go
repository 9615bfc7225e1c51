package http

import (
	"encoding/json"
	"net/http"

	"github.com/liquify-app/liquify-server/internal/logger"
	"github.com/liquify-app/liquify-server/internal/validators"
	"github.com/liquify-app/liquify-server/models"
)

// budgetsPayload wraps the bulk fetch result the way clients expect it.
type budgetsPayload struct {
	Budgets []models.BudgetDocument `json:"budgets"`
}

func (h *Handler) budgetsAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.BudgetAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeEnvelope(w, r, http.StatusNotFound, false, msgInvalidJSON)
		return
	}
	if err := validators.Validate(validators.OpBudgetAll, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	documents, err := h.services.BudgetService.All(ctx, req.SessionID, req.Budgets)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, budgetsPayload{Budgets: documents})
}

func (h *Handler) budgetsGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.BudgetGetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeEnvelope(w, r, http.StatusNotFound, false, msgInvalidJSON)
		return
	}
	if err := validators.Validate(validators.OpBudgetGet, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	document, err := h.services.BudgetService.Get(ctx, req.SessionID, req.BudgetID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, document)
}

func (h *Handler) budgetsCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.BudgetCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeEnvelope(w, r, http.StatusNotFound, false, msgInvalidJSON)
		return
	}
	if err := validators.Validate(validators.OpBudgetCreate, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	document, err := h.services.BudgetService.Create(ctx, req.SessionID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, document.BudgetID)
}

func (h *Handler) budgetsEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.BudgetEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeEnvelope(w, r, http.StatusNotFound, false, msgInvalidJSON)
		return
	}
	if err := validators.Validate(validators.OpBudgetEdit, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err := h.services.BudgetService.Edit(ctx, req.SessionID, req); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, nil)
}

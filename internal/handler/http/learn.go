package http

import (
	"encoding/json"
	"net/http"

	"github.com/liquify-app/liquify-server/internal/logger"
	"github.com/liquify-app/liquify-server/internal/validators"
	"github.com/liquify-app/liquify-server/models"
)

func (h *Handler) learnGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeEnvelope(w, r, http.StatusNotFound, false, msgInvalidJSON)
		return
	}
	if err := validators.Validate(validators.OpLearnGet, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	document, err := h.services.LearnService.Get(ctx, req.SessionID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, document)
}

func (h *Handler) learnUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LearnUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeEnvelope(w, r, http.StatusNotFound, false, msgInvalidJSON)
		return
	}
	if err := validators.Validate(validators.OpLearnUpdate, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	document, err := h.services.LearnService.Update(ctx, req.SessionID, req.Category, req.Part, req.Score)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, document)
}

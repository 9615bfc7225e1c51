package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/liquify-app/liquify-server/internal/logger"
	"github.com/liquify-app/liquify-server/internal/service"
	"github.com/liquify-app/liquify-server/internal/validators"
	"github.com/liquify-app/liquify-server/models"
)

// User-facing failure messages. Backend failures always map to one of the
// fixed strings below so that internal error detail (SQL text, upstream
// responses) never reaches the client.
const (
	msgInvalidCredentials = "The provided email/password combination is invalid."
	msgSessionNotFound    = "The provided session does not exist within our Database!"
	msgAlreadyVerified    = "Your account has already been verified."
	msgIncorrectCode      = "The provided Access Code is incorrect."
	msgBudgetNotFound     = "No budget data was found with your credentials."
	msgSessionUnavailable = "Your user session could not be created at this time. Please try again."
	msgBackendFailure     = "The service is temporarily unavailable. Please try again."
	msgInvalidJSON        = "Invalid JSON was passed"
)

// errorResponses maps service sentinels to their status and message. The
// slice is ordered: the first errors.Is match wins.
var errorResponses = []struct {
	target error
	status int
	msg    string
}{
	{service.ErrInvalidCredentials, http.StatusNotFound, msgInvalidCredentials},
	{service.ErrSessionNotFound, http.StatusNotFound, msgSessionNotFound},
	{service.ErrAlreadyVerified, http.StatusNotFound, msgAlreadyVerified},
	{service.ErrIncorrectCode, http.StatusNotFound, msgIncorrectCode},
	{service.ErrBudgetNotFound, http.StatusNotFound, msgBudgetNotFound},
	{service.ErrSessionCreationFailed, http.StatusServiceUnavailable, msgSessionUnavailable},
}

func (h *Handler) writeEnvelope(w http.ResponseWriter, r *http.Request, status int, success bool, msg any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(models.Envelope{Success: success, Msg: msg}); err != nil {
		logger.FromRequest(r).Err(err).Msg("error occured during response encoding")
	}
}

func (h *Handler) writeSuccess(w http.ResponseWriter, r *http.Request, msg any) {
	h.writeEnvelope(w, r, http.StatusOK, true, msg)
}

// writeError maps err to the envelope contract: validation failures carry
// their own message under 404, known domain failures carry a fixed message,
// and anything else is a 503 with a generic message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		log.Warn().Err(err).Msg("request validation failed")
		h.writeEnvelope(w, r, http.StatusNotFound, false, validationErr.Message)
		return
	}

	for _, response := range errorResponses {
		if errors.Is(err, response.target) {
			log.Warn().Err(err).Msg("request rejected")
			h.writeEnvelope(w, r, response.status, false, response.msg)
			return
		}
	}

	log.Err(err).Msg("unexpected error occured during request handling")
	h.writeEnvelope(w, r, http.StatusServiceUnavailable, false, msgBackendFailure)
}

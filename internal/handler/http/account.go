package http

import (
	"encoding/json"
	"net/http"

	"github.com/liquify-app/liquify-server/internal/logger"
	"github.com/liquify-app/liquify-server/internal/validators"
	"github.com/liquify-app/liquify-server/models"
)

const msgVerificationSent = "A new verification email containing your new Access Code has been sent!"

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeEnvelope(w, r, http.StatusNotFound, false, msgInvalidCredentials)
		return
	}

	// a malformed login body is indistinguishable from bad credentials:
	// the client learns nothing about which field failed
	if err := validators.Validate(validators.OpLogin, &req); err != nil {
		log.Warn().Err(err).Msg("login validation failed")
		h.writeEnvelope(w, r, http.StatusNotFound, false, msgInvalidCredentials)
		return
	}

	fingerprint := req.Fingerprint
	if fingerprint == "" {
		fingerprint = fingerprintFromContext(ctx)
	}

	result, err := h.services.AccountService.Login(ctx, req.Email, req.Password, fingerprint)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, result)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeEnvelope(w, r, http.StatusNotFound, false, msgInvalidJSON)
		return
	}
	if err := validators.Validate(validators.OpLogout, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.AccountService.Logout(ctx, req.SessionID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, nil)
}

func (h *Handler) resendVerification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeEnvelope(w, r, http.StatusNotFound, false, msgInvalidJSON)
		return
	}
	if err := validators.Validate(validators.OpResendVerification, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.AccountService.ResendVerification(ctx, req.SessionID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, msgVerificationSent)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeEnvelope(w, r, http.StatusNotFound, false, msgInvalidJSON)
		return
	}
	if err := validators.Validate(validators.OpVerify, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.AccountService.Verify(ctx, req.SessionID, req.VerifyCode); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, nil)
}

func (h *Handler) account(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeEnvelope(w, r, http.StatusNotFound, false, msgInvalidJSON)
		return
	}
	if err := validators.Validate(validators.OpAccount, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	summary, err := h.services.AccountService.Account(ctx, req.SessionID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, summary)
}

func (h *Handler) saveAccessToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SaveAccessTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeEnvelope(w, r, http.StatusNotFound, false, msgInvalidJSON)
		return
	}
	if err := validators.Validate(validators.OpSaveAccessToken, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	items, err := h.services.AccountService.SaveAccessToken(ctx, req.SessionID, req.AccessToken, req.ItemID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, items)
}

func (h *Handler) exchangeToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ExchangeTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeEnvelope(w, r, http.StatusNotFound, false, msgInvalidJSON)
		return
	}
	if err := validators.Validate(validators.OpExchangeToken, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	items, err := h.services.AccountService.ExchangeToken(ctx, req.SessionID, req.PublicToken)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, items)
}

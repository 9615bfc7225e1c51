package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/user", func(r chi.Router) {
		r.With(h.withFingerprint).Post("/login", h.login)
		r.Post("/logout", h.logout)
		r.Post("/verify", h.verify)
		r.Post("/resend_verification", h.resendVerification)
		r.Post("/account", h.account)
		r.Post("/save_access_token", h.saveAccessToken)
		r.Post("/get_access_token", h.exchangeToken)
	})

	router.Route("/budgets", func(r chi.Router) {
		r.Post("/all", h.budgetsAll)
		r.Post("/get", h.budgetsGet)
		r.Post("/create", h.budgetsCreate)
		r.Post("/edit", h.budgetsEdit)
	})

	router.Route("/learn", func(r chi.Router) {
		r.Post("/get", h.learnGet)
		r.Post("/update", h.learnUpdate)
	})

	return router
}

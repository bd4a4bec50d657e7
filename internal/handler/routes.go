package handler

import (
	"access-request-server/internal/security"

	"github.com/go-chi/chi/v5"
)

func SetupAccessRequestRoutes(r chi.Router, h *AccessRequestHandler, jwtService *security.JWTService) {
	r.With(security.OptionalJWTMiddleware(jwtService)).Post("/api/records/{recid}/access-requests", h.CreateAccessRequest)
	r.Get("/access-requests/confirm/{token}", h.ConfirmEmail)

	r.Route("/api/access-requests", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService))
		r.Get("/", h.ListAccessRequests)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetAccessRequest)
			r.Post("/accept", h.AcceptAccessRequest)
			r.Post("/reject", h.RejectAccessRequest)
		})
	})
}

func SetupSecretLinkRoutes(r chi.Router, h *SecretLinkHandler, jwtService *security.JWTService) {
	r.Route("/api/links", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService))
		r.Get("/", h.ListSecretLinks)
		r.Post("/", h.CreateSecretLink)
		r.Delete("/{id}", h.RevokeSecretLink)
	})
}

func SetupRecordFileRoutes(r chi.Router, h *RecordFileHandler, jwtService *security.JWTService) {
	r.With(security.OptionalJWTMiddleware(jwtService)).Get("/records/{recid}/files/{key}", h.DownloadFile)
}

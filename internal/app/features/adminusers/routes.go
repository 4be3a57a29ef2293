// internal/app/features/adminusers/routes.go
package adminusers

import (
	"github.com/dalemusser/helpbridge/internal/app/system/auth"
	"github.com/dalemusser/helpbridge/internal/app/system/ratelimit"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts user administration under the base path (typically
// "/admin/users" from bootstrap). Everything here is admin-only.
func Routes(h *Handler, tm *auth.TokenManager, wl *ratelimit.WriteLimiter) chi.Router {
	r := chi.NewRouter()
	r.Use(tm.RequireSignedIn)
	r.Use(tm.RequireRole(models.RoleSystemAdmin, models.RolePlatformManager))

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)

	r.Group(func(pr chi.Router) {
		pr.Use(wl.Middleware)

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}/status", h.HandleStatus)
		pr.Put("/batch", h.HandleBatchStatus)
	})

	return r
}

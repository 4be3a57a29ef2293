// internal/app/features/requests/routes.go
package requests

import (
	"github.com/dalemusser/helpbridge/internal/app/system/auth"
	"github.com/dalemusser/helpbridge/internal/app/system/ratelimit"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all request routes under the base path (typically
// "/requests" from bootstrap).
func Routes(h *Handler, tm *auth.TokenManager, wl *ratelimit.WriteLimiter) chi.Router {
	r := chi.NewRouter()
	r.Use(tm.RequireSignedIn)

	// Reads, open to every signed-in role (scoping happens per handler)
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)

	// Requester writes
	r.Group(func(pr chi.Router) {
		pr.Use(wl.Middleware)
		pr.Use(tm.RequireRole(models.RolePIN, models.RoleSystemAdmin, models.RolePlatformManager))

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Post("/{id}/cancel", h.HandleCancel)
		pr.Post("/{id}/assign/{volunteerId}", h.HandleAssign)
		pr.Post("/{id}/reject/{volunteerId}", h.HandleReject)
		pr.Post("/{id}/complete", h.HandleComplete)
	})

	// Volunteer writes
	r.Group(func(pr chi.Router) {
		pr.Use(wl.Middleware)
		pr.Use(tm.RequireRole(models.RoleCSR))

		pr.Post("/{id}/apply", h.HandleApply)
		pr.Delete("/{id}/apply", h.HandleCancelApplication)
		pr.Post("/{id}/reject", h.HandleRejectSelf)
	})

	// Admin freeze controls
	r.Group(func(pr chi.Router) {
		pr.Use(wl.Middleware)
		pr.Use(tm.RequireRole(models.RoleSystemAdmin, models.RolePlatformManager))

		pr.Post("/{id}/freeze", h.HandleFreeze)
		pr.Post("/{id}/unfreeze", h.HandleUnfreeze)
	})

	return r
}

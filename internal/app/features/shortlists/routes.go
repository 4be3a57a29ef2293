// internal/app/features/shortlists/routes.go
package shortlists

import (
	"github.com/dalemusser/helpbridge/internal/app/system/auth"
	"github.com/dalemusser/helpbridge/internal/app/system/ratelimit"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts shortlist routes under the base path (typically
// "/shortlists" from bootstrap). Shortlists belong to CSR volunteers.
func Routes(h *Handler, tm *auth.TokenManager, wl *ratelimit.WriteLimiter) chi.Router {
	r := chi.NewRouter()
	r.Use(tm.RequireSignedIn)
	r.Use(tm.RequireRole(models.RoleCSR))

	r.Get("/", h.ServeList)
	r.With(wl.Middleware).Post("/{requestId}", h.HandleToggle)

	return r
}

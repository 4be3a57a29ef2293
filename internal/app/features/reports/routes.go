// internal/app/features/reports/routes.go
package reports

import (
	"github.com/dalemusser/helpbridge/internal/app/system/auth"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts report routes under the base path (typically
// "/reports" from bootstrap). Reports are admin-only.
func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()
	r.Use(tm.RequireSignedIn)
	r.Use(tm.RequireRole(models.RoleSystemAdmin, models.RolePlatformManager))

	r.Get("/", h.ServeReport)

	return r
}

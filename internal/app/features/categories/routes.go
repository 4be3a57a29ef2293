// internal/app/features/categories/routes.go
package categories

import (
	"github.com/dalemusser/helpbridge/internal/app/system/auth"
	"github.com/dalemusser/helpbridge/internal/app/system/ratelimit"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts category routes under the base path (typically
// "/categories" from bootstrap). Reading is public so signup and
// browse screens can always populate their pickers.
func Routes(h *Handler, tm *auth.TokenManager, wl *ratelimit.WriteLimiter) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)

	// Platform managers curate the category set; system admins can too.
	r.Group(func(pr chi.Router) {
		pr.Use(wl.Middleware)
		pr.Use(tm.RequireSignedIn)
		pr.Use(tm.RequireRole(models.RolePlatformManager, models.RoleSystemAdmin))

		pr.Get("/all", h.ServeListAll)
		pr.Post("/", h.HandleCreate)
		pr.Put("/{key}", h.HandleUpdate)
		pr.Delete("/{key}", h.HandleDelete)
	})

	return r
}

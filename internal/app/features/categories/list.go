// internal/app/features/categories/list.go
package categories

import (
	"context"
	"net/http"

	categorystore "github.com/dalemusser/helpbridge/internal/app/store/categories"
	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"github.com/dalemusser/helpbridge/internal/app/system/readcache"
	"github.com/dalemusser/helpbridge/internal/app/system/timeouts"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"go.uber.org/zap"
)

// ServeList returns the active categories. Reads degrade rather than
// fail: if the database is unreachable the built-in defaults are
// served, so pickers never come up empty.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if v, ok := h.Cache.Get(readcache.KeyCategories); ok {
		if cats, ok := v.([]models.Category); ok {
			apiutil.Data(w, http.StatusOK, cats)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cats, err := h.Store.ListActive(ctx)
	if err != nil {
		h.Log.Warn("list categories failed, serving defaults", zap.Error(err))
		apiutil.Data(w, http.StatusOK, categorystore.Defaults())
		return
	}
	if len(cats) == 0 {
		cats = categorystore.Defaults()
	}

	h.Cache.Put(readcache.KeyCategories, cats)
	apiutil.Data(w, http.StatusOK, cats)
}

// ServeListAll returns every category including inactive ones, for the
// admin curation screen. Unlike the public list this surfaces errors;
// an admin acting on stale data is worse than a retry.
func (h *Handler) ServeListAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cats, err := h.Store.ListAll(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list all categories failed", err, "Failed to load categories.")
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}
	apiutil.Data(w, http.StatusOK, cats)
}

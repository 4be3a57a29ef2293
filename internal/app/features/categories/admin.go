// internal/app/features/categories/admin.go
package categories

import (
	"context"
	"errors"
	"net/http"
	"strings"

	categorystore "github.com/dalemusser/helpbridge/internal/app/store/categories"
	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"github.com/dalemusser/helpbridge/internal/app/system/gates"
	"github.com/dalemusser/helpbridge/internal/app/system/htmlsanitize"
	"github.com/dalemusser/helpbridge/internal/app/system/inputval"
	"github.com/dalemusser/helpbridge/internal/app/system/readcache"
	"github.com/dalemusser/helpbridge/internal/app/system/timeouts"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// categoryInput is the JSON body for creating or updating a category.
type categoryInput struct {
	Key         string `json:"id"`
	Name        string `json:"name"`
	NameZH      string `json:"nameZh"`
	NameEN      string `json:"nameEn"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Status      string `json:"status"`
	SortOrder   int    `json:"sortOrder"`
}

// categoryRules defines validation for category writes.
type categoryRules struct {
	Key  string `validate:"required,max=50" label:"Category key"`
	Name string `validate:"required,max=100" label:"Name"`
}

func (in categoryInput) toModel() models.Category {
	name := htmlsanitize.PlainText(in.Name)
	en := htmlsanitize.PlainText(in.NameEN)
	if en == "" {
		en = name
	}
	return models.Category{
		Key:         strings.ToLower(strings.TrimSpace(in.Key)),
		Name:        name,
		DisplayName: models.CategoryName{ZH: htmlsanitize.PlainText(in.NameZH), EN: en},
		Description: htmlsanitize.PlainText(in.Description),
		Icon:        htmlsanitize.PlainText(in.Icon),
		Status:      strings.ToLower(strings.TrimSpace(in.Status)),
		SortOrder:   in.SortOrder,
	}
}

// HandleCreate adds a category. Route middleware restricts this to the
// admin roles.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	var in categoryInput
	if err := apiutil.Decode(r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode create category failed", err, "Invalid request body.")
		return
	}

	cat := in.toModel()
	if result := inputval.Validate(categoryRules{Key: cat.Key, Name: cat.Name}); result.HasErrors() {
		apiutil.Error(w, http.StatusBadRequest, result.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Store.Create(ctx, cat)
	if err != nil {
		if errors.Is(err, categorystore.ErrDuplicateKey) {
			apiutil.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.ErrLog.LogServerError(w, r, "create category failed", err, "Failed to create category.")
		return
	}

	h.Cache.Invalidate(readcache.KeyCategories)
	h.Audit.CategoryCreated(ctx, r, g.UserID, created.Key)
	apiutil.Data(w, http.StatusCreated, created)
}

// HandleUpdate rewrites a category's mutable fields.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	key := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "key")))

	var in categoryInput
	if err := apiutil.Decode(r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode update category failed", err, "Invalid request body.")
		return
	}
	cat := in.toModel()
	if cat.Status != "" && cat.Status != models.CategoryActive && cat.Status != models.CategoryInactive {
		apiutil.Error(w, http.StatusBadRequest, "Status must be active or inactive.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	matched, err := h.Store.Update(ctx, key, cat)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update category failed", err, "Failed to update category.")
		return
	}
	if matched == 0 {
		h.ErrLog.LogNotFound(w, "Category not found.")
		return
	}

	updated, err := h.Store.GetByKey(ctx, key)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "reload category failed", err, "Failed to update category.")
		return
	}

	h.Cache.Invalidate(readcache.KeyCategories)
	h.Audit.CategoryUpdated(ctx, r, g.UserID, key)
	apiutil.Data(w, http.StatusOK, updated)
}

// HandleDelete removes a category. Existing requests keep their
// category key and render as uncategorized.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	key := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "key")))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := h.Store.Delete(ctx, key)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete category failed", err, "Failed to delete category.")
		return
	}
	if deleted == 0 {
		h.ErrLog.LogNotFound(w, "Category not found.")
		return
	}

	h.Cache.Invalidate(readcache.KeyCategories)
	h.Audit.CategoryDeleted(ctx, r, g.UserID, key)
	apiutil.Data(w, http.StatusOK, map[string]string{"id": key})
}

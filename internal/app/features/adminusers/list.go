// internal/app/features/adminusers/list.go
package adminusers

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/helpbridge/internal/app/store/users"
	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"github.com/dalemusser/helpbridge/internal/app/system/normalize"
	"github.com/dalemusser/helpbridge/internal/app/system/paging"
	"github.com/dalemusser/helpbridge/internal/app/system/timeouts"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// queryDim maps the "all" wildcard to an unconstrained dimension.
func queryDim(s string) string {
	if s == "all" {
		return ""
	}
	return s
}

// listResponse is the keyset-paged user list body.
type listResponse struct {
	Items      []models.User `json:"items"`
	Total      int64         `json:"total"`
	HasPrev    bool          `json:"hasPrev"`
	HasNext    bool          `json:"hasNext"`
	PrevCursor string        `json:"prevCursor,omitempty"`
	NextCursor string        `json:"nextCursor,omitempty"`
}

// ServeList returns users filtered by role, status, and name search,
// keyset-paged on folded name.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filter := userstore.ListFilter{
		Role:   queryDim(normalize.Role(query.Get(r, "role"))),
		Status: queryDim(normalize.Status(query.Get(r, "status"))),
		Search: query.Get(r, "q"),
	}
	before, after := paging.ParseCursors(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, cfg, err := h.Store.List(ctx, filter, before, after)
	if err != nil {
		// Reads degrade: a failed fetch serves an empty page.
		h.Log.Warn("list users failed, serving empty page", zap.Error(err))
		apiutil.Data(w, http.StatusOK, listResponse{Items: []models.User{}})
		return
	}

	page := paging.TrimPage(&rows, before, after)
	if cfg.Direction == paging.Backward {
		paging.Reverse(rows)
	}

	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		h.Log.Warn("count users failed, serving empty page", zap.Error(err))
		apiutil.Data(w, http.StatusOK, listResponse{Items: []models.User{}})
		return
	}

	prev, next := paging.BuildCursors(rows,
		func(u models.User) string { return u.NameCI },
		func(u models.User) primitive.ObjectID { return u.ID })

	resp := listResponse{
		Items:   rows,
		Total:   total,
		HasPrev: page.HasPrev,
		HasNext: page.HasNext,
	}
	if resp.Items == nil {
		resp.Items = []models.User{}
	}
	if page.HasPrev {
		resp.PrevCursor = prev
	}
	if page.HasNext {
		resp.NextCursor = next
	}

	apiutil.Data(w, http.StatusOK, resp)
}

// ServeView returns one user.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogNotFound(w, "User not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.ErrLog.LogNotFound(w, "User not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "load user failed", err, "Failed to load user.")
		return
	}

	apiutil.Data(w, http.StatusOK, u)
}

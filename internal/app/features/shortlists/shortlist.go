// internal/app/features/shortlists/shortlist.go
package shortlists

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"github.com/dalemusser/helpbridge/internal/app/system/gates"
	"github.com/dalemusser/helpbridge/internal/app/system/readcache"
	"github.com/dalemusser/helpbridge/internal/app/system/timeouts"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeList returns the caller's shortlist, newest first, from the
// read cache when fresh.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	key := readcache.Scoped(readcache.KeyShortlists, g.UserID.Hex())
	if v, ok := h.Cache.Get(key); ok {
		if entries, ok := v.([]models.ShortlistEntry); ok {
			apiutil.Data(w, http.StatusOK, entries)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	entries, err := h.Store.ListByUser(ctx, g.UserID)
	if err != nil {
		// Reads degrade: a failed fetch serves an empty shortlist.
		h.Log.Warn("list shortlist failed, serving empty list", zap.Error(err))
		apiutil.Data(w, http.StatusOK, []models.ShortlistEntry{})
		return
	}
	if entries == nil {
		entries = []models.ShortlistEntry{}
	}

	h.Cache.Put(key, entries)
	apiutil.Data(w, http.StatusOK, entries)
}

// toggleResponse reports the new shortlist membership state.
type toggleResponse struct {
	RequestID   string `json:"requestId"`
	Shortlisted bool   `json:"shortlisted"`
}

// HandleToggle adds the request to the caller's shortlist or removes
// it when already present, adjusting the request's shortlist counter.
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "requestId"))
	if err != nil {
		h.ErrLog.LogNotFound(w, "Request not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	req, err := h.Requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.ErrLog.LogNotFound(w, "Request not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "load request failed", err, "Failed to load request.")
		return
	}

	added, err := h.Store.Toggle(ctx, g.UserID, req)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "toggle shortlist failed", err, "Failed to update shortlist.")
		return
	}

	delta := int64(1)
	if !added {
		delta = -1
	}
	if err := h.Requests.AdjustShortlistCount(ctx, id, delta); err != nil {
		h.Log.Warn("shortlist count adjust failed", zap.Error(err), zap.String("request_id", id.Hex()))
	}

	h.Cache.Invalidate(readcache.KeyShortlists, readcache.KeyRequests)
	apiutil.Data(w, http.StatusOK, toggleResponse{RequestID: id.Hex(), Shortlisted: added})
}

// internal/app/features/requests/view.go
package requests

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"github.com/dalemusser/helpbridge/internal/app/system/authz"
	"github.com/dalemusser/helpbridge/internal/app/system/gates"
	"github.com/dalemusser/helpbridge/internal/app/system/timeouts"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// pathID parses the {id} URL parameter. A malformed ID renders 404
// rather than 400: to the client it is just a request that does not
// exist.
func pathID(w http.ResponseWriter, r *http.Request, errLog *apiutil.ErrorLogger) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		errLog.LogNotFound(w, "Request not found.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// ServeView returns one request. Requesters see their own in any
// state; volunteers see open requests (frozen ones are hidden from
// them); admins see everything. Viewing by a non-owner bumps the view
// counter.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	id, ok := pathID(w, r, h.ErrLog)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	req, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.ErrLog.LogNotFound(w, "Request not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "load request failed", err, "Failed to load request.")
		return
	}

	isOwner := req.RequesterID == g.UserID
	switch {
	case authz.IsAdmin(r):
	case isOwner:
	case g.Role == models.RolePIN || req.Status == models.StatusFrozen:
		// Requesters only see their own; frozen requests are hidden
		// from volunteers.
		h.ErrLog.LogNotFound(w, "Request not found.")
		return
	}

	if !isOwner {
		// Counter bumps are best effort; a failed increment never
		// blocks the read.
		if err := h.Store.IncrementViews(ctx, id); err != nil {
			h.Log.Warn("view count increment failed", zap.Error(err), zap.String("request_id", id.Hex()))
		} else {
			req.ViewCount++
		}
	}

	resp := viewResponse{Request: req}
	if g.Role == models.RoleCSR {
		if has, err := h.Shortlists.Has(ctx, g.UserID, id); err == nil {
			resp.Shortlisted = has
		}
		resp.Request = redactForVolunteer(resp.Request, g.UserID)
	}

	apiutil.Data(w, http.StatusOK, resp)
}

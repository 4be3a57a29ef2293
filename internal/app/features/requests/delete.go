// internal/app/features/requests/delete.go
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
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleDelete removes a request and its shortlist entries. Requesters
// can delete their own requests while no volunteer is engaged (pending
// or cancelled); admins can delete any request in any state.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	id, ok := pathID(w, r, h.ErrLog)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
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

	if !authz.CanManageRequest(r, req.RequesterID) {
		apiutil.Error(w, http.StatusForbidden, "You cannot delete this request.")
		return
	}
	if !authz.IsAdmin(r) && req.Status != models.StatusPending && req.Status != models.StatusCancelled {
		apiutil.Error(w, http.StatusConflict, "Requests with engaged volunteers cannot be deleted.")
		return
	}

	if _, err := h.Store.Delete(ctx, id); err != nil {
		h.ErrLog.LogServerError(w, r, "delete request failed", err, "Failed to delete request.")
		return
	}

	// Orphaned shortlist entries are cleaned up best effort; the unique
	// index keeps them from resurfacing on re-toggle.
	if _, err := h.Shortlists.DeleteByRequest(ctx, id); err != nil {
		h.Log.Warn("shortlist cleanup failed", zap.Error(err), zap.String("request_id", id.Hex()))
	}

	h.invalidate()
	h.Audit.RequestDeleted(ctx, r, g.UserID, id, req.Title)

	apiutil.Data(w, http.StatusOK, map[string]string{"id": id.Hex()})
}

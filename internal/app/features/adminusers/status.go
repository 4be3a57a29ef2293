// internal/app/features/adminusers/status.go
package adminusers

import (
	"context"
	"net/http"

	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"github.com/dalemusser/helpbridge/internal/app/system/gates"
	"github.com/dalemusser/helpbridge/internal/app/system/normalize"
	"github.com/dalemusser/helpbridge/internal/app/system/readcache"
	"github.com/dalemusser/helpbridge/internal/app/system/timeouts"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// statusInput is the JSON body for single and batch status changes.
type statusInput struct {
	Status string   `json:"status"`
	IDs    []string `json:"ids"` // batch only
}

func validAccountStatus(s string) bool {
	switch s {
	case models.UserActive, models.UserSuspended, models.UserDeleted:
		return true
	}
	return false
}

// HandleStatus changes one user's account status. Suspending or
// deleting also revokes the user's tokens so access ends immediately.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogNotFound(w, "User not found.")
		return
	}

	var in statusInput
	if err := apiutil.Decode(r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode status change failed", err, "Invalid request body.")
		return
	}
	status := normalize.Status(in.Status)
	if !validAccountStatus(status) {
		apiutil.Error(w, http.StatusBadRequest, "Status must be active, suspended, or deleted.")
		return
	}
	if id == g.UserID && status != models.UserActive {
		apiutil.Error(w, http.StatusConflict, "You cannot suspend your own account.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	matched, err := h.Store.UpdateStatus(ctx, id, status)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update user status failed", err, "Failed to update user.")
		return
	}
	if matched == 0 {
		h.ErrLog.LogNotFound(w, "User not found.")
		return
	}

	if status != models.UserActive {
		if _, err := h.Tokens.DeleteByUser(ctx, id); err != nil {
			h.Log.Warn("token revocation failed", zap.Error(err), zap.String("user_id", id.Hex()))
		}
	}

	h.Cache.Invalidate(readcache.KeyUsers)
	h.Audit.UserStatusChanged(ctx, r, g.UserID, id, status)
	apiutil.Data(w, http.StatusOK, map[string]string{"id": id.Hex(), "status": status})
}

// HandleBatchStatus changes the status of many users in one call.
func (h *Handler) HandleBatchStatus(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	var in statusInput
	if err := apiutil.Decode(r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode batch status failed", err, "Invalid request body.")
		return
	}
	status := normalize.Status(in.Status)
	if !validAccountStatus(status) {
		apiutil.Error(w, http.StatusBadRequest, "Status must be active, suspended, or deleted.")
		return
	}
	if len(in.IDs) == 0 {
		apiutil.Error(w, http.StatusBadRequest, "No user IDs given.")
		return
	}

	ids := make([]primitive.ObjectID, 0, len(in.IDs))
	for _, s := range in.IDs {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			apiutil.Error(w, http.StatusBadRequest, "Invalid user ID: "+s)
			return
		}
		if id == g.UserID && status != models.UserActive {
			apiutil.Error(w, http.StatusConflict, "You cannot suspend your own account.")
			return
		}
		ids = append(ids, id)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	modified, err := h.Store.BatchSetStatus(ctx, ids, status)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "batch status update failed", err, "Failed to update users.")
		return
	}

	if status != models.UserActive {
		for _, id := range ids {
			if _, err := h.Tokens.DeleteByUser(ctx, id); err != nil {
				h.Log.Warn("token revocation failed", zap.Error(err), zap.String("user_id", id.Hex()))
			}
		}
	}

	h.Cache.Invalidate(readcache.KeyUsers)
	h.Audit.UsersBatchStatus(ctx, r, g.UserID, status, modified)
	apiutil.Data(w, http.StatusOK, map[string]any{"modified": modified, "status": status})
}

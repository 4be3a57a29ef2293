// internal/app/features/requests/update.go
package requests

import (
	"context"
	"errors"
	"net/http"

	requeststore "github.com/dalemusser/helpbridge/internal/app/store/requests"
	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"github.com/dalemusser/helpbridge/internal/app/system/authz"
	"github.com/dalemusser/helpbridge/internal/app/system/gates"
	"github.com/dalemusser/helpbridge/internal/app/system/timeouts"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleUpdate edits a pending request's details. Only the requester
// (or an admin) may edit, and only while the request is still pending;
// once volunteers are matched the terms are locked.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	id, ok := pathID(w, r, h.ErrLog)
	if !ok {
		return
	}

	var in requestInput
	if err := apiutil.Decode(r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode update request failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
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
		apiutil.Error(w, http.StatusForbidden, "You cannot edit this request.")
		return
	}
	if req.Status != models.StatusPending {
		apiutil.Error(w, http.StatusConflict, "Only pending requests can be edited.")
		return
	}

	edited, msg := h.buildRequest(in)
	if msg != "" {
		apiutil.Error(w, http.StatusBadRequest, msg)
		return
	}
	if !h.Categories.KnownKey(ctx, edited.CategoryID) {
		apiutil.Error(w, http.StatusBadRequest, "Unknown category.")
		return
	}

	loadedAt := req.UpdatedAt
	req.Title = edited.Title
	req.Description = edited.Description
	req.CategoryID = edited.CategoryID
	req.Urgency = edited.Urgency
	req.Location = edited.Location
	req.ExpectedDate = edited.ExpectedDate
	req.ExpectedTime = edited.ExpectedTime
	req.VolunteersNeeded = edited.VolunteersNeeded
	req.ContactMethod = edited.ContactMethod
	req.AdditionalNotes = edited.AdditionalNotes

	updated, err := h.Store.ReplaceGuarded(ctx, req, loadedAt)
	if err != nil {
		if errors.Is(err, requeststore.ErrConflict) {
			h.ErrLog.LogConflict(w, r, "update lost write race", err)
			return
		}
		h.ErrLog.LogServerError(w, r, "update request failed", err, "Failed to update request.")
		return
	}

	h.invalidate()
	h.Audit.RequestUpdated(ctx, r, g.UserID, id)

	apiutil.Data(w, http.StatusOK, updated)
}

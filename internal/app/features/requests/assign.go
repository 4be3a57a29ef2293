// internal/app/features/requests/assign.go
package requests

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"github.com/dalemusser/helpbridge/internal/app/system/authz"
	"github.com/dalemusser/helpbridge/internal/app/system/gates"
	"github.com/dalemusser/helpbridge/internal/app/system/htmlsanitize"
	"github.com/dalemusser/helpbridge/internal/app/system/inputval"
	"github.com/dalemusser/helpbridge/internal/app/system/match"
	"github.com/dalemusser/helpbridge/internal/app/system/timeouts"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// volunteerPathID parses the {volunteerId} URL parameter.
func volunteerPathID(w http.ResponseWriter, r *http.Request, errLog *apiutil.ErrorLogger) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "volunteerId"))
	if err != nil {
		errLog.LogNotFound(w, "Volunteer not found.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// requireManager loads authorization for workflow calls made by the
// requester: the caller must own the request or be an admin.
func (h *Handler) requireManager(ctx context.Context, w http.ResponseWriter, r *http.Request, id primitive.ObjectID) (models.Request, bool) {
	req, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.ErrLog.LogNotFound(w, "Request not found.")
			return models.Request{}, false
		}
		h.ErrLog.LogServerError(w, r, "load request failed", err, "Failed to load request.")
		return models.Request{}, false
	}
	if !authz.CanManageRequest(r, req.RequesterID) {
		apiutil.Error(w, http.StatusForbidden, "You cannot manage this request.")
		return models.Request{}, false
	}
	return req, true
}

// HandleAssign matches an interested volunteer to the request. The
// volunteer's contact snapshot comes from their current profile.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	id, ok := pathID(w, r, h.ErrLog)
	if !ok {
		return
	}
	volID, ok := volunteerPathID(w, r, h.ErrLog)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, ok := h.requireManager(ctx, w, r, id); !ok {
		return
	}

	contact := models.AssignedVolunteer{VolunteerID: volID}
	if vol, err := h.Users.GetByID(ctx, volID); err == nil {
		contact.Name = vol.Name
		contact.Email = vol.Email
		contact.Phone = vol.Phone
	}

	now := time.Now().UTC()
	updated, ok := h.transition(ctx, w, r, id, func(req *models.Request) error {
		return match.Assign(req, volID, contact, now, h.Policy)
	})
	if !ok {
		return
	}

	h.Audit.VolunteerAssigned(ctx, r, g.UserID, id, volID)
	apiutil.Data(w, http.StatusOK, updated)
}

// HandleReject puts a volunteer on the request's rejection list,
// withdrawing any standing application. Rejection is idempotent.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	id, ok := pathID(w, r, h.ErrLog)
	if !ok {
		return
	}
	volID, ok := volunteerPathID(w, r, h.ErrLog)
	if !ok {
		return
	}

	var in rejectInput
	if r.ContentLength > 0 {
		if err := apiutil.Decode(r, &in); err != nil {
			h.ErrLog.LogBadRequest(w, r, "decode reject failed", err, "Invalid request body.")
			return
		}
	}
	if result := inputval.Validate(in); result.HasErrors() {
		apiutil.Error(w, http.StatusBadRequest, result.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, ok := h.requireManager(ctx, w, r, id); !ok {
		return
	}

	rej := models.RejectedVolunteer{
		VolunteerID: volID,
		RejectedAt:  time.Now().UTC(),
		Reason:      htmlsanitize.PlainText(in.Reason),
	}
	updated, ok := h.transition(ctx, w, r, id, func(req *models.Request) error {
		return match.Reject(req, rej)
	})
	if !ok {
		return
	}

	h.Audit.VolunteerRejected(ctx, r, g.UserID, id, volID)
	apiutil.Data(w, http.StatusOK, updated)
}

// HandleRejectSelf lets a volunteer decline a request for themselves,
// withdrawing any standing application and keeping the request out of
// their future listings.
func (h *Handler) HandleRejectSelf(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	id, ok := pathID(w, r, h.ErrLog)
	if !ok {
		return
	}

	var in rejectInput
	if r.ContentLength > 0 {
		if err := apiutil.Decode(r, &in); err != nil {
			h.ErrLog.LogBadRequest(w, r, "decode reject failed", err, "Invalid request body.")
			return
		}
	}
	if result := inputval.Validate(in); result.HasErrors() {
		apiutil.Error(w, http.StatusBadRequest, result.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rej := models.RejectedVolunteer{
		VolunteerID: g.UserID,
		RejectedAt:  time.Now().UTC(),
		Reason:      htmlsanitize.PlainText(in.Reason),
	}
	updated, ok := h.transition(ctx, w, r, id, func(req *models.Request) error {
		return match.Reject(req, rej)
	})
	if !ok {
		return
	}

	h.Audit.VolunteerRejected(ctx, r, g.UserID, id, g.UserID)
	apiutil.Data(w, http.StatusOK, redactForVolunteer(updated, g.UserID))
}

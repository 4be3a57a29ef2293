// internal/app/features/requests/workflow.go
package requests

import (
	"context"
	"errors"
	"net/http"
	"time"

	requeststore "github.com/dalemusser/helpbridge/internal/app/store/requests"
	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"github.com/dalemusser/helpbridge/internal/app/system/gates"
	"github.com/dalemusser/helpbridge/internal/app/system/htmlsanitize"
	"github.com/dalemusser/helpbridge/internal/app/system/inputval"
	"github.com/dalemusser/helpbridge/internal/app/system/match"
	"github.com/dalemusser/helpbridge/internal/app/system/timeouts"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// transition loads the request, runs a state-machine step against the
// in-memory copy, and writes it back guarded on updated_at. A lost
// race or a refused transition both surface as 409.
func (h *Handler) transition(ctx context.Context, w http.ResponseWriter, r *http.Request, id primitive.ObjectID, step func(*models.Request) error) (models.Request, bool) {
	req, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.ErrLog.LogNotFound(w, "Request not found.")
			return models.Request{}, false
		}
		h.ErrLog.LogServerError(w, r, "load request failed", err, "Failed to load request.")
		return models.Request{}, false
	}

	loadedAt := req.UpdatedAt
	if err := step(&req); err != nil {
		h.ErrLog.LogConflict(w, r, "transition refused", err)
		return models.Request{}, false
	}

	updated, err := h.Store.ReplaceGuarded(ctx, req, loadedAt)
	if err != nil {
		if errors.Is(err, requeststore.ErrConflict) {
			h.ErrLog.LogConflict(w, r, "transition lost write race", err)
			return models.Request{}, false
		}
		h.ErrLog.LogServerError(w, r, "save request failed", err, "Failed to save request.")
		return models.Request{}, false
	}

	h.invalidate()
	return updated, true
}

// HandleApply records a volunteer's interest in a pending request.
func (h *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	id, ok := pathID(w, r, h.ErrLog)
	if !ok {
		return
	}

	var in applyInput
	if r.ContentLength > 0 {
		if err := apiutil.Decode(r, &in); err != nil {
			h.ErrLog.LogBadRequest(w, r, "decode apply failed", err, "Invalid request body.")
			return
		}
	}
	if result := inputval.Validate(in); result.HasErrors() {
		apiutil.Error(w, http.StatusBadRequest, result.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	vol := models.InterestedVolunteer{
		VolunteerID: g.UserID,
		Name:        g.Name,
		Message:     htmlsanitize.PlainText(in.Message),
		AppliedAt:   time.Now().UTC(),
	}

	updated, ok := h.transition(ctx, w, r, id, func(req *models.Request) error {
		return match.Apply(req, vol)
	})
	if !ok {
		return
	}

	h.Audit.VolunteerApplied(ctx, r, g.UserID, id)
	apiutil.Data(w, http.StatusOK, redactForVolunteer(updated, g.UserID))
}

// HandleCancelApplication withdraws the volunteer's application.
func (h *Handler) HandleCancelApplication(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	id, ok := pathID(w, r, h.ErrLog)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, ok := h.transition(ctx, w, r, id, func(req *models.Request) error {
		return match.CancelApplication(req, g.UserID)
	})
	if !ok {
		return
	}

	h.Audit.VolunteerWithdrew(ctx, r, g.UserID, id)
	apiutil.Data(w, http.StatusOK, redactForVolunteer(updated, g.UserID))
}

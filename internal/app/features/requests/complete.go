// internal/app/features/requests/complete.go
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
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleComplete confirms completion for one assigned volunteer with a
// required 1-5 rating and optional feedback. Each volunteer can be
// rated once; the request moves to completed.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}
	id, ok := pathID(w, r, h.ErrLog)
	if !ok {
		return
	}

	var in completeInput
	if err := apiutil.Decode(r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode complete failed", err, "Invalid request body.")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		apiutil.Error(w, http.StatusBadRequest, result.First())
		return
	}
	volID, err := primitive.ObjectIDFromHex(in.VolunteerID)
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, "Invalid volunteer ID.")
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
	// Ratings come from the person who received the help; admins can
	// freeze or delete but not rate on the requester's behalf.
	if !authz.IsRequester(r, req.RequesterID) {
		apiutil.Error(w, http.StatusForbidden, "Only the requester can confirm completion.")
		return
	}

	now := time.Now().UTC()
	feedback := htmlsanitize.PlainText(in.Feedback)
	updated, ok := h.transition(ctx, w, r, id, func(req *models.Request) error {
		return match.Complete(req, volID, in.Rating, feedback, now)
	})
	if !ok {
		return
	}

	h.Audit.RequestCompleted(ctx, r, g.UserID, id, volID, in.Rating)
	apiutil.Data(w, http.StatusOK, updated)
}

// internal/app/features/requests/lifecycle.go
package requests

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"github.com/dalemusser/helpbridge/internal/app/system/gates"
	"github.com/dalemusser/helpbridge/internal/app/system/match"
	"github.com/dalemusser/helpbridge/internal/app/system/timeouts"
	"github.com/dalemusser/helpbridge/internal/domain/models"
)

// HandleCancel moves a pending request to cancelled. Only the
// requester (or an admin) may cancel; matched requests cannot be
// cancelled, they run through complete instead.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
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

	if _, ok := h.requireManager(ctx, w, r, id); !ok {
		return
	}

	updated, ok := h.transition(ctx, w, r, id, func(req *models.Request) error {
		return match.Cancel(req)
	})
	if !ok {
		return
	}

	h.Audit.RequestCancelled(ctx, r, g.UserID, id)
	apiutil.Data(w, http.StatusOK, updated)
}

// HandleFreeze pauses a pending or matched request, remembering the
// prior status. Route middleware restricts this to admins.
func (h *Handler) HandleFreeze(w http.ResponseWriter, r *http.Request) {
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

	now := time.Now().UTC()
	var previous models.RequestStatus
	updated, ok := h.transition(ctx, w, r, id, func(req *models.Request) error {
		previous = req.Status
		return match.Freeze(req, now)
	})
	if !ok {
		return
	}

	h.Audit.RequestFrozen(ctx, r, g.UserID, id, string(previous))
	apiutil.Data(w, http.StatusOK, updated)
}

// HandleUnfreeze restores the status a request held before it was
// frozen.
func (h *Handler) HandleUnfreeze(w http.ResponseWriter, r *http.Request) {
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
		return match.Unfreeze(req)
	})
	if !ok {
		return
	}

	h.Audit.RequestUnfrozen(ctx, r, g.UserID, id, string(updated.Status))
	apiutil.Data(w, http.StatusOK, updated)
}

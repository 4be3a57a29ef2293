// internal/app/features/requests/list.go
package requests

import (
	"context"
	"net/http"

	requeststore "github.com/dalemusser/helpbridge/internal/app/store/requests"
	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"github.com/dalemusser/helpbridge/internal/app/system/gates"
	"github.com/dalemusser/helpbridge/internal/app/system/paging"
	"github.com/dalemusser/helpbridge/internal/app/system/readcache"
	"github.com/dalemusser/helpbridge/internal/app/system/search"
	"github.com/dalemusser/helpbridge/internal/app/system/timeouts"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// scopeFor maps the caller's role to the store filter and cache scope
// they are allowed to read. Requesters see only their own requests (in
// every status); volunteers browse open work; admins see everything.
func scopeFor(role string, userID primitive.ObjectID) (requeststore.ListFilter, string) {
	switch {
	case role == models.RolePIN:
		uid := userID
		return requeststore.ListFilter{RequesterID: &uid}, "pin:" + userID.Hex()
	case models.IsAdminRole(role):
		return requeststore.ListFilter{}, "admin"
	default:
		return requeststore.ListFilter{
			Statuses: []models.RequestStatus{models.StatusPending, models.StatusMatched},
		}, "csr"
	}
}

// loadScope returns the caller's full visible request list, serving
// from the read cache while the entry is fresh.
func (h *Handler) loadScope(ctx context.Context, role string, userID primitive.ObjectID) ([]models.Request, error) {
	filter, scope := scopeFor(role, userID)
	key := readcache.Scoped(readcache.KeyRequests, scope)

	if v, ok := h.Cache.Get(key); ok {
		if rows, ok := v.([]models.Request); ok {
			return rows, nil
		}
	}

	rows, err := h.Store.List(ctx, filter, 0)
	if err != nil {
		return nil, err
	}
	h.Cache.Put(key, rows)
	return rows, nil
}

// ServeList returns the caller's visible requests, filtered and paged.
// Filters (q, category, urgency, status) run in memory over the cached
// scope; "all" and empty both mean no constraint.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	g := gates.RequireAuth(w, r)
	if !g.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.loadScope(ctx, g.Role, g.UserID)
	if err != nil {
		// Reads degrade: a failed fetch serves an empty list rather
		// than an error envelope.
		h.Log.Warn("list requests failed, serving empty list", zap.Error(err))
		rows = nil
	}

	// The browse scope is cached once for all volunteers, so the
	// caller's rejections are dropped here, per request.
	if !models.IsAdminRole(g.Role) && g.Role != models.RolePIN {
		rows = withoutRejections(rows, g.UserID)
	}

	filter := search.Filter{
		SearchText: query.Get(r, "q"),
		Category:   query.Get(r, "category"),
		Urgency:    query.Get(r, "urgency"),
		Status:     query.Get(r, "status"),
	}
	rows = search.Apply(rows, filter)

	// Offset paging over the filtered slice
	start := paging.ParseStart(r)
	total := len(rows)
	lo := start - 1
	if lo > total {
		lo = total
	}
	hi := lo + paging.PageSize
	if hi > total {
		hi = total
	}
	page := rows[lo:hi]

	rng := paging.ComputeRange(start, len(page))
	resp := listResponse{
		Items:      page,
		Total:      total,
		Shown:      len(page),
		HasPrev:    lo > 0,
		HasNext:    hi < total,
		RangeStart: rng.Start,
		RangeEnd:   rng.End,
		PrevStart:  rng.PrevStart,
		NextStart:  rng.NextStart,
	}
	if resp.Items == nil {
		resp.Items = []models.Request{}
	}

	// Hide requester contact details from volunteers until assignment.
	if !models.IsAdminRole(g.Role) && g.Role != models.RolePIN {
		redacted := make([]models.Request, len(resp.Items))
		for i, req := range resp.Items {
			redacted[i] = redactForVolunteer(req, g.UserID)
		}
		resp.Items = redacted
	}

	apiutil.Data(w, http.StatusOK, resp)
}

// withoutRejections copies the list minus requests that have turned
// the volunteer away; rejection removes a request from that
// volunteer's listings for good. The input (possibly a shared cached
// slice) is left untouched.
func withoutRejections(rows []models.Request, volunteerID primitive.ObjectID) []models.Request {
	out := make([]models.Request, 0, len(rows))
	for _, req := range rows {
		if !req.IsRejected(volunteerID) {
			out = append(out, req)
		}
	}
	return out
}

// redactForVolunteer strips contact details a volunteer should not see
// until the requester assigns them.
func redactForVolunteer(req models.Request, volunteerID primitive.ObjectID) models.Request {
	if req.AssignedIndex(volunteerID) >= 0 {
		return req
	}
	req.RequesterEmail = ""
	req.RequesterPhone = ""
	req.RequesterAddress = ""
	return req
}

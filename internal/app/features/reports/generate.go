// internal/app/features/reports/generate.go
package reports

import (
	"context"
	"net/http"
	"time"

	requeststore "github.com/dalemusser/helpbridge/internal/app/store/requests"
	"github.com/dalemusser/helpbridge/internal/app/system/apiutil"
	"github.com/dalemusser/helpbridge/internal/app/system/reportwindow"
	"github.com/dalemusser/helpbridge/internal/app/system/timeouts"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

// report is the generated report body.
type report struct {
	Type        string    `json:"type"`
	WindowStart time.Time `json:"windowStart"`
	WindowEnd   time.Time `json:"windowEnd"`
	GeneratedAt time.Time `json:"generatedAt"`

	TotalRequests     int64 `json:"totalRequests"`
	PendingRequests   int64 `json:"pendingRequests"`
	MatchedRequests   int64 `json:"matchedRequests"`
	CompletedRequests int64 `json:"completedRequests"`
	CancelledRequests int64 `json:"cancelledRequests"`
	FrozenRequests    int64 `json:"frozenRequests"`

	// CompletionRate is completed over non-pending for the window, in
	// whole percent. ActiveRequests is the platform-wide open count
	// right now, not a window figure.
	CompletionRate int   `json:"completionRate"`
	ActiveRequests int64 `json:"activeRequests"`

	NewUsers int64 `json:"newUsers"`

	RequestsGrowth int `json:"requestsGrowth"`
	MatchGrowth    int `json:"matchGrowth"`
	UsersGrowth    int `json:"usersGrowth"`

	CategoryBreakdown []requeststore.CategoryCount `json:"categoryBreakdown"`
	TopPerformers     []requeststore.PerformerStat `json:"topPerformers"`
}

// ServeReport generates a daily, weekly, or monthly report. Query
// parameters: type (daily|weekly|monthly, default daily) and date
// (YYYY-MM-DD, default today, UTC).
func (h *Handler) ServeReport(w http.ResponseWriter, r *http.Request) {
	reportType := query.Get(r, "type")
	if reportType == "" {
		reportType = reportwindow.Daily
	}

	target := time.Now().UTC()
	if s := query.Get(r, "date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			apiutil.Error(w, http.StatusBadRequest, "Date must be YYYY-MM-DD.")
			return
		}
		target = t.UTC()
	}

	current, previous, err := reportwindow.Compute(reportType, target)
	if err != nil {
		apiutil.Error(w, http.StatusBadRequest, "Report type must be daily, weekly, or monthly.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	out, err := h.generate(ctx, reportType, current, previous)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "generate report failed", err, "Failed to generate report.")
		return
	}

	apiutil.Data(w, http.StatusOK, out)
}

func (h *Handler) generate(ctx context.Context, reportType string, current, previous reportwindow.Window) (report, error) {
	out := report{
		Type:        reportType,
		WindowStart: current.Start,
		WindowEnd:   current.End,
		GeneratedAt: time.Now().UTC(),
	}

	statusCounts, err := h.Requests.StatusCountsBetween(ctx, current.Start, current.End)
	if err != nil {
		return report{}, err
	}
	out.PendingRequests = statusCounts[models.StatusPending]
	out.MatchedRequests = statusCounts[models.StatusMatched]
	out.CompletedRequests = statusCounts[models.StatusCompleted]
	out.CancelledRequests = statusCounts[models.StatusCancelled]
	out.FrozenRequests = statusCounts[models.StatusFrozen]
	for _, n := range statusCounts {
		out.TotalRequests += n
	}
	// Pending requests have not had a chance to complete yet, so they
	// sit outside the completion-rate denominator.
	out.CompletionRate = reportwindow.Rate(out.CompletedRequests, out.TotalRequests-out.PendingRequests)

	if out.ActiveRequests, err = h.Requests.CountActive(ctx); err != nil {
		return report{}, err
	}
	if out.NewUsers, err = h.Users.CountCreatedBetween(ctx, current.Start, current.End); err != nil {
		return report{}, err
	}

	prevStatusCounts, err := h.Requests.StatusCountsBetween(ctx, previous.Start, previous.End)
	if err != nil {
		return report{}, err
	}
	var prevRequests int64
	for _, n := range prevStatusCounts {
		prevRequests += n
	}
	out.RequestsGrowth = reportwindow.Growth(out.TotalRequests, prevRequests)
	out.MatchGrowth = reportwindow.Growth(out.MatchedRequests, prevStatusCounts[models.StatusMatched])

	prevUsers, err := h.Users.CountCreatedBetween(ctx, previous.Start, previous.End)
	if err != nil {
		return report{}, err
	}
	out.UsersGrowth = reportwindow.Growth(out.NewUsers, prevUsers)

	if out.CategoryBreakdown, err = h.Requests.CategoryBreakdownBetween(ctx, current.Start, current.End); err != nil {
		return report{}, err
	}
	if out.CategoryBreakdown == nil {
		out.CategoryBreakdown = []requeststore.CategoryCount{}
	}

	// Performer rankings only mean much over a month of activity.
	out.TopPerformers = []requeststore.PerformerStat{}
	if reportType == reportwindow.Monthly {
		rows, err := h.Requests.TopPerformersBetween(ctx, current.Start, current.End, 5)
		if err != nil {
			return report{}, err
		}
		if rows != nil {
			out.TopPerformers = rows
		}
	}

	return out, nil
}

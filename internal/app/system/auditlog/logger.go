// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/helpbridge/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Workflow controls logging for request lifecycle events (create, assign,
	// complete, freeze, volunteer apply/reject).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Workflow string
	// Admin controls logging for admin action events (user CRUD, batch status,
	// category CRUD).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Admin string
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header first (for reverse proxies)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	// Fall back to RemoteAddr
	return r.RemoteAddr
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}

	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.RequestID != nil {
		fields = append(fields, zap.String("request_id", event.RequestID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
// Logging destination is controlled by config: "all", "db", "log", or "off".
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryWorkflow:
		setting = l.config.Workflow
	case audit.CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = "all" // Default to logging everything for unknown categories
	}

	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}

	if setting == "all" || setting == "db" {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Workflow Events ---

func (l *Logger) workflowEvent(ctx context.Context, r *http.Request, eventType string, actorID, requestID primitive.ObjectID, details map[string]string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryWorkflow,
		EventType: eventType,
		ActorID:   &actorID,
		RequestID: &requestID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   details,
	})
}

// RequestCreated logs creation of a help request.
func (l *Logger) RequestCreated(ctx context.Context, r *http.Request, actorID, requestID primitive.ObjectID, title string) {
	l.workflowEvent(ctx, r, audit.EventRequestCreated, actorID, requestID, map[string]string{"title": title})
}

// RequestUpdated logs an edit to a help request.
func (l *Logger) RequestUpdated(ctx context.Context, r *http.Request, actorID, requestID primitive.ObjectID) {
	l.workflowEvent(ctx, r, audit.EventRequestUpdated, actorID, requestID, nil)
}

// RequestDeleted logs deletion of a help request.
func (l *Logger) RequestDeleted(ctx context.Context, r *http.Request, actorID, requestID primitive.ObjectID, title string) {
	l.workflowEvent(ctx, r, audit.EventRequestDeleted, actorID, requestID, map[string]string{"title": title})
}

// RequestCancelled logs a requester cancelling their request.
func (l *Logger) RequestCancelled(ctx context.Context, r *http.Request, actorID, requestID primitive.ObjectID) {
	l.workflowEvent(ctx, r, audit.EventRequestCancelled, actorID, requestID, nil)
}

// RequestFrozen logs an admin freezing a request.
func (l *Logger) RequestFrozen(ctx context.Context, r *http.Request, actorID, requestID primitive.ObjectID, previousStatus string) {
	l.workflowEvent(ctx, r, audit.EventRequestFrozen, actorID, requestID, map[string]string{"previous_status": previousStatus})
}

// RequestUnfrozen logs an admin unfreezing a request.
func (l *Logger) RequestUnfrozen(ctx context.Context, r *http.Request, actorID, requestID primitive.ObjectID, restoredStatus string) {
	l.workflowEvent(ctx, r, audit.EventRequestUnfrozen, actorID, requestID, map[string]string{"restored_status": restoredStatus})
}

// RequestCompleted logs a requester confirming completion.
func (l *Logger) RequestCompleted(ctx context.Context, r *http.Request, actorID, requestID, volunteerID primitive.ObjectID, rating int) {
	l.workflowEvent(ctx, r, audit.EventRequestCompleted, actorID, requestID, map[string]string{
		"volunteer_id": volunteerID.Hex(),
		"rating":       strconv.Itoa(rating),
	})
}

// VolunteerApplied logs a volunteer expressing interest in a request.
func (l *Logger) VolunteerApplied(ctx context.Context, r *http.Request, actorID, requestID primitive.ObjectID) {
	l.workflowEvent(ctx, r, audit.EventVolunteerApplied, actorID, requestID, nil)
}

// VolunteerWithdrew logs a volunteer withdrawing their application.
func (l *Logger) VolunteerWithdrew(ctx context.Context, r *http.Request, actorID, requestID primitive.ObjectID) {
	l.workflowEvent(ctx, r, audit.EventVolunteerWithdrew, actorID, requestID, nil)
}

// VolunteerAssigned logs a requester assigning a volunteer.
func (l *Logger) VolunteerAssigned(ctx context.Context, r *http.Request, actorID, requestID, volunteerID primitive.ObjectID) {
	l.workflowEvent(ctx, r, audit.EventVolunteerAssigned, actorID, requestID, map[string]string{
		"volunteer_id": volunteerID.Hex(),
	})
}

// VolunteerRejected logs a requester rejecting a volunteer.
func (l *Logger) VolunteerRejected(ctx context.Context, r *http.Request, actorID, requestID, volunteerID primitive.ObjectID) {
	l.workflowEvent(ctx, r, audit.EventVolunteerRejected, actorID, requestID, map[string]string{
		"volunteer_id": volunteerID.Hex(),
	})
}

// --- Admin Events ---

// UserCreated logs an admin creating a user.
func (l *Logger) UserCreated(ctx context.Context, r *http.Request, actorID, userID primitive.ObjectID, role string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventUserCreated,
		ActorID:   &actorID,
		UserID:    &userID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   map[string]string{"role": role},
	})
}

// UserStatusChanged logs an admin changing one user's status.
func (l *Logger) UserStatusChanged(ctx context.Context, r *http.Request, actorID, userID primitive.ObjectID, status string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventUserStatusChanged,
		ActorID:   &actorID,
		UserID:    &userID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   map[string]string{"status": status},
	})
}

// UsersBatchStatus logs an admin batch status update.
func (l *Logger) UsersBatchStatus(ctx context.Context, r *http.Request, actorID primitive.ObjectID, status string, affected int64) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventUsersBatchStatus,
		ActorID:   &actorID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"status":   status,
			"affected": strconv.FormatInt(affected, 10),
		},
	})
}

// CategoryCreated logs an admin creating a category.
func (l *Logger) CategoryCreated(ctx context.Context, r *http.Request, actorID primitive.ObjectID, key string) {
	l.categoryEvent(ctx, r, audit.EventCategoryCreated, actorID, key)
}

// CategoryUpdated logs an admin updating a category.
func (l *Logger) CategoryUpdated(ctx context.Context, r *http.Request, actorID primitive.ObjectID, key string) {
	l.categoryEvent(ctx, r, audit.EventCategoryUpdated, actorID, key)
}

// CategoryDeleted logs an admin deleting a category.
func (l *Logger) CategoryDeleted(ctx context.Context, r *http.Request, actorID primitive.ObjectID, key string) {
	l.categoryEvent(ctx, r, audit.EventCategoryDeleted, actorID, key)
}

func (l *Logger) categoryEvent(ctx context.Context, r *http.Request, eventType string, actorID primitive.ObjectID, key string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   &actorID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   map[string]string{"category_key": key},
	})
}

// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/helpbridge/internal/app/system/auth"
	"github.com/dalemusser/helpbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID,
// and a found flag. If no user is present in context or the user ID is
// malformed, it returns "visitor", "", NilObjectID, false, so ok=true
// always means a valid authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID from the token store - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsAdmin reports whether the current user holds either admin role
// (system_admin or platform_manager).
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && models.IsAdminRole(role)
}

// IsSystemAdmin reports whether the current user is a system admin.
func IsSystemAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleSystemAdmin
}

// IsPlatformManager reports whether the current user is a platform manager.
func IsPlatformManager(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RolePlatformManager
}

// IsPIN reports whether the current user is a Person-In-Need.
func IsPIN(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RolePIN
}

// IsCSR reports whether the current user is a CSR volunteer.
func IsCSR(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleCSR
}

// CanManageRequest reports whether the current user may edit or delete
// the given request: its requester, or either admin role.
func CanManageRequest(r *http.Request, requesterID primitive.ObjectID) bool {
	role, _, uid, ok := UserCtx(r)
	if !ok {
		return false
	}
	if models.IsAdminRole(role) {
		return true
	}
	return uid == requesterID
}

// IsRequester reports whether the current user created the given request.
func IsRequester(r *http.Request, requesterID primitive.ObjectID) bool {
	_, _, uid, ok := UserCtx(r)
	return ok && uid == requesterID
}

// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
//
//   - pin: Person-In-Need, creates help requests
//   - csr: Corporate Social Responsibility volunteer, applies for requests
//   - system_admin / platform_manager: the two administrative roles
const (
	RolePIN             = "pin"
	RoleCSR             = "csr"
	RoleSystemAdmin     = "system_admin"
	RolePlatformManager = "platform_manager"
)

// User account statuses.
const (
	UserActive    = "active"
	UserSuspended = "suspended"
	UserDeleted   = "deleted"
)

// User represents all four account types. Organization and Skills are
// only populated for CSR volunteers.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	NameCI       string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"`
	Role         string             `bson:"role" json:"userType"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	Organization string             `bson:"organization,omitempty" json:"organization,omitempty"`
	Skills       []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	Status       string             `bson:"status" json:"status"`

	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
	LastLogin *time.Time `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
}

// IsAdminRole reports whether the role is one of the two admin roles.
func IsAdminRole(role string) bool {
	return role == RoleSystemAdmin || role == RolePlatformManager
}

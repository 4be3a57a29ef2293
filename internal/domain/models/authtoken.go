// internal/domain/models/authtoken.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthToken maps an opaque bearer token to a user account. How tokens
// are issued is outside this service's scope; it only resolves them.
type AuthToken struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token      string             `bson:"token" json:"-"`
	UserID     primitive.ObjectID `bson:"user_id" json:"userId"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	LastSeenAt time.Time          `bson:"last_seen_at" json:"lastSeenAt"`
}

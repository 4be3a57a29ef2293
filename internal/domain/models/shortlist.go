// internal/domain/models/shortlist.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShortlistEntry is a CSR user's saved-for-later bookmark on a request.
// The entry snapshots the request at save time; its lifecycle is
// independent of the underlying request's.
type ShortlistEntry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"userId"`
	RequestID     primitive.ObjectID `bson:"request_id" json:"requestId"`
	Request       Request            `bson:"request" json:"request"`
	ShortlistedAt time.Time          `bson:"shortlisted_at" json:"shortlistedAt"`
}

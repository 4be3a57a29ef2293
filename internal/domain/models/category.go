// internal/domain/models/category.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category statuses.
const (
	CategoryActive   = "active"
	CategoryInactive = "inactive"
)

// CategoryName carries the bilingual display name for a category.
type CategoryName struct {
	ZH string `bson:"zh" json:"zh"`
	EN string `bson:"en" json:"en"`
}

// Category is a service type requests are classified under. Requests
// reference categories by the stable string Key ("medical", "shopping",
// ...), not by ObjectID, so the eight built-in defaults and any
// platform-manager additions share one namespace.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Key         string             `bson:"key" json:"id"`
	Name        string             `bson:"name" json:"name"`
	DisplayName CategoryName       `bson:"display_name" json:"displayName"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Icon        string             `bson:"icon,omitempty" json:"icon,omitempty"`
	Status      string             `bson:"status" json:"status"`
	SortOrder   int                `bson:"sort_order" json:"sortOrder"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

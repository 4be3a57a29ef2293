// internal/app/features/requests/types.go
package requests

import (
	"github.com/dalemusser/helpbridge/internal/app/system/normalize"
	"github.com/dalemusser/helpbridge/internal/domain/models"
)

// requestInput is the JSON body for create and update. Category
// accepts either a bare key string or a {id|key|name} object; older
// clients send both shapes.
type requestInput struct {
	Title            string                `json:"title"`
	Description      string                `json:"description"`
	Category         normalize.CategoryRef `json:"category"`
	Urgency          string                `json:"urgency"`
	Location         string                `json:"location"`
	ExpectedDate     string                `json:"expectedDate"`
	ExpectedTime     string                `json:"expectedTime"`
	VolunteersNeeded int                   `json:"volunteersNeeded"`
	ContactMethod    string                `json:"contactMethod"`
	AdditionalNotes  string                `json:"additionalNotes"`
}

// requestRules defines validation rules for create and update.
type requestRules struct {
	Title            string `validate:"required,min=5,max=200" label:"Title"`
	Description      string `validate:"required,min=10,max=5000" label:"Description"`
	Category         string `validate:"required,max=100" label:"Category"`
	Urgency          string `validate:"required,oneof=low medium high urgent" label:"Urgency"`
	Location         string `validate:"required,max=300" label:"Location"`
	VolunteersNeeded int    `validate:"gte=1,lte=20" label:"Volunteers needed"`
	ContactMethod    string `validate:"required,oneof=phone email both" label:"Contact method"`
	AdditionalNotes  string `validate:"max=2000" label:"Additional notes"`
}

// applyInput is the JSON body for a volunteer application.
type applyInput struct {
	Message string `json:"message" validate:"max=1000" label:"Message"`
}

// rejectInput is the JSON body for rejecting a volunteer.
type rejectInput struct {
	Reason string `json:"reason" validate:"max=1000" label:"Reason"`
}

// completeInput is the JSON body for confirming completion.
type completeInput struct {
	VolunteerID string `json:"volunteerId" validate:"required" label:"Volunteer"`
	Rating      int    `json:"rating" validate:"required,gte=1,lte=5" label:"Rating"`
	Feedback    string `json:"feedback" validate:"max=500" label:"Feedback"`
}

// listResponse is the paged list envelope body.
type listResponse struct {
	Items      []models.Request `json:"items"`
	Total      int              `json:"total"`
	Shown      int              `json:"shown"`
	HasPrev    bool             `json:"hasPrev"`
	HasNext    bool             `json:"hasNext"`
	RangeStart int              `json:"rangeStart"`
	RangeEnd   int              `json:"rangeEnd"`
	PrevStart  int              `json:"prevStart"`
	NextStart  int              `json:"nextStart"`
}

// viewResponse wraps a single request plus viewer-specific extras.
type viewResponse struct {
	models.Request
	Shortlisted bool `json:"shortlisted"`
}

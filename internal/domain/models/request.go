// internal/domain/models/request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestStatus is the lifecycle state of a help request.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusMatched   RequestStatus = "matched"
	StatusCompleted RequestStatus = "completed"
	StatusCancelled RequestStatus = "cancelled"
	StatusFrozen    RequestStatus = "frozen"
)

// ValidStatus reports whether s is one of the five request statuses.
func ValidStatus(s RequestStatus) bool {
	switch s {
	case StatusPending, StatusMatched, StatusCompleted, StatusCancelled, StatusFrozen:
		return true
	}
	return false
}

// Urgency levels for a request.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
	UrgencyUrgent = "urgent"
)

// Contact methods a requester accepts.
const (
	ContactPhone = "phone"
	ContactEmail = "email"
	ContactBoth  = "both"
)

// Attachment is file metadata recorded when a request is created with
// uploaded files. The bytes themselves live outside Mongo.
type Attachment struct {
	Name       string    `bson:"name" json:"name"`
	URL        string    `bson:"url" json:"url"`
	MimeType   string    `bson:"mime_type" json:"mimeType"`
	Size       int64     `bson:"size" json:"size"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploadedAt"`
}

// InterestedVolunteer is a CSR volunteer who applied for a request.
type InterestedVolunteer struct {
	VolunteerID primitive.ObjectID `bson:"volunteer_id" json:"volunteerId"`
	Name        string             `bson:"name" json:"name"`
	Message     string             `bson:"message" json:"message"`
	AppliedAt   time.Time          `bson:"applied_at" json:"appliedAt"`
}

// RejectedVolunteer records a volunteer turned away from a request. A
// volunteer on this list is blocked from applying again and excluded
// from candidate listings for the request.
type RejectedVolunteer struct {
	VolunteerID primitive.ObjectID `bson:"volunteer_id" json:"volunteerId"`
	RejectedAt  time.Time          `bson:"rejected_at" json:"rejectedAt"`
	Reason      string             `bson:"reason" json:"reason"`
}

// AssignedVolunteer is a volunteer formally matched to a request.
// Rating and feedback are attached once, on completion, by the requester.
type AssignedVolunteer struct {
	VolunteerID primitive.ObjectID `bson:"volunteer_id" json:"volunteerId"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone" json:"phone"`
	AssignedAt  time.Time          `bson:"assigned_at" json:"assignedAt"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	Rating      *int               `bson:"rating,omitempty" json:"rating,omitempty"`
	Feedback    string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
}

// FrozenState carries the status a request held before an admin froze it.
// It is present exactly when Status == StatusFrozen, so a frozen request
// with no saved previous state is unrepresentable.
type FrozenState struct {
	Previous RequestStatus `bson:"previous" json:"previous"`
	At       time.Time     `bson:"at" json:"at"`
}

// Request is the central entity: a PIN user's ask for volunteer help.
//
// Requester fields are a denormalized snapshot of the creating user at
// creation time; later profile edits do not rewrite past requests.
type Request struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	CategoryID  string             `bson:"category_id" json:"category"`
	Urgency     string             `bson:"urgency" json:"urgency"`
	Location    string             `bson:"location" json:"location"`

	ExpectedDate     *time.Time `bson:"expected_date,omitempty" json:"expectedDate,omitempty"`
	ExpectedTime     string     `bson:"expected_time,omitempty" json:"expectedTime,omitempty"`
	VolunteersNeeded int        `bson:"volunteers_needed" json:"volunteersNeeded"`
	ContactMethod    string     `bson:"contact_method" json:"contactMethod"`
	AdditionalNotes  string     `bson:"additional_notes,omitempty" json:"additionalNotes,omitempty"`

	Attachments []Attachment `bson:"attachments,omitempty" json:"attachments,omitempty"`

	RequesterID      primitive.ObjectID `bson:"requester_id" json:"requesterId"`
	RequesterName    string             `bson:"requester_name" json:"requesterName"`
	RequesterEmail   string             `bson:"requester_email" json:"requesterEmail"`
	RequesterPhone   string             `bson:"requester_phone,omitempty" json:"requesterPhone,omitempty"`
	RequesterAddress string             `bson:"requester_address,omitempty" json:"requesterAddress,omitempty"`

	Status RequestStatus `bson:"status" json:"status"`
	Frozen *FrozenState  `bson:"frozen,omitempty" json:"frozen,omitempty"`

	InterestedVolunteers []InterestedVolunteer `bson:"interested_volunteers" json:"interestedVolunteers"`
	RejectedVolunteers   []RejectedVolunteer   `bson:"rejected_volunteers" json:"rejectedVolunteers"`
	AssignedVolunteers   []AssignedVolunteer   `bson:"assigned_volunteers" json:"assignedVolunteers"`

	ViewCount      int64 `bson:"view_count" json:"viewCount"`
	ShortlistCount int64 `bson:"shortlist_count" json:"shortlistCount"`

	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
	MatchedAt *time.Time `bson:"matched_at,omitempty" json:"matchedAt,omitempty"`
}

// IsInterested reports whether the volunteer has an application on file.
func (r *Request) IsInterested(volunteerID primitive.ObjectID) bool {
	for _, v := range r.InterestedVolunteers {
		if v.VolunteerID == volunteerID {
			return true
		}
	}
	return false
}

// IsRejected reports whether the volunteer is on the rejection list.
func (r *Request) IsRejected(volunteerID primitive.ObjectID) bool {
	for _, v := range r.RejectedVolunteers {
		if v.VolunteerID == volunteerID {
			return true
		}
	}
	return false
}

// AssignedIndex returns the index of the volunteer in AssignedVolunteers,
// or -1 when the volunteer is not assigned.
func (r *Request) AssignedIndex(volunteerID primitive.ObjectID) int {
	for i, v := range r.AssignedVolunteers {
		if v.VolunteerID == volunteerID {
			return i
		}
	}
	return -1
}

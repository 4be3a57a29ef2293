// Package match implements the request lifecycle state machine:
//
//	pending → matched → completed
//
// with side branches pending → cancelled and pending/matched ↔ frozen
// (admin-only, reversible). All functions mutate the request in memory
// and return a sentinel error when a guard fails; persistence belongs
// to the request store.
package match

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/dalemusser/helpbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotPending       = errors.New("request is not pending")
	ErrNotMatched       = errors.New("request is not matched")
	ErrFrozen           = errors.New("request is frozen")
	ErrNotFrozen        = errors.New("request is not frozen")
	ErrAlreadyApplied   = errors.New("volunteer has already applied for this request")
	ErrVolunteerRejected = errors.New("volunteer has been rejected from this request")
	ErrNotApplicant     = errors.New("volunteer did not apply for this request")
	ErrNotAssigned      = errors.New("volunteer is not assigned to this request")
	ErrAlreadyRated     = errors.New("volunteer has already been rated for this request")
	ErrRatingRange      = errors.New("rating must be between 1 and 5")
	ErrFeedbackTooLong  = errors.New("feedback must be 500 characters or fewer")
)

// MaxFeedbackLen caps the optional per-volunteer completion feedback.
const MaxFeedbackLen = 500

// Policy controls how multi-slot requests behave on assignment.
//
// The observed workflow only ever assigns one volunteer per call, so
// whether a request with VolunteersNeeded > 1 stays pending until all
// slots fill is a product decision. With PartialFulfillment off (the
// default) the first assignment transitions the request to matched.
type Policy struct {
	PartialFulfillment bool
}

// Apply adds a volunteer to InterestedVolunteers. The request must be
// pending, the volunteer must not be on the rejection list, and a
// second application by the same volunteer is refused rather than
// duplicated. Status does not change.
func Apply(req *models.Request, vol models.InterestedVolunteer) error {
	if req.Status == models.StatusFrozen {
		return ErrFrozen
	}
	if req.Status != models.StatusPending {
		return ErrNotPending
	}
	if req.IsRejected(vol.VolunteerID) {
		return ErrVolunteerRejected
	}
	if req.IsInterested(vol.VolunteerID) {
		return ErrAlreadyApplied
	}
	req.InterestedVolunteers = append(req.InterestedVolunteers, vol)
	return nil
}

// CancelApplication removes the volunteer's entry from
// InterestedVolunteers. Cancelling when no application exists is an
// ErrNotApplicant so callers can report it.
func CancelApplication(req *models.Request, volunteerID primitive.ObjectID) error {
	for i, v := range req.InterestedVolunteers {
		if v.VolunteerID == volunteerID {
			req.InterestedVolunteers = append(req.InterestedVolunteers[:i], req.InterestedVolunteers[i+1:]...)
			return nil
		}
	}
	return ErrNotApplicant
}

// Reject puts a volunteer on the rejection list and withdraws any
// standing application. Rejection is idempotent: rejecting an already
// rejected volunteer changes nothing.
func Reject(req *models.Request, rej models.RejectedVolunteer) error {
	if req.IsRejected(rej.VolunteerID) {
		return nil
	}
	req.RejectedVolunteers = append(req.RejectedVolunteers, rej)
	for i, v := range req.InterestedVolunteers {
		if v.VolunteerID == rej.VolunteerID {
			req.InterestedVolunteers = append(req.InterestedVolunteers[:i], req.InterestedVolunteers[i+1:]...)
			break
		}
	}
	return nil
}

// Assign moves a volunteer from InterestedVolunteers into
// AssignedVolunteers. The request must be pending and the volunteer
// must have applied. Other applicants stay in InterestedVolunteers as
// history; they are not promoted.
//
// Under the default policy the request transitions to matched on the
// first assignment. With PartialFulfillment it stays pending until
// VolunteersNeeded slots are filled.
func Assign(req *models.Request, volunteerID primitive.ObjectID, contact models.AssignedVolunteer, now time.Time, p Policy) error {
	if req.Status == models.StatusFrozen {
		return ErrFrozen
	}
	if req.Status != models.StatusPending {
		return ErrNotPending
	}
	idx := -1
	for i := range req.InterestedVolunteers {
		if req.InterestedVolunteers[i].VolunteerID == volunteerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotApplicant
	}
	applied := req.InterestedVolunteers[idx]
	// Moved, not copied: a filled slot leaves the applicant pool so a
	// partially fulfilled request cannot assign the same volunteer twice.
	req.InterestedVolunteers = append(req.InterestedVolunteers[:idx], req.InterestedVolunteers[idx+1:]...)

	assigned := models.AssignedVolunteer{
		VolunteerID: volunteerID,
		Name:        applied.Name,
		Email:       contact.Email,
		Phone:       contact.Phone,
		AssignedAt:  now,
	}
	if contact.Name != "" {
		assigned.Name = contact.Name
	}
	req.AssignedVolunteers = append(req.AssignedVolunteers, assigned)

	if !p.PartialFulfillment || len(req.AssignedVolunteers) >= req.VolunteersNeeded {
		req.Status = models.StatusMatched
		req.MatchedAt = &now
	}
	return nil
}

// Complete finalizes the request for one assigned volunteer: status
// moves to completed, CompletedAt is stamped, and the required rating
// (1–5) plus optional feedback are attached. Each assigned volunteer
// can be rated at most once; a second submission is ErrAlreadyRated.
func Complete(req *models.Request, volunteerID primitive.ObjectID, rating int, feedback string, now time.Time) error {
	if req.Status == models.StatusFrozen {
		return ErrFrozen
	}
	if req.Status != models.StatusMatched && req.Status != models.StatusCompleted {
		return ErrNotMatched
	}
	if rating < 1 || rating > 5 {
		return ErrRatingRange
	}
	if utf8.RuneCountInString(feedback) > MaxFeedbackLen {
		return ErrFeedbackTooLong
	}

	i := req.AssignedIndex(volunteerID)
	if i < 0 {
		return ErrNotAssigned
	}
	if req.AssignedVolunteers[i].Rating != nil {
		return ErrAlreadyRated
	}

	req.AssignedVolunteers[i].CompletedAt = &now
	req.AssignedVolunteers[i].Rating = &rating
	req.AssignedVolunteers[i].Feedback = feedback
	req.Status = models.StatusCompleted
	return nil
}

// Cancel moves a pending request to cancelled.
func Cancel(req *models.Request) error {
	if req.Status == models.StatusFrozen {
		return ErrFrozen
	}
	if req.Status != models.StatusPending {
		return ErrNotPending
	}
	req.Status = models.StatusCancelled
	return nil
}

// Freeze pauses a request, saving its current status for restoration.
// Only pending and matched requests can be frozen.
func Freeze(req *models.Request, now time.Time) error {
	if req.Status == models.StatusFrozen {
		return ErrFrozen
	}
	if req.Status != models.StatusPending && req.Status != models.StatusMatched {
		return ErrNotPending
	}
	req.Frozen = &models.FrozenState{Previous: req.Status, At: now}
	req.Status = models.StatusFrozen
	return nil
}

// Unfreeze restores the status saved when the request was frozen and
// clears the frozen state.
func Unfreeze(req *models.Request) error {
	if req.Status != models.StatusFrozen || req.Frozen == nil {
		return ErrNotFrozen
	}
	req.Status = req.Frozen.Previous
	req.Frozen = nil
	return nil
}

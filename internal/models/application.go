package models

import "time"

// ApplicationStatus is an application's position in the review state machine.
type ApplicationStatus string

const (
	StatusSubmitted ApplicationStatus = "submitted"
	StatusInReview  ApplicationStatus = "in_review"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusRejected  ApplicationStatus = "rejected"
)

// transitions encodes submitted -> in_review -> accepted | rejected.
var transitions = map[ApplicationStatus][]ApplicationStatus{
	StatusSubmitted: {StatusInReview},
	StatusInReview:  {StatusAccepted, StatusRejected},
	StatusAccepted:  {},
	StatusRejected:  {},
}

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transition is possible from s.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransitionTo reports whether target is a legal next state. A same-state
// transition is not listed here; callers treat it as an idempotent no-op.
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Application is one user's submission against one scholarship. At most one
// application exists per (user, scholarship) pair; the client enforces this
// by filtering available scholarships against already-applied IDs.
type Application struct {
	ID            int64             `json:"id"`
	UserID        int64             `json:"user_id"`
	ScholarshipID int64             `json:"scholarship_id"`
	Status        ApplicationStatus `json:"status"`
	ReviewerID    *int64            `json:"reviewer_id,omitempty"`
	EssayText     string            `json:"essay_text,omitempty"`
	TranscriptURL string            `json:"transcript_url,omitempty"`
	AnswersJSON   string            `json:"answers_json,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// Assignable reports whether a reviewer may be assigned in the current state.
func (a *Application) Assignable() bool {
	return a.Status == StatusSubmitted || a.Status == StatusInReview
}

// AssignedTo reports whether the given reviewer is the current assignee.
func (a *Application) AssignedTo(reviewerID int64) bool {
	return a.ReviewerID != nil && *a.ReviewerID == reviewerID
}

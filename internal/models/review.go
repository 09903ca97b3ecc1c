package models

import "time"

// Review is one reviewer's evolving evaluation of an application. A reviewer
// holds at most one review per application; resubmission updates it.
type Review struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	ReviewerID    int64     `json:"reviewer_id"`
	Score         *int      `json:"score,omitempty"`
	Comment       string    `json:"comment,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ReviewInput is what a reviewer submits. Status optionally proposes the
// application's next state; applying it is a separate status update.
type ReviewInput struct {
	ReviewerID int64  `json:"reviewer_id"`
	Score      *int   `json:"score,omitempty"`
	Comment    string `json:"comment,omitempty"`
	Status     string `json:"status,omitempty"`
}

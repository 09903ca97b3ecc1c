package api

import (
	"context"
	"fmt"
	"net/http"

	"scholarhub-client/internal/models"
)

// ApplicationCreateInput is the submission payload.
type ApplicationCreateInput struct {
	UserID        int64  `json:"user_id"`
	ScholarshipID int64  `json:"scholarship_id"`
	EssayText     string `json:"essay_text,omitempty"`
	TranscriptURL string `json:"transcript_url,omitempty"`
	AnswersJSON   string `json:"answers_json,omitempty"`
}

type statusUpdateRequest struct {
	Status models.ApplicationStatus `json:"status"`
}

// CreateApplication submits a new application.
func (c *Client) CreateApplication(ctx context.Context, accessToken string, input ApplicationCreateInput) (*models.Application, error) {
	var app models.Application
	if err := c.doJSON(ctx, "applications.create", http.MethodPost, "/applications/", accessToken, input, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// GetApplication fetches one application by ID.
func (c *Client) GetApplication(ctx context.Context, accessToken string, id int64) (*models.Application, error) {
	var app models.Application
	path := fmt.Sprintf("/applications/%d", id)
	if err := c.doJSON(ctx, "applications.get", http.MethodGet, path, accessToken, nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// ListApplicationsForUser returns all applications submitted by a user.
func (c *Client) ListApplicationsForUser(ctx context.Context, accessToken string, userID int64) ([]models.Application, error) {
	var apps []models.Application
	path := fmt.Sprintf("/applications/by-user/%d", userID)
	if err := c.doJSON(ctx, "applications.list_for_user", http.MethodGet, path, accessToken, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ListAllApplications returns every application (admin view).
func (c *Client) ListAllApplications(ctx context.Context, accessToken string) ([]models.Application, error) {
	var apps []models.Application
	if err := c.doJSON(ctx, "applications.list_all", http.MethodGet, "/applications/", accessToken, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ListApplicationsForReviewer returns the applications assigned to a reviewer.
func (c *Client) ListApplicationsForReviewer(ctx context.Context, accessToken string, reviewerID int64) ([]models.Application, error) {
	var apps []models.Application
	path := fmt.Sprintf("/applications/by-reviewer/%d", reviewerID)
	if err := c.doJSON(ctx, "applications.list_for_reviewer", http.MethodGet, path, accessToken, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// AssignReviewer assigns or reassigns a reviewer to an application.
func (c *Client) AssignReviewer(ctx context.Context, accessToken string, applicationID, reviewerID int64) (*models.Application, error) {
	var app models.Application
	path := fmt.Sprintf("/applications/%d/assign-reviewer/%d", applicationID, reviewerID)
	if err := c.doJSON(ctx, "applications.assign_reviewer", http.MethodPost, path, accessToken, nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// SubmitReview creates or updates the reviewer's review for an application.
func (c *Client) SubmitReview(ctx context.Context, accessToken string, applicationID int64, input models.ReviewInput) (*models.Review, error) {
	var review models.Review
	path := fmt.Sprintf("/applications/%d/reviews", applicationID)
	if err := c.doJSON(ctx, "applications.submit_review", http.MethodPost, path, accessToken, input, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// UpdateApplicationStatus moves an application to a new status.
func (c *Client) UpdateApplicationStatus(ctx context.Context, accessToken string, applicationID int64, status models.ApplicationStatus) (*models.Application, error) {
	var app models.Application
	path := fmt.Sprintf("/applications/%d/status", applicationID)
	if err := c.doJSON(ctx, "applications.update_status", http.MethodPatch, path, accessToken, statusUpdateRequest{Status: status}, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// GetSuitability fetches the backend's derived suitability judgement.
func (c *Client) GetSuitability(ctx context.Context, accessToken string, applicationID int64) (*SuitabilityResult, error) {
	var result SuitabilityResult
	path := fmt.Sprintf("/applications/%d/suitability", applicationID)
	if err := c.doJSON(ctx, "applications.suitability", http.MethodGet, path, accessToken, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SuitabilityResult mirrors the backend's suitability response.
type SuitabilityResult struct {
	Status string   `json:"status"` // qualified | unqualified | unknown
	Notes  []string `json:"notes"`
}

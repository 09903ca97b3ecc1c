package api

import (
	"context"
	"net/http"

	"scholarhub-client/internal/models"
)

// ListScholarships returns every scholarship.
func (c *Client) ListScholarships(ctx context.Context, accessToken string) ([]models.Scholarship, error) {
	var list []models.Scholarship
	if err := c.doJSON(ctx, "scholarships.list", http.MethodGet, "/scholarships/", accessToken, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetProfile fetches the caller's applicant profile. A NOT_FOUND error means
// the profile has not been created yet, which drives the onboarding prompt.
func (c *Client) GetProfile(ctx context.Context, accessToken string) (*models.ApplicantProfile, error) {
	var profile models.ApplicantProfile
	if err := c.doJSON(ctx, "profile.get", http.MethodGet, "/applicant/profile/me", accessToken, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile creates or replaces the caller's applicant profile.
func (c *Client) UpsertProfile(ctx context.Context, accessToken string, input models.ProfileInput) (*models.ApplicantProfile, error) {
	var profile models.ApplicantProfile
	if err := c.doJSON(ctx, "profile.upsert", http.MethodPut, "/applicant/profile/me", accessToken, input, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

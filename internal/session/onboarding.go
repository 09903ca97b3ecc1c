package session

import (
	"context"

	"scholarhub-client/internal/common/errors"
	"scholarhub-client/internal/common/logger"
	"scholarhub-client/internal/models"
)

// ProfileAPI is the applicant-profile slice of the backend contract.
type ProfileAPI interface {
	GetProfile(ctx context.Context, accessToken string) (*models.ApplicantProfile, error)
	UpsertProfile(ctx context.Context, accessToken string, input models.ProfileInput) (*models.ApplicantProfile, error)
}

// ProfileFlow drives applicant onboarding: it loads the academic profile and,
// while none exists, keeps the manager's profile-setup flag raised so the
// route guard redirects to onboarding.
type ProfileFlow struct {
	api     ProfileAPI
	manager *Manager
	logger  logger.Logger
}

// NewProfileFlow creates the onboarding flow.
func NewProfileFlow(apiClient ProfileAPI, m *Manager, log logger.Logger) *ProfileFlow {
	return &ProfileFlow{api: apiClient, manager: m, logger: log}
}

// Load fetches the applicant's profile. A missing profile is not a generic
// failure: it raises the profile-setup flag and returns the not-found error
// so the caller can prompt for onboarding.
func (f *ProfileFlow) Load(ctx context.Context) (*models.ApplicantProfile, error) {
	profile, err := f.api.GetProfile(ctx, f.manager.AccessToken())
	if err != nil {
		if errors.IsNotFound(err) {
			f.manager.SetNeedsProfileSetup(ctx, true)
			return nil, err
		}
		return nil, f.manager.HandleAuthError(ctx, err)
	}
	return profile, nil
}

// Complete upserts the profile and lowers the profile-setup flag, which lets
// the route guard admit the applicant to the rest of the app.
func (f *ProfileFlow) Complete(ctx context.Context, input models.ProfileInput) (*models.ApplicantProfile, error) {
	profile, err := f.api.UpsertProfile(ctx, f.manager.AccessToken(), input)
	if err != nil {
		return nil, f.manager.HandleAuthError(ctx, err)
	}
	f.manager.SetNeedsProfileSetup(ctx, false)
	f.logger.Info("applicant onboarding completed", map[string]interface{}{"user_id": profile.UserID})
	return profile, nil
}

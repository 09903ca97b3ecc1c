package application

import (
	"context"
	"fmt"
	"time"

	"scholarhub-client/internal/api"
	"scholarhub-client/internal/common/errors"
	"scholarhub-client/internal/common/logger"
	"scholarhub-client/internal/models"
)

// notifyAttempts bounds the reviewer-notification retry loop. Assignment is
// never rolled back when delivery keeps failing; the error is surfaced so the
// caller can re-trigger delivery.
const notifyAttempts = 3

// Session supplies the bearer token and routes backend errors through the
// central auth handler. *session.Manager satisfies it.
type Session interface {
	AccessToken() string
	HandleAuthError(ctx context.Context, err error) error
}

// API is the slice of the backend client the service needs.
type API interface {
	CreateApplication(ctx context.Context, accessToken string, input api.ApplicationCreateInput) (*models.Application, error)
	GetApplication(ctx context.Context, accessToken string, id int64) (*models.Application, error)
	ListApplicationsForUser(ctx context.Context, accessToken string, userID int64) ([]models.Application, error)
	ListAllApplications(ctx context.Context, accessToken string) ([]models.Application, error)
	ListApplicationsForReviewer(ctx context.Context, accessToken string, reviewerID int64) ([]models.Application, error)
	AssignReviewer(ctx context.Context, accessToken string, applicationID, reviewerID int64) (*models.Application, error)
	SubmitReview(ctx context.Context, accessToken string, applicationID int64, input models.ReviewInput) (*models.Review, error)
	UpdateApplicationStatus(ctx context.Context, accessToken string, applicationID int64, status models.ApplicationStatus) (*models.Application, error)
	CreateNotification(ctx context.Context, accessToken string, input api.NotificationCreateInput) (*models.Notification, error)
}

// Service drives the application lifecycle: submission, reviewer assignment,
// review intake and status transitions. State-machine rules are checked
// locally before the backend is asked to do anything.
type Service struct {
	api     API
	session Session
	logger  logger.Logger
	now     func() time.Time
}

// NewService creates the application lifecycle service.
func NewService(apiClient API, sess Session, log logger.Logger) *Service {
	return &Service{
		api:     apiClient,
		session: sess,
		logger:  log,
		now:     time.Now,
	}
}

// Create validates the submission against the scholarship's requirements and,
// only if it passes, sends it to the backend. Validation failures never leave
// the client.
func (s *Service) Create(ctx context.Context, input CreateInput, scholarship *models.Scholarship) (*models.Application, error) {
	if err := validateSubmission(input, scholarship, s.now()); err != nil {
		s.logger.Warn("application submission rejected locally", map[string]interface{}{
			"user_id":        input.UserID,
			"scholarship_id": input.ScholarshipID,
			"error":          err.Error(),
		})
		return nil, err
	}

	app, err := s.api.CreateApplication(ctx, s.session.AccessToken(), api.ApplicationCreateInput{
		UserID:        input.UserID,
		ScholarshipID: input.ScholarshipID,
		EssayText:     input.EssayText,
		TranscriptURL: input.TranscriptURL,
		AnswersJSON:   input.AnswersJSON,
	})
	if err != nil {
		return nil, s.session.HandleAuthError(ctx, err)
	}

	s.logger.Info("application submitted", map[string]interface{}{
		"application_id": app.ID,
		"scholarship_id": app.ScholarshipID,
	})
	return app, nil
}

// Get fetches one application.
func (s *Service) Get(ctx context.Context, id int64) (*models.Application, error) {
	app, err := s.api.GetApplication(ctx, s.session.AccessToken(), id)
	if err != nil {
		return nil, s.session.HandleAuthError(ctx, err)
	}
	return app, nil
}

// ListForUser returns the applications submitted by a user.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]models.Application, error) {
	apps, err := s.api.ListApplicationsForUser(ctx, s.session.AccessToken(), userID)
	if err != nil {
		return nil, s.session.HandleAuthError(ctx, err)
	}
	return apps, nil
}

// ListAll returns every application, for the admin assignment view.
func (s *Service) ListAll(ctx context.Context) ([]models.Application, error) {
	apps, err := s.api.ListAllApplications(ctx, s.session.AccessToken())
	if err != nil {
		return nil, s.session.HandleAuthError(ctx, err)
	}
	return apps, nil
}

// ListForReviewer returns the applications assigned to a reviewer.
func (s *Service) ListForReviewer(ctx context.Context, reviewerID int64) ([]models.Application, error) {
	apps, err := s.api.ListApplicationsForReviewer(ctx, s.session.AccessToken(), reviewerID)
	if err != nil {
		return nil, s.session.HandleAuthError(ctx, err)
	}
	return apps, nil
}

// AssignReviewer assigns (or reassigns) a reviewer and then notifies them.
// Assignment only proceeds from the submitted or in_review states. Delivery
// is at-least-once with bounded retries; when every attempt fails the
// assigned application is still returned together with the delivery error,
// and the assignment stands.
func (s *Service) AssignReviewer(ctx context.Context, applicationID, reviewerID int64) (*models.Application, error) {
	current, err := s.api.GetApplication(ctx, s.session.AccessToken(), applicationID)
	if err != nil {
		return nil, s.session.HandleAuthError(ctx, err)
	}
	if !current.Assignable() {
		return nil, errors.NewConflictError(
			"A reviewer can only be assigned while the application is submitted or in review.",
			string(current.Status),
		)
	}

	app, err := s.api.AssignReviewer(ctx, s.session.AccessToken(), applicationID, reviewerID)
	if err != nil {
		return nil, s.session.HandleAuthError(ctx, err)
	}

	s.logger.Info("reviewer assigned", map[string]interface{}{
		"application_id": applicationID,
		"reviewer_id":    reviewerID,
	})

	if err := s.notifyReviewer(ctx, applicationID, reviewerID); err != nil {
		return app, err
	}
	return app, nil
}

// notifyReviewer delivers the assignment notice, retrying on failure. A
// duplicate notice on a retried success is acceptable; a lost one is not.
func (s *Service) notifyReviewer(ctx context.Context, applicationID, reviewerID int64) error {
	input := api.NotificationCreateInput{
		UserID:  reviewerID,
		Message: fmt.Sprintf("You have been assigned application #%d for review.", applicationID),
	}

	var lastErr error
	for attempt := 1; attempt <= notifyAttempts; attempt++ {
		if _, lastErr = s.api.CreateNotification(ctx, s.session.AccessToken(), input); lastErr == nil {
			return nil
		}
		s.logger.Warn("reviewer notification delivery failed", map[string]interface{}{
			"application_id": applicationID,
			"reviewer_id":    reviewerID,
			"attempt":        attempt,
			"error":          lastErr.Error(),
		})
	}
	return errors.NewTransportError("The reviewer was assigned but could not be notified.", lastErr)
}

// SubmitReview records the assigned reviewer's review. Reviews from anyone
// but the current assignee are rejected.
func (s *Service) SubmitReview(ctx context.Context, applicationID int64, input models.ReviewInput) (*models.Review, error) {
	current, err := s.api.GetApplication(ctx, s.session.AccessToken(), applicationID)
	if err != nil {
		return nil, s.session.HandleAuthError(ctx, err)
	}
	if !current.AssignedTo(input.ReviewerID) {
		return nil, errors.NewConflictError(
			"Only the assigned reviewer may submit a review for this application.",
			fmt.Sprintf("reviewer %d", input.ReviewerID),
		)
	}

	review, err := s.api.SubmitReview(ctx, s.session.AccessToken(), applicationID, input)
	if err != nil {
		return nil, s.session.HandleAuthError(ctx, err)
	}
	return review, nil
}

// UpdateStatus moves an application along the review state machine. Moving to
// the state it is already in is a no-op and returns the current application
// without touching the backend. Illegal transitions, including anything out
// of a terminal state, fail with a conflict.
func (s *Service) UpdateStatus(ctx context.Context, applicationID int64, target models.ApplicationStatus) (*models.Application, error) {
	if !target.Valid() {
		return nil, errors.NewValidationError("Unknown application status.", string(target))
	}

	current, err := s.api.GetApplication(ctx, s.session.AccessToken(), applicationID)
	if err != nil {
		return nil, s.session.HandleAuthError(ctx, err)
	}

	if current.Status == target {
		return current, nil
	}
	if !current.Status.CanTransitionTo(target) {
		return nil, errors.NewConflictError(
			fmt.Sprintf("An application cannot move from %s to %s.", current.Status, target),
			string(current.Status),
		)
	}

	app, err := s.api.UpdateApplicationStatus(ctx, s.session.AccessToken(), applicationID, target)
	if err != nil {
		return nil, s.session.HandleAuthError(ctx, err)
	}

	s.logger.Info("application status updated", map[string]interface{}{
		"application_id": applicationID,
		"from":           string(current.Status),
		"to":             string(target),
	})
	return app, nil
}

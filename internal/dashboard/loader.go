// Package dashboard assembles the per-role landing views and the concurrent
// initial data load behind them.
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"scholarhub-client/internal/common/logger"
	"scholarhub-client/internal/models"
)

// Session supplies the bearer token and routes backend errors through the
// central auth handler. *session.Manager satisfies it.
type Session interface {
	AccessToken() string
	HandleAuthError(ctx context.Context, err error) error
}

// API is the slice of the backend client the dashboard needs.
type API interface {
	ListScholarships(ctx context.Context, accessToken string) ([]models.Scholarship, error)
	ListApplicationsForUser(ctx context.Context, accessToken string, userID int64) ([]models.Application, error)
	ListAllApplications(ctx context.Context, accessToken string) ([]models.Application, error)
	ListApplicationsForReviewer(ctx context.Context, accessToken string, reviewerID int64) ([]models.Application, error)
}

// ApplicantView is the applicant landing page data: everything open to apply
// for, plus what the applicant already submitted.
type ApplicantView struct {
	Scholarships []models.Scholarship
	Applications []models.Application
	// Available is Scholarships minus the ones already applied for. One
	// application per (user, scholarship).
	Available []models.Scholarship
}

// Loader performs the dashboard's initial data loads.
type Loader struct {
	api     API
	session Session
	logger  logger.Logger
}

// NewLoader creates a dashboard loader.
func NewLoader(apiClient API, sess Session, log logger.Logger) *Loader {
	return &Loader{api: apiClient, session: sess, logger: log}
}

// LoadApplicant fetches scholarships and the user's applications concurrently
// and joins them. The view renders only when both fetches complete; either
// failure aborts the whole load with a single error. A cancelled context
// discards the results, so a superseded view never paints.
func (l *Loader) LoadApplicant(ctx context.Context, userID int64) (*ApplicantView, error) {
	var (
		scholarships []models.Scholarship
		applications []models.Application
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		scholarships, err = l.api.ListScholarships(gctx, l.session.AccessToken())
		return err
	})
	g.Go(func() error {
		var err error
		applications, err = l.api.ListApplicationsForUser(gctx, l.session.AccessToken(), userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, l.session.HandleAuthError(ctx, err)
	}
	if err := ctx.Err(); err != nil {
		// The view this load was for is gone.
		return nil, err
	}

	applied := make(map[int64]struct{}, len(applications))
	for _, app := range applications {
		applied[app.ScholarshipID] = struct{}{}
	}
	available := make([]models.Scholarship, 0, len(scholarships))
	for _, s := range scholarships {
		if _, ok := applied[s.ID]; !ok {
			available = append(available, s)
		}
	}

	l.logger.Debug("applicant dashboard loaded", map[string]interface{}{
		"scholarships": len(scholarships),
		"applications": len(applications),
		"available":    len(available),
	})

	return &ApplicantView{
		Scholarships: scholarships,
		Applications: applications,
		Available:    available,
	}, nil
}

// LoadReviewer fetches the applications assigned to the reviewer.
func (l *Loader) LoadReviewer(ctx context.Context, reviewerID int64) ([]models.Application, error) {
	apps, err := l.api.ListApplicationsForReviewer(ctx, l.session.AccessToken(), reviewerID)
	if err != nil {
		return nil, l.session.HandleAuthError(ctx, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}

// LoadAdmin fetches every application for the assignment view.
func (l *Loader) LoadAdmin(ctx context.Context) ([]models.Application, error) {
	apps, err := l.api.ListAllApplications(ctx, l.session.AccessToken())
	if err != nil {
		return nil, l.session.HandleAuthError(ctx, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return apps, nil
}

// LoadScholarships fetches the scholarship catalog for the sponsor and
// steward views.
func (l *Loader) LoadScholarships(ctx context.Context) ([]models.Scholarship, error) {
	list, err := l.api.ListScholarships(ctx, l.session.AccessToken())
	if err != nil {
		return nil, l.session.HandleAuthError(ctx, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

package dashboard

import (
	"context"

	"scholarhub-client/internal/common/errors"
	"scholarhub-client/internal/models"
)

// Panel is the landing view for one role. Every role in the closed role set
// has exactly one panel implementation.
type Panel interface {
	Role() models.Role
	Title() string
	// Load fetches the panel's initial data for the given user.
	Load(ctx context.Context, user *models.User) (*View, error)
}

// View is the loaded panel content. Only the slices that make sense for the
// panel's role are populated.
type View struct {
	Scholarships []models.Scholarship
	Applications []models.Application
	Available    []models.Scholarship
}

// PanelFor dispatches on the role. An unknown role is an error, never a
// silent fallback to some default panel.
func PanelFor(role models.Role, loader *Loader) (Panel, error) {
	switch role {
	case models.RoleApplicant:
		return &applicantPanel{loader: loader}, nil
	case models.RoleReviewer:
		return &reviewerPanel{loader: loader}, nil
	case models.RoleSponsorDonor:
		return &sponsorPanel{loader: loader}, nil
	case models.RoleSteward:
		return &stewardPanel{loader: loader}, nil
	case models.RoleEngrAdmin:
		return &adminPanel{loader: loader}, nil
	default:
		return nil, errors.NewValidationError("Unknown dashboard role.", string(role))
	}
}

type applicantPanel struct{ loader *Loader }

func (p *applicantPanel) Role() models.Role { return models.RoleApplicant }
func (p *applicantPanel) Title() string     { return "My Scholarships" }

func (p *applicantPanel) Load(ctx context.Context, user *models.User) (*View, error) {
	v, err := p.loader.LoadApplicant(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &View{
		Scholarships: v.Scholarships,
		Applications: v.Applications,
		Available:    v.Available,
	}, nil
}

type reviewerPanel struct{ loader *Loader }

func (p *reviewerPanel) Role() models.Role { return models.RoleReviewer }
func (p *reviewerPanel) Title() string     { return "Assigned Applications" }

func (p *reviewerPanel) Load(ctx context.Context, user *models.User) (*View, error) {
	apps, err := p.loader.LoadReviewer(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &View{Applications: apps}, nil
}

type sponsorPanel struct{ loader *Loader }

func (p *sponsorPanel) Role() models.Role { return models.RoleSponsorDonor }
func (p *sponsorPanel) Title() string     { return "Sponsored Scholarships" }

func (p *sponsorPanel) Load(ctx context.Context, _ *models.User) (*View, error) {
	list, err := p.loader.LoadScholarships(ctx)
	if err != nil {
		return nil, err
	}
	return &View{Scholarships: list}, nil
}

type stewardPanel struct{ loader *Loader }

func (p *stewardPanel) Role() models.Role { return models.RoleSteward }
func (p *stewardPanel) Title() string     { return "Scholarship Stewardship" }

func (p *stewardPanel) Load(ctx context.Context, _ *models.User) (*View, error) {
	list, err := p.loader.LoadScholarships(ctx)
	if err != nil {
		return nil, err
	}
	return &View{Scholarships: list}, nil
}

type adminPanel struct{ loader *Loader }

func (p *adminPanel) Role() models.Role { return models.RoleEngrAdmin }
func (p *adminPanel) Title() string     { return "Application Management" }

func (p *adminPanel) Load(ctx context.Context, _ *models.User) (*View, error) {
	apps, err := p.loader.LoadAdmin(ctx)
	if err != nil {
		return nil, err
	}
	return &View{Applications: apps}, nil
}

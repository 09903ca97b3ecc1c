// Package qualification grades applicant profiles against scholarship
// requirements, client-side, for the reviewer and admin views.
package qualification

import (
	"context"
	"fmt"
	"strings"

	"scholarhub-client/internal/api"
	"scholarhub-client/internal/models"
)

// Status is the evaluator's verdict for one (profile, scholarship) pair.
type Status string

const (
	StatusQualified   Status = "qualified"
	StatusUnqualified Status = "unqualified"
	// StatusUnknown means a required comparison field is missing from the
	// profile. It is never collapsed into a pass or a fail.
	StatusUnknown Status = "unknown"
)

// Result carries the verdict plus human-readable notes explaining it.
type Result struct {
	Status Status   `json:"status"`
	Notes  []string `json:"notes"`
}

// Evaluate grades a profile against a scholarship's requirements. Any
// definite failure wins over missing data; a minor mismatch is annotated but
// never disqualifies on its own.
func Evaluate(profile *models.ApplicantProfile, scholarship *models.Scholarship) Result {
	var (
		notes       []string
		failed      bool
		indetermine bool
	)

	if scholarship.MinGPA != nil {
		switch {
		case profile == nil || profile.GPA == nil:
			indetermine = true
			notes = append(notes, fmt.Sprintf("GPA is not on file; a minimum of %.2f is required.", *scholarship.MinGPA))
		case *profile.GPA < *scholarship.MinGPA:
			failed = true
			notes = append(notes, fmt.Sprintf("GPA %.2f is below the required minimum of %.2f.", *profile.GPA, *scholarship.MinGPA))
		}
	}

	if scholarship.RequiredCitizenship != "" {
		switch {
		case profile == nil || profile.Citizenship == "":
			indetermine = true
			notes = append(notes, fmt.Sprintf("Citizenship is not on file; %s is required.", scholarship.RequiredCitizenship))
		case !strings.EqualFold(profile.Citizenship, scholarship.RequiredCitizenship):
			failed = true
			notes = append(notes, fmt.Sprintf("Citizenship %s does not meet the %s requirement.", profile.Citizenship, scholarship.RequiredCitizenship))
		}
	}

	if scholarship.RequiredMajor != "" {
		switch {
		case profile == nil || profile.DegreeMajor == "":
			indetermine = true
			notes = append(notes, fmt.Sprintf("Major is not on file; %s is required.", scholarship.RequiredMajor))
		case !strings.EqualFold(profile.DegreeMajor, scholarship.RequiredMajor):
			failed = true
			notes = append(notes, fmt.Sprintf("Major %s does not match the required %s.", profile.DegreeMajor, scholarship.RequiredMajor))
		}
	}

	// A minor mismatch only annotates. Absence of a minor is not flagged at
	// all: plenty of applicants simply have none.
	if scholarship.RequiredMinor != "" && profile != nil && profile.DegreeMinor != "" &&
		!strings.EqualFold(profile.DegreeMinor, scholarship.RequiredMinor) {
		notes = append(notes, fmt.Sprintf("Minor %s does not match the preferred %s.", profile.DegreeMinor, scholarship.RequiredMinor))
	}

	switch {
	case failed:
		return Result{Status: StatusUnqualified, Notes: notes}
	case indetermine:
		return Result{Status: StatusUnknown, Notes: notes}
	default:
		return Result{Status: StatusQualified, Notes: notes}
	}
}

// QualifiedCount counts the results whose status is exactly qualified.
// Unknown never contributes, in either direction.
func QualifiedCount(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Status == StatusQualified {
			n++
		}
	}
	return n
}

// Session supplies the bearer token for suitability fetches.
type Session interface {
	AccessToken() string
	HandleAuthError(ctx context.Context, err error) error
}

// API is the slice of the backend client the fetcher needs.
type API interface {
	GetSuitability(ctx context.Context, accessToken string, applicationID int64) (*api.SuitabilityResult, error)
}

// Fetcher retrieves the backend's own suitability judgement, used to
// cross-check the local evaluation in the reviewer view.
type Fetcher struct {
	api     API
	session Session
}

// NewFetcher creates a suitability fetcher.
func NewFetcher(apiClient API, sess Session) *Fetcher {
	return &Fetcher{api: apiClient, session: sess}
}

// FetchSuitability returns the backend's verdict as a Result.
func (f *Fetcher) FetchSuitability(ctx context.Context, applicationID int64) (Result, error) {
	res, err := f.api.GetSuitability(ctx, f.session.AccessToken(), applicationID)
	if err != nil {
		return Result{}, f.session.HandleAuthError(ctx, err)
	}
	return Result{Status: Status(res.Status), Notes: res.Notes}, nil
}

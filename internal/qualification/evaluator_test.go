package qualification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarhub-client/internal/api"
	"scholarhub-client/internal/common/errors"
	"scholarhub-client/internal/models"
)

func gpa(v float64) *float64 { return &v }

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name        string
		profile     *models.ApplicantProfile
		scholarship *models.Scholarship
		want        Status
		wantNotes   int
	}{
		{
			name:        "no requirements means qualified",
			profile:     &models.ApplicantProfile{},
			scholarship: &models.Scholarship{},
			want:        StatusQualified,
		},
		{
			name:        "gpa above minimum",
			profile:     &models.ApplicantProfile{GPA: gpa(3.2)},
			scholarship: &models.Scholarship{MinGPA: gpa(3.0)},
			want:        StatusQualified,
		},
		{
			name:        "gpa below minimum",
			profile:     &models.ApplicantProfile{GPA: gpa(2.8)},
			scholarship: &models.Scholarship{MinGPA: gpa(3.0)},
			want:        StatusUnqualified,
			wantNotes:   1,
		},
		{
			name:        "gpa missing is unknown not a fail",
			profile:     &models.ApplicantProfile{},
			scholarship: &models.Scholarship{MinGPA: gpa(3.0)},
			want:        StatusUnknown,
			wantNotes:   1,
		},
		{
			name:        "citizenship mismatch",
			profile:     &models.ApplicantProfile{Citizenship: "Canada"},
			scholarship: &models.Scholarship{RequiredCitizenship: "USA"},
			want:        StatusUnqualified,
			wantNotes:   1,
		},
		{
			name:        "citizenship missing is unknown",
			profile:     &models.ApplicantProfile{GPA: gpa(3.9)},
			scholarship: &models.Scholarship{MinGPA: gpa(3.0), RequiredCitizenship: "USA"},
			want:        StatusUnknown,
			wantNotes:   1,
		},
		{
			name:        "major mismatch",
			profile:     &models.ApplicantProfile{DegreeMajor: "History"},
			scholarship: &models.Scholarship{RequiredMajor: "Computer Science"},
			want:        StatusUnqualified,
			wantNotes:   1,
		},
		{
			name:        "major compared case-insensitively",
			profile:     &models.ApplicantProfile{DegreeMajor: "computer science"},
			scholarship: &models.Scholarship{RequiredMajor: "Computer Science"},
			want:        StatusQualified,
		},
		{
			name:        "minor mismatch annotates but does not disqualify",
			profile:     &models.ApplicantProfile{GPA: gpa(3.5), DegreeMinor: "Art"},
			scholarship: &models.Scholarship{MinGPA: gpa(3.0), RequiredMinor: "Mathematics"},
			want:        StatusQualified,
			wantNotes:   1,
		},
		{
			name:        "missing minor is not flagged",
			profile:     &models.ApplicantProfile{GPA: gpa(3.5)},
			scholarship: &models.Scholarship{MinGPA: gpa(3.0), RequiredMinor: "Mathematics"},
			want:        StatusQualified,
		},
		{
			name:        "definite failure wins over missing data",
			profile:     &models.ApplicantProfile{GPA: gpa(2.0)},
			scholarship: &models.Scholarship{MinGPA: gpa(3.0), RequiredCitizenship: "USA"},
			want:        StatusUnqualified,
			wantNotes:   2,
		},
		{
			name:        "nil profile with requirements is unknown",
			profile:     nil,
			scholarship: &models.Scholarship{MinGPA: gpa(3.0)},
			want:        StatusUnknown,
			wantNotes:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.profile, tt.scholarship)
			assert.Equal(t, tt.want, got.Status)
			assert.Len(t, got.Notes, tt.wantNotes)
		})
	}
}

func TestQualifiedCountCountsExactlyQualified(t *testing.T) {
	results := []Result{
		{Status: StatusQualified},
		{Status: StatusUnqualified},
		{Status: StatusQualified},
	}
	assert.Equal(t, 2, QualifiedCount(results))

	// Adding an unknown result never moves the count in either direction.
	withUnknown := append(results, Result{Status: StatusUnknown})
	assert.Equal(t, 2, QualifiedCount(withUnknown))

	assert.Equal(t, 0, QualifiedCount(nil))
}

type fakeSession struct {
	handledAuth int
}

func (f *fakeSession) AccessToken() string { return "token-1" }

func (f *fakeSession) HandleAuthError(_ context.Context, err error) error {
	if errors.IsAuth(err) {
		f.handledAuth++
	}
	return err
}

type fakeSuitabilityAPI struct {
	result *api.SuitabilityResult
	err    error
}

func (f *fakeSuitabilityAPI) GetSuitability(context.Context, string, int64) (*api.SuitabilityResult, error) {
	return f.result, f.err
}

func TestFetchSuitability(t *testing.T) {
	backend := &fakeSuitabilityAPI{
		result: &api.SuitabilityResult{Status: "unqualified", Notes: []string{"GPA below minimum"}},
	}
	fetcher := NewFetcher(backend, &fakeSession{})

	result, err := fetcher.FetchSuitability(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, StatusUnqualified, result.Status)
	assert.Equal(t, []string{"GPA below minimum"}, result.Notes)
}

func TestFetchSuitabilityRoutesAuthErrors(t *testing.T) {
	backend := &fakeSuitabilityAPI{err: errors.NewAuthError("Could not validate credentials", "")}
	sess := &fakeSession{}
	fetcher := NewFetcher(backend, sess)

	_, err := fetcher.FetchSuitability(context.Background(), 7)

	require.Error(t, err)
	assert.Equal(t, 1, sess.handledAuth)
}

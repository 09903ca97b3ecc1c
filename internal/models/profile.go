package models

import "time"

// ApplicantProfile is the applicant's academic record, consumed by the
// qualification evaluator. Citizenship lives here, not on the upsert payload.
type ApplicantProfile struct {
	ID                   int64     `json:"id"`
	UserID               int64     `json:"user_id"`
	StudentID            string    `json:"student_id"`
	NetID                string    `json:"netid"`
	DegreeMajor          string    `json:"degree_major"`
	DegreeMinor          string    `json:"degree_minor,omitempty"`
	GPA                  *float64  `json:"gpa,omitempty"`
	Citizenship          string    `json:"citizenship,omitempty"`
	AcademicAchievements string    `json:"academic_achievements,omitempty"`
	FinancialInformation string    `json:"financial_information,omitempty"`
	WrittenEssays        string    `json:"written_essays,omitempty"`
	CreatedAt            time.Time `json:"created_at,omitempty"`
	UpdatedAt            time.Time `json:"updated_at,omitempty"`
}

// ProfileInput is the onboarding/profile upsert payload.
type ProfileInput struct {
	FirstName            string   `json:"first_name,omitempty"`
	LastName             string   `json:"last_name,omitempty"`
	StudentID            string   `json:"student_id"`
	NetID                string   `json:"netid"`
	DegreeMajor          string   `json:"degree_major"`
	DegreeMinor          string   `json:"degree_minor,omitempty"`
	GPA                  *float64 `json:"gpa,omitempty"`
	AcademicAchievements string   `json:"academic_achievements,omitempty"`
	FinancialInformation string   `json:"financial_information,omitempty"`
	WrittenEssays        string   `json:"written_essays,omitempty"`
}

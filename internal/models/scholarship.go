package models

import "time"

// Scholarship is read-mostly from the client's perspective and doubles as the
// rule source for qualification evaluation.
type Scholarship struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Amount       int64  `json:"amount"`
	Deadline     string `json:"deadline"` // "YYYY-MM-DD"
	Requirements string `json:"requirements,omitempty"`

	MinGPA              *float64 `json:"min_gpa,omitempty"`
	RequiredCitizenship string   `json:"required_citizenship,omitempty"`
	RequiredMajor       string   `json:"required_major,omitempty"`
	RequiredMinor       string   `json:"required_minor,omitempty"`

	RequiresEssay      bool `json:"requires_essay"`
	RequiresTranscript bool `json:"requires_transcript"`
	RequiresQuestions  bool `json:"requires_questions"`

	// Optional JSON Schema for the supplemental questions. When present,
	// submitted answers are validated against it client-side.
	QuestionsSchema string `json:"questions_schema,omitempty"`
}

// DeadlinePassed reports whether the deadline is strictly before today.
// An unparsable deadline is treated as open; the backend stays authoritative.
func (s *Scholarship) DeadlinePassed(now time.Time) bool {
	d, err := time.Parse("2006-01-02", s.Deadline)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return d.Before(today)
}

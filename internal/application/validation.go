package application

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"scholarhub-client/internal/common/errors"
	"scholarhub-client/internal/models"
)

// CreateInput is the local submission request, validated before any network
// call leaves the client.
type CreateInput struct {
	UserID        int64
	ScholarshipID int64
	EssayText     string
	TranscriptURL string
	AnswersJSON   string
}

// validateSubmission rejects a submission locally when the target
// scholarship's required fields are missing or malformed.
func validateSubmission(input CreateInput, scholarship *models.Scholarship, now time.Time) error {
	if scholarship.DeadlinePassed(now) {
		return errors.NewValidationError("The scholarship deadline has passed.", scholarship.Deadline)
	}

	if scholarship.RequiresEssay && input.EssayText == "" {
		return errors.NewValidationError("This scholarship requires an essay.", "")
	}
	if scholarship.RequiresTranscript && input.TranscriptURL == "" {
		return errors.NewValidationError("This scholarship requires a transcript.", "")
	}
	if scholarship.RequiresQuestions {
		if input.AnswersJSON == "" {
			return errors.NewValidationError("This scholarship requires answers to its supplemental questions.", "")
		}
		if err := validateAnswers(input.AnswersJSON, scholarship.QuestionsSchema); err != nil {
			return err
		}
	}
	return nil
}

// validateAnswers checks that the answers payload is well-formed JSON and,
// when the scholarship publishes a question schema, that it conforms.
func validateAnswers(answersJSON, schema string) error {
	if !json.Valid([]byte(answersJSON)) {
		return errors.NewValidationError("Supplemental answers are not valid JSON.", "")
	}
	if schema == "" {
		return nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(answersJSON),
	)
	if err != nil {
		// A broken schema is the scholarship's problem, not the applicant's.
		return errors.NewValidationError("The scholarship's question schema could not be evaluated.", err.Error())
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return errors.NewValidationError(
			"Supplemental answers do not match the required questions.",
			fmt.Sprintf("%s: %s", first.Field(), first.Description()),
		)
	}
	return nil
}

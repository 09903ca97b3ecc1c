package session

import (
	"unicode"

	"scholarhub-client/internal/common/errors"
)

// ValidatePassword enforces the registration password policy client-side,
// before any network call: 8-20 characters with at least one uppercase
// letter, one digit, and one symbol.
func ValidatePassword(pwd string) error {
	if len(pwd) < 8 {
		return errors.NewValidationError("Password must be at least 8 characters.", "")
	}
	if len(pwd) > 20 {
		return errors.NewValidationError("Password must be at most 20 characters.", "")
	}

	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range pwd {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSymbol = true
		}
	}

	if !hasUpper {
		return errors.NewValidationError("Password must include at least one uppercase letter.", "")
	}
	if !hasDigit {
		return errors.NewValidationError("Password must include at least one number.", "")
	}
	if !hasSymbol {
		return errors.NewValidationError("Password must include at least one symbol.", "")
	}
	return nil
}

// ValidatePasswordConfirmation additionally requires the confirmation field
// to match, as on the registration form.
func ValidatePasswordConfirmation(pwd, confirm string) error {
	if err := ValidatePassword(pwd); err != nil {
		return err
	}
	if pwd != confirm {
		return errors.NewValidationError("Passwords do not match.", "")
	}
	return nil
}

// Package guard decides, per navigation, whether the current session is
// sufficient to render a requested view.
package guard

import "scholarhub-client/internal/models"

// OnboardingPath is the view an applicant must complete before anything else.
const OnboardingPath = "/applicant/onboarding"

// Verdict is the guard's decision kind.
type Verdict int

const (
	Allow Verdict = iota
	RedirectToLogin
	RedirectToOnboarding
)

func (v Verdict) String() string {
	switch v {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToOnboarding:
		return "redirect_to_onboarding"
	default:
		return "unknown"
	}
}

// Decision carries the verdict plus, on a login redirect, the originally
// requested path so the caller can return there after authenticating.
type Decision struct {
	Verdict Verdict
	// From is set on RedirectToLogin.
	From string
}

// Decide is a pure function of the current credentials, the onboarding flag
// they carry, and the requested path. It must be re-evaluated on every
// navigation; the inputs change between navigations and caching the verdict
// would let a stale one leak through.
func Decide(pair *models.TokenPair, path string) Decision {
	if pair.Empty() {
		return Decision{Verdict: RedirectToLogin, From: path}
	}
	if pair.NeedsProfileSetup && path != OnboardingPath {
		return Decision{Verdict: RedirectToOnboarding}
	}
	return Decision{Verdict: Allow}
}

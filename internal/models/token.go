package models

// TokenPair is the persisted credential pair. Created on successful login,
// destroyed on explicit logout or unrecoverable refresh failure. The
// profile-setup flag rides along so the route guard can force onboarding.
type TokenPair struct {
	AccessToken       string `json:"access_token"`
	RefreshToken      string `json:"refresh_token"`
	NeedsProfileSetup bool   `json:"needs_profile_setup,omitempty"`
}

// Empty reports whether the pair carries no usable credential.
func (p *TokenPair) Empty() bool {
	return p == nil || p.AccessToken == ""
}

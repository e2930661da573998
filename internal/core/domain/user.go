package domain

// User represents a registered traveller in the domain.
//
// RefreshTokens holds the exact string values of every refresh token that is
// currently valid for this user. A refresh token that verifies
// cryptographically but is missing from this set has already been consumed
// (or was forged) and must not be honoured.
type User struct {
	UserID         string `json:"userID"`
	Email          string `json:"email"` // stored lowercase, unique
	Username       string `json:"username"`
	PasswordHash   string `json:"-"`
	ProfilePicture string `json:"profilePicture,omitempty"`

	// AuthProvider is "local" for password accounts or the external
	// provider name (e.g. "google") for OAuth accounts.
	AuthProvider   string `json:"-"`
	ProviderUserID string `json:"-"`

	RefreshTokens []string `json:"-"`
	Timestamps
}

// GoogleUserInfo holds the subset of Google's userinfo payload the
// application cares about.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

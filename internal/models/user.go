package models

// User is the database representation of a user row.
// refresh_tokens is a TEXT[] column holding the user's currently-valid
// refresh tokens by value.
type User struct {
	UserID         string `db:"user_id"`
	Email          string `db:"email"`
	Username       string `db:"username"`
	PasswordHash   string `db:"password_hash"`
	ProfilePicture string `db:"profile_picture"`
	AuthProvider   string `db:"auth_provider"`
	ProviderUserID string `db:"provider_user_id"`

	RefreshTokens []string `db:"refresh_tokens"`
	Timestamps
}

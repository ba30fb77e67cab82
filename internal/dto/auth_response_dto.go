package dto

// LoginRequest carries the login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the access token and the authenticated user. The
// refresh token travels in an HTTP-only cookie, not in the body.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RefreshResponse returns a fresh access token.
type RefreshResponse struct {
	Token string `json:"token"`
}

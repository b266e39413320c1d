package auth

import "github.com/rmartell/inventra-backend/internal/users"

// RegisterInput carries signup fields. Role is always `user`; promotion
// happens through the admin surface afterwards.
type RegisterInput struct {
	Email    string
	Password string
	FullName *string
}

// LoginInput carries credential-check fields.
type LoginInput struct {
	Email    string
	Password string
}

// TokenPair is an access token plus the refresh token guarding its session.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	TokenPair
	User users.ProfileDTO `json:"user"`
}

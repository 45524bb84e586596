// Package api talks to the remote bookshelf backend: the mandatory
// authentication endpoints and the best-effort profile endpoint.
package api

import "context"

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for POST /auth/register. Note there is no
// admin-secret field here: that value never leaves the client.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Profile is the authoritative remote profile. Only the display name is
// consumed today; the rest of the payload is ignored.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type authResponse struct {
	Token string `json:"token"`
}

// Client is the remote collaborator surface the session manager depends on.
//
// Login and Register return the issued bearer token. Once SetAuthToken has
// been called, every subsequent request carries the token as a bearer
// credential until ClearAuthToken.
type Client interface {
	Login(ctx context.Context, req LoginRequest) (string, error)
	Register(ctx context.Context, req RegisterRequest) (string, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*Profile, error)
	SetAuthToken(token string)
	ClearAuthToken()
}

package identity

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims covers every claim name the backends are known to emit.
// The resolver applies its fallback chains over these fields; absent claims
// simply unmarshal to "".
type tokenClaims struct {
	jwt.RegisteredClaims
	ID                string `json:"id,omitempty"`
	UserID            string `json:"userId,omitempty"`
	Email             string `json:"email,omitempty"`
	Role              string `json:"role,omitempty"`
	Name              string `json:"name,omitempty"`
	Username          string `json:"username,omitempty"`
	FullName          string `json:"fullName,omitempty"`
	FirstName         string `json:"firstName,omitempty"`
	PreferredUsername string `json:"preferred_username,omitempty"`
}

// candidateID returns the raw identifier claim: "id", falling back to
// "userId". The value is not yet validated.
func (c *tokenClaims) candidateID() string {
	if c.ID != "" {
		return c.ID
	}
	return c.UserID
}

// email returns the subject claim, falling back to "email".
func (c *tokenClaims) email() string {
	if c.Subject != "" {
		return c.Subject
	}
	return c.Email
}

// role returns the role claim with a literal "ROLE_" prefix stripped,
// defaulting to "USER" when the claim is absent.
func (c *tokenClaims) role() string {
	if c.Role == "" {
		return "USER"
	}
	return strings.TrimPrefix(c.Role, "ROLE_")
}

// displayName probes the name-bearing claims in order of preference, then
// falls back to the local part of the email, then to the literal "User".
func (c *tokenClaims) displayName() string {
	for _, name := range []string{c.Name, c.Username, c.FullName, c.FirstName, c.PreferredUsername} {
		if name != "" {
			return name
		}
	}
	if email := c.email(); email != "" {
		local, _, _ := strings.Cut(email, "@")
		return local
	}
	return "User"
}

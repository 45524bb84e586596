package session

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/ykarpenko/bookshelf-cli/internal/model"
)

// LoginCredentials carries the values the login form collects.
type LoginCredentials struct {
	Email    string
	Password string
}

func (c LoginCredentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.Required),
	)
}

// RegisterCredentials carries the values the registration form collects.
//
// AdminSecret authorizes an ADMIN registration. It is consumed locally and
// stripped before transmission; it is never persisted or logged.
type RegisterCredentials struct {
	Name        string
	Email       string
	Password    string
	Role        string
	AdminSecret string
}

func (c RegisterCredentials) Validate() error {
	rules := []*validation.FieldRules{
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.Required),
		validation.Field(&c.Role, validation.In(model.RoleUser, model.RoleAdmin)),
	}
	if c.Role == model.RoleAdmin {
		rules = append(rules, validation.Field(&c.AdminSecret, validation.Required))
	}
	return validation.ValidateStruct(&c, rules...)
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ykarpenko/bookshelf-cli/internal/model"
	"github.com/ykarpenko/bookshelf-cli/internal/session"
)

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	defer wipeBytes(password)

	creds := session.RegisterCredentials{
		Name:     name,
		Email:    email,
		Password: string(password),
	}

	answer, err := GetSimpleText(a.reader, "Register as administrator? (y/N)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	if strings.EqualFold(answer, "y") {
		secret, err := GetPassword("Enter admin secret", a.out)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return err
		}
		defer wipeBytes(secret)

		creds.Role = model.RoleAdmin
		creds.AdminSecret = string(secret)
	}

	user, err := a.session.Register(ctx, creds)
	if err != nil {
		fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.Name)
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/ykarpenko/bookshelf-cli/internal/session"
)

func (a *App) Login(ctx context.Context) error {
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

	user, err := a.session.Login(ctx, session.LoginCredentials{
		Email:    email,
		Password: string(password),
	})
	if err != nil {
		fmt.Fprintf(a.out, "Login failed: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome back, %s!\n", user.Name)
	return nil
}

package cli

import (
	"context"
	"fmt"
)

func (a *App) WhoAmI(ctx context.Context) error {
	user := a.session.CurrentUser(ctx)
	if user == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}

	fmt.Fprintf(a.out, "Name:  %s\n", user.Name)
	fmt.Fprintf(a.out, "Email: %s\n", user.Email)
	fmt.Fprintf(a.out, "Role:  %s\n", user.Role)
	fmt.Fprintf(a.out, "ID:    %s\n", user.ID)
	return nil
}

func (a *App) Status(ctx context.Context) error {
	if a.session.IsAuthenticated(ctx) {
		fmt.Fprintln(a.out, "Authenticated.")
	} else {
		fmt.Fprintln(a.out, "Not authenticated.")
	}
	return nil
}

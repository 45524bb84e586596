package cli

import (
	"context"
	"fmt"
)

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out. Your reading progress is kept.")
	return nil
}

package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Progress records or shows reading positions:
//
//	progress                : list all recorded positions
//	progress <book>         : show the position for one book
//	progress <book> <page>  : record a position
func (a *App) Progress(ctx context.Context, args []string) error {
	user := a.session.CurrentUser(ctx)
	if user == nil {
		fmt.Fprintln(a.out, "Sign in first.")
		return nil
	}

	switch len(args) {
	case 0:
		all, err := a.progress.All(ctx, user.ID)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return err
		}
		if len(all) == 0 {
			fmt.Fprintln(a.out, "No reading progress recorded yet.")
			return nil
		}
		for book, page := range all {
			fmt.Fprintf(a.out, "%s: page %d\n", book, page)
		}

	case 1:
		page, ok, err := a.progress.Position(ctx, user.ID, args[0])
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return err
		}
		if !ok {
			fmt.Fprintf(a.out, "No progress recorded for %s.\n", args[0])
			return nil
		}
		fmt.Fprintf(a.out, "%s: page %d\n", args[0], page)

	case 2:
		page, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintln(a.out, "Usage: progress [book [page]]")
			return nil
		}
		if err := a.progress.Save(ctx, user.ID, args[0], page); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return err
		}
		fmt.Fprintf(a.out, "Saved: %s at page %d\n", args[0], page)

	default:
		fmt.Fprintln(a.out, "Usage: progress [book [page]]")
	}
	return nil
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ykarpenko/bookshelf-cli/internal/api"
	"github.com/ykarpenko/bookshelf-cli/internal/config"
	"github.com/ykarpenko/bookshelf-cli/internal/identity"
	"github.com/ykarpenko/bookshelf-cli/internal/logging"
	"github.com/ykarpenko/bookshelf-cli/internal/progress"
	"github.com/ykarpenko/bookshelf-cli/internal/session"
	"github.com/ykarpenko/bookshelf-cli/internal/store"

	_ "modernc.org/sqlite"
)

// App holds the assembled component graph behind the REPL.
type App struct {
	config   *config.Config
	session  *session.Manager
	progress *progress.Tracker
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp wires the component graph in dependency order: database, token
// store, identity resolver (running the legacy-id migration exactly once,
// before any UI action), API client, session manager, progress tracker.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.NewDiscardLogger()
	}

	ctx := context.Background()

	db, err := store.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}

	tokenStore := store.NewTokenStore(db, log)

	resolver := identity.NewResolver(tokenStore, log)
	resolver.MigrateLegacyID(ctx)

	apiClient := api.NewHTTPClient(c.ServerURL, c.RequestTimeout)

	// a token that survived a restart keeps authorizing outbound requests
	if token, err := tokenStore.Token(ctx); err == nil && token != "" {
		apiClient.SetAuthToken(token)
	}

	return &App{
		config:   c,
		session:  session.NewManager(apiClient, tokenStore, resolver, log),
		progress: progress.NewTracker(store.NewSQLiteRepository(db), log),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.session.IsAuthenticated(ctx)
}

// statusLine feeds the REPL prompt.
func (a *App) statusLine() string {
	user := a.session.CurrentUser(context.Background())
	if user == nil {
		return "anonymous"
	}
	return user.Email
}

// Run starts the interactive loop and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Bookshelf CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.statusLine, scanner)
}

// Package cli provides the interactive bookshelf command-line client.
//
// It wires configuration, the local session store, the identity resolver,
// and the remote API client into a session manager, then drives it from an
// interactive REPL. The legacy-id migration runs once during wiring, before
// any command can execute.
//
// Commands:
//   - register / login / logout: session lifecycle
//   - whoami                   : show the signed-in user
//   - status                   : show authentication state
//   - progress                 : record or show reading positions
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

package session

import "errors"

// ErrAuthFailed covers a rejected credential or a transport failure on a
// mandatory auth call. Best-effort calls (profile fetch, logout notification)
// never produce it.
var ErrAuthFailed = errors.New("authentication failed")

package divera

import "errors"

var (
	// ErrAuth means the remote rejected the access key. Not retried
	// automatically; the account-context needs re-authentication.
	ErrAuth = errors.New("divera: authentication failed")

	// ErrConnection covers every other transport failure (timeout, DNS,
	// 5xx, malformed response). The next scheduled refresh retries.
	ErrConnection = errors.New("divera: connection failed")
)

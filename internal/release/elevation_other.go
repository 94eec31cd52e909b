//go:build !windows

package release

// IsElevated reports whether the process runs with elevated privileges.
// Off Windows this is only exercised by tests, where per-user is the
// right answer.
func IsElevated() bool {
	return false
}

//go:build !ci

package mapz

const debugAssertionsEnabled = false

// debugAssertf is a no-op in non-CI builds.
func debugAssertf(condition func() bool, format string, args ...any) {}

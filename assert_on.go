//go:build ci

package mapz

import "fmt"

const debugAssertionsEnabled = true

// debugAssertf panics if the condition is false in CI builds.
func debugAssertf(condition func() bool, format string, args ...any) {
	if !condition() {
		panic(fmt.Sprintf(format, args...))
	}
}

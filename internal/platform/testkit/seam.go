package testkit

import "testing"

// held by tests that replace process wide state: the global logger, pool openers, the module registry
var seam = make(chan struct{}, 1)

// Swap sets *target to v until the test ends
func Swap[T any](t *testing.T, target *T, v T) {
	t.Helper()
	prev := *target
	*target = v
	t.Cleanup(func() { *target = prev })
}

// Serial blocks until no other Serial test is running and holds the seam until t ends
func Serial(t *testing.T) {
	t.Helper()
	seam <- struct{}{}
	t.Cleanup(func() { <-seam })
}

package testsupport

import (
	"testing"

	"filmstrip/internal/config"
	"filmstrip/internal/renderlog"
)

// MustOpenRenderLog opens a render history store rooted in the test config
// and closes it when the test ends.
func MustOpenRenderLog(t testing.TB, cfg *config.Config) *renderlog.Store {
	t.Helper()
	store, err := renderlog.Open(cfg)
	if err != nil {
		t.Fatalf("open render log: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

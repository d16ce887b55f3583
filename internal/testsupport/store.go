package testsupport

import (
	"context"
	"testing"

	"storyshort/internal/composition"
	"storyshort/internal/config"
	"storyshort/internal/library"
)

// MustOpenLibrary opens a library.Store for tests and registers cleanup.
func MustOpenLibrary(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SaveComposition builds and stores a composition for tests.
func SaveComposition(t testing.TB, store *library.Store, script, audioRef string) *composition.Composition {
	t.Helper()

	comp := composition.New(composition.Input{
		Script:          script,
		AudioRef:        audioRef,
		Assets:          composition.AssetPair{ImageRef: "/assets/1.jpg"},
		FPS:             30,
		FallbackSeconds: 10,
	})
	if err := store.Save(context.Background(), comp); err != nil {
		t.Fatalf("store.Save: %v", err)
	}
	return comp
}

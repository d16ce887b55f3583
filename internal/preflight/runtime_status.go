package preflight

import (
	"context"
	"fmt"
	"os"
	"strings"

	"storyshort/internal/config"
	"storyshort/internal/fileutil"
	"storyshort/internal/library"
)

// CheckAssetsFromConfig verifies that every configured background asset is
// present in the assets directory. Remote references are not fetched.
func CheckAssetsFromConfig(cfg *config.Config) Result {
	const name = "Background assets"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	refs := append(append([]string(nil), cfg.Assets.Images...), cfg.Assets.Videos...)
	if len(refs) == 0 {
		return Result{Name: name, Detail: "No assets configured"}
	}

	var missing []string
	for _, ref := range refs {
		path, err := fileutil.ResolveWithin(cfg.Paths.AssetsDir, ref)
		if err != nil {
			missing = append(missing, ref)
			continue
		}
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			missing = append(missing, ref)
		}
	}
	if len(missing) > 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%d of %d missing: %s", len(missing), len(refs), strings.Join(missing, ", "))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d assets available", len(refs))}
}

// CheckLibrary opens the history database and reports how many compositions
// it holds.
func CheckLibrary(ctx context.Context, cfg *config.Config) Result {
	const name = "Composition library"

	store, err := library.Open(cfg)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	defer store.Close()

	count, err := store.Count(ctx)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d compositions)", store.Path(), count)}
}

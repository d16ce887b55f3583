// Package assets picks background media for a composition from configured
// candidate lists.
package assets

import (
	"math/rand/v2"
	"strings"
	"sync"

	"storyshort/internal/composition"
)

// Chooser picks one reference from candidates. It returns "" for an empty list.
type Chooser func(candidates []string) string

// NewChooser returns a Chooser driven by a seeded PCG source. The same seed
// always yields the same sequence of picks. The Chooser is safe for
// concurrent use.
func NewChooser(seed uint64) Chooser {
	var mu sync.Mutex
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return func(candidates []string) string {
		mu.Lock()
		defer mu.Unlock()
		return Choose(candidates, rng)
	}
}

// Choose picks a non-blank candidate using rng.
func Choose(candidates []string, rng *rand.Rand) string {
	usable := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			usable = append(usable, trimmed)
		}
	}
	if len(usable) == 0 {
		return ""
	}
	return usable[rng.IntN(len(usable))]
}

// Pick selects one image and one video. The composition later applies video
// precedence to the pair.
func Pick(images, videos []string, choose Chooser) composition.AssetPair {
	return composition.AssetPair{
		ImageRef: choose(images),
		VideoRef: choose(videos),
	}
}

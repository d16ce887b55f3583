package assets

import (
	"math/rand/v2"
	"sync"
	"testing"
)

func TestChooseIsDeterministicForSeed(t *testing.T) {
	candidates := []string{"/assets/v1.mp4", "/assets/v2.mp4", "/assets/v3.mp4"}
	a := NewChooser(42)
	b := NewChooser(42)
	for i := 0; i < 10; i++ {
		if x, y := a(candidates), b(candidates); x != y {
			t.Fatalf("pick %d differs: %q vs %q", i, x, y)
		}
	}
}

func TestChooserConcurrentPicks(t *testing.T) {
	candidates := []string{"/assets/v1.mp4", "/assets/v2.mp4", "/assets/v3.mp4"}
	valid := map[string]bool{}
	for _, c := range candidates {
		valid[c] = true
	}
	choose := NewChooser(7)

	var wg sync.WaitGroup
	picks := make(chan string, 8*50)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				picks <- choose(candidates)
			}
		}()
	}
	wg.Wait()
	close(picks)

	count := 0
	for pick := range picks {
		count++
		if !valid[pick] {
			t.Fatalf("unexpected pick %q", pick)
		}
	}
	if count != 400 {
		t.Fatalf("expected 400 picks, got %d", count)
	}
}

func TestChooseSkipsBlankCandidates(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20; i++ {
		if got := Choose([]string{"", "  ", "/assets/1.jpg"}, rng); got != "/assets/1.jpg" {
			t.Fatalf("unexpected pick %q", got)
		}
	}
	if got := Choose(nil, rng); got != "" {
		t.Fatalf("expected empty pick, got %q", got)
	}
}

func TestPick(t *testing.T) {
	first := func(c []string) string {
		if len(c) == 0 {
			return ""
		}
		return c[0]
	}
	pair := Pick([]string{"/assets/1.jpg"}, nil, first)
	if pair.ImageRef != "/assets/1.jpg" || pair.VideoRef != "" {
		t.Fatalf("unexpected pair: %+v", pair)
	}
}

package installer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestPercentThreeDependencies(t *testing.T) {
	assert.Equal(t, 20, Percent(0, 3))
	assert.Equal(t, 46, Percent(1, 3))
	assert.Equal(t, 73, Percent(2, 3))
	assert.Equal(t, 100, Percent(3, 3))
	assert.Equal(t, []int{0, 20, 46, 73, 100}, Milestones(3))
}

func TestPercentClamps(t *testing.T) {
	assert.Equal(t, 100, Percent(0, 0))
	assert.Equal(t, 20, Percent(-1, 4))
	assert.Equal(t, 100, Percent(9, 4))
}

func TestPercentProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 500).Draw(t, "n")
		milestones := Milestones(n)
		if len(milestones) != n+2 {
			t.Fatalf("got %d milestones for n=%d", len(milestones), n)
		}
		if milestones[1] != RefreshPercent || milestones[len(milestones)-1] != DonePercent {
			t.Fatalf("bad endpoints %v", milestones)
		}
		for i := 1; i < len(milestones); i++ {
			if milestones[i] < milestones[i-1] {
				t.Fatalf("not monotonic at %d: %v", i, milestones)
			}
		}
		i := rapid.IntRange(0, n).Draw(t, "i")
		if want := 20 + i*80/n; Percent(i, n) != want {
			t.Fatalf("Percent(%d, %d) = %d, want %d", i, n, Percent(i, n), want)
		}
	})
}

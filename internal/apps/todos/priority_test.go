package todos

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	t.Run("weighted formula over the full domain", func(t *testing.T) {
		for importance := 1; importance <= 4; importance++ {
			for urgency := 1; urgency <= 4; urgency++ {
				want := float64(importance)*0.6 + float64(urgency)*0.4
				got := Score(importance, urgency)
				assert.InDelta(t, want, got, 1e-9, "importance=%d urgency=%d", importance, urgency)
			}
		}
	})

	t.Run("known values", func(t *testing.T) {
		assert.InDelta(t, 4.0, Score(4, 4), 1e-9)
		assert.InDelta(t, 2.6, Score(3, 2), 1e-9)
		assert.InDelta(t, 2.4, Score(2, 3), 1e-9)
		assert.InDelta(t, 1.0, Score(1, 1), 1e-9)
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Score(3, 2), Score(3, 2))
	})
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Low", Label(1))
	assert.Equal(t, "Medium", Label(2))
	assert.Equal(t, "High", Label(3))
	assert.Equal(t, "Critical", Label(4))

	t.Run("out of range falls back to Medium", func(t *testing.T) {
		assert.Equal(t, "Medium", Label(0))
		assert.Equal(t, "Medium", Label(5))
		assert.Equal(t, "Medium", Label(-1))
	})
}

func TestIcon(t *testing.T) {
	for level := 1; level <= 4; level++ {
		icon := Icon(level)
		assert.True(t, strings.HasPrefix(icon, "<svg"), "level %d icon should be inline SVG", level)
	}

	t.Run("level colors", func(t *testing.T) {
		assert.Contains(t, Icon(2), "#FF7811")
		assert.Contains(t, Icon(3), "#F44336")
	})

	t.Run("out of range falls back to the Medium icon", func(t *testing.T) {
		assert.Equal(t, Icon(2), Icon(0))
		assert.Equal(t, Icon(2), Icon(5))
	})

	t.Run("levels are visually distinct", func(t *testing.T) {
		seen := map[string]int{}
		for level := 1; level <= 4; level++ {
			icon := Icon(level)
			if prev, ok := seen[icon]; ok {
				t.Fatalf("levels %d and %d share an icon", prev, level)
			}
			seen[icon] = level
		}
	})
}

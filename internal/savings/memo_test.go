package savings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoRoundTrip(t *testing.T) {
	for _, p := range []string{"my-post", "re-alice-2024", "a", "post-with-123-numbers", "x:y"} {
		got, ok := ParsePermlinkFromMemo(BuildMemo(p))
		assert.True(t, ok, p)
		assert.Equal(t, p, got)
	}
	assert.Equal(t, "auto-save:my-post", BuildMemo("my-post"))
}

func TestParsePermlinkFromMemo_Rejects(t *testing.T) {
	for _, memo := range []string{"", "auto-save:", "thanks!", "Auto-Save:my-post", " auto-save:my-post"} {
		_, ok := ParsePermlinkFromMemo(memo)
		assert.False(t, ok, memo)
	}
}

//go:build unit

package ptr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOf(t *testing.T) {
	p := Of("question")
	assert.Equal(t, "question", *p)
}

func TestTimeOrNil(t *testing.T) {
	assert.Nil(t, TimeOrNil(time.Time{}))

	now := time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC)
	got := TimeOrNil(now)
	if assert.NotNil(t, got) {
		assert.True(t, now.Equal(*got))
	}
}

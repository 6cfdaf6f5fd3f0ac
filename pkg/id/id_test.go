package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("new a random id", func(t *testing.T) {
		str := New()
		assert.Len(t, str, DefaultSize)
		assert.NotEqual(t, str, New())
	})

	t.Run("new id with size", func(t *testing.T) {
		str, err := NewSize(32)
		assert.NoError(t, err)
		assert.Len(t, str, 32)
	})

	t.Run("invalid size", func(t *testing.T) {
		_, err := NewSize(-1)
		assert.Error(t, err)
	})
}

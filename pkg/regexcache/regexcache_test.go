package regexcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_CachesCompiledPattern(t *testing.T) {
	first, err := Get(`^trip-[0-9]+$`)
	require.NoError(t, err)
	second, err := Get(`^trip-[0-9]+$`)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.True(t, first.MatchString("trip-42"))
}

func TestGet_InvalidPattern(t *testing.T) {
	_, err := Get(`[unclosed`)
	assert.Error(t, err)
}

func TestMustGet_PanicsOnInvalidPattern(t *testing.T) {
	assert.Panics(t, func() { MustGet(`[unclosed`) })
	assert.NotPanics(t, func() { MustGet(`^ok$`) })
}

func TestGet_ConcurrentAccess(t *testing.T) {
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				re, err := Get(`concurrent-[a-z]+`)
				assert.NoError(t, err)
				assert.NotNil(t, re)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}

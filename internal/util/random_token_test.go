package util

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomHex(t *testing.T) {
	hexPattern := regexp.MustCompile(`^[0-9a-f]+$`)

	for _, length := range []int{1, 7, 8, 32} {
		value, err := RandomHex(length)
		require.NoError(t, err)
		assert.Len(t, value, length)
		assert.Regexp(t, hexPattern, value)
	}
}

func TestRandomHex_Distinct(t *testing.T) {
	first, err := RandomHex(8)
	require.NoError(t, err)
	second, err := RandomHex(8)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

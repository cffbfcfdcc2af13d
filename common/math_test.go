package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerp(t *testing.T) {
	assert.Equal(t, 2.0, Lerp(2, 4, 0))
	assert.Equal(t, 3.0, Lerp(2, 4, 0.5))
	assert.Equal(t, 4.0, Lerp(2, 4, 1))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.1, Clamp(0.05, 0.1, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0.1, 1))
	assert.Equal(t, 1.0, Clamp(3, 0.1, 1))
}

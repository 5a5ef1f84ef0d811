package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestCoerce(t *testing.T) {
	assert.Equal(t, 5, Coerce(5, 0, 10))
	assert.Equal(t, 0, Coerce(-3, 0, 10))
	assert.Equal(t, 10, Coerce(12, 0, 10))
	assert.Equal(t, 4095.0, Coerce(5000.0, 0.0, 4095.0))
}

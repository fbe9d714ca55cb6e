package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	assert.NoError(t, Init("debug", "console"))
	assert.NoError(t, Init("info", "json"))
	assert.Error(t, Init("loud", "json"))
	assert.Error(t, Init("info", "xml"))
}

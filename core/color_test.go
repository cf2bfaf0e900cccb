package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBHex(t *testing.T) {
	assert.Equal(t, "#282d34", RGB{R: 40, G: 45, B: 52}.Hex())
	assert.Equal(t, "#00ff00", RGBGreen.Hex())
}

func TestHandleCrashIgnoresNil(t *testing.T) {
	called := false
	SetCrashReset(func() { called = true })
	t.Cleanup(func() { SetCrashReset(nil) })

	HandleCrash(nil)
	assert.False(t, called, "nil recover value is not a crash")
}

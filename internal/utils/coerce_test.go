package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToBool_CheckboxForms(t *testing.T) {
	assert.True(t, ToBool("on", false))
	assert.True(t, ToBool("checked", false))
	assert.True(t, ToBool("TRUE", false))
	assert.True(t, ToBool("1", false))
	assert.True(t, ToBool(true, false))
	assert.True(t, ToBool(1.0, false))

	assert.False(t, ToBool("off", true))
	assert.False(t, ToBool("false", true))
	assert.False(t, ToBool("", true))
	assert.False(t, ToBool(0.0, true))
}

func TestToBool_UnknownFallsBackToDefault(t *testing.T) {
	assert.True(t, ToBool("maybe", true))
	assert.False(t, ToBool(nil, false))
	assert.True(t, ToBool([]string{"x"}, true))
}

func TestToInt_CoercionAndClamping(t *testing.T) {
	assert.Equal(t, 42, ToInt(42.0, 0, 0, 100))
	assert.Equal(t, 42, ToInt("42", 0, 0, 100))
	assert.Equal(t, 100, ToInt(150.0, 0, 0, 100))
	assert.Equal(t, 0, ToInt(-5.0, 0, 0, 100))
	assert.Equal(t, 7, ToInt("garbage", 7, 0, 100))
	assert.Equal(t, 7, ToInt(nil, 7, 0, 100))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "x", ToString("x", "d"))
	assert.Equal(t, "d", ToString(nil, "d"))
	assert.Equal(t, "d", ToString(3.0, "d"))
}

package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("America/Bogota"))
	assert.True(t, IsValid("UTC"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Marte/Olympus"))
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "America/Mexico_City", Location("America/Mexico_City").String())

	// Zona inválida cae al default.
	assert.Equal(t, DefaultTimezone, Location("no-existe").String())
	assert.Equal(t, DefaultTimezone, Location("").String())
}

package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessError(t *testing.T) {
	t.Run("el código es el mensaje", func(t *testing.T) {
		err := ValidationErr("invalid_status")
		assert.Equal(t, "invalid_status", err.Error())
	})

	t.Run("IsBusiness compara por código", func(t *testing.T) {
		err := ConflictErr("appointment_already_invoiced")
		assert.True(t, IsBusiness(err, "appointment_already_invoiced"))
		assert.False(t, IsBusiness(err, "otro_codigo"))
		assert.False(t, IsBusiness(errors.New("plain"), "appointment_already_invoiced"))
	})

	t.Run("KindOf distingue las clases", func(t *testing.T) {
		cases := map[Kind]error{
			KindNotFound:   NotFoundErr("x"),
			KindValidation: ValidationErr("x"),
			KindConflict:   ConflictErr("x"),
		}
		for want, err := range cases {
			kind, ok := KindOf(err)
			require.True(t, ok)
			assert.Equal(t, want, kind)
		}

		_, ok := KindOf(errors.New("plain"))
		assert.False(t, ok)
	})

	t.Run("sobrevive el wrapping", func(t *testing.T) {
		err := fmt.Errorf("contexto: %w", NotFoundErr("client_not_found"))
		assert.True(t, IsBusiness(err, "client_not_found"))
	})
}

package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servicollantas/workshop-api/internal/httperr"
)

func TestParseStatus(t *testing.T) {
	t.Run("acepta los cuatro estados", func(t *testing.T) {
		for _, raw := range []string{"pending", "confirmed", "completed", "cancelled"} {
			s, err := ParseStatus(raw)
			require.NoError(t, err)
			assert.Equal(t, Status(raw), s)
		}
	})

	t.Run("rechaza valores desconocidos", func(t *testing.T) {
		for _, raw := range []string{"", "done", "PENDING", "in_progress"} {
			_, err := ParseStatus(raw)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, "invalid_status"))
		}
	})
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus())
}

func TestCanInvoice(t *testing.T) {
	assert.NoError(t, CanInvoice(StatusCompleted))

	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCancelled} {
		err := CanInvoice(s)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "appointment_not_completed"))
	}
}

func TestCanRequestRating(t *testing.T) {
	assert.NoError(t, CanRequestRating(StatusCompleted))

	err := CanRequestRating(StatusPending)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_completed"))
}

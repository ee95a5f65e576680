package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servicollantas/workshop-api/internal/httperr"
)

func strptr(s string) *string { return &s }

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("actualiza estado y notas", func(t *testing.T) {
		repo := newMockRepo()
		ap := repo.seedAppointment("pending")

		uc := NewUpdateStatus(repo, nil)

		out, err := uc.Execute(ctx, ap.ID, UpdateStatusInput{
			Status: strptr("completed"),
			Notes:  strptr("cambio de llantas delanteras"),
		})
		require.NoError(t, err)

		assert.Equal(t, "completed", out.Status)
		assert.Equal(t, "cambio de llantas delanteras", out.Notes)
	})

	t.Run("permite cualquier transición", func(t *testing.T) {
		repo := newMockRepo()
		ap := repo.seedAppointment("cancelled")

		uc := NewUpdateStatus(repo, nil)

		out, err := uc.Execute(ctx, ap.ID, UpdateStatusInput{Status: strptr("completed")})
		require.NoError(t, err)
		assert.Equal(t, "completed", out.Status)
	})

	t.Run("solo notas no toca el estado", func(t *testing.T) {
		repo := newMockRepo()
		ap := repo.seedAppointment("confirmed")

		uc := NewUpdateStatus(repo, nil)

		out, err := uc.Execute(ctx, ap.ID, UpdateStatusInput{Notes: strptr("cliente avisado")})
		require.NoError(t, err)
		assert.Equal(t, "confirmed", out.Status)
	})

	t.Run("sin campos falla", func(t *testing.T) {
		repo := newMockRepo()
		ap := repo.seedAppointment("pending")

		uc := NewUpdateStatus(repo, nil)

		_, err := uc.Execute(ctx, ap.ID, UpdateStatusInput{})
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "no_fields_to_update"))
	})

	t.Run("estado desconocido falla", func(t *testing.T) {
		repo := newMockRepo()
		ap := repo.seedAppointment("pending")

		uc := NewUpdateStatus(repo, nil)

		_, err := uc.Execute(ctx, ap.ID, UpdateStatusInput{Status: strptr("done")})
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "invalid_status"))
	})

	t.Run("cita inexistente falla", func(t *testing.T) {
		repo := newMockRepo()
		uc := NewUpdateStatus(repo, nil)

		_, err := uc.Execute(ctx, 9999, UpdateStatusInput{Status: strptr("completed")})
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	})
}

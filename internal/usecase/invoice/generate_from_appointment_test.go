package invoice

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/servicollantas/workshop-api/internal/domain/appointment"
	"github.com/servicollantas/workshop-api/internal/httperr"
	"github.com/servicollantas/workshop-api/internal/models"
)

// mockRepo cubre solo las rutas que toca la generación de facturas.
type mockRepo struct {
	appointments map[uint]*models.Appointment
	invoices     []*models.Invoice
}

var _ domain.Repository = (*mockRepo)(nil)

func newMockRepo() *mockRepo {
	return &mockRepo{appointments: map[uint]*models.Appointment{}}
}

func (m *mockRepo) GetAppointmentDetailed(_ context.Context, id uint) (*models.Appointment, error) {
	if ap, ok := m.appointments[id]; ok {
		return ap, nil
	}
	return nil, httperr.NotFoundErr("appointment_not_found")
}

func (m *mockRepo) CreateInvoiceForAppointment(_ context.Context, inv *models.Invoice, appointmentID uint) error {
	ap, ok := m.appointments[appointmentID]
	if !ok {
		return httperr.NotFoundErr("appointment_not_found")
	}
	if ap.InvoiceID != nil {
		return httperr.ConflictErr("appointment_already_invoiced")
	}
	inv.ID = uint(len(m.invoices) + 1)
	m.invoices = append(m.invoices, inv)
	ap.InvoiceID = &inv.ID
	return nil
}

// El resto de la interfaz no participa en este flujo.

func (m *mockRepo) FindClientByID(context.Context, uint) (*models.Client, error) {
	return nil, httperr.NotFoundErr("client_not_found")
}
func (m *mockRepo) FindClientByEmail(context.Context, string) (*models.Client, error) {
	return nil, httperr.NotFoundErr("client_not_found")
}
func (m *mockRepo) CreateClient(context.Context, *models.Client) error { return nil }
func (m *mockRepo) GetVehicle(context.Context, uint) (*models.Vehicle, error) {
	return nil, httperr.NotFoundErr("vehicle_not_found")
}
func (m *mockRepo) GetService(context.Context, uint) (*models.Service, error) {
	return nil, httperr.NotFoundErr("service_not_found")
}
func (m *mockRepo) GetMechanic(context.Context, uint) (*models.User, error) {
	return nil, httperr.ValidationErr("invalid_mechanic")
}
func (m *mockRepo) CreateAppointment(context.Context, *models.Appointment) error { return nil }
func (m *mockRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	return m.GetAppointmentDetailed(ctx, id)
}
func (m *mockRepo) ListAppointments(context.Context) ([]models.Appointment, error) {
	return nil, nil
}
func (m *mockRepo) UpdateAppointment(context.Context, *models.Appointment) error { return nil }
func (m *mockRepo) DeleteAppointment(context.Context, uint) error                { return nil }
func (m *mockRepo) HasRatingForAppointment(context.Context, uint) (bool, error)  { return false, nil }
func (m *mockRepo) CreateRatingToken(context.Context, *models.RatingToken) error { return nil }
func (m *mockRepo) FindActiveRatingToken(context.Context, string, time.Time) (*models.RatingToken, error) {
	return nil, httperr.NotFoundErr("token_invalid_or_expired")
}
func (m *mockRepo) SaveRatingConsumingToken(context.Context, *models.Rating, uint) error { return nil }
func (m *mockRepo) DeleteExpiredRatingTokens(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func seedCompleted(m *mockRepo) *models.Appointment {
	serviceID := uint(7)
	ap := &models.Appointment{
		ID:        1,
		Client:    models.Client{ID: 3, Name: "Ana", Email: "ana@example.com"},
		Vehicle:   models.Vehicle{ID: 4, Make: "Toyota", Model: "Hilux", LicensePlate: "ABC123"},
		ServiceID: &serviceID,
		Service:   &models.Service{ID: serviceID, Name: "Alineación", Price: 120000},
		Status:    string(domain.StatusCompleted),
		Date:      "2026-09-15",
		Time:      "10:00",
	}
	m.appointments[ap.ID] = ap
	return ap
}

func fixedNow() time.Time {
	return time.Date(2026, 9, 20, 12, 0, 0, 0, time.UTC)
}

func TestGenerateFromAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("genera la factura con snapshot del servicio", func(t *testing.T) {
		repo := newMockRepo()
		ap := seedCompleted(repo)

		uc := NewGenerateFromAppointment(repo, nil, fixedNow)

		inv, err := uc.Execute(ctx, ap.ID)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(inv.Number, "INV-"))
		assert.Equal(t, "Ana", inv.ClientName)
		assert.Equal(t, "Toyota Hilux (ABC123)", inv.VehicleInfo)
		require.Len(t, inv.Services, 1)
		assert.Equal(t, "Alineación", inv.Services[0].Name)
		assert.Equal(t, 120000.0, inv.Total)
		assert.Equal(t, models.InvoiceStatusPaid, inv.Status)
		assert.Equal(t, fixedNow(), inv.Date)

		// La cita quedó enlazada a la factura.
		require.NotNil(t, ap.InvoiceID)
		assert.Equal(t, inv.ID, *ap.InvoiceID)
	})

	t.Run("cambios posteriores de precio no alteran la factura", func(t *testing.T) {
		repo := newMockRepo()
		ap := seedCompleted(repo)

		uc := NewGenerateFromAppointment(repo, nil, fixedNow)

		inv, err := uc.Execute(ctx, ap.ID)
		require.NoError(t, err)

		ap.Service.Price = 999999
		assert.Equal(t, 120000.0, inv.Services[0].Price)
		assert.Equal(t, 120000.0, inv.Total)
	})

	t.Run("cita no completada falla", func(t *testing.T) {
		repo := newMockRepo()
		ap := seedCompleted(repo)
		ap.Status = string(domain.StatusConfirmed)

		uc := NewGenerateFromAppointment(repo, nil, fixedNow)

		_, err := uc.Execute(ctx, ap.ID)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "appointment_not_completed"))
	})

	t.Run("segunda factura sobre la misma cita es conflicto", func(t *testing.T) {
		repo := newMockRepo()
		ap := seedCompleted(repo)

		uc := NewGenerateFromAppointment(repo, nil, fixedNow)

		_, err := uc.Execute(ctx, ap.ID)
		require.NoError(t, err)

		_, err = uc.Execute(ctx, ap.ID)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "appointment_already_invoiced"))

		kind, ok := httperr.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, httperr.KindConflict, kind)
	})

	t.Run("cita sin servicio falla", func(t *testing.T) {
		repo := newMockRepo()
		ap := seedCompleted(repo)
		ap.ServiceID = nil
		ap.Service = nil

		uc := NewGenerateFromAppointment(repo, nil, fixedNow)

		_, err := uc.Execute(ctx, ap.ID)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "appointment_has_no_service"))
	})

	t.Run("cita inexistente falla", func(t *testing.T) {
		repo := newMockRepo()
		uc := NewGenerateFromAppointment(repo, nil, fixedNow)

		_, err := uc.Execute(ctx, 9999)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	})
}

func TestNewNumber(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n := NewNumber()
		assert.Len(t, n, 12)
		assert.True(t, strings.HasPrefix(n, "INV-"))
		assert.False(t, seen[n], "número repetido: %s", n)
		seen[n] = true
	}
}

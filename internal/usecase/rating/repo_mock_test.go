package rating

import (
	"context"
	"time"

	domain "github.com/servicollantas/workshop-api/internal/domain/appointment"
	"github.com/servicollantas/workshop-api/internal/httperr"
	"github.com/servicollantas/workshop-api/internal/models"
)

type mockRepo struct {
	appointments map[uint]*models.Appointment
	tokens       map[uint]*models.RatingToken
	ratings      map[uint]*models.Rating

	nextID uint
}

var _ domain.Repository = (*mockRepo)(nil)

func newMockRepo() *mockRepo {
	return &mockRepo{
		appointments: map[uint]*models.Appointment{},
		tokens:       map[uint]*models.RatingToken{},
		ratings:      map[uint]*models.Rating{},
		nextID:       100,
	}
}

func (m *mockRepo) id() uint {
	m.nextID++
	return m.nextID
}

func (m *mockRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	if ap, ok := m.appointments[id]; ok {
		return ap, nil
	}
	return nil, httperr.NotFoundErr("appointment_not_found")
}

func (m *mockRepo) GetAppointmentDetailed(ctx context.Context, id uint) (*models.Appointment, error) {
	return m.GetAppointment(ctx, id)
}

func (m *mockRepo) HasRatingForAppointment(_ context.Context, appointmentID uint) (bool, error) {
	for _, r := range m.ratings {
		if r.AppointmentID == appointmentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) CreateRatingToken(_ context.Context, token *models.RatingToken) error {
	token.ID = m.id()
	m.tokens[token.ID] = token
	return nil
}

func (m *mockRepo) FindActiveRatingToken(_ context.Context, token string, now time.Time) (*models.RatingToken, error) {
	for _, rt := range m.tokens {
		if rt.Token == token && !rt.Used && rt.ExpiresAt.After(now) {
			if ap, ok := m.appointments[rt.AppointmentID]; ok {
				rt.Appointment = *ap
			}
			return rt, nil
		}
	}
	return nil, httperr.NotFoundErr("token_invalid_or_expired")
}

func (m *mockRepo) SaveRatingConsumingToken(ctx context.Context, rating *models.Rating, tokenID uint) error {
	rated, _ := m.HasRatingForAppointment(ctx, rating.AppointmentID)
	if rated {
		return httperr.ConflictErr("appointment_already_rated")
	}

	rt, ok := m.tokens[tokenID]
	if !ok {
		return httperr.NotFoundErr("token_invalid_or_expired")
	}
	rt.Used = true

	rating.ID = m.id()
	m.ratings[rating.ID] = rating
	return nil
}

func (m *mockRepo) DeleteExpiredRatingTokens(_ context.Context, now time.Time) (int64, error) {
	var deleted int64
	for id, rt := range m.tokens {
		if !rt.ExpiresAt.After(now) {
			delete(m.tokens, id)
			deleted++
		}
	}
	return deleted, nil
}

// El flujo de calificaciones no toca el resto de la interfaz.

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
func (m *mockRepo) ListAppointments(context.Context) ([]models.Appointment, error) {
	return nil, nil
}
func (m *mockRepo) UpdateAppointment(context.Context, *models.Appointment) error { return nil }
func (m *mockRepo) DeleteAppointment(context.Context, uint) error                { return nil }
func (m *mockRepo) CreateInvoiceForAppointment(context.Context, *models.Invoice, uint) error {
	return nil
}

// ---------- seed helpers ----------

func (m *mockRepo) seedCompletedWithMechanic() *models.Appointment {
	mechID := uint(42)
	serviceID := uint(7)

	ap := &models.Appointment{
		ID:         m.id(),
		Client:     models.Client{ID: 3, Name: "Ana"},
		Vehicle:    models.Vehicle{ID: 4, Make: "Toyota", Model: "Hilux"},
		ServiceID:  &serviceID,
		Service:    &models.Service{ID: serviceID, Name: "Alineación"},
		MechanicID: &mechID,
		Mechanic:   &models.User{ID: mechID, Name: "Pedro", Role: models.RoleMechanic},
		Status:     "completed",
		Date:       "2026-09-15",
		Time:       "10:00",
	}
	m.appointments[ap.ID] = ap
	return ap
}

func (m *mockRepo) seedToken(ap *models.Appointment, token string, expiresAt time.Time) *models.RatingToken {
	rt := &models.RatingToken{
		ID:            m.id(),
		AppointmentID: ap.ID,
		Token:         token,
		ExpiresAt:     expiresAt,
	}
	m.tokens[rt.ID] = rt
	return rt
}

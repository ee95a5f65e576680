package appointment

import (
	"context"
	"strings"
	"time"

	domain "github.com/servicollantas/workshop-api/internal/domain/appointment"
	"github.com/servicollantas/workshop-api/internal/httperr"
	"github.com/servicollantas/workshop-api/internal/models"
)

// mockRepo respalda los casos de uso con mapas en memoria, replicando los
// códigos de error de la implementación real.
type mockRepo struct {
	clients      map[uint]*models.Client
	vehicles     map[uint]*models.Vehicle
	services     map[uint]*models.Service
	mechanics    map[uint]*models.User
	appointments map[uint]*models.Appointment

	nextID uint
}

var _ domain.Repository = (*mockRepo)(nil)

func newMockRepo() *mockRepo {
	return &mockRepo{
		clients:      map[uint]*models.Client{},
		vehicles:     map[uint]*models.Vehicle{},
		services:     map[uint]*models.Service{},
		mechanics:    map[uint]*models.User{},
		appointments: map[uint]*models.Appointment{},
		nextID:       100,
	}
}

func (m *mockRepo) id() uint {
	m.nextID++
	return m.nextID
}

func (m *mockRepo) FindClientByID(_ context.Context, id uint) (*models.Client, error) {
	if c, ok := m.clients[id]; ok {
		return c, nil
	}
	return nil, httperr.NotFoundErr("client_not_found")
}

func (m *mockRepo) FindClientByEmail(_ context.Context, email string) (*models.Client, error) {
	for _, c := range m.clients {
		if strings.EqualFold(c.Email, email) {
			return c, nil
		}
	}
	return nil, httperr.NotFoundErr("client_not_found")
}

func (m *mockRepo) CreateClient(_ context.Context, client *models.Client) error {
	client.ID = m.id()
	m.clients[client.ID] = client
	return nil
}

func (m *mockRepo) GetVehicle(_ context.Context, id uint) (*models.Vehicle, error) {
	if v, ok := m.vehicles[id]; ok {
		return v, nil
	}
	return nil, httperr.NotFoundErr("vehicle_not_found")
}

func (m *mockRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	if s, ok := m.services[id]; ok {
		return s, nil
	}
	return nil, httperr.NotFoundErr("service_not_found")
}

func (m *mockRepo) GetMechanic(_ context.Context, id uint) (*models.User, error) {
	u, ok := m.mechanics[id]
	if !ok || u.Role != models.RoleMechanic {
		return nil, httperr.ValidationErr("invalid_mechanic")
	}
	return u, nil
}

func (m *mockRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	ap.ID = m.id()
	m.appointments[ap.ID] = ap
	return nil
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

func (m *mockRepo) ListAppointments(_ context.Context) ([]models.Appointment, error) {
	out := make([]models.Appointment, 0, len(m.appointments))
	for _, ap := range m.appointments {
		out = append(out, *ap)
	}
	return out, nil
}

func (m *mockRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if _, ok := m.appointments[ap.ID]; !ok {
		return httperr.NotFoundErr("appointment_not_found")
	}
	m.appointments[ap.ID] = ap
	return nil
}

func (m *mockRepo) DeleteAppointment(_ context.Context, id uint) error {
	if _, ok := m.appointments[id]; !ok {
		return httperr.NotFoundErr("appointment_not_found")
	}
	delete(m.appointments, id)
	return nil
}

func (m *mockRepo) CreateInvoiceForAppointment(_ context.Context, inv *models.Invoice, appointmentID uint) error {
	ap, ok := m.appointments[appointmentID]
	if !ok {
		return httperr.NotFoundErr("appointment_not_found")
	}
	if ap.InvoiceID != nil {
		return httperr.ConflictErr("appointment_already_invoiced")
	}
	inv.ID = m.id()
	ap.InvoiceID = &inv.ID
	return nil
}

func (m *mockRepo) HasRatingForAppointment(_ context.Context, _ uint) (bool, error) {
	return false, nil
}

func (m *mockRepo) CreateRatingToken(_ context.Context, token *models.RatingToken) error {
	token.ID = m.id()
	return nil
}

func (m *mockRepo) FindActiveRatingToken(_ context.Context, _ string, _ time.Time) (*models.RatingToken, error) {
	return nil, httperr.NotFoundErr("token_invalid_or_expired")
}

func (m *mockRepo) SaveRatingConsumingToken(_ context.Context, _ *models.Rating, _ uint) error {
	return nil
}

func (m *mockRepo) DeleteExpiredRatingTokens(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

// ---------- seed helpers ----------

func (m *mockRepo) seedClient(name, email string) *models.Client {
	c := &models.Client{ID: m.id(), Name: name, Email: email}
	m.clients[c.ID] = c
	return c
}

func (m *mockRepo) seedVehicle() *models.Vehicle {
	v := &models.Vehicle{ID: m.id(), Make: "Toyota", Model: "Hilux", LicensePlate: "ABC123"}
	m.vehicles[v.ID] = v
	return v
}

func (m *mockRepo) seedService(name string, price float64) *models.Service {
	s := &models.Service{ID: m.id(), Name: name, Price: price, DurationMin: 60}
	m.services[s.ID] = s
	return s
}

func (m *mockRepo) seedMechanic(name string) *models.User {
	u := &models.User{ID: m.id(), Name: name, Role: models.RoleMechanic}
	m.mechanics[u.ID] = u
	return u
}

func (m *mockRepo) seedAppointment(status string) *models.Appointment {
	ap := &models.Appointment{
		ID:     m.id(),
		Date:   "2026-09-15",
		Time:   "10:00",
		Status: status,
	}
	m.appointments[ap.ID] = ap
	return ap
}

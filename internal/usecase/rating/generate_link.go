package rating

import (
	"context"
	"time"

	"github.com/servicollantas/workshop-api/internal/audit"
	domain "github.com/servicollantas/workshop-api/internal/domain/appointment"
	domainrating "github.com/servicollantas/workshop-api/internal/domain/rating"
	"github.com/servicollantas/workshop-api/internal/httperr"
	"github.com/servicollantas/workshop-api/internal/models"
)

type Link struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type GenerateLink struct {
	repo        domain.Repository
	audit       *audit.Dispatcher
	tokens      domainrating.TokenSource
	now         func() time.Time
	frontendURL string
}

func NewGenerateLink(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tokens domainrating.TokenSource,
	now func() time.Time,
	frontendURL string,
) *GenerateLink {
	return &GenerateLink{
		repo:        repo,
		audit:       audit,
		tokens:      tokens,
		now:         now,
		frontendURL: frontendURL,
	}
}

// Execute emite un token de un solo uso para calificar al mecánico de una
// cita completada. Pueden coexistir varios tokens vivos para la misma
// cita; el índice único de ratings es el guardia final contra
// calificaciones duplicadas.
func (uc *GenerateLink) Execute(
	ctx context.Context,
	appointmentID uint,
) (*Link, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanRequestRating(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	if ap.MechanicID == nil {
		return nil, httperr.ValidationErr("appointment_has_no_mechanic")
	}

	rated, err := uc.repo.HasRatingForAppointment(ctx, ap.ID)
	if err != nil {
		return nil, err
	}
	if rated {
		return nil, httperr.ConflictErr("appointment_already_rated")
	}

	token, err := uc.tokens.Generate()
	if err != nil {
		return nil, err
	}

	rt := &models.RatingToken{
		AppointmentID: ap.ID,
		Token:         token,
		ExpiresAt:     domainrating.ExpiryFrom(uc.now()),
	}

	if err := uc.repo.CreateRatingToken(ctx, rt); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "rating_link_generated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return &Link{
		Token:     token,
		URL:       domainrating.LinkURL(uc.frontendURL, token),
		ExpiresAt: rt.ExpiresAt,
	}, nil
}

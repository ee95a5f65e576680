package rating

import (
	"context"
	"time"

	"github.com/servicollantas/workshop-api/internal/audit"
	domain "github.com/servicollantas/workshop-api/internal/domain/appointment"
	"github.com/servicollantas/workshop-api/internal/httperr"
	"github.com/servicollantas/workshop-api/internal/models"
)

const maxCommentLen = 500

type SubmitInput struct {
	Token       string
	Rating      int
	Comment     string
	ClientName  string
	ClientEmail string
}

type Submit struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewSubmit(
	repo domain.Repository,
	audit *audit.Dispatcher,
	now func() time.Time,
) *Submit {
	return &Submit{
		repo:  repo,
		audit: audit,
		now:   now,
	}
}

// Execute registra la calificación y consume el token en una sola
// transacción. El índice único sobre appointment_id es el guardia
// autoritativo: aunque existan varios tokens vivos, solo un envío
// prospera.
func (uc *Submit) Execute(
	ctx context.Context,
	in SubmitInput,
) (*models.Rating, error) {

	if in.Rating < 1 || in.Rating > 5 {
		return nil, httperr.ValidationErr("invalid_rating")
	}
	if len(in.Comment) > maxCommentLen {
		return nil, httperr.ValidationErr("comment_too_long")
	}

	rt, err := uc.repo.FindActiveRatingToken(ctx, in.Token, uc.now())
	if err != nil {
		return nil, err
	}

	if rt.Appointment.MechanicID == nil {
		return nil, httperr.NotFoundErr("token_invalid_or_expired")
	}

	rated, err := uc.repo.HasRatingForAppointment(ctx, rt.AppointmentID)
	if err != nil {
		return nil, err
	}
	if rated {
		return nil, httperr.ConflictErr("appointment_already_rated")
	}

	r := &models.Rating{
		AppointmentID: rt.AppointmentID,
		MechanicID:    *rt.Appointment.MechanicID,
		Rating:        in.Rating,
		Comment:       in.Comment,
		ClientName:    in.ClientName,
		ClientEmail:   in.ClientEmail,
	}

	if err := uc.repo.SaveRatingConsumingToken(ctx, r, rt.ID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "rating_submitted",
		Entity:   "rating",
		EntityID: &r.ID,
		Metadata: map[string]any{"appointment_id": rt.AppointmentID},
	})

	return r, nil
}

package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	domain "github.com/servicollantas/workshop-api/internal/domain/appointment"
)

// TokenPurge borra a diario los tokens de calificación vencidos. Los
// tokens usados se conservan como rastro de qué enlace consumió cada
// calificación.
type TokenPurge struct {
	repo domain.Repository
	cron *cron.Cron
}

func NewTokenPurge(repo domain.Repository, loc *time.Location) *TokenPurge {
	return &TokenPurge{
		repo: repo,
		cron: cron.New(cron.WithLocation(loc)),
	}
}

func (j *TokenPurge) Start() error {
	_, err := j.cron.AddFunc("0 3 * * *", j.run)
	if err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

func (j *TokenPurge) Stop() {
	j.cron.Stop()
}

func (j *TokenPurge) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := j.repo.DeleteExpiredRatingTokens(ctx, time.Now())
	if err != nil {
		log.Println("token purge error:", err)
		return
	}
	if deleted > 0 {
		log.Printf("token purge: %d tokens vencidos eliminados", deleted)
	}
}

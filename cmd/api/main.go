package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/servicollantas/workshop-api/internal/config"
	dbpkg "github.com/servicollantas/workshop-api/internal/db"
	"github.com/servicollantas/workshop-api/internal/infra/repository"
	"github.com/servicollantas/workshop-api/internal/jobs"
	"github.com/servicollantas/workshop-api/internal/middleware"
	"github.com/servicollantas/workshop-api/internal/routes"
	"github.com/servicollantas/workshop-api/internal/timezone"
)

func main() {

	// .env es opcional; en producción todo llega por entorno.
	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.Setup(r, db, rdb, cfg)

	purge := jobs.NewTokenPurge(
		repository.NewWorkshopGormRepository(db),
		timezone.Location(cfg.Timezone),
	)
	if err := purge.Start(); err != nil {
		log.Fatalf("failed to start token purge job: %v", err)
	}
	defer purge.Stop()

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

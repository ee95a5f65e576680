package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/servicollantas/workshop-api/internal/audit"
	"github.com/servicollantas/workshop-api/internal/config"
	"github.com/servicollantas/workshop-api/internal/handlers"
	"github.com/servicollantas/workshop-api/internal/infra/repository"
	"github.com/servicollantas/workshop-api/internal/infra/securetoken"
	"github.com/servicollantas/workshop-api/internal/middleware"
	"github.com/servicollantas/workshop-api/internal/models"
	"github.com/servicollantas/workshop-api/internal/timezone"
	ucappointment "github.com/servicollantas/workshop-api/internal/usecase/appointment"
	ucinvoice "github.com/servicollantas/workshop-api/internal/usecase/invoice"
	ucrating "github.com/servicollantas/workshop-api/internal/usecase/rating"
)

func Setup(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	loc := timezone.Location(cfg.Timezone)
	now := time.Now

	repo := repository.NewWorkshopGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(db))
	tokens := securetoken.New()

	// ---------- Use cases ----------

	createAppointment := ucappointment.NewCreateAppointment(repo, dispatcher, loc)
	listAppointments := ucappointment.NewListAppointments(repo)
	getAppointment := ucappointment.NewGetAppointment(repo)
	updateStatus := ucappointment.NewUpdateStatus(repo, dispatcher)
	assignMechanic := ucappointment.NewAssignMechanic(repo, dispatcher)
	deleteAppointment := ucappointment.NewDeleteAppointment(repo, dispatcher)

	generateInvoice := ucinvoice.NewGenerateFromAppointment(repo, dispatcher, now)

	generateLink := ucrating.NewGenerateLink(repo, dispatcher, tokens, now, cfg.FrontendURL)
	tokenInfo := ucrating.NewGetTokenInfo(repo, now)
	submitRating := ucrating.NewSubmit(repo, dispatcher, now)

	// ---------- Handlers ----------

	authHandler := handlers.NewAuthHandler(db, cfg)
	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	vehicleHandler := handlers.NewVehicleHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointment,
		listAppointments,
		getAppointment,
		updateStatus,
		assignMechanic,
		deleteAppointment,
	)
	invoiceHandler := handlers.NewInvoiceHandler(db, generateInvoice)
	mechanicHandler := handlers.NewMechanicHandler(db)
	ratingHandler := handlers.NewRatingHandler(db, generateLink, tokenInfo, submitRating)
	reportHandler := handlers.NewReportHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	loginLimiter := middleware.NewRateLimiter(rdb, 10, time.Minute, "rl:login")

	api := r.Group("/api")

	// ---------- Público ----------

	api.POST("/auth/login", loginLimiter.Middleware(), authHandler.Login)

	api.GET("/services", serviceHandler.List)
	api.GET("/mechanics/available", mechanicHandler.Available)

	api.POST("/appointments", appointmentHandler.Create)

	api.GET("/ratings/token/:token", ratingHandler.TokenInfo)
	api.POST("/ratings/token/:token", ratingHandler.Submit)

	// ---------- Operación (admin o mecánico) ----------

	staff := api.Group("")
	staff.Use(middleware.AuthMiddleware(cfg, models.RoleAdmin, models.RoleMechanic))
	{
		staff.GET("/clients", clientHandler.List)
		staff.POST("/clients", clientHandler.Create)
		staff.PUT("/clients/:id", clientHandler.Update)

		staff.GET("/vehicles", vehicleHandler.List)
		staff.POST("/vehicles", vehicleHandler.Create)
		staff.PUT("/vehicles/:id", vehicleHandler.Update)

		staff.GET("/appointments", appointmentHandler.List)
		staff.GET("/appointments/:id", appointmentHandler.Get)
		staff.PUT("/appointments/:id", appointmentHandler.Update)
		staff.PUT("/appointments/:id/mechanic", appointmentHandler.AssignMechanic)

		staff.POST("/appointments/:id/invoice", invoiceHandler.GenerateFromAppointment)
		staff.POST("/appointments/:id/rating-link", ratingHandler.GenerateLink)

		staff.GET("/invoices", invoiceHandler.List)
		staff.GET("/invoices/:id", invoiceHandler.Get)
		staff.POST("/invoices", invoiceHandler.Create)

		staff.GET("/ratings", ratingHandler.List)

		staff.GET("/profile", mechanicHandler.Profile)
		staff.PUT("/profile", mechanicHandler.UpdateProfile)
	}

	// ---------- Solo admin ----------

	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(cfg, models.RoleAdmin))
	{
		admin.POST("/services", serviceHandler.Create)
		admin.PUT("/services/:id", serviceHandler.Update)
		admin.DELETE("/services/:id", serviceHandler.Delete)

		admin.DELETE("/clients/:id", clientHandler.Delete)
		admin.DELETE("/vehicles/:id", vehicleHandler.Delete)

		admin.DELETE("/appointments/:id", appointmentHandler.Delete)
		admin.DELETE("/invoices/:id", invoiceHandler.Delete)

		admin.GET("/mechanics", mechanicHandler.List)
		admin.POST("/mechanics", mechanicHandler.Create)
		admin.PUT("/mechanics/:id", mechanicHandler.Update)
		admin.DELETE("/mechanics/:id", mechanicHandler.Delete)

		admin.GET("/reports/summary", reportHandler.Summary)
		admin.GET("/audit-logs", auditLogsHandler.List)
	}
}

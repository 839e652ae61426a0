package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/cache"
	"github.com/BruksfildServices01/slot-scheduler/internal/config"
	"github.com/BruksfildServices01/slot-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/slot-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/slot-scheduler/internal/middleware"
	"github.com/BruksfildServices01/slot-scheduler/internal/notification"
	ucAppointment "github.com/BruksfildServices01/slot-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/slot-scheduler/internal/usecase/availability"
	ucSlot "github.com/BruksfildServices01/slot-scheduler/internal/usecase/slot"
)

// Deps are the process-wide singletons built in main. Dispatchers are owned
// by main so they can be drained on shutdown.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger

	Cache       cache.SlotCache
	AuditLogger *audit.Logger
	Audit       *audit.Dispatcher
	Notify      *notification.Dispatcher
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	slotCache := d.Cache
	if slotCache == nil {
		slotCache = cache.Noop{}
	}

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	directoryRepo := infraRepo.NewDirectoryGormRepository(d.DB)
	availabilityRepo := infraRepo.NewAvailabilityGormRepository(d.DB)
	slotRepo := infraRepo.NewSlotGormRepository(d.DB)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)

	// ======================================================
	// USE CASES / AVAILABILITY
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(
		ucAvailability.NewCreateRule(availabilityRepo, directoryRepo, d.Audit),
		ucAvailability.NewUpdateRule(availabilityRepo, directoryRepo, d.Audit),
		ucAvailability.NewDeleteRule(availabilityRepo, directoryRepo, d.Audit),
		ucAvailability.NewListRules(availabilityRepo, directoryRepo),
		d.Log,
	)

	// ======================================================
	// USE CASES / SLOTS
	// ======================================================
	slotHandler := handlers.NewSlotHandler(
		ucSlot.NewGenerateSlots(slotRepo, directoryRepo, slotCache, d.Audit),
		ucSlot.NewListSlots(slotRepo, directoryRepo, slotCache),
		ucSlot.NewUpdateSlotStatus(slotRepo, directoryRepo, slotCache, d.Audit),
		ucSlot.NewDeleteSlot(slotRepo, directoryRepo, slotCache, d.Audit),
		d.Log,
	)

	// ======================================================
	// USE CASES / APPOINTMENTS
	// ======================================================
	appointmentDeps := ucAppointment.Deps{
		Repo:   appointmentRepo,
		Cache:  slotCache,
		Audit:  d.Audit,
		Notify: d.Notify,
	}

	appointmentHandler := handlers.NewAppointmentHandler(handlers.AppointmentUseCases{
		Create:   ucAppointment.NewCreateAppointment(appointmentDeps),
		Cancel:   ucAppointment.NewCancelAppointment(appointmentDeps),
		Confirm:  ucAppointment.NewConfirmAppointment(appointmentDeps),
		Complete: ucAppointment.NewCompleteAppointment(appointmentDeps),
		NoShow:   ucAppointment.NewNoShowAppointment(appointmentDeps),
		Get:      ucAppointment.NewGetAppointment(appointmentDeps),
		List:     ucAppointment.NewListAppointments(appointmentDeps),
	}, d.Log)

	// ======================================================
	// HANDLERS / SUPPORT
	// ======================================================
	meHandler := handlers.NewMeHandler(directoryRepo, d.Notify, d.Log)
	serviceHandler := handlers.NewServiceHandler(directoryRepo, d.Audit, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogger, directoryRepo, d.Log)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	secured := api.Group("/")
	secured.Use(middleware.AuthMiddleware(d.Config))
	secured.Use(middleware.RateLimit(d.Config.RateLimitPerMinute, d.Log))
	{
		secured.GET("/me", meHandler.GetMe)
		secured.GET("/me/notifications", meHandler.Notifications)

		// ------------------------------
		// CATALOG / AUDIT
		// ------------------------------
		secured.GET("/businesses/:id/services", serviceHandler.List)
		secured.POST("/businesses/:id/services", serviceHandler.Create)
		secured.PATCH("/services/:id", serviceHandler.Update)

		secured.GET("/businesses/:id/audit-logs", auditLogsHandler.List)

		// ------------------------------
		// AVAILABILITY RULES
		// ------------------------------
		secured.GET("/operators/:id/availability", availabilityHandler.List)
		secured.POST("/operators/:id/availability", availabilityHandler.Create)
		secured.PATCH("/availability/:id", availabilityHandler.Update)
		secured.DELETE("/availability/:id", availabilityHandler.Delete)

		// ------------------------------
		// SLOTS
		// ------------------------------
		secured.GET("/operators/:id/slots", slotHandler.List)
		secured.POST("/operators/:id/slots/generate", slotHandler.Generate)
		secured.PATCH("/slots/:id/status", slotHandler.UpdateStatus)
		secured.DELETE("/slots/:id", slotHandler.Delete)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		secured.POST("/appointments", appointmentHandler.Create)
		secured.GET("/appointments", appointmentHandler.List)
		secured.GET("/appointments/:id", appointmentHandler.Get)
		secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
		secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
		secured.PATCH("/appointments/:id/no-show", appointmentHandler.NoShow)
	}
}

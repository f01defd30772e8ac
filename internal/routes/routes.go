package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/veve-booking/internal/audit"
	"github.com/BruksfildServices01/veve-booking/internal/config"
	domainBooking "github.com/BruksfildServices01/veve-booking/internal/domain/booking"
	"github.com/BruksfildServices01/veve-booking/internal/domain/account"
	"github.com/BruksfildServices01/veve-booking/internal/domain/roles"
	"github.com/BruksfildServices01/veve-booking/internal/handlers"
	"github.com/BruksfildServices01/veve-booking/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/veve-booking/internal/infra/repository"
	"github.com/BruksfildServices01/veve-booking/internal/infra/storage"
	"github.com/BruksfildServices01/veve-booking/internal/metrics"
	"github.com/BruksfildServices01/veve-booking/internal/middleware"
	"github.com/BruksfildServices01/veve-booking/internal/realtime"
	"github.com/BruksfildServices01/veve-booking/internal/timezone"
	ucAdmin "github.com/BruksfildServices01/veve-booking/internal/usecase/admin"
	ucAuth "github.com/BruksfildServices01/veve-booking/internal/usecase/auth"
	ucBooking "github.com/BruksfildServices01/veve-booking/internal/usecase/booking"
	ucCatalog "github.com/BruksfildServices01/veve-booking/internal/usecase/catalog"
	"github.com/BruksfildServices01/veve-booking/internal/validators"
)

// Deps are the long-lived pieces main owns and shuts down.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config

	// Redis is nil when the service runs on in-memory stores.
	Redis *redis.Client

	Hub    *realtime.Hub
	Events realtime.Publisher

	Audit    *audit.Dispatcher
	Notifier ucBooking.Notifier

	// Store is nil when no bucket is configured.
	Store  storage.ObjectStore
	Mailer ucAuth.Mailer
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	if cfg.MetricsEnabled {
		metrics.Register()
		r.Use(metrics.Middleware())
	}

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(d.DB)
	accountRepo := infraRepo.NewAccountGormRepository(d.DB)
	auditLogger := audit.New(d.DB)

	var (
		tokens account.TokenStore
		drafts domainBooking.DraftStore
	)
	if d.Redis != nil {
		tokens = cache.NewRedisTokenStore(d.Redis)
		drafts = cache.NewRedisDraftStore(d.Redis)
	} else {
		log.Println("[routes] redis not configured, using in-memory token and draft stores")
		tokens = cache.NewMemoryTokenStore()
		drafts = cache.NewMemoryDraftStore()
	}

	clock := timezone.NewClock(cfg.Timezone)
	policy := domainBooking.Policy{
		Location:       timezone.Location(cfg.Timezone),
		ClosedWeekdays: cfg.ClosedWeekdays,
	}

	// ======================================================
	// USE CASES
	// ======================================================
	var domainCheck func(string) bool
	if cfg.CheckEmailDomain {
		domainCheck = validators.IsEmailDomainValid
	}

	authSvc := ucAuth.NewService(accountRepo, tokens, d.Mailer, d.Audit, ucAuth.Options{
		Secret:      cfg.JWTSecret,
		SiteURL:     cfg.SiteURL,
		DomainCheck: domainCheck,
		Now:         clock,
	})
	resolver := roles.NewResolver(accountRepo)

	serviceManager := ucCatalog.NewServiceManager(catalogRepo, d.Events, d.Audit, d.Store)
	slotManager := ucCatalog.NewTimeSlotManager(catalogRepo, d.Events, d.Audit)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		catalogRepo,
		policy,
		clock,
		d.Events,
		d.Audit,
		d.Notifier,
	)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo, policy, clock)
	deleteBookingUC := ucBooking.NewDeleteBooking(bookingRepo, d.Events, d.Audit, d.Notifier)
	availabilityUC := ucBooking.NewAvailability(bookingRepo, catalogRepo, policy, clock)
	draftsUC := ucBooking.NewDrafts(
		drafts,
		bookingRepo,
		catalogRepo,
		accountRepo,
		policy,
		clock,
		createBookingUC,
		cfg.SiteURL,
	)

	usersUC := ucAdmin.NewUsers(accountRepo, authSvc, d.Events, d.Audit)
	reportsUC := ucAdmin.NewReports(bookingRepo, auditLogger)

	// ======================================================
	// HANDLERS
	// ======================================================
	authn := middleware.NewAuthenticator(authSvc, resolver)

	var redisPing handlers.Pinger
	if d.Redis != nil {
		redisPing = cache.NewPinger(d.Redis)
	}
	var dbPing handlers.Pinger
	if sqlDB, err := d.DB.DB(); err == nil {
		dbPing = sqlDB
	}

	healthHandler := handlers.NewHealthHandler(dbPing, redisPing)
	authHandler := handlers.NewAuthHandler(authSvc)
	publicHandler := handlers.NewPublicHandler(serviceManager, slotManager, availabilityUC)
	draftHandler := handlers.NewDraftHandler(draftsUC)
	bookingHandler := handlers.NewBookingHandler(createBookingUC, listBookingsUC, deleteBookingUC, reportsUC)
	realtimeHandler := handlers.NewRealtimeHandler(d.Hub)
	adminCatalogHandler := handlers.NewAdminCatalogHandler(serviceManager, slotManager)
	adminUsersHandler := handlers.NewAdminUsersHandler(usersUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(reportsUC)

	// ======================================================
	// HEALTH / METRICS
	// ======================================================
	r.GET("/health", healthHandler.Live)
	r.GET("/health/live", healthHandler.Live)
	r.GET("/health/ready", healthHandler.Ready)
	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api")

	// ======================================================
	// AUTH
	// ======================================================
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/sign-up", authHandler.SignUp)
		authGroup.POST("/sign-in", authHandler.SignIn)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
		authGroup.POST("/reset-password/confirm", authHandler.ConfirmReset)

		authGroup.POST("/sign-out", authn.Required(), authHandler.SignOut)
		authGroup.PUT("/password", authn.Required(), authHandler.UpdatePassword)
		authGroup.GET("/session", authn.Required(), authHandler.Session)
	}

	// ======================================================
	// PUBLIC
	// ======================================================
	api.GET("/services", publicHandler.Services)
	api.GET("/time-slots", publicHandler.TimeSlots)
	api.GET("/availability", publicHandler.Availability)
	api.GET("/calendar", publicHandler.Calendar)

	// ======================================================
	// BOOKING FLOW (sessão opcional)
	// ======================================================
	draftsGroup := api.Group("/booking-drafts", authn.Optional())
	{
		draftsGroup.POST("", draftHandler.Start)
		draftsGroup.GET("/:id", draftHandler.Get)
		draftsGroup.PUT("/:id/service", draftHandler.ChooseService)
		draftsGroup.PUT("/:id/date", draftHandler.ChooseDate)
		draftsGroup.PUT("/:id/time", draftHandler.ChooseTime)
		draftsGroup.PUT("/:id/contact", draftHandler.SetContact)
		draftsGroup.POST("/:id/submit", draftHandler.Submit)
	}

	// ======================================================
	// CLIENT (sessão obrigatória)
	// ======================================================
	private := api.Group("", authn.Required())
	{
		private.POST("/bookings", bookingHandler.Create)
		private.GET("/me/bookings", bookingHandler.Mine)
		private.DELETE("/me/bookings/:id", bookingHandler.CancelMine)
		private.GET("/realtime/:table", realtimeHandler.Stream)
	}

	// ======================================================
	// STAFF
	// ======================================================
	staff := api.Group("/admin", authn.Required(), middleware.RequireStaff())
	{
		staff.GET("/bookings", bookingHandler.All)
		staff.DELETE("/bookings/:id", bookingHandler.Delete)
		staff.GET("/bookings/export", bookingHandler.Export)
	}

	// ======================================================
	// ADMIN
	// ======================================================
	adminGroup := api.Group("/admin", authn.Required(), middleware.RequireAdmin())
	{
		adminGroup.GET("/services", adminCatalogHandler.ListServices)
		adminGroup.POST("/services", adminCatalogHandler.CreateService)
		adminGroup.PATCH("/services/:id", adminCatalogHandler.UpdateService)
		adminGroup.PATCH("/services/:id/toggle", adminCatalogHandler.ToggleService)
		adminGroup.PUT("/services/:id/image", adminCatalogHandler.UploadServiceImage)
		adminGroup.DELETE("/services/:id", adminCatalogHandler.DeleteService)

		adminGroup.GET("/time-slots", adminCatalogHandler.ListTimeSlots)
		adminGroup.POST("/time-slots", adminCatalogHandler.CreateTimeSlot)
		adminGroup.PATCH("/time-slots/:id", adminCatalogHandler.UpdateTimeSlot)
		adminGroup.PATCH("/time-slots/:id/toggle", adminCatalogHandler.ToggleTimeSlot)
		adminGroup.DELETE("/time-slots/:id", adminCatalogHandler.DeleteTimeSlot)

		adminGroup.GET("/users", adminUsersHandler.List)
		adminGroup.POST("/users", adminUsersHandler.CreateStaff)
		adminGroup.PATCH("/users/:id/admin", adminUsersHandler.ToggleAdmin)
		adminGroup.DELETE("/users/:id", adminUsersHandler.Delete)
		adminGroup.POST("/rpc/promote_user_role", adminUsersHandler.PromoteUserRole)

		adminGroup.GET("/audit-logs", auditLogsHandler.List)
	}

}

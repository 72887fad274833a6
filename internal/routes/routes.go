package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whatsport/whatsport-api/internal/cache"
	"github.com/whatsport/whatsport-api/internal/clock"
	"github.com/whatsport/whatsport-api/internal/config"
	"github.com/whatsport/whatsport-api/internal/handlers"
	infraRepo "github.com/whatsport/whatsport-api/internal/infra/repository"
	"github.com/whatsport/whatsport-api/internal/middleware"
	"github.com/whatsport/whatsport-api/internal/models"
	"github.com/whatsport/whatsport-api/internal/notify"
	"github.com/whatsport/whatsport-api/internal/payments"
	"github.com/whatsport/whatsport-api/internal/storage"
	ucEvent "github.com/whatsport/whatsport-api/internal/usecase/event"
	ucReservation "github.com/whatsport/whatsport-api/internal/usecase/reservation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	spaceCache := cache.NewSpaceCache(cfg.RedisAddr)

	eventRepo := infraRepo.NewEventGormRepository(db, spaceCache)
	reservationRepo := infraRepo.NewReservationGormRepository(db, spaceCache)

	dispatcher := notify.NewDispatcher(notify.NewSink(db))

	photoStore := storage.NewPhotoStore(storage.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		PublicURL: cfg.S3PublicURL,
	})

	payClient, err := payments.New(cfg.MercadoPagoToken)
	if err != nil {
		log.Println("payments disabled:", err)
	}

	clk := clock.System()

	// ======================================================
	// 🧠 USE CASES — EVENTS
	// ======================================================
	createEventUC := ucEvent.NewCreateEvent(eventRepo, dispatcher, clk)
	updateEventUC := ucEvent.NewUpdateEvent(eventRepo, dispatcher, clk)
	deleteEventUC := ucEvent.NewDeleteEvent(eventRepo, dispatcher)
	getEventUC := ucEvent.NewGetEvent(eventRepo)
	listEventsUC := ucEvent.NewListEvents(eventRepo, clk)
	nearbyEventsUC := ucEvent.NewListNearbyEvents(eventRepo, clk)
	joinEventUC := ucEvent.NewJoinEvent(eventRepo, dispatcher, clk)
	leaveEventUC := ucEvent.NewLeaveEvent(eventRepo, dispatcher, clk)

	// ======================================================
	// 🧠 USE CASES — RESERVATIONS
	// ======================================================
	createReservationUC := ucReservation.NewCreateReservation(reservationRepo, dispatcher, clk)
	approveReservationUC := ucReservation.NewApproveReservation(reservationRepo, dispatcher, payClient, clk)
	rejectReservationUC := ucReservation.NewRejectReservation(reservationRepo, dispatcher, clk)
	cancelReservationUC := ucReservation.NewCancelReservation(reservationRepo, dispatcher, clk)
	completeReservationUC := ucReservation.NewCompleteReservation(reservationRepo, clk)
	listMyReservationsUC := ucReservation.NewListMyReservations(reservationRepo, clk)
	listSpaceReservationsUC := ucReservation.NewListSpaceReservations(reservationRepo, clk)
	getReservationUC := ucReservation.NewGetReservation(reservationRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db)
	spaceHandler := handlers.NewSpaceHandler(db, spaceCache)
	spacePhotoHandler := handlers.NewSpacePhotoHandler(db, spaceCache, photoStore)

	eventHandler := handlers.NewEventHandler(
		db,
		createEventUC,
		updateEventUC,
		deleteEventUC,
		getEventUC,
		listEventsUC,
		nearbyEventsUC,
		joinEventUC,
		leaveEventUC,
	)

	reservationHandler := handlers.NewReservationHandler(
		db,
		createReservationUC,
		approveReservationUC,
		rejectReservationUC,
		cancelReservationUC,
		completeReservationUC,
		listMyReservationsUC,
		listSpaceReservationsUC,
		getReservationUC,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		api.GET("/spaces", spaceHandler.Search)
		api.GET("/spaces/:id", spaceHandler.GetPublic)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.Get)
			secured.PATCH("/me", meHandler.Update)

			secured.GET("/notifications", notificationHandler.List)
			secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
			secured.PATCH("/notifications/read-all", notificationHandler.MarkAllRead)

			secured.GET("/reservations/:id", reservationHandler.Get)

			// ------------------------------
			// EVENTS (any authenticated user)
			// ------------------------------
			secured.POST("/events", eventHandler.Create)
			secured.GET("/events", eventHandler.List)
			secured.GET("/events/nearby", eventHandler.Nearby)
			secured.GET("/events/:id", eventHandler.Get)
			secured.PATCH("/events/:id", eventHandler.Update)
			secured.DELETE("/events/:id", eventHandler.Delete)
			secured.POST("/events/:id/join", eventHandler.Join)
			secured.DELETE("/events/:id/join", eventHandler.Leave)

			// ------------------------------
			// PLAYER
			// ------------------------------
			player := secured.Group("/player")
			player.Use(middleware.RequireUserType(models.UserTypePlayer))
			{
				player.POST("/reservations", reservationHandler.Create)
				player.GET("/reservations", reservationHandler.ListMine)
				player.PATCH("/reservations/:id/cancel", reservationHandler.Cancel)
			}

			// ------------------------------
			// MANAGER
			// ------------------------------
			manager := secured.Group("/manager")
			manager.Use(middleware.RequireUserType(models.UserTypeManager))
			{
				manager.POST("/spaces", spaceHandler.Create)
				manager.GET("/spaces", spaceHandler.ListMine)
				manager.GET("/spaces/:id", spaceHandler.Get)
				manager.PATCH("/spaces/:id", spaceHandler.Update)
				manager.DELETE("/spaces/:id", spaceHandler.Delete)

				manager.POST("/spaces/:id/photos", spacePhotoHandler.Add)
				manager.POST("/spaces/:id/photos/upload", spacePhotoHandler.Upload)
				manager.PATCH("/spaces/:id/photos/:photoID/primary", spacePhotoHandler.SetPrimary)
				manager.DELETE("/spaces/:id/photos/:photoID", spacePhotoHandler.Remove)

				manager.GET("/spaces/:id/reservations", reservationHandler.ListForSpace)
				manager.PATCH("/reservations/:id/approve", reservationHandler.Approve)
				manager.PATCH("/reservations/:id/reject", reservationHandler.Reject)
				manager.PATCH("/reservations/:id/complete", reservationHandler.Complete)
			}
		}
	}
}

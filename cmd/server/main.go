package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sportsrental/service-booking/internal/adapter"
	"github.com/sportsrental/service-booking/internal/application"
	"github.com/sportsrental/service-booking/internal/config"
	"github.com/sportsrental/service-booking/internal/contracts"
	"github.com/sportsrental/service-booking/internal/domain/catalog"
	promoDomain "github.com/sportsrental/service-booking/internal/domain/promo"
	"github.com/sportsrental/service-booking/internal/domain/reservation"
	bookingEvents "github.com/sportsrental/service-booking/internal/events"
	"github.com/sportsrental/service-booking/internal/handler"
	"github.com/sportsrental/service-booking/internal/platform/database"
	"github.com/sportsrental/service-booking/internal/platform/health"
	"github.com/sportsrental/service-booking/internal/platform/kafka"
	"github.com/sportsrental/service-booking/internal/platform/logger"
	"github.com/sportsrental/service-booking/internal/platform/middleware"
	"github.com/sportsrental/service-booking/internal/repository"
	"github.com/sportsrental/service-booking/internal/repository/memory"
	"github.com/sportsrental/service-booking/internal/saga"
)

const serviceName = "service-booking"

// stores groups the repositories selected by STORAGE.
type stores struct {
	db           *gorm.DB
	resources    catalog.ResourceRepository
	reservations reservation.Repository
	promos       promoDomain.Repository
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("storage", cfg.Storage),
		zap.Bool("kafka", cfg.KafkaConfig.Enabled),
	)

	st, err := openStores(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to open storage", zap.Error(err))
	}

	// Initialize event publisher
	var publisher contracts.Publisher = contracts.NopPublisher{}
	if cfg.KafkaConfig.Enabled {
		kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, zapLogger)
		defer kafkaProducer.Close()
		publisher = bookingEvents.NewKafkaPublisher(kafkaProducer, zapLogger)
	}

	// Initialize payment gateway (mock)
	gateway := adapter.NewMockPaymentGateway(zapLogger)

	// Initialize saga service
	checkout := saga.NewCheckoutSagaService(st.reservations, gateway, publisher, cfg.Currency, zapLogger)

	// Initialize application services
	resourceService := application.NewResourceService(st.resources, zapLogger)
	bookingService := application.NewBookingService(st.resources, st.reservations, st.promos, publisher, cfg.BookableDay, cfg.Currency, zapLogger)
	paymentService := application.NewPaymentService(st.reservations, checkout, publisher, cfg.Currency, zapLogger)
	promoService := application.NewPromoService(st.promos, zapLogger)

	// Start Kafka consumer for payment events in a goroutine
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	if cfg.KafkaConfig.Enabled {
		consumerGroupID := cfg.KafkaConfig.GroupPrefix + serviceName
		paymentConsumer := bookingEvents.NewPaymentEventConsumer(
			cfg.KafkaConfig.Brokers,
			consumerGroupID,
			paymentService,
			zapLogger,
		)
		defer paymentConsumer.Close()

		go func() {
			zapLogger.Info("starting payment event consumer")
			if err := paymentConsumer.Start(consumerCtx); err != nil {
				if consumerCtx.Err() == nil {
					zapLogger.Error("payment event consumer failed", zap.Error(err))
				}
			}
		}()
	}

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// Register health check routes
	healthHandler := health.NewHandler(st.db, serviceName)
	healthHandler.RegisterRoutes(router)

	// Register API routes
	apiV1 := router.Group("/api/v1")
	handler.NewResourceHandler(resourceService, bookingService).RegisterRoutes(apiV1)
	handler.NewReservationHandler(bookingService).RegisterRoutes(apiV1)
	handler.NewPaymentHandler(paymentService).RegisterRoutes(apiV1)
	handler.NewPromoHandler(promoService).RegisterRoutes(apiV1)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down " + serviceName + "...")

	// Cancel Kafka consumer
	consumerCancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info(serviceName + " stopped")
}

// openStores connects to Postgres and migrates it, or builds the in-memory
// stores when STORAGE=memory.
func openStores(cfg *config.ServiceConfig, zapLogger *zap.Logger) (*stores, error) {
	if cfg.Storage == config.StorageMemory {
		zapLogger.Warn("using in-memory storage; data is lost on restart")
		return &stores{
			resources:    memory.NewResourceStore(),
			reservations: memory.NewReservationStore(),
			promos:       memory.NewPromotionStore(),
		}, nil
	}

	db, err := database.Connect(cfg.DBConfig, zapLogger)
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(db); err != nil {
		return nil, err
	}
	zapLogger.Info("database migration completed")

	return &stores{
		db:           db,
		resources:    repository.NewResourceRepository(db),
		reservations: repository.NewReservationRepository(db),
		promos:       repository.NewPromotionRepository(db),
	}, nil
}

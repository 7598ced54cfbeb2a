package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-CeramicsBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-CeramicsBooking/internal/api/handlers/create_booking"
	deleteOverrideHandler "github.com/m04kA/SMC-CeramicsBooking/internal/api/handlers/delete_override"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CeramicsBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-CeramicsBooking/internal/api/handlers/get_booking"
	getDayBookingsHandler "github.com/m04kA/SMC-CeramicsBooking/internal/api/handlers/get_day_bookings"
	getScheduleSettingsHandler "github.com/m04kA/SMC-CeramicsBooking/internal/api/handlers/get_schedule_settings"
	setOverrideHandler "github.com/m04kA/SMC-CeramicsBooking/internal/api/handlers/set_override"
	updateAvailabilityHandler "github.com/m04kA/SMC-CeramicsBooking/internal/api/handlers/update_availability"
	"github.com/m04kA/SMC-CeramicsBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CeramicsBooking/internal/config"
	"github.com/m04kA/SMC-CeramicsBooking/internal/infra/ratelimit"
	bookingRepo "github.com/m04kA/SMC-CeramicsBooking/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/SMC-CeramicsBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-CeramicsBooking/internal/integrations/mailer"
	"github.com/m04kA/SMC-CeramicsBooking/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-CeramicsBooking/internal/service/bookings"
	settingsService "github.com/m04kA/SMC-CeramicsBooking/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-CeramicsBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-CeramicsBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/logger"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/metrics"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/txmanager"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-CeramicsBooking...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории и менеджер транзакций (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		settingsRepository *settingsRepo.Repository
		txMgr              *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = txmanager.NewTransactionManager(txmanager.SQLBeginner{DB: db})
	}

	// Почта с подтверждениями (опционально)
	var confirmationMailer createBookingUC.Mailer
	if cfg.Mailer.Enabled {
		confirmationMailer = mailer.NewClient(mailer.Config{
			Host:     cfg.Mailer.Host,
			Port:     cfg.Mailer.Port,
			Username: cfg.Mailer.User,
			Password: cfg.Mailer.Password,
			From:     cfg.Mailer.From,
			Studio:   cfg.Mailer.Studio,
		}, log)
		log.Info("Mailer enabled (host=%s, port=%d)", cfg.Mailer.Host, cfg.Mailer.Port)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)
	settingsSvc := settingsService.NewService(settingsRepository, txMgr, log)
	resolver := availability.NewResolver(cfg.Capacity.ToDomain())

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		resolver,
		txMgr,
		confirmationMailer,
		metricsCollector,
		createBookingUC.Policy{
			AdvanceBookingDays:      cfg.Studio.AdvanceBookingDays,
			MinBookingNoticeMinutes: cfg.Studio.MinBookingNoticeMinutes,
		},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		resolver,
		getAvailableSlotsUC.StudioHours{
			OpenTime:                types.TimeString(cfg.Studio.OpenTime),
			CloseTime:               types.TimeString(cfg.Studio.CloseTime),
			StepMinutes:             cfg.Studio.StepMinutes,
			ClassDurationMinutes:    cfg.Studio.ClassDurationMinutes,
			AdvanceBookingDays:      cfg.Studio.AdvanceBookingDays,
			MinBookingNoticeMinutes: cfg.Studio.MinBookingNoticeMinutes,
		},
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getDayBookings := getDayBookingsHandler.NewHandler(bookingSvc, log)
	getScheduleSettings := getScheduleSettingsHandler.NewHandler(settingsSvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(settingsSvc, log)
	setOverride := setOverrideHandler.NewHandler(settingsSvc, log)
	deleteOverride := deleteOverrideHandler.NewHandler(settingsSvc, log)

	// Rate limiter для публичного создания бронирований
	var redisClient *redis.Client
	rateLimitMiddleware := func(next http.Handler) http.Handler { return next }
	if cfg.RateLimit.Enabled {
		period := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		var limiter middleware.Limiter

		if cfg.Redis.Enabled {
			redisClient = redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := redisClient.Ping(pingCtx).Err()
			cancel()
			if err != nil {
				log.Fatal("Failed to connect to redis at %s: %v", cfg.Redis.Addr, err)
			}
			limiter, err = ratelimit.NewRedisLimiter(redisClient, cfg.Metrics.ServiceName+":ratelimit", cfg.RateLimit.Requests, period)
			if err != nil {
				log.Fatal("Failed to create rate limiter: %v", err)
			}
			log.Info("Rate limiting via redis (%d requests per %s)", cfg.RateLimit.Requests, period)
		} else {
			limiter, err = ratelimit.NewMemoryLimiter(cfg.RateLimit.Requests, period)
			if err != nil {
				log.Fatal("Failed to create rate limiter: %v", err)
			}
			log.Info("Rate limiting in memory (%d requests per %s)", cfg.RateLimit.Requests, period)
		}

		rateLimitMiddleware = middleware.RateLimit(limiter, metricsCollector, log)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (виджет бронирования)
	// ============================================================

	// Доступность слотов на дату
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельное расписание и исключения
	api.HandleFunc("/settings/schedule", getScheduleSettings.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.Handle("/bookings", rateLimitMiddleware(http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (X-User-ID из списка администраторов)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth)
	admin.Use(middleware.RequireAdmin(cfg.Auth.AdminIDs))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", getDayBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Расписание ---
	admin.HandleFunc("/settings/availability", updateAvailability.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/settings/overrides/{date}", setOverride.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/settings/overrides/{date}", deleteOverride.Handle).Methods(http.MethodDelete)

	// CORS для виджета и перехват паник
	origins := cfg.Server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	handler := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", middleware.UserIDHeader}),
	)(handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(r))

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}

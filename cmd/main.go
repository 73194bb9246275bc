package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	addAdminNotesHandler "github.com/m04kA/SpaceBookingService/internal/api/handlers/add_admin_notes"
	cancelReservationHandler "github.com/m04kA/SpaceBookingService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SpaceBookingService/internal/api/handlers/create_reservation"
	createSpaceHandler "github.com/m04kA/SpaceBookingService/internal/api/handlers/create_space"
	deleteSpaceHandler "github.com/m04kA/SpaceBookingService/internal/api/handlers/delete_space"
	getAvailableSlotsHandler "github.com/m04kA/SpaceBookingService/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/m04kA/SpaceBookingService/internal/api/handlers/get_reservation"
	getReservationsReportHandler "github.com/m04kA/SpaceBookingService/internal/api/handlers/get_reservations_report"
	getSpaceHandler "github.com/m04kA/SpaceBookingService/internal/api/handlers/get_space"
	getUsageReportHandler "github.com/m04kA/SpaceBookingService/internal/api/handlers/get_usage_report"
	getUserReservationsHandler "github.com/m04kA/SpaceBookingService/internal/api/handlers/get_user_reservations"
	getUsersReportHandler "github.com/m04kA/SpaceBookingService/internal/api/handlers/get_users_report"
	listReservationsHandler "github.com/m04kA/SpaceBookingService/internal/api/handlers/list_reservations"
	listSpacesHandler "github.com/m04kA/SpaceBookingService/internal/api/handlers/list_spaces"
	updateReservationHandler "github.com/m04kA/SpaceBookingService/internal/api/handlers/update_reservation"
	updateReservationStatusHandler "github.com/m04kA/SpaceBookingService/internal/api/handlers/update_reservation_status"
	updateSpaceHandler "github.com/m04kA/SpaceBookingService/internal/api/handlers/update_space"
	updateSpaceStatusHandler "github.com/m04kA/SpaceBookingService/internal/api/handlers/update_space_status"
	"github.com/m04kA/SpaceBookingService/internal/api/middleware"
	"github.com/m04kA/SpaceBookingService/internal/config"
	reservationRepo "github.com/m04kA/SpaceBookingService/internal/infra/storage/reservation"
	spaceRepo "github.com/m04kA/SpaceBookingService/internal/infra/storage/space"
	"github.com/m04kA/SpaceBookingService/internal/integrations/identity"
	reservationsService "github.com/m04kA/SpaceBookingService/internal/service/reservations"
	spacesService "github.com/m04kA/SpaceBookingService/internal/service/spaces"
	createReservationUC "github.com/m04kA/SpaceBookingService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/SpaceBookingService/internal/usecase/get_available_slots"
	updateReservationUC "github.com/m04kA/SpaceBookingService/internal/usecase/update_reservation"
	"github.com/m04kA/SpaceBookingService/internal/worker/lifecycle"
	"github.com/m04kA/SpaceBookingService/pkg/dbmetrics"
	"github.com/m04kA/SpaceBookingService/pkg/logger"
	"github.com/m04kA/SpaceBookingService/pkg/metrics"
	"github.com/m04kA/SpaceBookingService/pkg/txmanager"
)

func main() {
	configPath := pflag.StringP("config", "c", "config.toml", "path to TOML configuration file")
	pflag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SpaceBookingService...")
	log.Info("Configuration loaded from %s", *configPath)

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Инициализируем метрики (если включены).
	// Методы *metrics.Metrics безопасны для nil, поэтому при выключенных метриках
	// в компоненты передается nil.
	var (
		metricsCollector *metrics.Metrics
		dbCollector      dbmetrics.Collector
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbCollector = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, dbCollector, stopMetricsCh)

	// Инициализируем репозитории и менеджер транзакций
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	spaceRepository := spaceRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB, cfg.Booking.SerializableRetries)

	verifier := identity.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(reservationRepository, txMgr, metricsCollector, log)
	spaceSvc := spacesService.NewService(
		spaceRepository,
		reservationRepository,
		txMgr,
		spacesService.Settings{Location: location},
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		spaceRepository,
		txMgr,
		metricsCollector,
		createReservationUC.Settings{
			AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
			Location:           location,
		},
		log,
	)

	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		spaceRepository,
		txMgr,
		metricsCollector,
		updateReservationUC.Settings{
			AdvanceBookingDays: cfg.Booking.AdvanceBookingDays,
			Location:           location,
		},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		spaceRepository,
		getAvailableSlotsUC.Settings{
			DefaultGranularityMinutes: cfg.Booking.SlotGranularityMinutes,
			AdvanceBookingDays:        cfg.Booking.AdvanceBookingDays,
			Location:                  location,
		},
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	addAdminNotes := addAdminNotesHandler.NewHandler(reservationSvc, log)
	getUsageReport := getUsageReportHandler.NewHandler(reservationSvc, log)
	getReservationsReport := getReservationsReportHandler.NewHandler(reservationSvc, log)
	getUsersReport := getUsersReportHandler.NewHandler(reservationSvc, log)
	listSpaces := listSpacesHandler.NewHandler(spaceSvc, log)
	getSpace := getSpaceHandler.NewHandler(spaceSvc, log)
	createSpace := createSpaceHandler.NewHandler(spaceSvc, log)
	updateSpace := updateSpaceHandler.NewHandler(spaceSvc, log)
	updateSpaceStatus := updateSpaceStatusHandler.NewHandler(spaceSvc, log)
	deleteSpace := deleteSpaceHandler.NewHandler(spaceSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(verifier, log))

	// --- Пространства ---
	api.HandleFunc("/spaces", listSpaces.Handle).Methods(http.MethodGet)
	api.HandleFunc("/spaces/{spaceId}", getSpace.Handle).Methods(http.MethodGet)
	api.HandleFunc("/spaces/{spaceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPut)
	api.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/users/me/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют роль administrator)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/spaces", createSpace.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/spaces/{spaceId}", updateSpace.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/spaces/{spaceId}", deleteSpace.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/spaces/{spaceId}/status", updateSpaceStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/reservations/{reservationId}/notes", addAdminNotes.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/reports/usage", getUsageReport.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reports/reservations", getReservationsReport.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reports/users", getUsersReport.Handle).Methods(http.MethodGet)

	// Запускаем воркер переходов по расписанию
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})

	if cfg.Scheduler.Enabled {
		worker := lifecycle.NewWorker(reservationRepository, metricsCollector, lifecycle.Settings{
			Interval:  time.Duration(cfg.Scheduler.IntervalSeconds) * time.Second,
			BatchSize: cfg.Scheduler.BatchSize,
			Location:  location,
		}, log)

		go func() {
			defer close(workerDone)
			worker.Run(workerCtx)
		}()
		log.Info("Lifecycle worker started (interval=%ds, batch=%d)",
			cfg.Scheduler.IntervalSeconds, cfg.Scheduler.BatchSize)
	} else {
		close(workerDone)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	stopWorker()
	<-workerDone

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

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
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	admitBookingHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/admit_booking"
	checkConstraintHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/check_constraint"
	createBookingHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_available_slots"
	getAvailabilityHistoryHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_availability_history"
	getBookingHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_booking"
	getBookingLogsHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_booking_logs"
	getCapacityHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_capacity"
	getConstraintHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/get_constraint"
	listBookingsHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/list_bookings"
	listCatalogHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/list_catalog"
	listConstraintsHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/list_constraints"
	publishAvailabilityHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/publish_availability"
	resolveBundleHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/resolve_bundle"
	saveCapacityHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/save_capacity"
	saveConstraintHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/save_constraint"
	updateBookingFieldsHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/update_booking_fields"
	updateBookingServicesHandler "github.com/m04kA/SMC-SpaBookingService/internal/api/handlers/update_booking_services"
	"github.com/m04kA/SMC-SpaBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBookingService/internal/config"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/booking"
	bundleRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/bundle"
	capacityRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/capacity"
	catalogRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/catalog"
	constraintRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/constraint"
	availabilityService "github.com/m04kA/SMC-SpaBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-SpaBookingService/internal/service/bookings"
	capacityService "github.com/m04kA/SMC-SpaBookingService/internal/service/capacity"
	catalogService "github.com/m04kA/SMC-SpaBookingService/internal/service/catalog"
	constraintsService "github.com/m04kA/SMC-SpaBookingService/internal/service/constraints"
	admitBookingUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/admit_booking"
	createBookingUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_available_slots"
	resolveBundleUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/resolve_bundle"
	updateBookingFieldsUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/update_booking_fields"
	updateBookingServicesUC "github.com/m04kA/SMC-SpaBookingService/internal/usecase/update_booking_services"
	"github.com/m04kA/SMC-SpaBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/locker"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SpaBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:           "spa-booking",
		Short:         "SMC-SpaBookingService: бронирования спа-центра",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "путь к файлу конфигурации")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP сервер",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(configPath)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Создать недостающие единицы каталога по ценам из конфигурации",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), configPath)
		},
	})

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap загружает конфигурацию, логгер и соединение с БД
func bootstrap(configPath string) (*config.Config, *logger.Logger, *sql.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Info("Configuration loaded from %s", configPath)

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Close()
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		db.Close()
		log.Close()
		return nil, nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	return cfg, log, db, nil
}

func runSeed(ctx context.Context, configPath string) error {
	cfg, log, db, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer log.Close()
	defer db.Close()

	catalogSvc := catalogService.NewService(catalogRepo.NewRepository(db), log)

	created, err := catalogSvc.EnsureSeeded(ctx, cfg.Catalog.Prices)
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	log.Info("Catalog seed finished: %d units created", created)
	return nil
}

func runServe(configPath string) error {
	cfg, log, db, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer log.Close()
	defer db.Close()

	log.Info("Starting SMC-SpaBookingService...")

	// Метрики: при выключенных метриках collector == nil, все вызовы становятся no-op
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Metrics enabled at %s, database metrics collection started", cfg.Metrics.Path)
	}

	txMgr := txmanager.NewTransactionManager(executor)

	// Блокировки: redis для нескольких инстансов, иначе внутри процесса
	lockWait := time.Duration(cfg.Booking.LockWaitSeconds) * time.Second
	lockTTL := time.Duration(cfg.Booking.LockTTLSeconds) * time.Second

	var lck locker.Locker
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis ping failed (addr=%s): %v, locks will report backend errors", cfg.Redis.Addr, err)
		}
		lck = locker.NewRedisLocker(redisClient, lockWait, metricsCollector)
		log.Info("Redis locker initialized (addr=%s)", cfg.Redis.Addr)
	} else {
		lck = locker.NewLocalLocker(lockWait, metricsCollector)
		log.Info("Redis is not configured, using in-process locker")
	}

	// Репозитории
	catalogRepository := catalogRepo.NewRepository(executor)
	availabilityRepository := availabilityRepo.NewRepository(executor)
	constraintRepository := constraintRepo.NewRepository(executor)
	capacityRepository := capacityRepo.NewRepository(executor)
	bundleRepository := bundleRepo.NewRepository(executor)
	bookingRepository := bookingRepo.NewRepository(executor)

	// Сервисы
	grid := domain.CellGrid{
		Start: types.TimeString(cfg.Booking.ConstraintCellFrom),
		Step:  cfg.Booking.ConstraintCellStep,
		Count: cfg.Booking.ConstraintCells,
	}
	if err := grid.Validate(); err != nil {
		return fmt.Errorf("invalid constraint cell grid: %w", err)
	}

	catalogSvc := catalogService.NewService(catalogRepository, log)
	availabilitySvc := availabilityService.NewService(availabilityRepository, txMgr, log)
	constraintsSvc := constraintsService.NewService(constraintRepository, txMgr, grid, log)
	capacitySvc := capacityService.NewService(capacityRepository, cfg.Booking.DefaultCapacity, log)
	bookingSvc := bookingsService.NewService(bookingRepository, bundleRepository, log)

	// Use cases
	admitBookingUseCase := admitBookingUC.NewUseCase(
		availabilityRepository,
		constraintRepository,
		capacityRepository,
		bookingRepository,
		cfg.Booking.DefaultCapacity,
		metricsCollector,
		log,
	)
	resolveBundleUseCase := resolveBundleUC.NewUseCase(
		catalogRepository,
		bundleRepository,
		lck,
		lockTTL,
		txMgr,
		metricsCollector,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		bundleRepository,
		admitBookingUseCase,
		resolveBundleUseCase,
		lck,
		lockTTL,
		txMgr,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityRepository,
		constraintRepository,
		capacityRepository,
		bookingRepository,
		grid,
		cfg.Booking.DefaultCapacity,
		log,
	)
	updateBookingFieldsUseCase := updateBookingFieldsUC.NewUseCase(
		bookingRepository,
		bundleRepository,
		txMgr,
		metricsCollector,
		log,
	)
	updateBookingServicesUseCase := updateBookingServicesUC.NewUseCase(
		bookingRepository,
		bundleRepository,
		resolveBundleUseCase,
		txMgr,
		metricsCollector,
		log,
	)

	// Handlers
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	getAvailabilityHistory := getAvailabilityHistoryHandler.NewHandler(availabilitySvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	publishAvailability := publishAvailabilityHandler.NewHandler(availabilitySvc, log)
	getConstraint := getConstraintHandler.NewHandler(constraintsSvc, log)
	checkConstraint := checkConstraintHandler.NewHandler(constraintsSvc, log)
	saveConstraint := saveConstraintHandler.NewHandler(constraintsSvc, log)
	listConstraints := listConstraintsHandler.NewHandler(constraintsSvc, log)
	getCapacity := getCapacityHandler.NewHandler(capacitySvc, log)
	saveCapacity := saveCapacityHandler.NewHandler(capacitySvc, log)
	listCatalog := listCatalogHandler.NewHandler(catalogSvc, log)
	admitBooking := admitBookingHandler.NewHandler(admitBookingUseCase, log)
	resolveBundle := resolveBundleHandler.NewHandler(resolveBundleUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBookingLogs := getBookingLogsHandler.NewHandler(bookingSvc, log)
	updateBookingFields := updateBookingFieldsHandler.NewHandler(updateBookingFieldsUseCase, log)
	updateBookingServices := updateBookingServicesHandler.NewHandler(updateBookingServicesUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Actor)

	// --- Доступность ---
	api.HandleFunc("/availability", publishAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/availability/{date}", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/{date}/history", getAvailabilityHistory.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/{date}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Закрытые интервалы ---
	api.HandleFunc("/constraints", listConstraints.Handle).Methods(http.MethodGet)
	api.HandleFunc("/constraints/{date}", getConstraint.Handle).Methods(http.MethodGet)
	api.HandleFunc("/constraints/{date}", saveConstraint.Handle).Methods(http.MethodPut)
	api.HandleFunc("/constraints/{date}/blocked", checkConstraint.Handle).Methods(http.MethodGet)

	// --- Вместимость ---
	api.HandleFunc("/capacity", getCapacity.Handle).Methods(http.MethodGet)
	api.HandleFunc("/capacity", saveCapacity.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/capacity", saveCapacity.HandleUpdate).Methods(http.MethodPut)

	// --- Каталог и пакеты ---
	api.HandleFunc("/catalog", listCatalog.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bundles/resolve", resolveBundle.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	api.HandleFunc("/admission", admitBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", updateBookingFields.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/services", updateBookingServices.Handle).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{bookingId}/logs", getBookingLogs.Handle).Methods(http.MethodGet)

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
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

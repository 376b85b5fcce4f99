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

	cancelEncounterHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/cancel_encounter"
	checkConflictsHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/check_conflicts"
	createEncounterHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/create_encounter"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/get_available_slots"
	getCalendarHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/get_calendar"
	getEncounterHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/get_encounter"
	listEncountersHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/list_encounters"
	listScheduleRequestsHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/list_schedule_requests"
	rescheduleEncounterHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/reschedule_encounter"
	reviewScheduleRequestHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/review_schedule_request"
	submitScheduleRequestHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/submit_schedule_request"
	updateEncounterStatusHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/update_encounter_status"
	"github.com/m04kA/SMC-ClinicScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicScheduler/internal/config"
	calendarCache "github.com/m04kA/SMC-ClinicScheduler/internal/infra/cache/calendar"
	availabilityRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/availability"
	encounterRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/encounter"
	resourceRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/resource"
	scheduleRequestRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/schedulerequest"
	maintenanceServiceClient "github.com/m04kA/SMC-ClinicScheduler/internal/integrations/maintenanceservice"
	notifyServiceClient "github.com/m04kA/SMC-ClinicScheduler/internal/integrations/notifyservice"
	patientServiceClient "github.com/m04kA/SMC-ClinicScheduler/internal/integrations/patientservice"
	staffServiceClient "github.com/m04kA/SMC-ClinicScheduler/internal/integrations/staffservice"
	calendarService "github.com/m04kA/SMC-ClinicScheduler/internal/service/calendar"
	conflictsService "github.com/m04kA/SMC-ClinicScheduler/internal/service/conflicts"
	encountersService "github.com/m04kA/SMC-ClinicScheduler/internal/service/encounters"
	scheduleRequestsService "github.com/m04kA/SMC-ClinicScheduler/internal/service/schedulerequests"
	cancelEncounterUC "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/cancel_encounter"
	createEncounterUC "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/create_encounter"
	getAvailableSlotsUC "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/get_available_slots"
	rescheduleEncounterUC "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/reschedule_encounter"
	reviewScheduleRequestUC "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/review_schedule_request"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/metrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/txmanager"
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

	log.Info("Starting SMC-ClinicScheduler...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	patientClient := patientServiceClient.NewClient(
		cfg.PatientService.URL,
		time.Duration(cfg.PatientService.Timeout)*time.Second,
		log,
	)
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	maintenanceClient := maintenanceServiceClient.NewClient(
		cfg.MaintenanceService.URL,
		time.Duration(cfg.MaintenanceService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotificationService.URL,
		time.Duration(cfg.NotificationService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PatientService=%s, StaffService=%s, MaintenanceService=%s, NotificationService=%s)",
		cfg.PatientService.URL, cfg.StaffService.URL, cfg.MaintenanceService.URL, cfg.NotificationService.URL)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	var (
		encounterRepository       *encounterRepo.Repository
		resourceRepository        *resourceRepo.Repository
		availabilityRepository    *availabilityRepo.Repository
		scheduleRequestRepository *scheduleRequestRepo.Repository
		txMgr                     TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		encounterRepository = encounterRepo.NewRepository(wrappedDB)
		resourceRepository = resourceRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		scheduleRequestRepository = scheduleRequestRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		encounterRepository = encounterRepo.NewRepository(db)
		resourceRepository = resourceRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		scheduleRequestRepository = scheduleRequestRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Кеш календаря (опциональный): при выключенном Redis проекция
	// каждый раз строится из БД
	var calCache *calendarCache.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		calCache = calendarCache.New(redisClient, time.Duration(cfg.Redis.CalendarTTLSecs)*time.Second)
		log.Info("Redis calendar cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CalendarTTLSecs)
	}

	// Типизированные nil-интерфейсы, чтобы проверка на nil в usecase
	// работала при выключенном Redis
	var (
		createCacheInv  createEncounterUC.CalendarInvalidator
		reschedCacheInv rescheduleEncounterUC.CalendarInvalidator
		cancelCacheInv  cancelEncounterUC.CalendarInvalidator
		reviewCacheInv  reviewScheduleRequestUC.CalendarInvalidator
		eventCache      calendarService.EventCache
	)
	if calCache != nil {
		createCacheInv = calCache
		reschedCacheInv = calCache
		cancelCacheInv = calCache
		reviewCacheInv = calCache
		eventCache = calCache
	}

	// Инициализируем сервисы
	encountersSvc := encountersService.NewService(
		encounterRepository,
		resourceRepository,
		encountersService.Config{NoShowFromInProgress: cfg.Scheduling.NoShowFromInProgress},
		log,
	)
	conflictsSvc := conflictsService.NewService(
		encounterRepository,
		resourceRepository,
		conflictsService.Config{ConflictBufferMinutes: cfg.Scheduling.ConflictBufferMinutes},
		log,
	)
	scheduleRequestsSvc := scheduleRequestsService.NewService(
		scheduleRequestRepository,
		staffClient,
		log,
	)
	calendarSvc := calendarService.NewService(
		encounterRepository,
		availabilityRepository,
		eventCache,
		log,
	)

	// Инициализируем use cases
	createEncounterUseCase := createEncounterUC.NewUseCase(
		encounterRepository,
		resourceRepository,
		patientClient,
		staffClient,
		maintenanceClient,
		notifyClient,
		createCacheInv,
		txMgr,
		createEncounterUC.Config{
			MinNoticeMinutes:      cfg.Scheduling.MinNoticeMinutes,
			AdvanceBookingDays:    cfg.Scheduling.AdvanceBookingDays,
			ConflictBufferMinutes: cfg.Scheduling.ConflictBufferMinutes,
		},
		log,
	)
	rescheduleEncounterUseCase := rescheduleEncounterUC.NewUseCase(
		encounterRepository,
		resourceRepository,
		notifyClient,
		reschedCacheInv,
		txMgr,
		rescheduleEncounterUC.Config{
			MinNoticeMinutes:      cfg.Scheduling.MinNoticeMinutes,
			AdvanceBookingDays:    cfg.Scheduling.AdvanceBookingDays,
			ConflictBufferMinutes: cfg.Scheduling.ConflictBufferMinutes,
		},
		log,
	)
	cancelEncounterUseCase := cancelEncounterUC.NewUseCase(
		encounterRepository,
		resourceRepository,
		notifyClient,
		cancelCacheInv,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityRepository,
		encounterRepository,
		staffClient,
		getAvailableSlotsUC.Config{
			DefaultSlotDurationMinutes: cfg.Scheduling.DefaultSlotDurationMinutes,
			MinNoticeMinutes:           cfg.Scheduling.MinNoticeMinutes,
		},
		log,
	)
	reviewScheduleRequestUseCase := reviewScheduleRequestUC.NewUseCase(
		scheduleRequestRepository,
		availabilityRepository,
		reviewCacheInv,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createEncounter := createEncounterHandler.NewHandler(createEncounterUseCase, log)
	rescheduleEncounter := rescheduleEncounterHandler.NewHandler(rescheduleEncounterUseCase, log)
	cancelEncounter := cancelEncounterHandler.NewHandler(cancelEncounterUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	reviewScheduleRequest := reviewScheduleRequestHandler.NewHandler(reviewScheduleRequestUseCase, log)
	getEncounter := getEncounterHandler.NewHandler(encountersSvc, log)
	listEncounters := listEncountersHandler.NewHandler(encountersSvc, log)
	updateEncounterStatus := updateEncounterStatusHandler.NewHandler(encountersSvc, log)
	checkConflicts := checkConflictsHandler.NewHandler(conflictsSvc, log)
	submitScheduleRequest := submitScheduleRequestHandler.NewHandler(scheduleRequestsSvc, log)
	listScheduleRequests := listScheduleRequestsHandler.NewHandler(scheduleRequestsSvc, log)
	getCalendar := getCalendarHandler.NewHandler(calendarSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты врача на дату
	api.HandleFunc("/professionals/{professionalId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Приёмы ---
	protected.HandleFunc("/encounters", createEncounter.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/encounters/{encounterId}", getEncounter.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/encounters/{encounterId}/reschedule", rescheduleEncounter.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/encounters/{encounterId}/cancel", cancelEncounter.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/encounters/{encounterId}/status", updateEncounterStatus.Handle).Methods(http.MethodPatch)

	// --- Расписание врача ---
	protected.HandleFunc("/professionals/{professionalId}/encounters", listEncounters.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/professionals/{professionalId}/conflicts", checkConflicts.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/professionals/{professionalId}/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// --- Заявки на изменение расписания ---
	protected.HandleFunc("/schedule-requests", submitScheduleRequest.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/professionals/{professionalId}/schedule-requests", listScheduleRequests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/schedule-requests/{requestId}/review", reviewScheduleRequest.Handle).Methods(http.MethodPatch)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

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

	assignPackageHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/assign_package"
	bookSlotHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/book_slot"
	bulkScheduleHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/bulk_schedule"
	cancelEntitlementHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/cancel_entitlement"
	cancelSlotHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/cancel_slot"
	completeSlotHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/complete_slot"
	extendEntitlementHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/extend_entitlement"
	freezeEntitlementHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/freeze_entitlement"
	getEntitlementHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/get_entitlement"
	getMemberEntitlementsHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/get_member_entitlements"
	getMemberSlotsHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/get_member_slots"
	getSlotHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/get_slot"
	getTrainerSlotsHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/get_trainer_slots"
	rescheduleAllHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/reschedule_all"
	rescheduleSlotHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/reschedule_slot"
	suggestScheduleHandler "github.com/m04kA/SMC-TrainingService/internal/api/handlers/suggest_schedule"
	"github.com/m04kA/SMC-TrainingService/internal/api/middleware"
	"github.com/m04kA/SMC-TrainingService/internal/config"
	entitlementRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/entitlement"
	slotRepo "github.com/m04kA/SMC-TrainingService/internal/infra/storage/slot"
	notifierClient "github.com/m04kA/SMC-TrainingService/internal/integrations/notifier"
	packageCatalogClient "github.com/m04kA/SMC-TrainingService/internal/integrations/packagecatalog"
	entitlementsService "github.com/m04kA/SMC-TrainingService/internal/service/entitlements"
	slotsService "github.com/m04kA/SMC-TrainingService/internal/service/slots"
	bookSlotUC "github.com/m04kA/SMC-TrainingService/internal/usecase/book_slot"
	bulkScheduleUC "github.com/m04kA/SMC-TrainingService/internal/usecase/bulk_schedule"
	completeSlotUC "github.com/m04kA/SMC-TrainingService/internal/usecase/complete_slot"
	rescheduleAllUC "github.com/m04kA/SMC-TrainingService/internal/usecase/reschedule_all"
	rescheduleSlotUC "github.com/m04kA/SMC-TrainingService/internal/usecase/reschedule_slot"
	suggestScheduleUC "github.com/m04kA/SMC-TrainingService/internal/usecase/suggest_schedule"
	"github.com/m04kA/SMC-TrainingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainingService/pkg/logger"
	"github.com/m04kA/SMC-TrainingService/pkg/metrics"
	"github.com/m04kA/SMC-TrainingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-TrainingService/pkg/txmanager"
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

	log.Info("Starting SMC-TrainingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	catalogClient := packageCatalogClient.NewClient(
		cfg.PackageCatalog.URL,
		time.Duration(cfg.PackageCatalog.Timeout)*time.Second,
		log,
	)
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PackageCatalog=%s timeout=%ds, Notifier=%s timeout=%ds)",
		cfg.PackageCatalog.URL, cfg.PackageCatalog.Timeout, cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		entitlementRepository *entitlementRepo.Repository
		slotRepository        *slotRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		entitlementRepository = entitlementRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		entitlementRepository = entitlementRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	entitlementsSvc := entitlementsService.NewService(
		entitlementRepository,
		catalogClient,
		txMgr,
		log,
	)
	slotsSvc := slotsService.NewService(
		slotRepository,
		notifier,
		log,
	)

	// Инициализируем use cases
	bookSlotUseCase := bookSlotUC.NewUseCase(
		slotRepository,
		notifier,
		txMgr,
		log,
	)
	rescheduleSlotUseCase := rescheduleSlotUC.NewUseCase(
		slotRepository,
		notifier,
		txMgr,
		log,
	)
	completeSlotUseCase := completeSlotUC.NewUseCase(
		slotRepository,
		entitlementRepository,
		notifier,
		txMgr,
		log,
	)
	bulkScheduleUseCase := bulkScheduleUC.NewUseCase(
		slotRepository,
		entitlementRepository,
		notifier,
		txMgr,
		log,
	)
	rescheduleAllUseCase := rescheduleAllUC.NewUseCase(
		entitlementRepository,
		slotRepository,
		bulkScheduleUseCase,
		txMgr,
		log,
	)
	suggestScheduleUseCase := suggestScheduleUC.NewUseCase(
		entitlementRepository,
		log,
	)

	// Инициализируем handlers
	assignPackage := assignPackageHandler.NewHandler(entitlementsSvc, log)
	getEntitlement := getEntitlementHandler.NewHandler(entitlementsSvc, log)
	getMemberEntitlements := getMemberEntitlementsHandler.NewHandler(entitlementsSvc, log)
	freezeEntitlement := freezeEntitlementHandler.NewHandler(entitlementsSvc, log)
	extendEntitlement := extendEntitlementHandler.NewHandler(entitlementsSvc, log)
	cancelEntitlement := cancelEntitlementHandler.NewHandler(entitlementsSvc, log)
	bookSlot := bookSlotHandler.NewHandler(bookSlotUseCase, log)
	getSlot := getSlotHandler.NewHandler(slotsSvc, log)
	rescheduleSlot := rescheduleSlotHandler.NewHandler(rescheduleSlotUseCase, log)
	completeSlot := completeSlotHandler.NewHandler(completeSlotUseCase, log)
	cancelSlot := cancelSlotHandler.NewHandler(slotsSvc, log)
	bulkSchedule := bulkScheduleHandler.NewHandler(bulkScheduleUseCase, log)
	rescheduleAll := rescheduleAllHandler.NewHandler(rescheduleAllUseCase, log)
	suggestSchedule := suggestScheduleHandler.NewHandler(suggestScheduleUseCase, log)
	getMemberSlots := getMemberSlotsHandler.NewHandler(slotsSvc, log)
	getTrainerSlots := getTrainerSlotsHandler.NewHandler(slotsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Абонементы ---
	// Назначение тарифного пакета клиенту
	protected.HandleFunc("/entitlements", assignPackage.Handle).Methods(http.MethodPost)

	// Получение абонемента по ID
	protected.HandleFunc("/entitlements/{entitlementId}", getEntitlement.Handle).Methods(http.MethodGet)

	// История абонементов клиента
	protected.HandleFunc("/members/{memberId}/entitlements", getMemberEntitlements.Handle).Methods(http.MethodGet)

	// Заморозка абонемента
	protected.HandleFunc("/entitlements/{entitlementId}/freeze", freezeEntitlement.Handle).Methods(http.MethodPost)

	// Продление абонемента
	protected.HandleFunc("/entitlements/{entitlementId}/extend", extendEntitlement.Handle).Methods(http.MethodPost)

	// Отмена абонемента
	protected.HandleFunc("/entitlements/{entitlementId}/cancel", cancelEntitlement.Handle).Methods(http.MethodPatch)

	// --- Слоты ---
	// Бронирование тренировки
	protected.HandleFunc("/slots", bookSlot.Handle).Methods(http.MethodPost)

	// Получение слота по ID
	protected.HandleFunc("/slots/{slotId}", getSlot.Handle).Methods(http.MethodGet)

	// Перенос тренировки
	protected.HandleFunc("/slots/{slotId}/reschedule", rescheduleSlot.Handle).Methods(http.MethodPatch)

	// Завершение тренировки со списанием сессии
	protected.HandleFunc("/slots/{slotId}/complete", completeSlot.Handle).Methods(http.MethodPatch)

	// Отмена тренировки
	protected.HandleFunc("/slots/{slotId}/cancel", cancelSlot.Handle).Methods(http.MethodPatch)

	// --- Планирование ---
	// Пакетное планирование серии тренировок
	protected.HandleFunc("/entitlements/{entitlementId}/bulk-schedule", bulkSchedule.Handle).Methods(http.MethodPost)

	// Полное перепланирование расписания
	protected.HandleFunc("/entitlements/{entitlementId}/reschedule-all", rescheduleAll.Handle).Methods(http.MethodPost)

	// Рекомендация схемы расписания
	protected.HandleFunc("/entitlements/{entitlementId}/suggested-schedule", suggestSchedule.Handle).Methods(http.MethodGet)

	// --- Расписания ---
	// Слоты клиента
	protected.HandleFunc("/members/{memberId}/slots", getMemberSlots.Handle).Methods(http.MethodGet)

	// Расписание тренера
	protected.HandleFunc("/trainers/{trainerId}/slots", getTrainerSlots.Handle).Methods(http.MethodGet)

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

	// Останавливаем сбор метрик connection pool
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

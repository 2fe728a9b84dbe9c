package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	createAppointmentHandler "github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/handlers/create_appointment"
	createServiceHandler "github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/handlers/create_service"
	createStaffHandler "github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/handlers/create_staff"
	deleteStaffHandler "github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/handlers/delete_staff"
	getAppointmentHandler "github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/handlers/get_availability"
	listAppointmentsHandler "github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/handlers/list_appointments"
	rescheduleAppointmentHandler "github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/handlers/reschedule_appointment"
	updateAppointmentStatusHandler "github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/handlers/update_appointment_status"
	updateServiceHandler "github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/handlers/update_service"
	updateStaffHandler "github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/handlers/update_staff"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/api/middleware"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/config"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/domain"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/integrations/notification"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/integrations/subscription"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/scheduling/availability"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/scheduling/conflict"
	"github.com/Trio-Ads/saloneo-deploy-sub005/internal/scheduling/quota"
	appointmentsService "github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/appointments"
	catalogService "github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/catalog"
	staffService "github.com/Trio-Ads/saloneo-deploy-sub005/internal/service/staff"
	createAppointmentUC "github.com/Trio-Ads/saloneo-deploy-sub005/internal/usecase/create_appointment"
	getAvailabilityUC "github.com/Trio-Ads/saloneo-deploy-sub005/internal/usecase/get_availability"
	rescheduleAppointmentUC "github.com/Trio-Ads/saloneo-deploy-sub005/internal/usecase/reschedule_appointment"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/logger"
	"github.com/Trio-Ads/saloneo-deploy-sub005/pkg/metrics"
)

// Notifier публикация событий записи
type Notifier interface {
	Publish(ctx context.Context, a *domain.Appointment) error
}

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

	log.Info("Starting scheduling service...")
	log.Info("Configuration loaded from config.toml (storage=%s)", cfg.Storage.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	st, err := openStorage(cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer st.close()

	// Интеграции
	subscriptionClient := subscription.NewClient(
		cfg.Subscription.URL,
		time.Duration(cfg.Subscription.Timeout)*time.Second,
		log,
	)
	log.Info("Subscription client initialized (url=%q timeout=%ds)", cfg.Subscription.URL, cfg.Subscription.Timeout)

	var (
		notifier   Notifier = notification.Nop{}
		dispatcher *notification.Dispatcher
	)
	if cfg.Notifications.URL != "" {
		conn, err := notification.Dial(cfg.Notifications.URL, cfg.Notifications.Queue, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer conn.Close()

		publisher := notification.NewPublisher(
			conn,
			cfg.Notifications.Queue,
			time.Duration(cfg.Notifications.PublishTimeout)*time.Second,
			log,
		)
		dispatcher = notification.NewDispatcher(publisher, cfg.Notifications.BufferSize, log)
		notifier = dispatcher
		log.Info("Appointment events published to queue %s (buffer=%d)", cfg.Notifications.Queue, cfg.Notifications.BufferSize)
	} else {
		log.Warn("Notifications disabled: notifications.url is empty")
	}

	// Ядро планирования
	quotaEnforcer := quota.NewEnforcer(
		st.appointments,
		st.staff,
		st.services,
		subscriptionClient,
		metricsCollector,
		log,
	)
	conflictDetector := conflict.NewDetector(st.appointments, metricsCollector, log)
	calculator := availability.NewCalculator(cfg.Scheduling.SlotStepMinutes)
	retries := cfg.Scheduling.Retries()

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		st.salons,
		st.clients,
		st.staff,
		st.services,
		st.appointments,
		conflictDetector,
		quotaEnforcer,
		notifier,
		metricsCollector,
		st.txManager,
		log,
	).WithStaleWriteRetries(retries)

	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		st.salons,
		st.staff,
		st.services,
		st.appointments,
		conflictDetector,
		quotaEnforcer,
		notifier,
		metricsCollector,
		st.txManager,
		log,
	).WithStaleWriteRetries(retries)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		st.salons,
		st.staff,
		st.services,
		st.appointments,
		calculator,
		cfg.Scheduling.MaxRangeDays,
		log,
	)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		st.appointments,
		st.salons,
		notifier,
		metricsCollector,
		st.txManager,
		log,
	).WithStaleWriteRetries(retries)
	staffSvc := staffService.NewService(
		st.staff,
		st.appointments,
		st.salons,
		quotaEnforcer,
		notifier,
		st.txManager,
		log,
	)
	catalogSvc := catalogService.NewService(
		st.services,
		st.salons,
		quotaEnforcer,
		st.txManager,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	createStaff := createStaffHandler.NewHandler(staffSvc, log)
	updateStaff := updateStaffHandler.NewHandler(staffSvc, log)
	deleteStaff := deleteStaffHandler.NewHandler(staffSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix; салон задаёт шлюз в X-Salon-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.SalonScope)

	// --- Доступность ---
	api.HandleFunc("/staff/{staffId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// --- Мастера ---
	api.HandleFunc("/staff", createStaff.Handle).Methods(http.MethodPost)
	api.HandleFunc("/staff/{staffId}", updateStaff.Handle).Methods(http.MethodPut)
	api.HandleFunc("/staff/{staffId}", deleteStaff.Handle).Methods(http.MethodDelete)

	// --- Услуги ---
	api.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	api.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)

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
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Отправляем накопленные уведомления
	if dispatcher != nil {
		if err := dispatcher.Close(shutdownCtx); err != nil {
			log.Error("Notifications not flushed: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}

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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-TrainerBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-TrainerBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TrainerBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-TrainerBooking/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/SMC-TrainerBooking/internal/api/handlers/get_client_bookings"
	getTrainerBookingsHandler "github.com/m04kA/SMC-TrainerBooking/internal/api/handlers/get_trainer_bookings"
	getTrainerScheduleHandler "github.com/m04kA/SMC-TrainerBooking/internal/api/handlers/get_trainer_schedule"
	getWorkingHoursHandler "github.com/m04kA/SMC-TrainerBooking/internal/api/handlers/get_working_hours"
	rescheduleBookingHandler "github.com/m04kA/SMC-TrainerBooking/internal/api/handlers/reschedule_booking"
	saveWorkingHoursHandler "github.com/m04kA/SMC-TrainerBooking/internal/api/handlers/save_working_hours"
	updateBookingStatusHandler "github.com/m04kA/SMC-TrainerBooking/internal/api/handlers/update_booking_status"
	updateTrainerSettingsHandler "github.com/m04kA/SMC-TrainerBooking/internal/api/handlers/update_trainer_settings"
	"github.com/m04kA/SMC-TrainerBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TrainerBooking/internal/config"
	"github.com/m04kA/SMC-TrainerBooking/internal/infra/cache"
	"github.com/m04kA/SMC-TrainerBooking/internal/jobs"
	"github.com/m04kA/SMC-TrainerBooking/internal/schedule"
	bookingsService "github.com/m04kA/SMC-TrainerBooking/internal/service/bookings"
	workingHoursService "github.com/m04kA/SMC-TrainerBooking/internal/service/workinghours"
	createBookingUC "github.com/m04kA/SMC-TrainerBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-TrainerBooking/internal/usecase/get_available_slots"
	getTrainerScheduleUC "github.com/m04kA/SMC-TrainerBooking/internal/usecase/get_trainer_schedule"
	rescheduleBookingUC "github.com/m04kA/SMC-TrainerBooking/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-TrainerBooking/pkg/logger"
	"github.com/m04kA/SMC-TrainerBooking/pkg/metrics"
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

	log.Info("Starting SMC-TrainerBooking (gateway=%s)...", cfg.Gateway.Mode)

	// Validate уже проверил часовой пояс и перерыв
	loc, _ := cfg.Schedule.Location()
	defaultBreak, _ := cfg.Schedule.DefaultBreak()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	gw, err := newGateway(startupCtx, cfg, defaultBreak, metricsCollector, stopMetricsCh, log)
	if err != nil {
		cancelStartup()
		log.Fatal("Failed to initialize booking gateway: %v", err)
	}
	defer gw.Close()

	var scheduleCache *cache.ScheduleCache
	if scheduleCache = withCache(startupCtx, gw, cfg.Redis, log); scheduleCache == nil {
		log.Info("Working hours cache disabled")
	}
	cancelStartup()

	resolver := schedule.NewResolver(loc, defaultBreak)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(gw.bookings, gw.schedules, resolver, gw.tx, metricsCollector, log)

	var invalidator workingHoursService.CacheInvalidator
	if scheduleCache != nil {
		invalidator = scheduleCache
	}
	workingHoursSvc := workingHoursService.NewService(gw.schedules, invalidator, gw.tx, defaultBreak, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(gw.bookings, gw.schedules, resolver, gw.tx, metricsCollector, log)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(gw.bookings, gw.schedules, resolver, gw.tx, metricsCollector, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(gw.bookings, gw.schedules, resolver, metricsCollector, log)
	getTrainerScheduleUseCase := getTrainerScheduleUC.NewUseCase(gw.bookings, gw.schedules, resolver, log)

	// Фоновые задачи
	scheduler := jobs.NewScheduler(loc, time.Duration(cfg.Jobs.Timeout)*time.Second, log)
	if cfg.Jobs.AutoCompleteEnabled && gw.completer != nil {
		autoComplete := jobs.NewAutoCompleteJob(gw.completer, log)
		if err := scheduler.Register("auto_complete", cfg.Jobs.AutoCompleteSchedule, autoComplete.Run); err != nil {
			log.Fatal("Failed to register auto-complete job: %v", err)
		}
	}
	scheduler.Start()

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, loc, log)
	getTrainerSchedule := getTrainerScheduleHandler.NewHandler(getTrainerScheduleUseCase, loc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(workingHoursSvc, log)
	saveWorkingHours := saveWorkingHoursHandler.NewHandler(workingHoursSvc, log)
	updateTrainerSettings := updateTrainerSettingsHandler.NewHandler(workingHoursSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, loc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, loc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getTrainerBookings := getTrainerBookingsHandler.NewHandler(bookingSvc, loc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("HTTP metrics middleware enabled")
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Публичные endpoints
	api.HandleFunc("/trainers/{trainerId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/trainers/{trainerId}/schedule", getTrainerSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/trainers/{trainerId}/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)

	// Защищенные endpoints (X-User-ID)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/trainers/{trainerId}/bookings", getTrainerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/trainers/{trainerId}/working-hours", saveWorkingHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/trainers/{trainerId}/settings", updateTrainerSettings.Handle).Methods(http.MethodPut)

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

	if err := scheduler.Stop(shutdownCtx); err != nil {
		log.Error("Background jobs did not finish in time: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

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

	calculatePriceHandler "github.com/makarovaK/STR-BookingService/internal/api/handlers/calculate_price"
	cancelBookingHandler "github.com/makarovaK/STR-BookingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/makarovaK/STR-BookingService/internal/api/handlers/check_availability"
	completeBookingHandler "github.com/makarovaK/STR-BookingService/internal/api/handlers/complete_booking"
	confirmBookingHandler "github.com/makarovaK/STR-BookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/makarovaK/STR-BookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/makarovaK/STR-BookingService/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/makarovaK/STR-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/makarovaK/STR-BookingService/internal/api/handlers/get_booking"
	getRoomBookingsHandler "github.com/makarovaK/STR-BookingService/internal/api/handlers/get_room_bookings"
	getUserBookingsHandler "github.com/makarovaK/STR-BookingService/internal/api/handlers/get_user_bookings"
	noShowBookingHandler "github.com/makarovaK/STR-BookingService/internal/api/handlers/no_show_booking"
	"github.com/makarovaK/STR-BookingService/internal/api/middleware"
	"github.com/makarovaK/STR-BookingService/internal/config"
	bookingRepo "github.com/makarovaK/STR-BookingService/internal/infra/storage/booking"
	notifyServiceClient "github.com/makarovaK/STR-BookingService/internal/integrations/notifyservice"
	studioServiceClient "github.com/makarovaK/STR-BookingService/internal/integrations/studioservice"
	bookingsService "github.com/makarovaK/STR-BookingService/internal/service/bookings"
	createBookingUC "github.com/makarovaK/STR-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/makarovaK/STR-BookingService/internal/usecase/get_available_slots"
	"github.com/makarovaK/STR-BookingService/pkg/dbmetrics"
	"github.com/makarovaK/STR-BookingService/pkg/logger"
	"github.com/makarovaK/STR-BookingService/pkg/metrics"
	"github.com/makarovaK/STR-BookingService/pkg/simpletxmanager"
	"github.com/makarovaK/STR-BookingService/pkg/txmanager"
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

	log.Info("Starting STR-BookingService...")
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
	studioClient := studioServiceClient.NewClient(
		cfg.StudioService.URL,
		time.Duration(cfg.StudioService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StudioService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.StudioService.URL, cfg.StudioService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var bookingRepository *bookingRepo.Repository

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManagerWithMetrics(wrappedDB, metricsCollector)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервис
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		studioClient,
		notifyClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		studioClient,
		notifyClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		studioClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	noShowBooking := noShowBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	calculatePrice := calculatePriceHandler.NewHandler(bookingSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getRoomBookings := getRoomBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
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
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение доступных слотов комнаты
	api.HandleFunc("/rooms/{roomId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Расчет цены бронирования без создания
	api.HandleFunc("/rooms/{roomId}/price",
		calculatePrice.Handle).Methods(http.MethodGet)

	// Проверка доступности интервала
	api.HandleFunc("/rooms/{roomId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Переходы статусов
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/no-show", noShowBooking.Handle).Methods(http.MethodPatch)

	// Физическое удаление (административный путь)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление комнатами (для менеджеров студии) ---
	// Список бронирований комнаты с фильтрацией
	protected.HandleFunc("/rooms/{roomId}/bookings", getRoomBookings.Handle).Methods(http.MethodGet)

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

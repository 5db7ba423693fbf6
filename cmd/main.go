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
	"github.com/rs/cors"

	createBookingHandler "github.com/hybrid24/H24-BookingService/internal/api/handlers/create_booking"
	erpPingHandler "github.com/hybrid24/H24-BookingService/internal/api/handlers/erp_ping"
	listBookingsHandler "github.com/hybrid24/H24-BookingService/internal/api/handlers/list_bookings"
	lookupClientHandler "github.com/hybrid24/H24-BookingService/internal/api/handlers/lookup_client"
	purgeBookingsHandler "github.com/hybrid24/H24-BookingService/internal/api/handlers/purge_bookings"
	syncBookingHandler "github.com/hybrid24/H24-BookingService/internal/api/handlers/sync_booking"
	updateBookingStatusHandler "github.com/hybrid24/H24-BookingService/internal/api/handlers/update_booking_status"
	"github.com/hybrid24/H24-BookingService/internal/api/middleware"
	"github.com/hybrid24/H24-BookingService/internal/config"
	bookingRepo "github.com/hybrid24/H24-BookingService/internal/infra/storage/booking"
	"github.com/hybrid24/H24-BookingService/internal/integrations/onec"
	"github.com/hybrid24/H24-BookingService/internal/integrations/telegram"
	bookingsService "github.com/hybrid24/H24-BookingService/internal/service/bookings"
	erpsyncService "github.com/hybrid24/H24-BookingService/internal/service/erpsync"
	createBookingUC "github.com/hybrid24/H24-BookingService/internal/usecase/create_booking"
	"github.com/hybrid24/H24-BookingService/pkg/dbmetrics"
	"github.com/hybrid24/H24-BookingService/pkg/logger"
	"github.com/hybrid24/H24-BookingService/pkg/metrics"
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

	log.Info("Starting H24-BookingService...")
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозиторий заявок (с метриками или без)
	var bookingRepository *bookingRepo.Repository
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
	}

	// Инициализируем клиента 1С (если интеграция настроена)
	var erpClient erpsyncService.ERPClient
	if cfg.ERP.Enabled() {
		erpClient = onec.NewClient(onec.Config{
			BaseURL:            cfg.ERP.BaseURL,
			User:               cfg.ERP.User,
			Password:           cfg.ERP.Password,
			DocUser:            cfg.ERP.DocUser,
			DocPassword:        cfg.ERP.DocPassword,
			InsecureSkipVerify: cfg.ERP.InsecureSkipVerify,
		}, log)
		log.Info("1C OData client initialized (base_url=%s)", cfg.ERP.BaseURL)
	} else {
		log.Warn("1C integration is not configured, sync endpoints will report failures")
	}

	// Инициализируем клиента Telegram (если уведомления настроены)
	var notifier createBookingUC.Notifier
	if cfg.Telegram.Enabled() {
		notifier = telegram.NewClient(
			cfg.Telegram.BotToken,
			cfg.Telegram.ChatID,
			time.Duration(cfg.Telegram.Timeout)*time.Second,
			log,
		)
		log.Info("Telegram notifications enabled (chat_id=%s)", cfg.Telegram.ChatID)
	} else {
		log.Info("Telegram notifications are not configured")
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	erpSyncSvc := erpsyncService.NewService(erpClient, bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		erpSyncSvc,
		notifier,
		log,
	)

	// Инициализируем handlers
	lookupClient := lookupClientHandler.NewHandler(erpSyncSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	syncBooking := syncBookingHandler.NewHandler(erpSyncSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	purgeBookings := purgeBookingsHandler.NewHandler(bookingSvc, log)
	erpPing := erpPingHandler.NewHandler(erpSyncSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Клиенты ---
	// Поиск клиента в 1С по телефону (для предзаполнения формы)
	api.HandleFunc("/clients/lookup", lookupClient.Handle).Methods(http.MethodGet)

	// --- Заявки ---
	// Создание заявки с сайта
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Повторная передача заявки в 1С
	api.HandleFunc("/bookings/{bookingId}/sync", syncBooking.Handle).Methods(http.MethodPost)

	// --- Администрирование ---
	// Список заявок с фильтрацией
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Обновление статуса заявки
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Удаление заявок за период
	api.HandleFunc("/bookings", purgeBookings.Handle).Methods(http.MethodDelete)

	// Проверка доступности 1С
	api.HandleFunc("/erp/ping", erpPing.Handle).Methods(http.MethodGet)

	// CORS для запросов с сайта
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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

package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers"
	cancelBookingHandler "github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers/cancel_booking"
	checkInHandler "github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers/check_in"
	checkOutHandler "github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers/check_out"
	createBookingHandler "github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers/get_available_slots"
	getBookingsHandler "github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers/get_bookings"
	getDashboardStatsHandler "github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers/get_dashboard_stats"
	getInstrumentTypesHandler "github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers/get_instrument_types"
	getPenaltyPolicyHandler "github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers/get_penalty_policy"
	getStudentsHandler "github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers/get_students"
	updatePenaltyPolicyHandler "github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers/update_penalty_policy"
	"github.com/m04kA/SMC-InstrumentReservation/internal/api/middleware"
	"github.com/m04kA/SMC-InstrumentReservation/internal/config"
	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/internal/infra/cache"
	"github.com/m04kA/SMC-InstrumentReservation/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-InstrumentReservation/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-InstrumentReservation/internal/infra/storage/catalog"
	policyRepo "github.com/m04kA/SMC-InstrumentReservation/internal/infra/storage/policy"
	studentRepo "github.com/m04kA/SMC-InstrumentReservation/internal/infra/storage/student"
	bookingsService "github.com/m04kA/SMC-InstrumentReservation/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-InstrumentReservation/internal/service/catalog"
	policyService "github.com/m04kA/SMC-InstrumentReservation/internal/service/policy"
	studentsService "github.com/m04kA/SMC-InstrumentReservation/internal/service/students"
	cancelBookingUC "github.com/m04kA/SMC-InstrumentReservation/internal/usecase/cancel_booking"
	checkInUC "github.com/m04kA/SMC-InstrumentReservation/internal/usecase/check_in"
	checkOutUC "github.com/m04kA/SMC-InstrumentReservation/internal/usecase/check_out"
	createBookingUC "github.com/m04kA/SMC-InstrumentReservation/internal/usecase/create_booking"
	"github.com/m04kA/SMC-InstrumentReservation/internal/usecase/penalty"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/dbmetrics"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/fieldcodec"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/logger"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/metrics"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/txmanager"
)

// eventPublisher общий интерфейс для RabbitMQ и noop публикатора
type eventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
	Close() error
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

	log.Info("Starting SMC-InstrumentReservation...")
	log.Info("Configuration loaded from config.toml (timezone=%s)", cfg.Server.Timezone)

	location := cfg.Location()
	queryTimeout := time.Duration(cfg.Database.QueryTimeout) * time.Second

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
	pingCtx, pingCancel := context.WithTimeout(context.Background(), queryTimeout)
	err = db.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка БД: без метрик только прокидывает вызовы
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Шифрование персональных полей студентов
	codec, err := fieldcodec.NewFromBase64(cfg.Security.FieldKey)
	if err != nil {
		log.Fatal("Failed to initialize field codec: %v", err)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB, codec)
	studentRepository := studentRepo.NewRepository(wrappedDB, codec)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	policyRepository := policyRepo.NewRepository(wrappedDB)

	// Кэш справочника типов приборов (опционально)
	var (
		redisClient   *redis.Client
		catalogCache  *cache.Cache
		cacheForUsage catalogService.InstrumentTypeCache
	)
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedisClient(context.Background(), cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
		if err != nil {
			log.Warn("Redis unavailable, instrument types cache disabled: %v", err)
		} else {
			catalogCache = cache.New(redisClient, cfg.Cache.Prefix, time.Duration(cfg.Cache.TTL)*time.Second, log)
			// Справочник мог измениться, пока сервис был остановлен
			catalogCache.InvalidateInstrumentTypes(context.Background())
			cacheForUsage = catalogCache
			log.Info("Instrument types cache enabled (addr=%s, ttl=%ds)", cfg.Cache.Addr, cfg.Cache.TTL)
		}
	}

	// Публикация событий (опционально)
	var publisher eventPublisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		amqpPublisher, err := events.Connect(cfg.Events.URL, cfg.Events.Exchange, log)
		if err != nil {
			log.Warn("RabbitMQ unavailable, booking events disabled: %v", err)
		} else {
			publisher = amqpPublisher
			log.Info("Booking events published to exchange %s", cfg.Events.Exchange)
		}
	}

	timeProvider := &createBookingUC.RealTimeProvider{Location: location}

	// Инициализируем сервисы
	policySvc := policyService.NewService(
		policyRepository,
		domain.PenaltyPolicy{
			LateCancelWindowMinutes: cfg.Policy.LateCancelWindowMinutes,
			CheckInGraceMinutes:     cfg.Policy.CheckInGraceMinutes,
			CheckOutGraceMinutes:    cfg.Policy.CheckOutGraceMinutes,
			PenaltyPoints:           cfg.Policy.PenaltyPoints,
			PenalizedThreshold:      cfg.Policy.PenalizedThreshold,
		},
		log,
	)
	catalogSvc := catalogService.NewService(catalogRepository, cacheForUsage, location, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	studentSvc := studentsService.NewService(studentRepository, timeProvider, log)
	penaltyIssuer := penalty.NewIssuer(studentRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		studentRepository,
		txMgr,
		publisher,
		metricsCollector,
		timeProvider,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		policySvc,
		penaltyIssuer,
		txMgr,
		publisher,
		metricsCollector,
		timeProvider,
		log,
	)
	checkInUseCase := checkInUC.NewUseCase(
		bookingRepository,
		policySvc,
		penaltyIssuer,
		txMgr,
		publisher,
		metricsCollector,
		timeProvider,
		log,
	).WithEarlyCheckInLimit(cfg.Policy.EarlyCheckInMinutes)
	checkOutUseCase := checkOutUC.NewUseCase(
		bookingRepository,
		policySvc,
		penaltyIssuer,
		txMgr,
		publisher,
		metricsCollector,
		timeProvider,
		log,
	)

	// Инициализируем handlers
	getDashboardStats := getDashboardStatsHandler.NewHandler(catalogSvc, log)
	getStudents := getStudentsHandler.NewHandler(studentSvc, log)
	getInstrumentTypes := getInstrumentTypesHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(catalogSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	checkIn := checkInHandler.NewHandler(checkInUseCase, log)
	checkOut := checkOutHandler.NewHandler(checkOutUseCase, log)
	getPenaltyPolicy := getPenaltyPolicyHandler.NewHandler(policySvc, log)
	updatePenaltyPolicy := updatePenaltyPolicyHandler.NewHandler(policySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check: сервис жив и БД отвечает
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), queryTimeout)
		defer cancel()
		if err := wrappedDB.PingContext(ctx); err != nil {
			log.Warn("GET /health - database ping failed: %v", err)
			handlers.RespondServiceUnavailable(w)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix(strings.TrimRight(cfg.Server.BasePath, "/")).Subrouter()
	api.Use(middleware.Timeout(queryTimeout))

	// --- Справочники и дашборд ---
	api.HandleFunc("/dashboard/stats", getDashboardStats.Handle).Methods(http.MethodGet)
	api.HandleFunc("/students", getStudents.Handle).Methods(http.MethodGet)
	api.HandleFunc("/instrument-types", getInstrumentTypes.Handle).Methods(http.MethodGet)
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/checkin", checkIn.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/checkout", checkOut.Handle).Methods(http.MethodPost)

	// --- Политика штрафов ---
	api.HandleFunc("/penalty-policy", getPenaltyPolicy.Handle).Methods(http.MethodGet)
	api.HandleFunc("/penalty-policy", updatePenaltyPolicy.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS([]string{"*"})(r),
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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close event publisher: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}

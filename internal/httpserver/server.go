// Package httpserver собирает сервисы приложения и HTTP-маршруты.
package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fdg312/meal-hub/internal/ai"
	"github.com/fdg312/meal-hub/internal/blob"
	"github.com/fdg312/meal-hub/internal/config"
	"github.com/fdg312/meal-hub/internal/dailylog"
	"github.com/fdg312/meal-hub/internal/meals"
	"github.com/fdg312/meal-hub/internal/nag"
	"github.com/fdg312/meal-hub/internal/push"
	"github.com/fdg312/meal-hub/internal/reports"
	"github.com/fdg312/meal-hub/internal/settings"
	"github.com/fdg312/meal-hub/internal/storage"
	"github.com/fdg312/meal-hub/internal/storage/memory"
	"github.com/fdg312/meal-hub/internal/storage/postgres"
	"github.com/fdg312/meal-hub/internal/targets"
)

// Server представляет HTTP сервер
type Server struct {
	config    *config.Config
	mux       *http.ServeMux
	storage   storage.Storage
	nagEngine *nag.Engine
	now       func() time.Time
}

// New создаёт новый HTTP сервер
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
		now:    resolveClock(cfg),
	}

	s.initStorage()
	s.routes()
	return s
}

// resolveClock возвращает настенные часы движка с учётом TIME_ZONE.
func resolveClock(cfg *config.Config) func() time.Time {
	if cfg.TimeZone == "" {
		return time.Now
	}
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		log.Printf("WARN config: bad TIME_ZONE=%q, using local clock: %v", cfg.TimeZone, err)
		return time.Now
	}
	return func() time.Time { return time.Now().In(loc) }
}

// initStorage инициализирует storage (Memory или Postgres)
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("Используется in-memory storage")
		s.storage = memory.NewMemoryStorage()
		return
	}

	log.Println("Подключение к PostgreSQL...")
	pgStorage, err := postgres.New(context.Background(), s.config.DatabaseURL)
	if err != nil {
		log.Printf("Ошибка подключения к PostgreSQL: %v", err)
		log.Println("Fallback на in-memory storage")
		s.storage = memory.NewMemoryStorage()
		return
	}

	log.Println("PostgreSQL подключен успешно")
	s.storage = pgStorage
}

// routes регистрирует маршруты
func (s *Server) routes() {
	// Health check
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Settings API
	settingsService := settings.NewService(s.getSettingsStorage(), s.config)
	settingsHandler := settings.NewHandler(settingsService)
	s.mux.HandleFunc("GET /v1/settings", settingsHandler.HandleGet)
	s.mux.HandleFunc("PUT /v1/settings", settingsHandler.HandlePut)
	s.mux.HandleFunc("POST /v1/settings", settingsHandler.HandlePut)

	// Targets API
	targetsService := targets.NewService(s.getTargetsStorage())
	targetsHandler := targets.NewHandler(targetsService)
	s.mux.HandleFunc("GET /v1/targets", targetsHandler.HandleGet)
	s.mux.HandleFunc("PUT /v1/targets", targetsHandler.HandlePut)
	s.mux.HandleFunc("POST /v1/targets", targetsHandler.HandlePut)

	// Daily log API
	dailyLogService := dailylog.NewService(s.getDailyLogStorage(), targetsService)
	dailyLogHandler := dailylog.NewHandler(dailyLogService, s.now)
	s.mux.HandleFunc("GET /v1/status", dailyLogHandler.HandleStatus)
	s.mux.HandleFunc("POST /v1/checkin", dailyLogHandler.HandleCheckin)

	// Push API
	pushSender := push.NewHTTPSender(s.config.Push)
	pushService := push.NewService(s.getSubscriptionsStorage(), pushSender, s.config.Push)
	pushHandler := push.NewHandler(pushService)
	s.mux.HandleFunc("POST /v1/subscribe", pushHandler.HandleSubscribe)
	s.mux.HandleFunc("POST /v1/unsubscribe", pushHandler.HandleUnsubscribe)
	s.mux.HandleFunc("POST /v1/push-test", pushHandler.HandlePushTest)

	// Meals API
	aiProvider := ai.NewProvider(s.config)
	photoStore, blobMode, err := blob.NewBlobStore(s.config.Blob, log.Default())
	if err != nil {
		log.Fatalf("blob store init failed: %v", err)
	}
	log.Printf("INFO meals: photo storage mode=%s", blobMode)
	mealsService := meals.NewService(dailyLogService, targetsService, aiProvider, photoStore, s.now)
	mealsHandler := meals.NewHandler(mealsService, s.config.UploadMaxMB, s.config.UploadAllowedMime)
	s.mux.HandleFunc("POST /v1/log-meal", mealsHandler.HandleLogMeal)
	s.mux.HandleFunc("POST /v1/analyze-meal", mealsHandler.HandleAnalyzeMeal)

	// Nag engine API
	s.nagEngine = nag.NewEngine(settingsService, targetsService, dailyLogService, pushService, s.getNagStateStorage(), s.now)
	nagHandler := nag.NewHandler(s.nagEngine)
	s.mux.HandleFunc("POST /v1/nag-check", nagHandler.HandleNagCheck)

	// Reports API
	reportsGenerator := reports.NewGenerator(dailyLogService, targetsService, settingsService)
	reportsHandler := reports.NewHandler(reportsGenerator, s.now)
	s.mux.HandleFunc("GET /v1/report", reportsHandler.HandleReport)
}

// NagEngine возвращает движок напоминаний для внешнего планировщика.
func (s *Server) NagEngine() *nag.Engine {
	return s.nagEngine
}

// StartNagScheduler запускает внутренний тикер напоминаний.
func (s *Server) StartNagScheduler(ctx context.Context, period time.Duration) {
	nag.NewScheduler(s.nagEngine, period).Start(ctx)
}

func (s *Server) getDailyLogStorage() storage.DailyLogStorage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetDailyLogStorage()
	case *postgres.PostgresStorage:
		return st.GetDailyLogStorage()
	default:
		log.Fatal("unknown storage type")
		return nil
	}
}

func (s *Server) getSettingsStorage() storage.SettingsStorage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetSettingsStorage()
	case *postgres.PostgresStorage:
		return st.GetSettingsStorage()
	default:
		log.Fatal("unknown storage type")
		return nil
	}
}

func (s *Server) getTargetsStorage() storage.TargetsStorage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetTargetsStorage()
	case *postgres.PostgresStorage:
		return st.GetTargetsStorage()
	default:
		log.Fatal("unknown storage type")
		return nil
	}
}

func (s *Server) getSubscriptionsStorage() storage.SubscriptionsStorage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetSubscriptionsStorage()
	case *postgres.PostgresStorage:
		return st.GetSubscriptionsStorage()
	default:
		log.Fatal("unknown storage type")
		return nil
	}
}

func (s *Server) getNagStateStorage() storage.NagStateStorage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetNagStateStorage()
	case *postgres.PostgresStorage:
		return st.GetNagStateStorage()
	default:
		log.Fatal("unknown storage type")
		return nil
	}
}

// handleHealthz возвращает статус сервера
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Handler возвращает полную цепочку middleware для тестов и Start.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)
	return handler
}

// Start запускает HTTP сервер
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	log.Printf("Сервер запущен на http://localhost%s\n", addr)
	log.Printf("Health check: http://localhost%s/healthz\n", addr)
	log.Printf("Status API: http://localhost%s/v1/status\n", addr)

	return http.ListenAndServe(addr, s.Handler())
}

// Close закрывает storage и освобождает ресурсы
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}

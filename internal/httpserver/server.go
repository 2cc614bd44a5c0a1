package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/pratofit/server/internal/auth"
	"github.com/pratofit/server/internal/blob"
	"github.com/pratofit/server/internal/config"
	"github.com/pratofit/server/internal/dailylog"
	"github.com/pratofit/server/internal/goals"
	"github.com/pratofit/server/internal/mealplan"
	"github.com/pratofit/server/internal/nutrition"
	"github.com/pratofit/server/internal/photos"
	"github.com/pratofit/server/internal/profiles"
	"github.com/pratofit/server/internal/recipes"
	"github.com/pratofit/server/internal/reports"
	"github.com/pratofit/server/internal/shopping"
	"github.com/pratofit/server/internal/storage"
	"github.com/pratofit/server/internal/storage/memory"
	"github.com/pratofit/server/internal/storage/postgres"
)

// Storage is what the server needs from a backend: the profile store plus
// accessors for every feature store. Both the memory and Postgres backends
// implement it.
type Storage interface {
	storage.Storage

	GetRecipesStorage() storage.RecipesStorage
	GetMealPlanStorage() storage.MealPlanStorage
	GetDailyLogStorage() storage.DailyLogStorage
	GetShoppingStorage() storage.ShoppingStorage
	GetPhotosStorage() storage.PhotosStorage
	GetReportsStorage() storage.ReportsStorage
}

// Server is the HTTP server
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	storage        Storage
	authMiddleware *auth.Middleware
}

// New creates a new HTTP server
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	s.initStorage()
	s.routes()

	return s
}

// initStorage picks the backend: Postgres when DATABASE_URL is set and
// reachable, in-memory otherwise.
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("Using in-memory storage")
		s.storage = memory.New()
		return
	}

	log.Println("Connecting to PostgreSQL...")
	pgStorage, err := postgres.New(context.Background(), s.config.DatabaseURL)
	if err != nil {
		log.Printf("PostgreSQL connection failed: %v", err)
		log.Println("Falling back to in-memory storage")
		s.storage = memory.New()
		return
	}

	log.Println("PostgreSQL connected")
	s.storage = pgStorage
}

// routes wires services and registers all endpoints
func (s *Server) routes() {
	// Health check (no auth required)
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Auth API (no auth required)
	authService := auth.NewService(s.config)
	authHandler := auth.NewHandlers(authService)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)

	// POST /v1/auth/dev - local dev token
	s.mux.HandleFunc("POST /v1/auth/dev", authHandler.HandleDevAuth)

	// Profiles API
	profileService := profiles.NewService(s.storage)
	profileHandler := profiles.NewHandler(profileService)

	s.mux.HandleFunc("GET /v1/profiles", profileHandler.HandleList)
	s.mux.HandleFunc("POST /v1/profiles", profileHandler.HandleCreate)
	s.mux.HandleFunc("GET /v1/profiles/{id}", profileHandler.HandleGet)
	s.mux.HandleFunc("PATCH /v1/profiles/{id}", profileHandler.HandleUpdate)
	s.mux.HandleFunc("DELETE /v1/profiles/{id}", profileHandler.HandleDelete)

	// Goals API
	goalsService := goals.NewService(s.storage)
	goalsHandler := goals.NewHandler(goalsService)

	s.mux.HandleFunc("GET /v1/goals", goalsHandler.HandleGet)
	s.mux.HandleFunc("POST /v1/goals/recalculate", goalsHandler.HandleRecalculate)

	// Recipes API (read-only catalog)
	recipesStorage := s.storage.GetRecipesStorage()
	recipesService := recipes.NewService(recipesStorage)
	recipesHandler := recipes.NewHandler(recipesService)

	s.mux.HandleFunc("GET /v1/recipes", recipesHandler.HandleList)
	s.mux.HandleFunc("GET /v1/recipes/{id}", recipesHandler.HandleGet)

	// Meal plan API
	slotsStorage := s.storage.GetMealPlanStorage()
	mealPlanService := mealplan.NewService(slotsStorage, recipesStorage, nil)
	mealPlanHandler := mealplan.NewHandler(mealPlanService)

	s.mux.HandleFunc("PUT /v1/meal/slots", mealPlanHandler.HandleAssign)
	s.mux.HandleFunc("DELETE /v1/meal/slots", mealPlanHandler.HandleDelete)
	s.mux.HandleFunc("POST /v1/meal/slots/toggle", mealPlanHandler.HandleToggle)
	s.mux.HandleFunc("GET /v1/meal/day", mealPlanHandler.HandleDay)
	s.mux.HandleFunc("GET /v1/meal/week", mealPlanHandler.HandleWeek)
	s.mux.HandleFunc("POST /v1/meal/generate", mealPlanHandler.HandleGenerate)

	// Daily log API
	logsStorage := s.storage.GetDailyLogStorage()
	dailyLogService := dailylog.NewService(logsStorage, s.storage)
	dailyLogHandler := dailylog.NewHandler(dailyLogService)

	s.mux.HandleFunc("POST /v1/log/water", dailyLogHandler.HandleWater)
	s.mux.HandleFunc("POST /v1/log/sleep", dailyLogHandler.HandleSleep)
	s.mux.HandleFunc("POST /v1/log/weight", dailyLogHandler.HandleWeight)
	s.mux.HandleFunc("POST /v1/log/exercise", dailyLogHandler.HandleExercise)
	s.mux.HandleFunc("GET /v1/log/day", dailyLogHandler.HandleDay)
	s.mux.HandleFunc("GET /v1/log/range", dailyLogHandler.HandleRange)

	// Nutrition API
	nutritionService := nutrition.NewService(s.storage, slotsStorage, recipesStorage, logsStorage)
	nutritionHandler := nutrition.NewHandler(nutritionService)

	s.mux.HandleFunc("GET /v1/nutrition/day", nutritionHandler.HandleDay)

	// Shopping list API
	shoppingService := shopping.NewService(s.storage.GetShoppingStorage(), slotsStorage, recipesStorage)
	shoppingHandler := shopping.NewHandler(shoppingService)

	s.mux.HandleFunc("POST /v1/shopping/regenerate", shoppingHandler.HandleRegenerate)
	s.mux.HandleFunc("GET /v1/shopping", shoppingHandler.HandleList)
	s.mux.HandleFunc("POST /v1/shopping/items", shoppingHandler.HandleAddItem)
	s.mux.HandleFunc("POST /v1/shopping/items/toggle", shoppingHandler.HandleToggle)
	s.mux.HandleFunc("DELETE /v1/shopping/items/{id}", shoppingHandler.HandleDeleteItem)
	s.mux.HandleFunc("POST /v1/shopping/clear-checked", shoppingHandler.HandleClearChecked)
	s.mux.HandleFunc("DELETE /v1/shopping", shoppingHandler.HandleClear)

	// Blob store for photos and report PDFs
	blobStore := s.initBlobStore()

	// Progress photos API
	photosService := photos.NewService(
		s.storage.GetPhotosStorage(),
		s.storage,
		dailyLogService,
		blobStore,
		s.config.UploadMaxMB,
		s.config.UploadAllowedMime,
		s.config.Blob.S3.PresignTTLSeconds,
	)
	photosHandler := photos.NewHandlers(photosService)

	s.mux.HandleFunc("POST /v1/photos", photosHandler.HandleUpload)
	s.mux.HandleFunc("GET /v1/photos", photosHandler.HandleList)
	s.mux.HandleFunc("GET /v1/photos/{id}/download", photosHandler.HandleDownload)
	s.mux.HandleFunc("DELETE /v1/photos/{id}", photosHandler.HandleDelete)

	// Reports API
	reportsGenerator := reports.NewGenerator(logsStorage, slotsStorage, recipesStorage)
	reportsService := reports.NewService(
		s.storage.GetReportsStorage(),
		s.storage,
		reportsGenerator,
		blobStore,
		s.config.ReportsMaxRangeDays,
		s.config.Blob.S3.PresignTTLSeconds,
	)
	reportsHandler := reports.NewHandlers(reportsService)

	s.mux.HandleFunc("POST /v1/reports", reportsHandler.HandleCreate)
	s.mux.HandleFunc("GET /v1/reports", reportsHandler.HandleList)
	s.mux.HandleFunc("GET /v1/reports/{id}/download", reportsHandler.HandleDownload)
	s.mux.HandleFunc("DELETE /v1/reports/{id}", reportsHandler.HandleDelete)
}

// initBlobStore builds the object store following BLOB_MODE. A nil store
// means blobs live in the metadata backend.
func (s *Server) initBlobStore() blob.Store {
	store, mode, err := blob.NewBlobStore(s.config.Blob, log.Default())
	if err != nil {
		log.Fatalf("FATAL blob: failed to initialize store: %v", err)
	}
	log.Printf("INFO blob: mode: %s", mode)

	return store
}

// handleHealthz reports server status
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Start runs the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	// Build middleware chain (outermost first): CORS -> Rate Limit -> Auth -> Router
	var handler http.Handler = s.mux
	if s.authMiddleware != nil && s.config.AuthMode != "none" {
		handler = s.authMiddleware.RequireAuth(handler)
	}
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)

	log.Printf("Server listening on http://localhost%s\n", addr)
	log.Printf("Health check: http://localhost%s/healthz\n", addr)

	return http.ListenAndServe(addr, handler)
}

// Close releases the storage backend
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}

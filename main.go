package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"waterBuddyAPI/handlers"
	"waterBuddyAPI/internal/store"
	"waterBuddyAPI/middleware"
	"waterBuddyAPI/services"
)

var (
	dbPool            *pgxpool.Pool
	userService       *services.UserService
	hydrationService  *services.HydrationService
	suggestionService *services.SuggestionService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to Postgres")

	repo := store.NewPostgres(dbPool)
	if err := repo.InitSchema(ctx); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	suggestionService = services.NewSuggestionService(
		os.Getenv("SUGGEST_API_URL"),
		os.Getenv("SUGGEST_API_MODEL"),
		os.Getenv("SUGGEST_API_KEY"),
	)
	userService = services.NewUserService(repo, suggestionService)
	hydrationService = services.NewHydrationService(repo)

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	userHandler := handlers.NewUserHandler(userService)
	hydrationHandler := handlers.NewHydrationHandler(hydrationService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "water-buddy-api"}`))
	}).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// signup is the one route without the identity header
	api.HandleFunc("/user", userHandler.CreateUser).Methods("POST")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.IdentityMiddleware)

	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user/profile", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user/water-profile", userHandler.UpdateWaterProfile).Methods("PUT")
	protected.HandleFunc("/user/goal/suggestion", userHandler.RefreshSuggestion).Methods("POST")

	protected.HandleFunc("/user/intake", hydrationHandler.AddIntake).Methods("POST")
	protected.HandleFunc("/user/intake/today", hydrationHandler.GetToday).Methods("GET")
	protected.HandleFunc("/user/ledger", hydrationHandler.GetLedger).Methods("GET")
	protected.HandleFunc("/user/streak", hydrationHandler.GetStreak).Methods("GET")
	protected.HandleFunc("/user/calendar", hydrationHandler.GetCalendar).Methods("GET")
	protected.HandleFunc("/user/stats", hydrationHandler.GetStats).Methods("GET")
	protected.HandleFunc("/user/reminder", hydrationHandler.CheckReminder).Methods("GET")

	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "X-Username"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorillaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}

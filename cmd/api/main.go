package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/crewtab/tippool/docs"
	"github.com/crewtab/tippool/internal/allocation"
	"github.com/crewtab/tippool/internal/config"
	"github.com/crewtab/tippool/internal/database"
	"github.com/crewtab/tippool/internal/declaration"
	"github.com/crewtab/tippool/internal/dispute"
	"github.com/crewtab/tippool/internal/payroll"
	"github.com/crewtab/tippool/internal/pool"
	"github.com/crewtab/tippool/pkg/logging"
	mw "github.com/crewtab/tippool/pkg/middleware"
)

// @title           Tippool API
// @version         1.0
// @description     Tip pool allocation and settlement service for restaurant staff.
// @BasePath        /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Connected to database")

	// Allocation Strategy Factory (Factory Pattern)
	strategyFactory := allocation.NewStrategyFactory()

	// Pool feature (with strategy factory injected)
	poolRepo := pool.NewRepository(db)
	poolService := pool.NewService(poolRepo, strategyFactory)
	poolHandler := pool.NewHandler(poolService)

	// Declaration feature
	declarationRepo := declaration.NewRepository(db)
	declarationService := declaration.NewService(declarationRepo)
	declarationHandler := declaration.NewHandler(declarationService)

	// Payroll feature
	payrollRepo := payroll.NewRepository(db)
	payrollService := payroll.NewService(payrollRepo)
	payrollHandler := payroll.NewHandler(payrollService)

	// Dispute feature
	disputeRepo := dispute.NewRepository(db)
	disputeService := dispute.NewService(disputeRepo)
	disputeHandler := dispute.NewHandler(disputeService)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(mw.ActorMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Mount feature routers
		r.Mount("/pools", poolHandler.Routes())
		r.Mount("/declarations", declarationHandler.Routes())
		r.Mount("/payroll", payrollHandler.Routes())
		r.Mount("/disputes", disputeHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("Server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		slog.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

package main

//go:generate swag init

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/kpca/portal/auth"
	"github.com/kpca/portal/db"
	_ "github.com/kpca/portal/docs"
	"github.com/kpca/portal/handlers"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title           KPCA Portal API
// @version         1.0.0
// @description     API for managing clients, proposals, assignments, invoices, and receipts.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey  BearerAuth
// @in              header
// @name            Authorization

func main() {
	_ = godotenv.Load()

	// Configure structured logging
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// Token verification secret shared with the identity provider
	if s := os.Getenv("JWT_SECRET"); s != "" {
		auth.SigningSecret = []byte(s)
	} else {
		slog.Warn("JWT_SECRET not set, using development secret")
	}

	// Open database
	database, err := db.Open()
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Run migrations
	if err := db.Migrate(database); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the initial partner profile on first run
	if err := db.SeedUsers(database); err != nil {
		slog.Error("failed to seed users", "error", err)
		os.Exit(1)
	}

	// Set shared DB for handlers
	handlers.DB = database

	// Router setup
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Mount("/api", handlers.Router())

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := fmt.Sprintf(":%s", port)
	slog.Info("server starting", "address", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adirao/pixelforge/internal/auth"
	"github.com/adirao/pixelforge/internal/config"
	"github.com/adirao/pixelforge/internal/generation"
	"github.com/adirao/pixelforge/internal/middleware"
	"github.com/adirao/pixelforge/internal/scheduler"
	"github.com/adirao/pixelforge/internal/store"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer mongoClient.Disconnect(ctx)
	db := store.NewMongo(mongoClient, mongoClient.Database(cfg.MongoDB))
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatalf("mongo indexes: %v", err)
	}
	users := db.Users()
	ledgers := db.Ledgers()

	// ── MinIO ────────────────────────────────────────────────
	assets, err := store.NewMinioStore(
		ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey,
		cfg.MinioBucket, cfg.MinioPublicURL, cfg.MinioUseSSL,
	)
	if err != nil {
		log.Fatalf("minio connect: %v", err)
	}

	// ── Image model ──────────────────────────────────────────
	model := generation.NewGeminiClient("", cfg.GoogleAPIKey)

	// ── Handlers ─────────────────────────────────────────────
	secret := []byte(cfg.JWTSecret)
	authHandler := auth.NewHandler(users, secret, logger)
	genService := generation.NewService(users, ledgers, db, model, assets)
	genHandler := generation.NewHandler(genService, logger)

	// ── Credit reset job ─────────────────────────────────────
	resetJob := scheduler.New(users, logger)
	if err := resetJob.Start(); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	defer resetJob.Stop()

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Server Is Running."))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(secret))
			r.Get("/getUser", authHandler.GetUser)
			r.Post("/generate-image", genHandler.GenerateImage)
			r.Get("/generations", genHandler.ListGenerations)
		})
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
	}

	go func() {
		logger.Info("backend listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}

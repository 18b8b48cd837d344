package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anirudh/expense-tracker/backend/internal/auth"
	"github.com/anirudh/expense-tracker/backend/internal/config"
	"github.com/anirudh/expense-tracker/backend/internal/finance"
	"github.com/anirudh/expense-tracker/backend/internal/middleware"
	"github.com/anirudh/expense-tracker/backend/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// ── PostgreSQL ────────────────────────────────────────────
	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	defer pool.Close()
	pgStore := store.NewPostgresStore(pool)
	if err := pgStore.Migrate(ctx); err != nil {
		log.Fatalf("postgres migrate: %v", err)
	}

	// ── Redis ────────────────────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connect: %v", err)
	}
	defer rdb.Close()
	sessions := auth.NewSessionStore(rdb)

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(pgStore, sessions, cfg.BcryptCost)
	financeHandler := finance.NewHandler(pgStore, pgStore)

	r := newRouter(authHandler, financeHandler, sessions)

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Backend listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}

// newRouter builds the full route table. Extracted from main so the
// routing and guard placement are testable with fakes.
func newRouter(authHandler *auth.Handler, financeHandler *finance.Handler, sessions middleware.SessionResolver) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Public routes
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(sessions))

		r.Get("/user-info", authHandler.UserInfo)
		r.Get("/profile", authHandler.Profile)

		r.Get("/total-spent", financeHandler.TotalSpent)
		r.Get("/total-budget", financeHandler.TotalBudget)
		r.Get("/transactions", financeHandler.Transactions)

		r.Post("/expense", financeHandler.CreateExpense)
		r.Get("/expenses", financeHandler.ListExpenses)
		r.Get("/expense/{id}", financeHandler.GetExpense)
		r.Put("/expense/{id}", financeHandler.UpdateExpense)
		r.Delete("/expenses", financeHandler.DeleteExpenses)

		r.Post("/budget", financeHandler.CreateBudget)
		r.Get("/budgets", financeHandler.ListBudgets)
		r.Get("/budget/{id}", financeHandler.GetBudget)
		r.Put("/budget/{id}", financeHandler.UpdateBudget)
		r.Delete("/budgets", financeHandler.DeleteBudgets)
	})

	return r
}

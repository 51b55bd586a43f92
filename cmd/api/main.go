// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/dangerclosesec/crm/internal/app"
	"github.com/dangerclosesec/crm/internal/config"
	"github.com/dangerclosesec/crm/internal/database"
	"github.com/dangerclosesec/crm/internal/handler"
	"github.com/dangerclosesec/crm/internal/middleware"
	"github.com/dangerclosesec/crm/internal/model"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	logger := newLogger()
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Open(cfg, gormLogLevel())
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	a, err := app.New(cfg, db, logger)
	if err != nil {
		return err
	}

	// Team drift repair runs alongside the API unless disabled.
	if cfg.Reconcile.Interval > 0 {
		a.Reconciliation.Start()
		defer a.Reconciliation.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           newRouter(a, logger),
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	// Start server
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Shutdown channel
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)

	// Wait for shutdown or error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Gracefully shutdown the server
		if err := srv.Shutdown(ctx); err != nil {
			// If shutdown times out, forcefully close
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func newRouter(a *app.App, logger *slog.Logger) http.Handler {
	authHandler := handler.NewAuthHandler(a.Users)
	userHandler := handler.NewUserHandler(a.Users, a.Teams)
	auditHandler := handler.NewAccessAuditHandler(a.AccessAudit)
	teamView := handler.NewTeamViewHandler(a.Visibility, a.Leads)
	leadAssignments := handler.NewAssignmentHandler(a.Assignments, model.KindLead)
	opportunityAssignments := handler.NewAssignmentHandler(a.Assignments, model.KindOpportunity)

	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestMeta)
	r.Use(loggingMiddleware(logger))
	r.Use(recoveryMiddleware(logger))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Route("/auth", func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))
			r.Post("/login", authHandler.LoginHandler)
			r.With(middleware.AuthMiddleware(a.TokenManager)).Get("/me", authHandler.MeHandler)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))
			r.Use(middleware.AuthMiddleware(a.TokenManager))

			r.Route("/leads", func(r chi.Router) {
				r.Get("/team", teamView.TeamLeads)
				r.Post("/bulk-assign", leadAssignments.BulkAssign)
				r.Post("/{id}/assign", leadAssignments.Assign)
				handler.NewRecordHandler(a.Leads, map[string]string{
					"status":     "status",
					"source":     "source",
					"company_id": "company_id",
					"contact_id": "contact_id",
				}).Routes(r)
			})
			r.Route("/opportunities", func(r chi.Router) {
				r.Post("/bulk-assign", opportunityAssignments.BulkAssign)
				r.Post("/{id}/assign", opportunityAssignments.Assign)
				handler.NewRecordHandler(a.Opportunities, map[string]string{
					"stage":      "stage",
					"lead_id":    "lead_id",
					"company_id": "company_id",
					"contact_id": "contact_id",
				}).Routes(r)
			})
			r.Route("/contacts", handler.NewRecordHandler(a.Contacts, map[string]string{
				"company_id": "company_id",
			}).Routes)
			r.Route("/companies", handler.NewRecordHandler(a.Companies, map[string]string{
				"industry": "industry",
			}).Routes)
			r.Route("/quotations", handler.NewRecordHandler(a.Quotations, map[string]string{
				"status":         "status",
				"opportunity_id": "opportunity_id",
			}).Routes)
			r.Route("/sales-orders", handler.NewRecordHandler(a.SalesOrders, map[string]string{
				"status":       "status",
				"quotation_id": "quotation_id",
			}).Routes)
			r.Route("/tasks", handler.NewRecordHandler(a.Tasks, map[string]string{
				"status":     "status",
				"related_to": "related_to",
				"related_id": "related_id",
			}).Routes)
			r.Route("/activities", handler.NewRecordHandler(a.Activities, map[string]string{
				"type":       "type",
				"related_to": "related_to",
				"related_id": "related_id",
			}).Routes)
			r.Route("/appointments", handler.NewRecordHandler(a.Appointments, map[string]string{
				"related_to": "related_to",
				"related_id": "related_id",
			}).Routes)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.ListUsers)
				r.Post("/", userHandler.CreateUser)
				r.Get("/{id}/team", userHandler.TeamMembers)
				r.Put("/{id}/manager", userHandler.SetManager)
				r.Put("/{id}/team", userHandler.SetTeam)
				r.Put("/{id}/active", userHandler.SetActive)
			})
			r.Route("/teams", func(r chi.Router) {
				r.Get("/", userHandler.ListTeams)
				r.Post("/", userHandler.CreateTeam)
			})

			r.Route("/audit/access", func(r chi.Router) {
				r.Get("/", auditHandler.GetAuditLogs)
				r.Get("/{id}", auditHandler.GetAuditLogByID)
			})
		})
	})

	return r
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
}

func gormLogLevel() logger.LogLevel {
	if os.Getenv("DB_DEBUG") != "" {
		return logger.Info
	}
	return logger.Warn
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", time.Since(start),
					"status", ww.Status(),
					"size", ww.BytesWritten(),
					"requestID", chimw.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func recoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					err := errors.New("panic recovered")
					logger.Error("panic recovered",
						"error", err,
						"panic", rvr,
						"stack", string(debug.Stack()),
						"requestID", chimw.GetReqID(r.Context()),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"ok":false,"error":"Internal server error"}`))
					return
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

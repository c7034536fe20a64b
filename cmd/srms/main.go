// main is the entry point of the school records service.
//
// Startup sequence:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the record store (flat JSONL files, or SQLite)
//  4. Register all HTTP routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// Running the server:
//
//	go run ./cmd/srms --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/srms
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AP24110011521/SRMS-CCC/internal/config"
	"github.com/AP24110011521/SRMS-CCC/internal/http/handlers/admin"
	"github.com/AP24110011521/SRMS-CCC/internal/http/handlers/auth"
	"github.com/AP24110011521/SRMS-CCC/internal/http/handlers/parent"
	"github.com/AP24110011521/SRMS-CCC/internal/http/handlers/student"
	"github.com/AP24110011521/SRMS-CCC/internal/http/handlers/teacher"
	"github.com/AP24110011521/SRMS-CCC/internal/http/middleware"
	"github.com/AP24110011521/SRMS-CCC/internal/school"
	"github.com/AP24110011521/SRMS-CCC/internal/storage"
	"github.com/AP24110011521/SRMS-CCC/internal/storage/jsonl"
	"github.com/AP24110011521/SRMS-CCC/internal/storage/sqlite"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting srms",
		slog.String("env", cfg.Env),
		slog.String("storage_driver", cfg.Storage.Driver),
	)

	store, err := openStorage(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	svc := school.NewService(store, cfg.Admin.ID, cfg.Admin.Password)

	router := http.NewServeMux()

	router.HandleFunc("POST /api/login", auth.Login(svc))

	router.HandleFunc("POST /api/admin/students", admin.AddStudent(svc))
	router.HandleFunc("PUT /api/admin/students/{id}", admin.EditStudent(svc))
	router.HandleFunc("GET /api/admin/students", admin.ListStudents(svc))
	router.HandleFunc("PUT /api/admin/students/{id}/fee-status", admin.SetFeeStatus(svc))
	router.HandleFunc("POST /api/admin/teachers", admin.AddTeacher(svc))
	router.HandleFunc("PUT /api/admin/teachers/{id}", admin.EditTeacher(svc))
	router.HandleFunc("GET /api/admin/teachers", admin.ListTeachers(svc))

	router.HandleFunc("GET /api/teacher/students", teacher.Students(svc))
	router.HandleFunc("POST /api/teacher/attendance", teacher.MarkAttendance(svc))
	router.HandleFunc("POST /api/teacher/marks", teacher.AddMarks(svc))

	router.HandleFunc("GET /api/student/{id}", student.Profile(svc))
	router.HandleFunc("GET /api/student/{id}/marks", student.Marks(svc))
	router.HandleFunc("GET /api/student/{id}/attendance", student.Attendance(svc))

	router.HandleFunc("GET /api/parent/{phone}", parent.Dashboard(svc))
	router.HandleFunc("POST /api/parent/payments", parent.PayFee(svc))

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: middleware.Logging(log, router),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// openStorage picks the record-store backend from configuration.
// Both backends satisfy the same storage.Storage contract, so the
// rest of the program never knows which one is active.
func openStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		return sqlite.New(cfg.Storage.Path)
	default:
		return jsonl.New(cfg.Storage.DataDir)
	}
}

// setupLogger returns a *slog.Logger configured for the given
// environment: human-readable text at DEBUG in dev, JSON for
// staging/prod where logs are machine-ingested.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}

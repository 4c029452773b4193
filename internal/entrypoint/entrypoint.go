package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avoronin/reading-diary/internal/config"
	"github.com/avoronin/reading-diary/internal/database"
	"github.com/avoronin/reading-diary/internal/database/books"
	"github.com/avoronin/reading-diary/internal/exporters"
	http_controllers "github.com/avoronin/reading-diary/internal/http"
	"github.com/avoronin/reading-diary/internal/scheduler"
	"github.com/avoronin/reading-diary/internal/stats"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the backup scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Reading Diary v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	repo := books.NewRepository(db.DB)
	statsService := stats.NewService(db.DB)
	csvExporter := exporters.NewCSVExporter(repo)

	var backupScheduler *scheduler.CSVBackupScheduler
	if cfg.Backup.Enabled {
		backupScheduler = scheduler.NewCSVBackupScheduler(csvExporter, cfg.Backup.Schedule, cfg.Backup.Dir)
		if err := backupScheduler.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start CSV backup scheduler: %v", err)
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Books:  http_controllers.NewBooksController(repo),
		Genres: http_controllers.NewGenresController(repo),
		Stats:  http_controllers.NewStatsController(statsService),
		Export: http_controllers.NewExportController(csvExporter),
		Health: http_controllers.NewHealthController(db, version),
	})

	Serve(router, cfg, func(ctx context.Context) {
		if backupScheduler != nil {
			backupScheduler.Stop()
		}
	})
}

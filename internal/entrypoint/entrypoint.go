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

	"github.com/mrlokans/shelfcache/internal/config"
	http_controllers "github.com/mrlokans/shelfcache/internal/http"
	"github.com/mrlokans/shelfcache/internal/scheduler"
	"github.com/mrlokans/shelfcache/internal/tasks"
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
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Open SSE streams only end once their subscriptions are released, so
	// the shutdown callback (which closes the hub) runs first.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting shelfcache v%s", version)

	app, err := NewApp(cfg.Database.Path, cfg.Database, cfg.Catalog)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	log.Printf("Catalog source: %s", app.Catalog.BaseURL())

	backgroundCtx, cancelBackground := context.WithCancel(context.Background())

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		taskClient.Register(tasks.NewSeedCatalogQueue(app.Items))
		go taskClient.Start(backgroundCtx)
	}

	if cfg.Seed.OnStartup {
		startupSeed(backgroundCtx, app, taskClient)
	}

	var seedScheduler *scheduler.SeedScheduler
	if cfg.Seed.RetryEnabled {
		seedScheduler = scheduler.NewSeedScheduler(app.Items, cfg.Seed.RetrySchedule)
		if err := seedScheduler.Start(backgroundCtx); err != nil {
			log.Printf("Seed retry scheduler disabled: %v", err)
			seedScheduler = nil
		}
	} else {
		log.Printf("Seed retry scheduler: disabled")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:    app.DB,
		Items:       app.Items,
		Annotations: app.Annotations,
		TaskClient:  taskClient,
		Version:     version,
	})

	onShutdown := func(ctx context.Context) {
		if seedScheduler != nil {
			seedScheduler.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		cancelBackground()
		if taskClient != nil {
			if err := taskClient.Close(); err != nil {
				log.Printf("Failed to close task queue: %v", err)
			}
		}
		app.DB.Hub.Close()
	}

	Serve(router, cfg, onShutdown)

	if err := app.Close(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
}

// startupSeed fills an empty store without delaying startup. A failure is
// only logged; POST /api/items/refresh (or the retry scheduler) tries again.
func startupSeed(ctx context.Context, app *App, taskClient *tasks.Client) {
	if taskClient != nil {
		if id, err := taskClient.Enqueue(tasks.SeedCatalogTask{Reason: "startup"}); err != nil {
			log.Printf("[SEED] Failed to enqueue startup seed: %v", err)
		} else {
			log.Printf("[SEED] Startup seed enqueued as task %s", id)
		}
		return
	}

	go func() {
		result, err := app.Items.RefreshIfEmpty(ctx)
		if err != nil {
			log.Printf("[SEED] Startup seed failed: %v", err)
			return
		}
		if result.Skipped {
			log.Printf("[SEED] Store already holds %d items, skipping catalog fetch", result.ExistingItems)
		}
	}()
}

package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/LovationAdmin/pcease-api/handlers"
	"github.com/LovationAdmin/pcease-api/middleware"
	"github.com/LovationAdmin/pcease-api/routes"
	"github.com/LovationAdmin/pcease-api/utils"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if settings.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, settings)
	if err != nil {
		return err
	}
	defer closeStore()

	var limiter middleware.CounterStore
	var closeLimiter func() error
	if settings.RedisURL != "" {
		client, err := middleware.NewRedisClient(ctx, settings.RedisURL)
		if err != nil {
			return err
		}
		limiter, closeLimiter = middleware.NewRedisStore(client), client.Close
		utils.SafeInfo("✅ Rate limiting backed by Redis")
	} else {
		mem := middleware.NewMemoryStore(time.Minute)
		limiter, closeLimiter = mem, mem.Close
	}

	hub := handlers.NewForumHub()
	router := routes.NewRouter(routes.Deps{
		Settings: settings,
		Store:    store,
		Limiter:  limiter,
		Hub:      hub,
	})

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	utils.LogStartup("PCease API", routes.Version, settings.Port)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		utils.SafeInfo("🛑 Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		if cerr := hub.Close(); cerr != nil {
			utils.SafeWarn("[WS] close hub: %v", cerr)
		}
		if cerr := closeLimiter(); cerr != nil {
			utils.SafeWarn("[RateLimit] close store: %v", cerr)
		}
		return err
	})
	return g.Wait()
}

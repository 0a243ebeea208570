package main

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripwise/cmd/fx/controllers_fx"
	"tripwise/internal/api/controllers"
	"tripwise/internal/config"
	"tripwise/pkg/middleware"
	"tripwise/pkg/utils"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web wizard and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(
				coreModules(),
				controllers_fx.Module,

				fx.Provide(ProvideRouter),
				fx.Invoke(StartServer),
			)
			if err := app.Err(); err != nil {
				return err
			}

			app.Run()
			return nil
		},
	}
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	log *zap.Logger,
	signer *utils.SessionSigner,
	cookie middleware.SessionCookie,
	registry *prometheus.Registry,
	wizardController *controllers.WizardController,
	itineraryController *controllers.ItineraryController,
	pageController *controllers.PageController) *gin.Engine {

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CORSMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	sessions := r.Group("/", middleware.SessionMiddleware(signer, cookie))
	RegisterRoutes(sessions, wizardController, itineraryController, pageController)

	return r
}

func RegisterRoutes(r *gin.RouterGroup,
	wizardController *controllers.WizardController,
	itineraryController *controllers.ItineraryController,
	pageController *controllers.PageController) {

	r.GET("/", pageController.Index)
	r.POST("/steps/basic", pageController.SubmitBasicInfo)
	r.POST("/steps/preferences", pageController.SubmitPreferences)

	wizardGroup := r.Group("/api/wizard")
	wizardGroup.GET("", wizardController.GetState)
	wizardGroup.POST("/basic", wizardController.SubmitBasicInfo)
	wizardGroup.POST("/preferences", wizardController.SubmitPreferences)
	wizardGroup.GET("/itinerary", wizardController.GetItinerary)
	wizardGroup.GET("/itinerary.pdf", wizardController.DownloadItinerary)

	itineraryGroup := r.Group("/api/itineraries")
	itineraryGroup.GET("/:id", itineraryController.GetArchived)
	itineraryGroup.GET("/:id/pdf", itineraryController.DownloadArchived)
}

package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	handlers "hostdeck/internal/handlers/http"
	"hostdeck/internal/infrastructure/feed"
	"hostdeck/internal/infrastructure/middleware"
	"hostdeck/internal/infrastructure/monitoring"
	"hostdeck/internal/infrastructure/repositories"
	"hostdeck/internal/infrastructure/seed"
	"hostdeck/internal/infrastructure/simulator"
	"hostdeck/internal/infrastructure/token"
	"hostdeck/pkg/config"
	"hostdeck/pkg/logger"
	"hostdeck/pkg/tracing"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Logging.Level)
	defer log.Sync()

	tracerCfg := tracing.DefaultConfig()
	tracerCfg.Enabled = cfg.Tracing.Enabled
	tracerCfg.JaegerURL = cfg.Tracing.JaegerURL
	tracerCfg.SampleRate = cfg.Tracing.SampleRate
	tracer, err := tracing.Init(tracerCfg)
	if err != nil {
		log.Fatal("initializing tracing", zap.Error(err))
	}

	jwt, err := token.NewJWTManager(cfg.Server.JWTSecret, cfg.Server.TokenTTL)
	if err != nil {
		log.Fatal("initializing jwt manager", zap.Error(err))
	}

	factory, err := repositories.NewRepositoryFactory(cfg, log)
	if err != nil {
		log.Fatal("initializing repositories", zap.Error(err))
	}
	defer factory.Close()

	users := factory.CreateUserRepository()
	servers := factory.CreateServerRepository()
	projects := factory.CreateProjectRepository()
	alertRules := factory.CreateAlertRuleRepository()
	alertEvents := factory.CreateAlertEventRepository()
	metrics := factory.CreateMetricRepository()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Server.Seed {
		err := seed.Demo(ctx, seed.Repositories{
			Users:      users,
			Servers:    servers,
			Projects:   projects,
			AlertRules: alertRules,
		}, log)
		if err != nil {
			log.Fatal("seeding demo data", zap.Error(err))
		}
	}

	collector := monitoring.NewPrometheusCollector()
	metricsFeed := feed.NewMetricsFeed(log, collector.WSClientConnected, collector.WSClientDisconnected)

	generator := simulator.NewMetricsGenerator(servers, metrics, cfg.Server.MetricsInterval, log)
	generator.OnSample(func(domain.MetricSample) { collector.RecordMetricSample() })
	generator.OnTick(metricsFeed.Broadcast)

	evaluator := simulator.NewAlertEvaluator(alertRules, alertEvents, metrics, cfg.Server.AlertInterval, log)
	evaluator.OnFiring(func(ports.AlertEventDTO) { collector.RecordAlertEvent() })

	go generator.Run(ctx)
	go evaluator.Run(ctx)
	go trackGauges(ctx, servers, alertEvents, collector)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging(log))
	if cfg.RateLimiting.Enabled {
		router.Use(middleware.RateLimitMiddleware(cfg))
	}
	if cfg.Tracing.Enabled {
		router.Use(middleware.TracingMiddleware())
	}
	if cfg.Monitoring.PrometheusEnabled {
		router.Use(collector.Middleware())
		router.GET("/metrics", collector.Handler())
	}

	router.GET("/health", func(c *gin.Context) {
		if err := factory.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ws/metrics", metricsFeed.Handle)

	api := router.Group("/api")
	authHandler := handlers.NewAuthHandler(users, jwt, log)
	authHandler.OnSignIn(collector.RecordSignIn)
	authHandler.SetupRoutes(api)

	authed := api.Group("", middleware.AuthMiddleware(jwt))
	handlers.NewServerHandler(servers, metrics, log).SetupRoutes(authed)
	handlers.NewProjectHandler(projects, servers, log).SetupRoutes(authed)
	handlers.NewAlertRuleHandler(alertRules, log).SetupRoutes(authed)
	handlers.NewAlertEventHandler(alertEvents, log).SetupRoutes(authed)

	admin := api.Group("", middleware.AuthMiddleware(jwt), middleware.RequireRole("admin"))
	handlers.NewUserHandler(users, log).SetupRoutes(admin)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("demo server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	cancel()
	metricsFeed.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		log.Error("tracer shutdown error", zap.Error(err))
	}
	log.Info("stopped")
}

// trackGauges refreshes the server-count and firing-event gauges on a
// slow loop; exact freshness does not matter for dashboard numbers.
func trackGauges(ctx context.Context, servers ports.ServerRepository, events ports.AlertEventRepository, collector *monitoring.PrometheusCollector) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if list, err := servers.List(ctx); err == nil {
				collector.SetServerCount(len(list))
			}
			if list, err := events.List(ctx); err == nil {
				firing := 0
				for _, e := range list {
					if e.Status == "firing" {
						firing++
					}
				}
				collector.SetFiringEvents(firing)
			}
		}
	}
}

package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dskendzo/eventplanner/config"
	repository "github.com/dskendzo/eventplanner/internal/database/postgres"
	rediscache "github.com/dskendzo/eventplanner/internal/database/redis"
	"github.com/dskendzo/eventplanner/internal/service"
	"github.com/dskendzo/eventplanner/internal/transport"
	"github.com/dskendzo/eventplanner/internal/worker"

	"github.com/dskendzo/eventplanner/pkg/mailer"
	"github.com/dskendzo/eventplanner/pkg/postgres"
	"github.com/dskendzo/eventplanner/pkg/redis"
	"github.com/dskendzo/eventplanner/pkg/weatherapi"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	eventRepo := repository.NewEventRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	userRepo := repository.NewUserRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Initialize forecast cache and provider
	redisClient := redis.NewRedisClient(&cfg.Redis)
	defer redisClient.Close()

	forecastCache := rediscache.NewForecastCache(redisClient, cfg.Weather.CacheTTL)
	weatherClient := weatherapi.NewClient(&cfg.Weather)

	// Initialize notifier
	var notifier service.RegistrationNotifier
	if cfg.Email.Enabled {
		notifier = mailer.NewMailer(&cfg.Email)
		logrus.Info("Email notifications enabled")
	} else {
		logrus.Warn("Email notifications disabled")
	}

	// Initialize services
	weatherService := service.NewWeatherService(forecastCache, weatherClient)
	eventService := service.NewEventService(eventRepo, registrationRepo, weatherService)
	registrationService := service.NewRegistrationService(registrationRepo, eventRepo, userRepo, notifier)
	userService := service.NewUserService(userRepo, &cfg.JWT)
	commentService := service.NewCommentService(commentRepo, eventRepo)

	// Initialize status sweep worker
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweepInterval := cfg.Worker.SweepInterval
	if sweepInterval == 0 {
		sweepInterval = 10 * time.Minute
	}
	statusWorker := worker.NewEventStatusWorker(eventService, sweepInterval)
	go statusWorker.Start(ctx)

	// Initialize handlers
	eventHandler := transport.NewEventHandler(eventService)
	registrationHandler := transport.NewRegistrationHandler(registrationService)
	userHandler := transport.NewUserHandler(userService)
	commentHandler := transport.NewCommentHandler(commentService)
	weatherHandler := transport.NewWeatherHandler(weatherService)

	// Setup HTTP server
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		router := transport.InitRoutes(cfg.JWT.Secret, eventHandler, registrationHandler, userHandler, commentHandler, weatherHandler)
		if err := srv.Run(cfg, router); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}

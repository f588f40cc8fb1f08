package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cleanindia-be/config"
	"cleanindia-be/controllers"
	"cleanindia-be/media"
	"cleanindia-be/metrics"
	"cleanindia-be/middlewares"
	"cleanindia-be/routes"
	"cleanindia-be/services"
	"cleanindia-be/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	log := config.NewLogger("cleanindia-be", cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config, log *logrus.Entry) error {
	metrics.Init()
	if err := middlewares.RegisterValidators(); err != nil {
		return err
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := config.DisconnectDB(db); err != nil {
			log.WithError(err).Warn("failed to disconnect from MongoDB")
		}
	}()
	log.Info("MongoDB connection established successfully!")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
	err = store.EnsureIndexes(ctx, db)
	cancel()
	if err != nil {
		return err
	}

	rdb, err := config.ConnectRedis(cfg)
	if err != nil {
		return err
	}
	var counter middlewares.Counter
	if rdb != nil {
		defer rdb.Close()
		counter = middlewares.RedisCounter{Client: rdb}
	} else {
		log.Warn("REDIS_ADDRESS not set, complaint rate limit disabled")
	}

	uploader, err := newUploader(cfg)
	if err != nil {
		return err
	}

	users := store.NewUserStore(db, cfg.DBTimeout)
	complaints := store.NewComplaintStore(db, cfg.DBTimeout)

	authService := services.NewAuthService(users, cfg.JWTSecret, cfg.JWTTTL)
	complaintService := services.NewComplaintService(complaints, users, uploader)
	adminService := services.NewAdminService(users, complaints)

	if err := bootstrapAdmin(cfg, authService, log); err != nil {
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(log), middlewares.Metrics(), middlewares.CORS(cfg.CORSOrigins))

	api := r.Group("/api")
	routes.AuthRoutes(api, controllers.NewAuthController(authService, controllers.CookieOptions{
		Domain:     cfg.Domain,
		Production: cfg.IsProduction(),
	}, log), authService)
	routes.ComplaintRoutes(api,
		controllers.NewComplaintController(complaintService, cfg.MaxUploadMB<<20, log),
		authService,
		middlewares.ComplaintRateLimiter(counter, cfg.ComplaintDailyLimit, log),
	)
	routes.AdminRoutes(api, controllers.NewAdminController(adminService, log), authService)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return serve(r, cfg.Port, log)
}

func newUploader(cfg *config.Config) (media.Uploader, error) {
	switch cfg.MediaBackend {
	case "cloudinary":
		return media.NewCloudinaryUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret,
			cfg.MediaImageFolder, cfg.MediaVideoFolder, cfg.MediaTimeout)
	case "ftp":
		return media.NewFTPUploader(cfg.FTPHost, cfg.FTPPort, cfg.FTPUser, cfg.FTPPassword, cfg.FTPBaseURL,
			cfg.MediaImageFolder, cfg.MediaVideoFolder, cfg.MediaTimeout), nil
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.MediaBackend)
	}
}

func bootstrapAdmin(cfg *config.Config, auth *services.AuthService, log *logrus.Entry) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
	defer cancel()

	created, err := auth.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	if created {
		log.WithField("email", cfg.AdminEmail).Info("admin user created")
	}
	return nil
}

func serve(handler http.Handler, port string, log *logrus.Entry) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

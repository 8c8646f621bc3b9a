package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/auth"
	"cafeshift/backend/internal/commands"
	"cafeshift/backend/internal/pkg/config"
	"cafeshift/backend/internal/pkg/repository/postgresql"
	"cafeshift/backend/internal/router"
	"cafeshift/backend/internal/telemetry"

	"github.com/ardanlabs/conf"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "cafeshift-api"

func main() {
	if err := run(); err != nil {
		log.Printf("main: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, err := config.Usage()
			if err != nil {
				return errors.Wrap(err, "generating usage")
			}
			fmt.Println(usage)
			return nil
		}
		return errors.Wrap(err, "parsing config")
	}
	log.Printf("main: config:\n%v", cfg)

	ctx := context.Background()

	shutdownTelemetry := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: serviceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
	})
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	postgresDB := postgresql.New(postgresql.Config{
		User:       cfg.DBUsername,
		Password:   cfg.DBPassword,
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		Name:       cfg.DBName,
		DisableTLS: cfg.DisableTLS,
		Debug:      cfg.DBDebug,
	})
	defer postgresDB.Close()

	if err := postgresDB.Ping(ctx); err != nil {
		return errors.Wrap(err, "connecting to postgres")
	}

	switch cfg.Args.Num(0) {
	case "migrate":
		return commands.MigrateUP(ctx, postgresDB)
	case "migrate-all":
		return commands.Migrate(ctx, postgresDB)
	}

	if cfg.MigrateOnStart {
		if err := commands.MigrateUP(ctx, postgresDB); err != nil {
			return errors.Wrap(err, "migrating")
		}
	}

	redisDB := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisDB.Close()

	if err := redisDB.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "connecting to redis")
	}

	privateKey, err := auth.LoadPrivateKey(cfg.JWTKeyPath)
	if err != nil {
		return err
	}

	authenticator, err := auth.New(privateKey, auth.NewRedisSessions(redisDB), auth.Config{
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
		SessionTTL: cfg.SessionTTL,
	})
	if err != nil {
		return errors.Wrap(err, "constructing auth")
	}

	gin.SetMode(gin.ReleaseMode)
	app := web.NewApp()
	router.NewRouter(app, postgresDB, redisDB, authenticator, cfg).Init()

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      otelhttp.NewHandler(app, serviceName),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("main: listening on %s", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server error")
		}
		return nil

	case sig := <-shutdown:
		log.Printf("main: %v: start shutdown", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return errors.Wrap(err, "could not stop server gracefully")
		}
	}

	return nil
}

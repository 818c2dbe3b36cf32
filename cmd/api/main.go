package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/jordanmartell/ideahub-backend/api/routes"
	"github.com/jordanmartell/ideahub-backend/internal/actions"
	"github.com/jordanmartell/ideahub-backend/internal/challenges"
	"github.com/jordanmartell/ideahub-backend/internal/comments"
	"github.com/jordanmartell/ideahub-backend/internal/ideas"
	"github.com/jordanmartell/ideahub-backend/internal/notifications"
	"github.com/jordanmartell/ideahub-backend/internal/targets"
	"github.com/jordanmartell/ideahub-backend/internal/users"
	"github.com/jordanmartell/ideahub-backend/pkg/config"
	"github.com/jordanmartell/ideahub-backend/pkg/db"
	"github.com/jordanmartell/ideahub-backend/pkg/logger"
	"github.com/jordanmartell/ideahub-backend/pkg/migrate"
	"github.com/jordanmartell/ideahub-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gormDB := dbClient.DB()

	challengesRepo := challenges.NewRepository(gormDB)
	ideasRepo := ideas.NewRepository(gormDB)
	usersRepo := users.NewRepository(gormDB)
	notificationsRepo := notifications.NewRepository(gormDB)
	commentsRepo := comments.NewRepository(gormDB)
	actionsRepo := actions.NewRepository(gormDB)

	resolver, err := targets.NewResolver(challengesRepo, ideasRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create target resolver", err)
		os.Exit(1)
	}

	unreadCache := notifications.NewUnreadCache(redisClient, cfg.Engagement.UnreadCacheTTL)

	dispatcher, err := notifications.NewDispatcher(notifications.DispatcherParams{
		Repo:      notificationsRepo,
		Users:     usersRepo,
		Templates: notifications.NewTemplateRegistry(),
		Cache:     unreadCache,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create notification dispatcher", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifications.ServiceParams{
		Repo:   notificationsRepo,
		Cache:  unreadCache,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	actionsService, err := actions.NewService(actions.ServiceParams{
		Repo:          actionsRepo,
		Resolver:      resolver,
		Dispatcher:    dispatcher,
		Logger:        logg,
		FanoutTimeout: cfg.Engagement.FanoutTimeout,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create actions service", err)
		os.Exit(1)
	}

	commentsService, err := comments.NewService(comments.ServiceParams{
		Repo:          commentsRepo,
		Resolver:      resolver,
		Dispatcher:    dispatcher,
		Notifications: notificationsService,
		Logger:        logg,
		FanoutTimeout: cfg.Engagement.FanoutTimeout,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create comments service", err)
		os.Exit(1)
	}

	challengesService, err := challenges.NewService(challenges.ServiceParams{
		Repo:          challengesRepo,
		Notifications: notificationsService,
		Logger:        logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create challenges service", err)
		os.Exit(1)
	}

	ideasService, err := ideas.NewService(ideas.ServiceParams{
		Repo:          ideasRepo,
		Resolver:      resolver,
		Dispatcher:    dispatcher,
		Notifications: notificationsService,
		Logger:        logg,
		FanoutTimeout: cfg.Engagement.FanoutTimeout,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create ideas service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			actionsService,
			commentsService,
			notificationsService,
			challengesService,
			ideasService,
		),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

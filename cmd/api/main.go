package main

import (
	"context"

	"github.com/arjunmehta12/mockmate/internal/auth"
	"github.com/arjunmehta12/mockmate/internal/cache"
	"github.com/arjunmehta12/mockmate/internal/config"
	"github.com/arjunmehta12/mockmate/internal/database"
	"github.com/arjunmehta12/mockmate/internal/handler"
	"github.com/arjunmehta12/mockmate/internal/lifecycle"
	"github.com/arjunmehta12/mockmate/internal/logger"
	"github.com/arjunmehta12/mockmate/internal/meeting"
	"github.com/arjunmehta12/mockmate/internal/payments"
	"github.com/arjunmehta12/mockmate/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

type application struct {
	DB         *pgxpool.Pool
	Logger     *zap.Logger
	Config     *config.Config
	Repository *repository.Repository
	TokenMaker *auth.JWTMaker
	Handler    *handler.Handler
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, env=%s", cfg.Env)

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		sugar.Fatal(err)
	}
	defer pool.Close()

	rdb := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := cache.Ping(ctx, rdb); err != nil {
		// reference data falls back to the database when redis is down
		sugar.Warnw("redis unreachable, running without cache", "err", err)
	}
	ref := cache.NewReference(rdb, cfg.Redis.TTL)

	repo := repository.NewRepository(pool)
	gateway := payments.NewGateway(cfg.Payment.KeyID, cfg.Payment.KeySecret, cfg.Payment.BaseURL)
	provisioner := meeting.NewProvisioner(cfg.Meeting.BaseURL, cfg.Meeting.APISecret, cfg.Meeting.Timeout, repo, log)
	tokenMaker := auth.NewJWTMaker(cfg.JWT.Secret, cfg.JWT.TTL)
	joinTokens := auth.NewJoinTokenMaker(cfg.JoinToken.Secret, cfg.JoinToken.TTL)

	svc := lifecycle.NewService(repo, ref, gateway, provisioner, joinTokens, log, cfg.Booking.DailyInterviewCap)

	app := &application{
		DB:         pool,
		Logger:     log,
		Config:     cfg,
		Repository: repo,
		TokenMaker: tokenMaker,
		Handler: &handler.Handler{
			Logger:     log,
			Repo:       repo,
			Lifecycle:  svc,
			TokenMaker: tokenMaker,
			Cache:      ref,
		},
	}

	// re-provision meetings lost to crashes or provider outages
	go provisioner.RetryPending(ctx)

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}

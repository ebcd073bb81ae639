package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/copymakerhq/copymaker/modules/api"
	"github.com/copymakerhq/copymaker/pkg/billing"
	"github.com/copymakerhq/copymaker/pkg/config"
	"github.com/copymakerhq/copymaker/pkg/content"
	"github.com/copymakerhq/copymaker/pkg/entitlement"
	"github.com/copymakerhq/copymaker/pkg/httpserver"
	"github.com/copymakerhq/copymaker/pkg/logger"
	"github.com/copymakerhq/copymaker/pkg/pg"
	"github.com/copymakerhq/copymaker/pkg/profile"
	"github.com/copymakerhq/copymaker/pkg/ratelimit"
	"github.com/copymakerhq/copymaker/pkg/redis"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	log := logger.NewFromConfig(config.MustLoad[logger.Config](), logger.WithService("copymaker"))
	logger.SetAsDefault(log)

	pgCfg := config.MustLoad[pg.Config]()
	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, config.MustLoad[redis.Config]())
	if err != nil {
		return err
	}
	defer redisClient.Close()

	entitlements := entitlement.NewService(entitlement.NewPostgresStore(pool),
		entitlement.WithLogger(log))
	profiles := profile.NewService(profile.NewPostgresStore(pool))

	generator, err := content.NewOpenAIGenerator(config.MustLoad[content.OpenAIConfig]())
	if err != nil {
		return err
	}
	contentSvc := content.NewService(content.NewPostgresStore(pool), generator, profiles, entitlements,
		content.WithLogger(log))

	provider, err := billing.NewStripeProvider(config.MustLoad[billing.StripeConfig]())
	if err != nil {
		return err
	}

	apiCfg := config.MustLoad[api.Config]()
	limiter, err := ratelimit.NewFixedWindow(ratelimit.NewRedisStore(redisClient),
		apiCfg.GenerateRateLimit, apiCfg.GenerateRateWindow)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Get("/health", httpserver.HealthCheckHandler(log,
		pg.Healthcheck(pool), redis.Healthcheck(redisClient)))
	r.Mount("/", api.Router(apiCfg, api.Deps{
		Entitlements: entitlements,
		Reconciler:   entitlement.NewReconciler(entitlements, log),
		Profiles:     profiles,
		Content:      contentSvc,
		Billing:      provider,
		Limiter:      limiter,
		Logger:       log,
	}))

	srv := httpserver.New(config.MustLoad[httpserver.Config](), httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

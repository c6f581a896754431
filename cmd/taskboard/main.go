package main

import (
	"context"
	"log/slog"
	"os"

	"taskboard/config"
	"taskboard/internal/delivery"
	"taskboard/internal/delivery/api"
	"taskboard/internal/delivery/api/middleware"
	"taskboard/internal/delivery/api/router/handler"
	"taskboard/internal/domain/repository"
	"taskboard/internal/infra/auth"
	logs "taskboard/internal/infra/log"
	"taskboard/internal/infra/persistence/memory"
	"taskboard/internal/infra/validation"
	"taskboard/internal/usecase/impl"
	"taskboard/internal/util"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			logSettings,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		parseFlags,
		config.New,
		logs.New,
		context.Background,
	)
}

func parseFlags() (*config.Flags, error) {
	return config.ParseFlags(os.Args[1:])
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			memory.New,
			newAccountRepository,
			newTaskRepository,
		),
	)
}

// The store serves both repositories from one lock.
func newAccountRepository(store *memory.Store) repository.AccountRepository {
	return store
}

func newTaskRepository(store *memory.Store) repository.TaskRepository {
	return store
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			validation.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewTaskService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAccountHandler,
			handler.NewTaskHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func logSettings(cfg *config.Config, logger *slog.Logger) {
	logger.Info("Taskboard configured",
		slog.String("env", cfg.Env.Env),
		slog.String("token_ttl", util.FormatDuration(cfg.Auth.TokenTTL)),
		slog.String("max_request_body", cfg.HTTP.MaxRequestBodySize),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}

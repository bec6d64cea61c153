package components

import (
	"course-checkout/internal/pkg/clock"
	"course-checkout/internal/usecase"
	"course-checkout/internal/usecase/commands"
	"course-checkout/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCheckoutUseCase,
		commands.NewWebhookUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCheckoutSessionQueries,
		queries.NewWebhookEventQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
		fx.Annotate(
			usecase.NewRateLimiter,
			fx.ParamTags(`name:"primary"`, `name:"fallback"`),
		),
	),
)

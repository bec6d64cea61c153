package bootstrap

import (
	"course-checkout/internal/infra/metrics"
	"course-checkout/internal/usecase/shared"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		metrics.New,
		func(m *metrics.Metrics) shared.Metrics {
			return m
		},
	),
)

package components

import (
	"checkout-ledger/internal/infra/gateway"
	"checkout-ledger/internal/infra/ordersource"
	"checkout-ledger/internal/infra/sessionstore"
	"checkout-ledger/internal/pkg/config"
	"checkout-ledger/internal/usecase/commands"
	"checkout-ledger/internal/usecase/queries"

	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		func(cfg config.Config) config.OrderSourceConfig { return cfg.OrderSource },
		func(cfg config.Config) config.GatewayConfig { return cfg.Gateway },
		fx.Annotate(
			sessionstore.New,
			fx.As(new(commands.SessionRepository)),
			fx.As(new(queries.SessionReader)),
		),
		fx.Annotate(
			ordersource.NewClient,
			fx.As(new(commands.OrderSource)),
		),
		fx.Annotate(
			gateway.NewClient,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)

package bootstrap

import (
	"checkout-ledger/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	components.InfraModule,
	components.UseCaseModule,
	components.HandlerModule,
)

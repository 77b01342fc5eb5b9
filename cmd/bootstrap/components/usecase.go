package components

import (
	"checkout-ledger/internal/domain/checkout"
	"checkout-ledger/internal/domain/ledger"
	"checkout-ledger/internal/pkg/clock"
	"checkout-ledger/internal/pkg/config"
	"checkout-ledger/internal/usecase/commands"
	"checkout-ledger/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) (ledger.Rates, error) {
		return ledger.NewRates(cfg.Ledger.TaxRate, cfg.Ledger.FeeRate, cfg.Ledger.FeeMinUnits)
	},
	ledger.NewCalculator,
	func(clock clock.Clock, calc *ledger.Calculator) *checkout.Services {
		return &checkout.Services{
			Clock:      clock,
			Calculator: calc,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCheckoutUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCheckoutQueries,
	),
)

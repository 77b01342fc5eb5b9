package components

import (
	"checkout-ledger/internal/handler"
	"checkout-ledger/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCheckoutHandler,
	),
	fx.Invoke(handler.NewRouter),
)

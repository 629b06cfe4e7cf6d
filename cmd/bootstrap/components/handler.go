package components

import (
	"lodgestay/internal/handler"
	"lodgestay/internal/handler/api"
	"lodgestay/internal/handler/middleware"
	"lodgestay/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewOccupancyHandler,
		api.NewRoomHandler,
		NewChannelMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewChannelMiddleware(cfg config.Config) *middleware.ChannelMiddleware {
	return middleware.NewChannelMiddleware(cfg.Auth)
}

package components

import (
	"lodgestay/internal/infra/readstore"
	"lodgestay/internal/infra/repository"
	"lodgestay/internal/usecase/commands"
	"lodgestay/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
			fx.As(new(queries.ActiveStayReadStore)),
			fx.As(new(queries.StayRangeReadStore)),
			fx.As(new(commands.ActiveReservationReads)),
		),
		fx.Annotate(
			readstore.NewRoomReadStore,
			fx.As(new(queries.RoomReadStore)),
			fx.As(new(commands.RoomReads)),
		),
	),
)

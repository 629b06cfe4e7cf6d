package components

import (
	"lodgestay/internal/domain/pricing"
	"lodgestay/internal/domain/reservation"
	"lodgestay/internal/pkg/clock"
	"lodgestay/internal/pkg/config"
	"lodgestay/internal/usecase/commands"
	"lodgestay/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewRateTable,
	fx.Annotate(
		pricing.NewCalculator,
		fx.As(new(reservation.PriceCalculator)),
	),
	reservation.NewFactory,
	NewReportCache,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewRoomQueries,
		queries.NewAvailabilityQueries,
		queries.NewOccupancyQueries,
	),
)

func NewRateTable(cfg config.Config) (*pricing.RateTable, error) {
	return pricing.NewRateTable(pricing.Config{
		HourlyBandCents:    cfg.Pricing.HourlyBandCents,
		DayBlockCents:      cfg.Pricing.DayBlockCents,
		StandardNightCents: cfg.Pricing.StandardNightCents,
		PromoNightCents:    cfg.Pricing.PromoNightCents,
		WeeklyDiscountPct:  cfg.Pricing.WeeklyDiscountPct,
		ServiceFeePct:      cfg.Pricing.ServiceFeePct,
	})
}

func NewReportCache(cfg config.Config, clock clock.Clock) *queries.ReportCache {
	return queries.NewReportCache(cfg.Occupancy.CacheTTL, clock)
}

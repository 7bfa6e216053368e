package components

import (
	"campsite-booking/internal/domain/reservation"
	"campsite-booking/internal/pkg/clock"
	"campsite-booking/internal/pkg/config"
	"campsite-booking/internal/usecase/commands"
	"campsite-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(clk clock.Clock, cfg config.Config) *reservation.StayPolicy {
		return reservation.NewStayPolicy(clk, cfg.Booking.MaxStayNights, cfg.Booking.MinLeadDays, cfg.Booking.MaxAdvanceMonths)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewAvailabilityQueries,
	),
)

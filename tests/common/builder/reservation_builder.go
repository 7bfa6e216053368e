//go:build unit || e2e

package builder

import (
	"time"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/domain/reservation"
	reqdto "campsite-booking/internal/handler/dto/request"
	sqlc "campsite-booking/internal/infra/sqlc/generated"
	"campsite-booking/internal/pkg/pgconv"
	"campsite-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

// FixedToday is the "now" used by unit tests that go through StayPolicy.
var FixedToday = daterange.Day(2030, time.January, 1)

type ReservationBuilder struct {
	ID        int64
	Version   int64
	Name      string
	Email     string
	Status    reservation.Status
	Arrival   time.Time
	Departure time.Time
	CreatedAt time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:        1,
		Version:   0,
		Name:      "Taro Yamada",
		Email:     "taro@example.com",
		Status:    reservation.StatusActive,
		Arrival:   daterange.AddDays(FixedToday, 5),
		Departure: daterange.AddDays(FixedToday, 7),
		CreatedAt: FixedToday,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Build methods

// BuildNew returns an unpersisted reservation as the create path builds it.
func (b *ReservationBuilder) BuildNew() *reservation.Reservation {
	return reservation.NewReservation(reservation.NewHolder(b.Name, b.Email), b.stay())
}

// BuildDomain returns a reservation as the store would hand it back.
func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	var dates *daterange.Range
	if b.Status == reservation.StatusActive {
		stay := b.stay()
		dates = &stay
	}
	res, err := reservation.ReconstructReservation(
		b.ID, b.Version,
		reservation.NewHolder(b.Name, b.Email),
		b.Status, dates,
		b.CreatedAt, b.CreatedAt,
	)
	if err != nil {
		panic(err)
	}
	return res
}

// BuildInfra returns the row in the canonical [lower, upper) form Postgres uses.
func (b *ReservationBuilder) BuildInfra() sqlc.Reservations {
	dates := pgtype.Range[pgtype.Date]{Valid: false}
	if b.Status == reservation.StatusActive {
		dates = pgtype.Range[pgtype.Date]{
			Lower:     pgconv.DateToPgtype(b.Arrival),
			Upper:     pgconv.DateToPgtype(daterange.AddDays(b.Departure, 1)),
			LowerType: pgtype.Inclusive,
			UpperType: pgtype.Exclusive,
			Valid:     true,
		}
	}
	return sqlc.Reservations{
		ID:          b.ID,
		Version:     b.Version,
		HolderName:  b.Name,
		HolderEmail: b.Email,
		Status:      b.Status.String(),
		DateRange:   dates,
		CreatedAt:   pgconv.TimeToPgtype(b.CreatedAt),
		UpdatedAt:   pgconv.TimeToPgtype(b.CreatedAt),
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return queries.ToReservationView(b.BuildDomain())
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		Name:          b.Name,
		Email:         b.Email,
		ArrivalDate:   daterange.Format(b.Arrival),
		DepartureDate: daterange.Format(b.Departure),
	}
}

func (b *ReservationBuilder) BuildUpdateRequestDTO() reqdto.UpdateReservationRequest {
	arrival := daterange.Format(b.Arrival)
	departure := daterange.Format(b.Departure)
	return reqdto.UpdateReservationRequest{
		Name:          &b.Name,
		Email:         &b.Email,
		ArrivalDate:   &arrival,
		DepartureDate: &departure,
	}
}

// Fluent builder methods
func (b *ReservationBuilder) WithID(id int64) *ReservationBuilder {
	b.ID = id
	return b
}

func (b *ReservationBuilder) WithVersion(v int64) *ReservationBuilder {
	b.Version = v
	return b
}

func (b *ReservationBuilder) WithName(name string) *ReservationBuilder {
	b.Name = name
	return b
}

func (b *ReservationBuilder) WithEmail(email string) *ReservationBuilder {
	b.Email = email
	return b
}

// WithDays sets the stay relative to FixedToday.
func (b *ReservationBuilder) WithDays(arrival, departure int) *ReservationBuilder {
	b.Arrival = daterange.AddDays(FixedToday, arrival)
	b.Departure = daterange.AddDays(FixedToday, departure)
	return b
}

func (b *ReservationBuilder) AsCancelled() *ReservationBuilder {
	b.Status = reservation.StatusCancelled
	return b
}

func (b *ReservationBuilder) stay() daterange.Range {
	return daterange.Range{Start: daterange.Of(b.Arrival), End: daterange.Of(b.Departure)}
}

package components

import (
	sqlc "campsite-booking/internal/infra/sqlc/generated"
	"campsite-booking/internal/infra/uow"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewSQLQueries,
		uow.NewPostgresUoW,
	),
)

// Repositories and read stores are built per transaction by the UnitOfWork.
func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

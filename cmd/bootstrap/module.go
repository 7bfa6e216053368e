package bootstrap

import (
	"campsite-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	LoggerModule,
	components.PersistenceModule,
	components.CacheModule,
	components.UseCaseModule,
	components.HandlerModule,
	RelayModule,
)

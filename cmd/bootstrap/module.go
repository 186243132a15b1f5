package bootstrap

import (
	"restaurant-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// AppModule is everything except the database pool, so tests can supply their own.
var AppModule = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)

var Module = fx.Options(
	AppModule,
	DBModule,
)

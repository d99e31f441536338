package bootstrap

import (
	"slot-booker/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	TracingModule,
	DBModule,
	JWTModule,
	components.PersistenceModule,
	components.PlatformModule,
	components.UseCaseModule,
	components.HandlerModule,
	WorkerModule,
)

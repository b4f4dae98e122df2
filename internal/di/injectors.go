//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"stampcard/internal"
	"stampcard/internal/card"
	"stampcard/internal/controllers"
	"stampcard/internal/providers"
	"stampcard/internal/services"
	"stampcard/internal/storage"
	"stampcard/internal/structures"
)

var cardSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,

	storage.NewStore,
	card.NewScheduler,
	services.NewClock,
	services.NewStampCardService,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		cardSet,
		providers.NewInstrumentedCacheProvider,

		controllers.NewCardController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}

func InitCard(cfg *structures.CliFlags) (services.StampCardServiceInterface, func(), error) {

	wire.Build(cardSet)

	return nil, nil, nil
}

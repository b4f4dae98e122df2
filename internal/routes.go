package internal

import (
	"net/http"
	"stampcard/internal/controllers"
	"stampcard/internal/providers"
)

func InitRoutes(cardController *controllers.CardController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/", http.HandlerFunc(cardController.Page))
	routers.Get("/state", http.HandlerFunc(cardController.State))
	routers.Post("/stamp", http.HandlerFunc(cardController.Stamp))
	routers.Post("/undo", http.HandlerFunc(cardController.Undo))
	return routers
}

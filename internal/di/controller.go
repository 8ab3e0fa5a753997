package di

import (
	"go.uber.org/fx"

	httpctrl "github.com/ferrohq/ferro/internal/controller/http"
)

// ControllerModule provides HTTP controller dependencies
var ControllerModule = fx.Module("controller",
	fx.Provide(
		httpctrl.NewUserStore,
		providePageController,
		provideAPIController,
	),
)

func providePageController(store *httpctrl.UserStore) *httpctrl.PageController {
	return httpctrl.NewPageController(store)
}

func provideAPIController(store *httpctrl.UserStore) *httpctrl.APIController {
	return httpctrl.NewAPIController(store)
}

package standalone

import (
	"go.uber.org/fx"

	"github.com/CWSHBR/echoing/handler"
	"github.com/CWSHBR/echoing/internal/server"
	"github.com/CWSHBR/echoing/util/logging"
)

func Module(config Config) fx.Option {
	return fx.Module(
		"serve",
		// rename logger for module
		logging.DecorateLogger("serve"),
		// provide handlers
		handler.Module(),
		// provide server
		server.Module(config.Http),
	)
}

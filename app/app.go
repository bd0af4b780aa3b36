package app

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/CWSHBR/echoing/config"
	"github.com/CWSHBR/echoing/internal/shell"
	"github.com/CWSHBR/echoing/util/conf"
	"github.com/CWSHBR/echoing/util/logging"
)

func New(ctx *cli.Context) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, err
	}

	config, err := conf.GetConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, err
	}

	sharedModule := fx.Module(
		"shared",
		// provide global config
		fx.Supply(config),
	)

	return shell.New(log, sharedModule), nil
}

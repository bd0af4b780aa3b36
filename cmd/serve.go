package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/CWSHBR/echoing/app"
	"github.com/CWSHBR/echoing/app/standalone"
	"github.com/CWSHBR/echoing/config"
	"github.com/CWSHBR/echoing/util/conf"
	"github.com/CWSHBR/echoing/util/logging"
)

var (
	serveCmdDescription = `The serve command starts a http server and answers incoming
	requests on any path with an echo of the request itself.

	The command will launch the http server and blocks indefin-
	itely, processing incoming http requests.`
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "Start a http server and echo incoming requests.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "host",
				Aliases:  []string{"H"},
				Usage:    "The host to listen on.",
				Value:    "localhost",
				Category: "http",
				EnvVars:  []string{"HTTP_HOST"},
			},
			&cli.IntFlag{
				Name:     "port",
				Aliases:  []string{"P"},
				Usage:    "The port to listen on.",
				Value:    8080,
				Category: "http",
				EnvVars:  []string{"HTTP_PORT"},
			},
			&cli.BoolFlag{
				Name:     "h2c",
				Usage:    "Enable HTTP/2 cleartext upgrade.",
				Value:    false,
				Category: "http",
				EnvVars:  []string{"HTTP_H2C"},
			},
		},
	}
)

func serveAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	// re-parse the config with the serve flags layered on top, so an
	// explicit --host / --port / --h2c wins over file and env values
	cfg, err := conf.Parse[config.Config](conf.ParseOptions{
		Cli: ctx,
		CliMap: map[string]string{
			"host": "http.host",
			"port": "http.port",
			"h2c":  "http.h2c",
		},
		Defaults: config.DefaultConfig,
		FileName: ctx.String("config"),
		EnvFile:  ctx.String("env-file"),
		Log:      log,
	})
	if err != nil {
		return err
	}

	return app.Run(ctx.Context, standalone.Module(standalone.Config{
		Http: cfg.Http,
	}))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, serveCmd)
}

package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/CWSHBR/echoing/app"
	applambda "github.com/CWSHBR/echoing/app/lambda"
	"github.com/CWSHBR/echoing/util/conf"
	"github.com/CWSHBR/echoing/util/logging"
)

var (
	lambdaCmdDescription = `The lambda command starts the echo service as an AWS Lambda
runtime interface client, which allows it to be directly in-
voked by the AWS Lambda runtime without any additional depen-
dencies. The echoed request is whatever the event proxy sur-
face passes through to the handler.

The command will start the AWS runtime interface client and
blocks indefinitely, processing incoming AWS Lambda events.`
	lambdaCmd = &cli.Command{
		Name:        "lambda",
		Usage:       "Run the AWS Lambda handler",
		Description: lambdaCmdDescription,
		Action:      lambdaAction,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "lambda-proxy-source",
				Usage:    "the source of the AWS Lambda event. Options: API_GW_V1, API_GW_V2, ALB.",
				Value:    "API_GW_V2",
				EnvVars:  []string{"LAMBDA_PROXY_SOURCE"},
				Category: "lambda",
			},
		},
	}
)

func lambdaAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	cfg, err := conf.Parse[applambda.Config](conf.ParseOptions{
		Log: log,
		Cli: ctx,
	})
	if err != nil {
		return err
	}

	log.Info("starting AWS Lambda handler")

	return app.Run(ctx.Context, applambda.Module(cfg))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, lambdaCmd)
}

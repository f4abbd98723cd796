package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/thrasher-corp/bulkwithdraw/config"
	"github.com/thrasher-corp/bulkwithdraw/engine"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/account"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/request"
	"github.com/thrasher-corp/bulkwithdraw/log"
	"github.com/thrasher-corp/bulkwithdraw/signaler"
	"github.com/urfave/cli/v2"
)

var (
	configFile    string
	verbose       bool
	exchangeCreds account.Credentials
	bot           *engine.Engine
)

func jsonOutput(in any) {
	j, err := json.MarshalIndent(in, "", " ")
	if err != nil {
		return
	}
	fmt.Println(string(j))
}

// setup loads the configuration, the logger and the exchange clients
func setup(_ *cli.Context) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Logging.Level = "INFO|DEBUG|WARN|ERROR"
	}
	if err := log.SetupGlobalLogger(&cfg.Logging); err != nil {
		return errors.Wrap(err, "setting up logger")
	}
	bot, err = engine.New(cfg)
	if err != nil {
		return errors.Wrap(err, "loading exchanges")
	}
	bot.Verbose = verbose
	return nil
}

// requestContext returns the context exchange calls are made with. The
// --verbose flag marks it so every request and response is logged.
func requestContext(c *cli.Context) context.Context {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if verbose {
		return request.WithVerbose(ctx)
	}
	return ctx
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bulkwithdraw"
	app.Version = "1.0.0"
	app.EnableBashCompletion = true
	app.Usage = "bulk cryptocurrency withdrawals from MEXC and CoinEx"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "config file to load, defaults to ./config.yaml when present",
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "apikey",
			Usage:       "exchange API key",
			EnvVars:     []string{"BULKWITHDRAW_API_KEY"},
			Destination: &exchangeCreds.Key,
		},
		&cli.StringFlag{
			Name:        "apisecret",
			Usage:       "exchange API secret",
			EnvVars:     []string{"BULKWITHDRAW_API_SECRET"},
			Destination: &exchangeCreds.Secret,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Usage:       "logs every exchange request and response",
			Destination: &verbose,
		},
	}
	app.Before = setup
	app.After = func(*cli.Context) error {
		_ = log.Sync()
		return nil
	}
	app.Commands = []*cli.Command{
		getBalancesCommand,
		getCoinsCommand,
		withdrawCommand,
		serveCommand,
	}
	return app
}

func main() {
	ctx, cancel := signaler.WithInterrupt(context.Background())
	defer cancel()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

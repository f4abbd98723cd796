package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thrasher-corp/bulkwithdraw/engine/withdrawmanager"
	exchange "github.com/thrasher-corp/bulkwithdraw/exchanges"
	"github.com/thrasher-corp/bulkwithdraw/exchanges/withdraw"
	"github.com/thrasher-corp/bulkwithdraw/log"
	"github.com/thrasher-corp/bulkwithdraw/signaler"
	"github.com/urfave/cli/v2"
)

var (
	errInvalidExchange     = errors.New("invalid exchange supplied")
	errNoTargets           = errors.New("no withdrawal addresses supplied")
	errAmountUnset         = errors.New("amount unset, supply --amount or address=amount")
	errCredentialsRequired = errors.New("API credentials are required, supply --apikey and --apisecret")
)

const shutdownTimeout = 10 * time.Second

var exchangeFlag = &cli.StringFlag{
	Name:     "exchange",
	Aliases:  []string{"e"},
	Usage:    "the exchange to act on, one of: " + strings.Join(exchange.Exchanges, ", "),
	Required: true,
}

var getBalancesCommand = &cli.Command{
	Name:   "balances",
	Usage:  "gets all non-zero account balances",
	Flags:  []cli.Flag{exchangeFlag},
	Action: getBalances,
}

var getCoinsCommand = &cli.Command{
	Name:      "coins",
	Usage:     "gets withdrawal networks, fees and minimums per coin",
	ArgsUsage: "[coin]",
	Flags:     []cli.Flag{exchangeFlag},
	Action:    getCoins,
}

var withdrawCommand = &cli.Command{
	Name:      "withdraw",
	Usage:     "submits withdrawals sequentially to every supplied address",
	ArgsUsage: "<address[=amount]> [address[=amount]...]",
	Flags: []cli.Flag{
		exchangeFlag,
		&cli.StringFlag{
			Name:     "coin",
			Usage:    "the coin to withdraw e.g. USDT",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "network",
			Usage: "the withdrawal network, display name or code e.g. \"BNB Smart Chain(BEP20)\" or TRC20",
		},
		&cli.StringFlag{
			Name:  "amount",
			Usage: "the amount sent to every address without its own amount",
		},
		&cli.StringFlag{
			Name:  "memo",
			Usage: "the destination memo or tag",
		},
		&cli.StringFlag{
			Name:  "remark",
			Usage: "withdrawal remark, defaults to the submission time",
		},
		&cli.DurationFlag{
			Name:  "delay",
			Usage: "overrides the configured delay between withdrawals",
		},
	},
	Action: bulkWithdraw,
}

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "serves the REST and websocket API",
	Action: serve,
}

func validExchange(exch string) bool {
	return exchange.IsSupported(exch)
}

func requireCredentials() error {
	if exchangeCreds.Validate() != nil {
		return errCredentialsRequired
	}
	return nil
}

func getBalances(c *cli.Context) error {
	exch := c.String("exchange")
	if !validExchange(exch) {
		return errInvalidExchange
	}
	if err := requireCredentials(); err != nil {
		return err
	}
	balances, err := bot.GetBalances(requestContext(c), exch, &exchangeCreds)
	if err != nil {
		return errors.New(exchange.ErrorMessage(err))
	}
	jsonOutput(balances)
	return nil
}

func getCoins(c *cli.Context) error {
	exch := c.String("exchange")
	if !validExchange(exch) {
		return errInvalidExchange
	}
	if err := requireCredentials(); err != nil {
		return err
	}
	if coin := c.Args().First(); coin != "" {
		info, err := bot.GetCoin(requestContext(c), exch, &exchangeCreds, coin)
		if err != nil {
			return errors.New(exchange.ErrorMessage(err))
		}
		jsonOutput(info)
		return nil
	}
	coins, err := bot.GetCoins(requestContext(c), exch, &exchangeCreds)
	if err != nil {
		return errors.New(exchange.ErrorMessage(err))
	}
	jsonOutput(coins)
	return nil
}

func bulkWithdraw(c *cli.Context) error {
	exch := c.String("exchange")
	if !validExchange(exch) {
		return errInvalidExchange
	}
	if err := requireCredentials(); err != nil {
		return err
	}
	reqs, err := parseWithdrawals(&withdraw.Request{
		Coin:    c.String("coin"),
		Network: c.String("network"),
		Amount:  c.String("amount"),
		Memo:    c.String("memo"),
		Remark:  c.String("remark"),
	}, c.Args().Slice())
	if err != nil {
		return err
	}

	progress := withdrawmanager.WithResultHandler(func(i int, r withdraw.Result) {
		status, detail := "OK", r.TxID
		if !r.Success {
			status, detail = "FAILED", r.Error
		}
		fmt.Printf("[%d/%d] %s %s %s -> %s: %s\n", i+1, len(reqs), status, r.Amount, r.Coin, r.Address, detail)
	})
	var m *withdrawmanager.Manager
	if c.IsSet("delay") {
		client, err := bot.GetExchangeByName(exch)
		if err != nil {
			return err
		}
		m, err = withdrawmanager.New(client, c.Duration("delay"), progress)
		if err != nil {
			return err
		}
	} else if m, err = bot.NewWithdrawManager(exch, progress); err != nil {
		return err
	}

	results := m.ExecuteBulk(requestContext(c), &exchangeCreds, reqs)
	succeeded, failed := withdraw.Summarise(results)
	jsonOutput(results)
	fmt.Printf("%d succeeded, %d failed\n", succeeded, failed)
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// parseWithdrawals expands the template into one request per target. A
// target is an address optionally followed by =amount.
func parseWithdrawals(template *withdraw.Request, targets []string) ([]withdraw.Request, error) {
	if len(targets) == 0 {
		return nil, errNoTargets
	}
	reqs := make([]withdraw.Request, 0, len(targets))
	for _, t := range targets {
		address, amount, found := strings.Cut(strings.TrimSpace(t), "=")
		if !found || strings.TrimSpace(amount) == "" {
			amount = template.Amount
		}
		if strings.TrimSpace(amount) == "" {
			return nil, fmt.Errorf("%w: %s", errAmountUnset, address)
		}
		r := *template
		r.Address = strings.TrimSpace(address)
		r.Amount = strings.TrimSpace(amount)
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", t, err)
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}

func serve(c *cli.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- bot.StartRESTServer()
	}()

	select {
	case err := <-errCh:
		return err
	case <-c.Context.Done():
	case <-signaler.WaitForInterrupt():
	}
	log.Infoln(log.Global, "shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := bot.StopRESTServer(ctx); err != nil {
		return err
	}
	return <-errCh
}

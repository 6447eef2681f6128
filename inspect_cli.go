package timemarket

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

var errNoLedgerURL = fmt.Errorf("--url is required for this command")

var _FlagLedgerURL = &cli.StringFlag{
	Name:  "url",
	Usage: "sets ledger url or local store path",
}

var _FlagTokenID = &cli.Uint64Flag{
	Name:     "id",
	Usage:    "sets token id",
	Required: true,
}

var _FlagSeller = &cli.StringFlag{
	Name:     "seller",
	Usage:    "sets seller identity",
	Required: true,
}

var _FlagDeadline = &cli.DurationFlag{
	Name:     "deadline",
	Usage:    "sets request deadline",
	Value:    15 * time.Second,
	Required: false,
}

// NewInspectCLI builds the read-only ledger CLI. URLs starting with
// http(s) go through the remote inspect client; anything else is
// treated as a local store path and handed to init.
func NewInspectCLI(init func(path string) (Inspect, error)) *cli.App {
	var (
		inspect Inspect
		err     error
	)

	withDeadline := func(ctx *cli.Context) (context.Context, context.CancelFunc) {
		return context.WithDeadline(
			context.Background(), time.Now().Add(ctx.Duration(_FlagDeadline.Name)))
	}

	return &cli.App{
		Name: "timemarket-cli",
		Usage: "The cli for the time-token marketplace ledger.\n\n" +
			"timemarket-cli --url .timemarket stats\n" +
			"timemarket-cli --url http://localhost:7777/timemarket token --id 1\n" +
			"timemarket-cli --url http://localhost:7777/timemarket seller-tokens --seller GSELLER",
		Flags: []cli.Flag{
			_FlagLedgerURL,
		},
		Before: func(ctx *cli.Context) error {
			url := ctx.String(_FlagLedgerURL.Name)
			if url == "" {
				// commands that read the ledger check for this below;
				// store-level commands bring their own --store-dir
				return nil
			}
			if strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://") {
				inspect = NewInspectRemote(url, nil)
			} else {
				if init == nil {
					return fmt.Errorf("this CLI only supports http & https urls")
				}

				inspect, err = init(url)
				if err != nil {
					return fmt.Errorf("failed to initialize Inspect - %w", err)
				}
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "keyspaces",
				Usage: "lists ledger keyspaces",
				Action: func(ctx *cli.Context) error {
					if inspect == nil {
						return errNoLedgerURL
					}
					result, err := inspect.Keyspaces()
					if err != nil {
						return err
					}
					return printJSON(result)
				},
			},
			{
				Name:  "token-fields",
				Usage: "lists time token record fields",
				Action: func(ctx *cli.Context) error {
					if inspect == nil {
						return errNoLedgerURL
					}
					result, err := inspect.TokenFields()
					if err != nil {
						return err
					}
					return printJSON(result)
				},
			},
			{
				Name:  "token",
				Usage: "fetches one token record",
				Flags: []cli.Flag{
					_FlagTokenID,
					_FlagDeadline,
				},
				Action: func(ctx *cli.Context) error {
					if inspect == nil {
						return errNoLedgerURL
					}

					reqCtx, cancel := withDeadline(ctx)
					defer cancel()

					result, err := inspect.Token(reqCtx, ctx.Uint64(_FlagTokenID.Name))
					if err != nil {
						return err
					}
					return printJSON(result)
				},
			},
			{
				Name:  "seller-tokens",
				Usage: "lists token ids minted by a seller",
				Flags: []cli.Flag{
					_FlagSeller,
					_FlagDeadline,
				},
				Action: func(ctx *cli.Context) error {
					if inspect == nil {
						return errNoLedgerURL
					}

					reqCtx, cancel := withDeadline(ctx)
					defer cancel()

					result, err := inspect.SellerTokens(reqCtx, Identity(ctx.String(_FlagSeller.Name)))
					if err != nil {
						return err
					}
					return printJSON(result)
				},
			},
			{
				Name:  "sellers",
				Usage: "lists known sellers",
				Flags: []cli.Flag{
					_FlagDeadline,
				},
				Action: func(ctx *cli.Context) error {
					if inspect == nil {
						return errNoLedgerURL
					}

					reqCtx, cancel := withDeadline(ctx)
					defer cancel()

					result, err := inspect.Sellers(reqCtx)
					if err != nil {
						return err
					}
					return printJSON(result)
				},
			},
			{
				Name:  "stats",
				Usage: "prints ledger stats",
				Flags: []cli.Flag{
					_FlagDeadline,
				},
				Action: func(ctx *cli.Context) error {
					if inspect == nil {
						return errNoLedgerURL
					}

					reqCtx, cancel := withDeadline(ctx)
					defer cancel()

					result, err := inspect.Stats(reqCtx)
					if err != nil {
						return err
					}
					return printJSON(result)
				},
			},
		},
		HideHelp:        true,
		HideHelpCommand: true,
	}
}

func printJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

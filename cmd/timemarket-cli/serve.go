package main

import (
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/go-timemarket/timemarket"
	"github.com/urfave/cli/v2"
)

var _FlagListen = &cli.StringFlag{
	Name:     "listen",
	Usage:    "sets listen address",
	Value:    ":7777",
	Required: false,
}

var ServeCommand = &cli.Command{
	Name:  "serve",
	Usage: "serves the ledger inspect endpoint over http",
	Flags: []cli.Flag{
		_FlagStoreDir,
		_FlagListen,
	},
	Action: func(ctx *cli.Context) error {
		db, err := timemarket.Open(ctx.String(_FlagStoreDir.Name), nil)
		if err != nil {
			return err
		}
		defer func() {
			_ = db.Close()
		}()

		ledger := timemarket.NewLedger(db, nil, nil)
		inspect, err := timemarket.NewInspect(db, ledger)
		if err != nil {
			return err
		}

		mux := http.NewServeMux()
		mux.Handle("/timemarket/", timemarket.NewInspectHandler(inspect))

		addr := ctx.String(_FlagListen.Name)
		fmt.Printf("serving inspect on %s (store size %s)\n",
			addr, humanize.Bytes(db.DiskUsage()))

		return http.ListenAndServe(addr, mux)
	},
}

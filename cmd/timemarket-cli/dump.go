package main

import (
	"os"

	"github.com/go-timemarket/timemarket"
	"github.com/urfave/cli/v2"
)

var _FlagStoreDir = &cli.StringFlag{
	Name:     "store-dir",
	Usage:    "sets ledger store dir",
	Required: true,
}

var _FlagDumpFile = &cli.StringFlag{
	Name:     "file",
	Usage:    "sets dump file path",
	Required: true,
}

var DumpCommand = &cli.Command{
	Name:  "dump",
	Usage: "dumps the ledger store to a gzip file",
	Flags: []cli.Flag{
		_FlagStoreDir,
		_FlagDumpFile,
	},
	Action: func(ctx *cli.Context) error {
		db, err := timemarket.Open(ctx.String(_FlagStoreDir.Name), nil)
		if err != nil {
			return err
		}
		defer func() {
			_ = db.Close()
		}()

		file, err := os.Create(ctx.String(_FlagDumpFile.Name))
		if err != nil {
			return err
		}
		defer func() {
			_ = file.Close()
		}()

		return timemarket.Dump(ctx.Context, db, file)
	},
}

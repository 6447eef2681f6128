package main

import (
	"os"

	"github.com/go-timemarket/timemarket"
	"github.com/urfave/cli/v2"
)

var RestoreCommand = &cli.Command{
	Name:  "restore",
	Usage: "restores a ledger store from a gzip dump",
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

		file, err := os.Open(ctx.String(_FlagDumpFile.Name))
		if err != nil {
			return err
		}
		defer func() {
			_ = file.Close()
		}()

		return timemarket.Restore(ctx.Context, db, file)
	},
}

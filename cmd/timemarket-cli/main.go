package main

import (
	"fmt"
	"os"

	"github.com/go-timemarket/timemarket"
)

func main() {
	app := timemarket.NewInspectCLI(openLocalInspect)
	app.Commands = append(app.Commands, DumpCommand, RestoreCommand, ServeCommand)

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[Error] %s\n", err.Error())
	}
}

func openLocalInspect(path string) (timemarket.Inspect, error) {
	db, err := timemarket.Open(path, nil)
	if err != nil {
		return nil, err
	}

	ledger := timemarket.NewLedger(db, nil, nil)
	return timemarket.NewInspect(db, ledger)
}

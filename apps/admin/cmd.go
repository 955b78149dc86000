package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/tchamgoue/memboard/core"
	"github.com/tchamgoue/memboard/core/member"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf   *core.Config
	db     *sql.DB
	logger core.Logger
	mbrSvc *member.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate up|up-by-one|down|redo|status|version - run database migrations")
	fmt.Println("  importmembers -file FILE [-on-row-error skip|abort] - bulk-load members from a CSV roster")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	importCmd := flag.NewFlagSet("importmembers", flag.ExitOnError)
	importFile := importCmd.String("file", "", "Path to the CSV roster to import.")
	importOnRowError := importCmd.String("on-row-error", cli.conf.Import.OnRowError,
		"Row failure policy: skip (log and continue) or abort (stop on first bad row).")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "importmembers":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *importFile == "" {
			importCmd.Usage()
			return errHelp
		}
		return cli.importMembers(*importFile, *importOnRowError)
	default:
		cli.printUsage()
		return errHelp
	}
}

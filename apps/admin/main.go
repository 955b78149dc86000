package main

import (
	"log"
	"os"

	"github.com/tchamgoue/memboard/core"
	"github.com/tchamgoue/memboard/core/member"
	logsvc "github.com/tchamgoue/memboard/services/logger"
	"github.com/tchamgoue/memboard/storage/database"
	sqlxrepos "github.com/tchamgoue/memboard/storage/database/sqlx"
)

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	core.InitValidators()

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
	defer db.Close()

	// start CLI
	cli := commandLine{
		conf:   conf,
		db:     db,
		logger: logger,
		mbrSvc: member.NewService(sqlxrepos.NewMemberRepository(db)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(err.Error(), err)
		}
		os.Exit(1)
	}
}

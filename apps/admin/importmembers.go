package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tchamgoue/memboard/core/member"
)

// importMembers bulk-loads the CSV roster at path. It is a one-shot batch:
// rows are consumed in source order and the run is not resumable mid-stream.
func (cli *commandLine) importMembers(path, onRowError string) error {
	importer, err := member.NewImporter(cli.mbrSvc, cli.logger, onRowError)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	report, err := importer.ImportCSV(context.Background(), f)
	if err != nil {
		return err
	}
	fmt.Printf("import %s: %d rows processed, %d members created, %d rows skipped\n",
		report.RunID, report.Processed, report.Created, report.Skipped)
	return nil
}

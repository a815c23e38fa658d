package cmd

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/stagit-go/internal/output"
)

func writeBuildReport(c *cli.Context, report *output.BuildReport) error {
	writer := output.NewReportWriter(getReportFormat(c.String("format")))
	return writer.Write(os.Stdout, report)
}

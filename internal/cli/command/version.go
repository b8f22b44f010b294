package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/chainmap-go/internal/cli/output"
	"github.com/yndnr/chainmap-go/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show build information",
		Action: func(c *cli.Context) error {
			flags, err := ParseGlobalFlags(c)
			if err != nil {
				return err
			}
			if flags.Output == output.FormatTable {
				_, err := fmt.Fprintln(writer(c), buildinfo.String())
				return err
			}
			return render(c, flags, buildinfo.Get())
		},
	}
}

package commands

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// NewVersionCommand returns a cli.Command for "riffle version".
func NewVersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show the riffle version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				fmt.Println("version not available; build with Go modules enabled")
				return nil
			}

			fmt.Printf("riffle %v\n", info.Main.Version)
			return nil
		},
	}
}

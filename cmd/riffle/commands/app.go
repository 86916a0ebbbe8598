package commands

import (
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// NewApp creates the riffle CLI app.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:  "riffle",
		Usage: "Inspect and manage serialized expression containers",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewInspectCommand(),
			NewStoreCommand(),
			NewVersionCommand(),
		},
	}
}

// newLogger builds the command logger. Debug mode logs store activity to
// stderr; otherwise logging is disabled.
func newLogger(cmd *cli.Command) (*zap.Logger, error) {
	if !cmd.Bool("debug") {
		return zap.NewNop(), nil
	}

	return zap.NewDevelopment()
}

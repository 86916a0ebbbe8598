package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/riffleml/riffle"
	"github.com/riffleml/riffle/internal/store"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

// NewStoreCommand returns a cli.Command for "riffle store".
func NewStoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "store",
		Usage: "Manage a container catalog.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "db",
				Usage:    "path of the catalog database",
				Required: true,
			},
		},
		Commands: []*cli.Command{
			newStorePutCommand(),
			newStoreGetCommand(),
			newStoreListCommand(),
			newStoreDeleteCommand(),
			newStoreImportCommand(),
		},
	}
}

func openStore(cmd *cli.Command) (*store.Store, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}

	return store.Open(cmd.String("db"), store.Options{Logger: logger})
}

func newStorePutCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "put",
		Usage:     "Store a container file under a name.",
		UsageText: "riffle store --db path put name file",
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		name := cmd.Args().Get(0)
		path := cmd.Args().Get(1)
		if name == "" || path == "" {
			return errors.New(cmd.UsageText)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		c, err := readContainer(path)
		if err != nil {
			return err
		}

		return s.Put(name, c)
	}

	return &cmd
}

func newStoreGetCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "get",
		Usage:     "Print the steps of a stored container.",
		UsageText: "riffle store --db path get [options] name",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "write the container wire bytes to this file instead",
			},
		},
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		name := cmd.Args().First()
		if name == "" {
			return errors.New(cmd.UsageText)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		c, err := s.Get(name)
		if err != nil {
			return err
		}

		if f := cmd.String("file"); f != "" {
			data, err := riffle.Marshal(c)
			if err != nil {
				return err
			}
			return os.WriteFile(f, data, 0o644)
		}

		return dumpContainer(os.Stdout, c)
	}

	return &cmd
}

func newStoreListCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "list",
		Usage:     "List stored container names.",
		UsageText: "riffle store --db path list",
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		names, err := s.List()
		if err != nil {
			return err
		}

		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	return &cmd
}

func newStoreDeleteCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "delete",
		Usage:     "Delete a stored container.",
		UsageText: "riffle store --db path delete name",
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		name := cmd.Args().First()
		if name == "" {
			return errors.New(cmd.UsageText)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		return s.Delete(name)
	}

	return &cmd
}

func newStoreImportCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "import",
		Usage:     "Import container files in bulk, named after their base names.",
		UsageText: "riffle store --db path import file...",
	}

	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		paths := cmd.Args().Slice()
		if len(paths) == 0 {
			return errors.New(cmd.UsageText)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		// Parsing is CPU bound, so fan it out; writes are serialized by
		// the store itself.
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.GOMAXPROCS(0))

		for _, path := range paths {
			path := path
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				c, err := readContainer(path)
				if err != nil {
					return errors.Wrapf(err, "%s", path)
				}

				name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				return s.Put(name, c)
			})
		}

		return g.Wait()
	}

	return &cmd
}

func readContainer(path string) (*riffle.Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return riffle.Unmarshal(data)
}

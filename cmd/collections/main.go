package main

import (
	"context"
	"log"
	"os"

	"starwars/infrastructure/config"
	"starwars/infrastructure/di"

	"github.com/urfave/cli/v3"
)

func main() {
	root := &cli.Command{
		Name:  "collections",
		Usage: "Create or drop the film and planet tables",
		Commands: []*cli.Command{
			{
				Name:  "configure-collections",
				Usage: "Create missing tables and wait until they are active",
				Action: func(ctx context.Context, c *cli.Command) error {
					container, err := load(ctx)
					if err != nil {
						return err
					}
					defer container.Shutdown(ctx)
					return container.Provisioner.ConfigureCollections(ctx)
				},
			},
			{
				Name:  "drop-collections",
				Usage: "Delete the tables; refused in Production",
				Action: func(ctx context.Context, c *cli.Command) error {
					container, err := load(ctx)
					if err != nil {
						return err
					}
					defer container.Shutdown(ctx)
					return container.Provisioner.DropCollections(ctx)
				},
			},
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func load(ctx context.Context) (*di.Container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return di.InitializeContainer(ctx, cfg)
}

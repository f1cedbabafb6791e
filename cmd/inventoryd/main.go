package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/talkincode/inventory/config"
	"github.com/talkincode/inventory/internal/adminapi"
	"github.com/talkincode/inventory/internal/app"
	"github.com/talkincode/inventory/internal/export"
	"github.com/talkincode/inventory/internal/webserver"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

func main() {
	cliApp := &cli.App{
		Name:  "inventoryd",
		Usage: "inventory manager admin service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "inventory.yml",
				Usage:   "path to the YAML config file",
				EnvVars: []string{"INVENTORY_CONFIG"},
			},
		},
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the admin API",
				Action: serve,
			},
			{
				Name:  "export",
				Usage: "write the seeded inventory to a csv or xlsx file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: export.CSVFilename},
				},
				Action: exportItems,
			},
			{
				Name:      "hash-password",
				Usage:     "print a bcrypt hash for auth.password_hash",
				ArgsUsage: "[password]",
				Action:    hashPassword,
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	webserver.Init(cfg, application)
	adminapi.Init()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return webserver.Listen(gctx)
	})
	err = g.Wait()
	zap.L().Info("inventoryd stopped")
	return err
}

func exportItems(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	application := app.NewApplication(cfg)
	if _, err := application.LoadItems(); err != nil {
		return err
	}

	output := c.String("output")
	f, err := os.Create(output)
	if err != nil {
		return errors.Wrap(err, "create export file")
	}
	defer f.Close()

	items := application.Store().Snapshot()
	if strings.EqualFold(filepath.Ext(output), ".xlsx") {
		err = export.WriteXLSX(f, items)
	} else {
		err = export.WriteCSV(f, items)
	}
	if err != nil {
		return err
	}
	fmt.Printf("exported %d items to %s\n", len(items), output)
	return nil
}

func hashPassword(c *cli.Context) error {
	password := c.Args().First()
	if password == "" {
		fmt.Print("password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return errors.Wrap(err, "read password")
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	fmt.Println(string(hash))
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/padraicbc/umaplan/catalog"
	"github.com/padraicbc/umaplan/cli"
	"github.com/padraicbc/umaplan/config"
	applog "github.com/padraicbc/umaplan/logger"
	"github.com/padraicbc/umaplan/planner"
	"github.com/padraicbc/umaplan/store"
)

var CLI struct {
	Version kong.VersionFlag
	Key     string `help:"Plan key in the store. Defaults to PLAN_KEY."`

	Races     cli.RacesCmd     `cmd:"" help:"List races grouped by time slot." default:"1"`
	Race      cli.RaceCmd      `cmd:"" help:"Show one race."`
	Show      cli.ShowCmd      `cmd:"" help:"Show the current plan."`
	Toggle    cli.ToggleCmd    `cmd:"" help:"Add or remove races from the plan." aliases:"add"`
	Remove    cli.RemoveCmd    `cmd:"" help:"Remove a race from the plan."`
	Move      cli.MoveCmd      `cmd:"" help:"Move a planned race to a new position."`
	Clear     cli.ClearCmd     `cmd:"" help:"Clear the plan."`
	Filter    cli.FilterCmd    `cmd:"" help:"Set or reset stored filters."`
	Conflicts cli.ConflictsCmd `cmd:"" help:"List schedule conflicts."`
	Save      cli.SaveCmd      `cmd:"" help:"Save the plan."`
	Share     cli.ShareCmd     `cmd:"" help:"Create a share link."`
	Import    cli.ImportCmd    `cmd:"" help:"Load a plan from a share link."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("umaplan"),
		kong.Description("Plan a racing career across the Junior, Classic and Senior calendar"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg := config.LoadCLI()
	logger, err := applog.New(cfg.Debug, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx := context.Background()
	plans, err := store.Open(ctx, cfg.Store, cfg.Debug, logger)
	if err != nil {
		logger.Error("open plan store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer plans.Close()

	key := CLI.Key
	if key == "" {
		key = cfg.PlanKey
	}

	appCtx := &cli.Context{
		Ctx:       ctx,
		Races:     catalog.NewFile(cfg.RacesFile, logger),
		Plans:     planner.NewService(plans, cli.WriterNotifier{W: os.Stderr}, logger),
		Key:       key,
		PublicURL: cfg.PublicURL,
		Timeline:  planner.TimelineOptions{IncludePreDebutSlots: cfg.IncludePreDebutSlots},
		Out:       os.Stdout,
		Copy:      clipboard.WriteAll,
	}

	if err := kctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

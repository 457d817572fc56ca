package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/rectplan/internal/cli"
	"github.com/alexanderramin/rectplan/internal/config"
	"github.com/alexanderramin/rectplan/internal/db"
	"github.com/alexanderramin/rectplan/internal/repository"
	"github.com/alexanderramin/rectplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, cfgPath, _, err := config.Load(os.Getenv("RECTPLAN_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	database, err := db.OpenDB(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	profileRepo := repository.NewSQLiteProfileRepo(database)
	runRepo := repository.NewSQLitePlanRunRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.Logging.UseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr, cfg.LogLevel())
	}

	app := &cli.App{
		Profiles:   service.NewProfileService(profileRepo, uow, observer),
		Plans:      service.NewPlanService(profileRepo, runRepo, uow, observer),
		Config:     cfg,
		ConfigPath: cfgPath,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

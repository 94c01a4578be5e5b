package main

import (
	"fmt"

	log "github.com/charmbracelet/log"
	"github.com/ledgerd/bankcore/infra"
	infrarepo "github.com/ledgerd/bankcore/infra/repository"
	"github.com/ledgerd/bankcore/internal/logging"
	"github.com/ledgerd/bankcore/pkg/accountnumber"
	"github.com/ledgerd/bankcore/pkg/config"
	"github.com/ledgerd/bankcore/pkg/service/ledger"
	usersvc "github.com/ledgerd/bankcore/pkg/service/user"
	"github.com/ledgerd/bankcore/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	logger := logging.New(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	uow := infrarepo.NewUoW(db)
	alloc := accountnumber.New(uow.Accounts())
	ledgerSvc := ledger.New(uow, alloc, logger)
	userSvc := usersvc.New(uow, logger)

	app := webapi.New(ledgerSvc, userSvc)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)
	return app.Listen(addr)
}

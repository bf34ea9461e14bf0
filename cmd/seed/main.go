package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/gamemaster/internal/app"
	"github.com/riskibarqy/gamemaster/internal/config"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
	"github.com/riskibarqy/gamemaster/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/gamemaster/internal/infrastructure/repository/postgres"
	idgen "github.com/riskibarqy/gamemaster/internal/platform/id"
	"github.com/riskibarqy/gamemaster/internal/platform/logging"
	"github.com/spf13/cobra"
)

const minAdminPasswordLength = 8

type seedOptions struct {
	adminEmail    string
	adminName     string
	adminPassword string
}

func main() {
	_ = godotenv.Load()

	logger := logging.NewJSON(logging.LevelInfo).Named("seed")
	if err := newRootCmd(logger).ExecuteContext(context.Background()); err != nil {
		logger.Error("seed failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func newRootCmd(logger *logging.Logger) *cobra.Command {
	var opts seedOptions

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Seeds demo clubs and optionally a site admin",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, opts, logger)
		},
	}

	cmd.Flags().StringVar(&opts.adminEmail, "admin-email", os.Getenv("SEED_ADMIN_EMAIL"), "site admin email to create or promote")
	cmd.Flags().StringVar(&opts.adminName, "admin-name", "Site Admin", "site admin display name")
	cmd.Flags().StringVar(&opts.adminPassword, "admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "site admin password")
	return cmd
}

func (o *seedOptions) validate() error {
	o.adminEmail = user.NormalizeEmail(o.adminEmail)
	if o.adminEmail == "" {
		return nil
	}
	if !strings.Contains(o.adminEmail, "@") {
		return errors.New("--admin-email must be an email address")
	}
	if len(o.adminPassword) < minAdminPasswordLength {
		return errors.New("--admin-password must be at least 8 characters")
	}
	return nil
}

func run(ctx context.Context, cfg config.Config, opts seedOptions, logger *logging.Logger) error {
	if cfg.StoreDriver != config.StoreDriverPostgres {
		return errors.New("seed requires STORE_DRIVER=postgres")
	}

	db, err := app.OpenDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ids := idgen.NewUUIDGenerator()
	inserted, err := postgres.SeedClubs(ctx, db, ids.NewID)
	if err != nil {
		return err
	}
	logger.Info("clubs seeded", "inserted", inserted)

	if opts.adminEmail == "" {
		return nil
	}

	hash, err := jwtauth.NewBcryptHasher(cfg.BcryptCost).Hash(opts.adminPassword)
	if err != nil {
		return err
	}
	adminID, err := ids.NewID()
	if err != nil {
		return err
	}
	if err := postgres.SeedSiteAdmin(ctx, db, adminID, opts.adminEmail, opts.adminName, hash); err != nil {
		return err
	}
	logger.Info("site admin seeded", "email", opts.adminEmail)
	return nil
}

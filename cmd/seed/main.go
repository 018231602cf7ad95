package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/community-hub-api/internal/repository"
	"github.com/noah-isme/community-hub-api/internal/seed"
	"github.com/noah-isme/community-hub-api/pkg/config"
	"github.com/noah-isme/community-hub-api/pkg/database"
	"github.com/noah-isme/community-hub-api/pkg/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Prepare and populate the community hub database",
		SilenceUsage:  true,
	}
	cmd.AddCommand(schemaCmd(), runCmd())
	return cmd
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create the members, posts and export_jobs tables if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logr, db, err := connect(cmd)
			if err != nil {
				return err
			}
			defer db.Close()
			defer logr.Sync() //nolint:errcheck

			if err := repository.ApplySchema(cmd.Context(), db); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
			logr.Info("schema applied", zap.String("database", cfg.Database.Name))
			return nil
		},
	}
}

func runCmd() *cobra.Command {
	var opts seed.Options
	var withSchema bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Insert fake members and posts",
		Example: `  seed run --members 200 --posts 800
  seed run --members 50 --seed 42 --missing-rate 0.3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logr, db, err := connect(cmd)
			if err != nil {
				return err
			}
			defer db.Close()
			defer logr.Sync() //nolint:errcheck

			if withSchema {
				if err := repository.ApplySchema(cmd.Context(), db); err != nil {
					return fmt.Errorf("apply schema: %w", err)
				}
			}

			seeder := seed.NewSeeder(repository.NewMemberRepository(db), repository.NewPostRepository(db), logr)
			summary, err := seeder.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d members, %d posts, %d mentions\n", summary.Members, summary.Posts, summary.Mentions)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Members, "members", 100, "number of members to create")
	cmd.Flags().IntVar(&opts.Posts, "posts", 300, "number of posts to create")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed; 0 uses the clock")
	cmd.Flags().Float64Var(&opts.MissingRate, "missing-rate", 0.1, "share of members without rating, availability and join date")
	cmd.Flags().BoolVar(&withSchema, "schema", false, "apply the schema before seeding")
	return cmd
}

func connect(cmd *cobra.Command) (*config.Config, *zap.Logger, *sqlx.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Printf("logger init failed, falling back to no-op: %v", err)
		logr = zap.NewNop()
	}
	db, err := database.NewPostgres(cmd.Context(), cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	return cfg, logr, db, nil
}

// Command venuectl holds operator tasks for the venue booker: applying the database
// schema and minting bearer tokens for local development.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/qwerty-development/revive-webapp/internal/auth"
	"github.com/qwerty-development/revive-webapp/internal/config"
	"github.com/qwerty-development/revive-webapp/internal/models"
	"github.com/qwerty-development/revive-webapp/internal/storage/postgres"
)

const migrateTimeout = time.Minute

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "venuectl",
		Short:         "Operator tools for the venue booker",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "path to the YAML config (defaults to $CONFIG_PATH)")

	load := func() (*config.Config, error) {
		if configPath == "" {
			return nil, fmt.Errorf("--config or CONFIG_PATH is required")
		}
		return config.Load(configPath)
	}

	root.AddCommand(newMigrateCmd(load), newTokenCmd(load))

	return root
}

func newMigrateCmd(load func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the postgres schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			db, err := postgres.InitDB(&cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
			defer cancel()

			if err := db.Migrate(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "schema applied to %s@%s:%d/%s\n",
				cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
			return nil
		},
	}
}

func newTokenCmd(load func() (*config.Config, error)) *cobra.Command {
	var (
		sub             string
		role            string
		passwordChanged bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed bearer token",
		Long: `Print a bearer token signed with the configured secret.

The token carries the subject, role and password_changed claims the API
checks, and expires after auth.token_ttl.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := models.Role(role)
			if !r.Valid() {
				return fmt.Errorf("unknown role %q, want admin, store or user", role)
			}

			cfg, err := load()
			if err != nil {
				return err
			}

			tok, err := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL).
				Issue(sub, r, passwordChanged)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&sub, "sub", "", "subject (user id)")
	cmd.Flags().StringVar(&role, "role", string(models.RoleUser), "admin, store or user")
	cmd.Flags().BoolVar(&passwordChanged, "password-changed", false, "mark the initial password as changed")
	_ = cmd.MarkFlagRequired("sub")

	return cmd
}

package main

import (
	"errors"
	"fmt"
	"time"

	"course-checkout/internal/infra/repository"
	"course-checkout/internal/pkg/config"
	"course-checkout/internal/pkg/jwt"

	"github.com/spf13/cobra"
)

func issueTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue-token <email>",
		Short: "Issue an admin API bearer token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.Admin.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			if !cfg.Admin.IsAdmin(args[0]) {
				return fmt.Errorf("%s is not listed in ADMIN_EMAILS", args[0])
			}

			ttl, _ := cmd.Flags().GetDuration("ttl")
			if ttl <= 0 {
				ttl = cfg.Admin.JWTDuration
			}
			token, err := jwt.NewService(cfg.Admin.JWTSecret, ttl).GenerateToken(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().Duration("ttl", 0, "Token lifetime (default JWT_DURATION)")
	return cmd
}

func pruneRateLimitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune-rate-limits",
		Short: "Delete durable rate limit windows that closed before now minus --older-than",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			olderThan, _ := cmd.Flags().GetDuration("older-than")
			if olderThan < 0 {
				return errors.New("--older-than must not be negative")
			}

			e, err := openEnv(cmd.Context(), verbose(cmd))
			if err != nil {
				return err
			}
			defer e.close()

			if e.pool == nil {
				return errors.New("DATABASE_URL is not set; in-memory windows expire with the server process")
			}

			n, err := repository.NewRateLimitRepository(e.queries, e.pool).PruneExpired(cmd.Context(), e.clock.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pruned %d rate limit windows\n", n)
			return nil
		},
	}
	cmd.Flags().Duration("older-than", time.Hour, "Keep windows that closed within this duration")
	cmd.Flags().BoolP("verbose", "v", false, "Log backend selection to stderr")
	return cmd
}

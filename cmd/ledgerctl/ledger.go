package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"course-checkout/internal/infra/mail"
	"course-checkout/internal/usecase/commands"
	"course-checkout/internal/usecase/queries"
	"course-checkout/internal/usecase/shared"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ledger records, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			e, err := openEnv(cmd.Context(), verbose(cmd))
			if err != nil {
				return err
			}
			defer e.close()

			views, err := queries.NewWebhookEventQueries(e.ledger).ListEvents(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), views)
			}
			return printEvents(cmd.OutOrStdout(), views)
		},
	}
	cmd.Flags().IntP("limit", "n", queries.DefaultListLimit, "Maximum records")
	cmd.Flags().BoolP("verbose", "v", false, "Log backend selection to stderr")
	return cmd
}

func getCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <event-id>",
		Short: "Show the ledger state of one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), verbose(cmd))
			if err != nil {
				return err
			}
			defer e.close()

			view, err := queries.NewWebhookEventQueries(e.ledger).GetEvent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), view)
			}
			return printEvents(cmd.OutOrStdout(), []queries.WebhookEventView{*view})
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Log backend selection to stderr")
	return cmd
}

func releaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release <event-id>",
		Short: "Release an event so Stripe's next redelivery is processed again",
		Long: `Removes the ledger record of an event. Use it for events stuck in the
reserved state after a crash; releasing a processed event makes the next
redelivery send the welcome e-mail again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), verbose(cmd))
			if err != nil {
				return err
			}
			defer e.close()

			uc := commands.NewWebhookUseCase(e.ledger, mail.NewLogMailer(e.clock, e.logger), shared.NopMetrics{}, e.logger, e.cfg)
			if err := uc.ReleaseEvent(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "released %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Log backend selection to stderr")
	return cmd
}

func printEvents(w io.Writer, views []queries.WebhookEventView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EVENT ID\tSTATE\tCREATED\tPROCESSED")
	for _, v := range views {
		processed := "-"
		if v.ProcessedAt != nil {
			processed = v.ProcessedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.EventID, v.State, v.CreatedAt.Format(time.RFC3339), processed)
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func asJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func verbose(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("verbose")
	return v
}

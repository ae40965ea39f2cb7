package main

import (
	"github.com/familyfin/ledgerhub/lib/service"
	"github.com/spf13/cobra"
)

func newRecomputeCommand() *cobra.Command {
	var accountID int64

	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Rewrite the snapshots and the balance of an account from its amounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := loadService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := svc.RecomputeAccount(ctx, accountID)
			if err != nil {
				return err
			}
			if report.OK() {
				svc.Logger.Infof("Account %d was already consistent", accountID)
			} else {
				svc.Logger.Infof("Account %d repaired: %d snapshots rewritten, balance %s -> %s",
					accountID, len(report.Mismatches), report.StoredBalance, report.ExpectedBalance)
			}
			// print the state found before the repair
			return writeReports([]service.ChainReport{*report})
		},
	}

	cmd.Flags().Int64Var(&accountID, "account", 0, "account to repair (required)")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/familyfin/ledgerhub/lib/service"
	"github.com/spf13/cobra"
)

func newVerifyCommand() *cobra.Command {
	var accountID int64
	var concurrency int

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Replay balance chains and report snapshots that disagree",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := loadService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var reports []service.ChainReport
			if accountID != 0 {
				report, err := svc.VerifyAccount(ctx, accountID)
				if err != nil {
					return err
				}
				reports = append(reports, *report)
			} else {
				reports, err = svc.VerifyAllAccounts(ctx, concurrency)
				if err != nil {
					return err
				}
			}
			if err := writeReports(reports); err != nil {
				return err
			}
			broken := 0
			for i := range reports {
				if !reports[i].OK() {
					broken++
				}
			}
			if broken > 0 {
				return fmt.Errorf("%d of %d accounts are out of balance", broken, len(reports))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&accountID, "account", 0, "only verify this account")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "accounts verified in parallel")

	return cmd
}

func writeReports(reports []service.ChainReport) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reports)
}

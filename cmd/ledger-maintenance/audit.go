package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/familyfin/ledgerhub/common"
	"github.com/familyfin/ledgerhub/db/models"
	"github.com/familyfin/ledgerhub/lib/service"
	"github.com/familyfin/ledgerhub/rabbitmq"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
)

func newAuditCommand() *cobra.Command {
	var queueName string
	var repair bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Verify the chains of every account named in published ledger events",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			svc, cleanup, err := loadService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			if svc.Config.RabbitMQUri == "" {
				return errors.New("audit needs RABBITMQ_URI")
			}

			amqpClient, err := rabbitmq.DialAMQP(svc.Config.RabbitMQUri, svc.Logger)
			if err != nil {
				return err
			}
			client, err := rabbitmq.NewClient(amqpClient,
				rabbitmq.WithLogger(svc.Logger),
				rabbitmq.WithLedgerExchange(svc.Config.RabbitMQLedgerExchange),
				rabbitmq.WithConsumerQueueName(queueName),
			)
			if err != nil {
				amqpClient.Close()
				return err
			}
			defer client.Close()
			svc.Publisher = client

			err = client.ConsumeLedgerEvents(ctx, rabbitmq.AllLedgerEvents, auditHandler(svc, repair))
			if errors.Is(err, context.Canceled) {
				svc.Logger.Info("Ledger auditor done")
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&queueName, "queue", "ledger_auditor", "queue the auditor consumes from")
	cmd.Flags().BoolVar(&repair, "repair", false, "recompute accounts found out of balance")

	return cmd
}

func auditHandler(svc *service.LedgerService, repair bool) rabbitmq.LedgerEventHandler {
	return func(ctx context.Context, event models.LedgerEvent) error {
		// a recompute announces a repaired chain, there is nothing left to check
		if event.Type == common.EventChainRecomputed {
			return nil
		}
		for _, accountID := range event.AccountIDs {
			report, err := svc.VerifyAccount(ctx, accountID)
			if service.IsNotFound(err) {
				continue
			}
			if err != nil {
				return err
			}
			if report.OK() {
				continue
			}
			mismatch := &service.IntegrityError{
				AccountID: accountID,
				Message:   fmt.Sprintf("%d snapshots disagree after %s %s", len(report.Mismatches), event.Type, event.ID),
			}
			svc.Logger.Error(mismatch)
			sentry.CaptureException(mismatch)
			if repair {
				if _, err := svc.RecomputeAccount(ctx, accountID); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

package service

import (
	"context"
	"time"

	"github.com/familyfin/ledgerhub/db/models"
	"github.com/getsentry/sentry-go"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

// EventPublisher ships committed ledger events to an external broker.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event models.LedgerEvent) error
}

// LedgerService owns every ledger mutation. Clock drives transaction numbers
// and the recent-window checks and defaults to time.Now.
type LedgerService struct {
	Config       *Config
	DB           *bun.DB
	Logger       *lecho.Logger
	Publisher    EventPublisher
	LedgerPubSub *Pubsub
	Clock        func() time.Time
}

func (svc *LedgerService) now() time.Time {
	if svc.Clock != nil {
		return svc.Clock().UTC()
	}
	return time.Now().UTC()
}

// recentCutoff is the oldest transaction date whose amount or account may still change.
func (svc *LedgerService) recentCutoff() time.Time {
	return svc.now().AddDate(0, -svc.Config.RecentWindowMonths, 0)
}

func (svc *LedgerService) isStale(date time.Time) bool {
	return date.Before(svc.recentCutoff())
}

// notify runs after commit. Failures are reported but never undo the mutation.
func (svc *LedgerService) notify(ctx context.Context, eventType string, transactionIDs, accountIDs []int64) {
	event := models.NewLedgerEvent(eventType, transactionIDs, uniqueSorted(accountIDs))
	if svc.LedgerPubSub != nil {
		svc.LedgerPubSub.Publish(event)
	}
	if svc.Publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := svc.Publisher.PublishLedgerEvent(ctx, event); err != nil {
		svc.Logger.Errorf("Failed to publish ledger event %s %s: %v", event.Type, event.ID, err)
		sentry.CaptureException(err)
	}
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// AuditChains verifies every account once and reports each broken chain.
// It returns the number of accounts out of balance.
func (svc *LedgerService) AuditChains(ctx context.Context) (int, error) {
	reports, err := svc.VerifyAllAccounts(ctx, 4)
	if err != nil {
		return 0, err
	}
	broken := 0
	for _, report := range reports {
		if report.OK() {
			continue
		}
		broken++
		mismatch := &IntegrityError{
			AccountID: report.AccountID,
			Message: fmt.Sprintf("%d snapshots disagree, balance %s, replay %s",
				len(report.Mismatches), report.StoredBalance, report.ExpectedBalance),
		}
		svc.Logger.Error(mismatch)
		sentry.CaptureException(mismatch)
	}
	svc.Logger.Infof("Audited %d accounts, %d out of balance", len(reports), broken)
	return broken, nil
}

// StartChainAuditRoutine runs AuditChains every CHAIN_AUDIT_INTERVAL minutes
// until ctx is done. A zero interval disables it.
func (svc *LedgerService) StartChainAuditRoutine(ctx context.Context) error {
	if svc.Config.ChainAuditInterval <= 0 {
		return nil
	}
	ticker := time.NewTicker(time.Duration(svc.Config.ChainAuditInterval) * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := svc.AuditChains(ctx); err != nil && ctx.Err() == nil {
				return err
			}
		}
	}
}

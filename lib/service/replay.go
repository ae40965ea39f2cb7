package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/familyfin/ledgerhub/common"
	"github.com/familyfin/ledgerhub/db/models"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"
)

type SnapshotMismatch struct {
	TransactionID int64           `json:"transaction_id"`
	Stored        decimal.Decimal `json:"stored" swaggertype:"string"`
	Expected      decimal.Decimal `json:"expected" swaggertype:"string"`
}

// ChainReport compares an account chain with a replay of its amounts from zero.
type ChainReport struct {
	AccountID       int64              `json:"account_id"`
	Rows            int                `json:"rows"`
	StoredBalance   decimal.Decimal    `json:"stored_balance" swaggertype:"string"`
	ExpectedBalance decimal.Decimal    `json:"expected_balance" swaggertype:"string"`
	Mismatches      []SnapshotMismatch `json:"mismatches"`
}

func (r *ChainReport) OK() bool {
	return len(r.Mismatches) == 0 && r.StoredBalance.Equal(r.ExpectedBalance)
}

func replayChain(ctx context.Context, db bun.IDB, account *models.Account) (*ChainReport, error) {
	rows := []models.Transaction{}
	if err := db.NewSelect().
		Model(&rows).
		Column("id", "amount", "balance_after").
		Where("account_id = ?", account.ID).
		OrderExpr("transaction_date ASC, id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("load chain of account %d: %w", account.ID, err)
	}

	report := &ChainReport{
		AccountID:     account.ID,
		Rows:          len(rows),
		StoredBalance: account.Balance.Decimal,
		Mismatches:    []SnapshotMismatch{},
	}
	running := decimal.Zero
	for _, row := range rows {
		running = running.Add(row.Amount.Decimal)
		if !row.BalanceAfter.Equal(running) {
			report.Mismatches = append(report.Mismatches, SnapshotMismatch{
				TransactionID: row.ID,
				Stored:        row.BalanceAfter.Decimal,
				Expected:      running,
			})
		}
	}
	report.ExpectedBalance = running
	return report, nil
}

// VerifyAccount replays the account chain without changing anything.
func (svc *LedgerService) VerifyAccount(ctx context.Context, accountID int64) (*ChainReport, error) {
	account, err := svc.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return replayChain(ctx, svc.DB, account)
}

// VerifyAllAccounts replays every account chain, at most concurrency at a time.
func (svc *LedgerService) VerifyAllAccounts(ctx context.Context, concurrency int) ([]ChainReport, error) {
	var ids []int64
	if err := svc.DB.NewSelect().Model((*models.Account)(nil)).Column("id").OrderExpr("id ASC").Scan(ctx, &ids); err != nil {
		return nil, err
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	var mu sync.Mutex
	reports := make([]ChainReport, 0, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			report, err := svc.VerifyAccount(ctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			reports = append(reports, *report)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].AccountID < reports[j].AccountID })
	return reports, nil
}

// RecomputeAccount rewrites every snapshot and the balance of an account from
// a full replay. The returned report describes the state before the repair.
func (svc *LedgerService) RecomputeAccount(ctx context.Context, accountID int64) (*ChainReport, error) {
	var report *ChainReport
	err := svc.runMutation(ctx, func(ctx context.Context, tx bun.Tx) error {
		accounts, err := lockAccounts(ctx, tx, accountID)
		if err != nil {
			return err
		}
		report, err = replayChain(ctx, tx, accounts[accountID])
		if err != nil {
			return err
		}
		c := newChain(tx)
		for _, mismatch := range report.Mismatches {
			if err := c.setSnapshot(ctx, mismatch.TransactionID, mismatch.Expected); err != nil {
				return fmt.Errorf("repair snapshot of %d: %w", mismatch.TransactionID, err)
			}
		}
		if !report.StoredBalance.Equal(report.ExpectedBalance) {
			if _, err := tx.NewUpdate().
				Model((*models.Account)(nil)).
				Set("balance = ?", models.NewMoney(report.ExpectedBalance)).
				Where("id = ?", accountID).
				Exec(ctx); err != nil {
				return fmt.Errorf("repair balance of account %d: %w", accountID, err)
			}
		}
		return c.verify(ctx, accountID)
	})
	if err != nil {
		return nil, err
	}
	if !report.OK() {
		ids := make([]int64, 0, len(report.Mismatches))
		for _, mismatch := range report.Mismatches {
			ids = append(ids, mismatch.TransactionID)
		}
		svc.notify(ctx, common.EventChainRecomputed, ids, []int64{accountID})
	}
	return report, nil
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/familyfin/ledgerhub/db/models"
	"github.com/uptrace/bun"
)

func isPostgres(db bun.IDB) bool {
	return db.Dialect().Name().String() == "pg"
}

// runMutation executes fn as one atomic unit. Caller cancellation is ignored,
// only DATABASE_TIMEOUT aborts it.
func (svc *LedgerService) runMutation(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), svc.Config.mutationTimeout())
	defer cancel()

	opts := &sql.TxOptions{}
	if isPostgres(svc.DB) {
		opts.Isolation = sql.LevelReadCommitted
	}
	return svc.DB.RunInTx(ctx, opts, fn)
}

func uniqueSorted(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// lockAccounts loads the given accounts and, on postgres, holds a row lock on
// each of them until the unit ends. Locks are taken in ascending id order.
func lockAccounts(ctx context.Context, tx bun.IDB, ids ...int64) (map[int64]*models.Account, error) {
	accounts := make(map[int64]*models.Account)
	for _, id := range uniqueSorted(ids) {
		account := new(models.Account)
		q := tx.NewSelect().Model(account).Where("id = ?", id)
		if isPostgres(tx) {
			q = q.For("UPDATE")
		}
		if err := q.Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, notFound("account", id)
			}
			return nil, fmt.Errorf("lock account %d: %w", id, err)
		}
		accounts[id] = account
	}
	return accounts, nil
}

// requireActive checks that every id was locked and is usable for new entries.
func requireActive(accounts map[int64]*models.Account, field string, ids ...int64) error {
	for _, id := range ids {
		account, ok := accounts[id]
		if !ok {
			return notFound("account", id)
		}
		if !account.IsActive {
			return invalid(field, "account %d is inactive", id)
		}
	}
	return nil
}

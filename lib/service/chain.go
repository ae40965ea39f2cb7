package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/familyfin/ledgerhub/db/models"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// chainKey is the position of a transaction in its account chain.
// Rows are ordered by date first and id second.
type chainKey struct {
	Date time.Time
	ID   int64
}

func keyOf(t *models.Transaction) chainKey {
	return chainKey{Date: t.TransactionDate, ID: t.ID}
}

// Before reports whether k sorts strictly before other.
func (k chainKey) Before(other chainKey) bool {
	if k.Date.Equal(other.Date) {
		return k.ID < other.ID
	}
	return k.Date.Before(other.Date)
}

// chain maintains balance_after snapshots and the account balance inside an
// open unit. Every statement excludes the mutated row itself by id, so the
// row's own columns may already hold their new values when a method runs.
type chain struct {
	db bun.IDB
}

func newChain(db bun.IDB) chain {
	return chain{db: db}
}

// predecessorBalance is the balance_after of the latest row strictly before key,
// or zero when key is first in the chain.
func (c chain) predecessorBalance(ctx context.Context, accountID int64, key chainKey) (decimal.Decimal, error) {
	var balance models.Money
	err := c.db.NewSelect().
		Model((*models.Transaction)(nil)).
		Column("balance_after").
		Where("account_id = ?", accountID).
		Where("id <> ?", key.ID).
		Where("(transaction_date < ? OR (transaction_date = ? AND id < ?))", key.Date, key.Date, key.ID).
		OrderExpr("transaction_date DESC, id DESC").
		Limit(1).
		Scan(ctx, &balance)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("predecessor of %d on account %d: %w", key.ID, accountID, err)
	}
	return balance.Decimal, nil
}

// shiftAfter adds delta to every row of the account strictly after key.
func (c chain) shiftAfter(ctx context.Context, accountID int64, key chainKey, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	_, err := c.db.NewUpdate().
		Model((*models.Transaction)(nil)).
		Set("balance_after = balance_after + ?", models.NewMoney(delta)).
		Where("account_id = ?", accountID).
		Where("id <> ?", key.ID).
		Where("(transaction_date > ? OR (transaction_date = ? AND id > ?))", key.Date, key.Date, key.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("shift chain of account %d after %d: %w", accountID, key.ID, err)
	}
	return nil
}

// shiftBetween adds delta to every row strictly after lower and strictly before upper.
func (c chain) shiftBetween(ctx context.Context, accountID int64, lower, upper chainKey, selfID int64, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	_, err := c.db.NewUpdate().
		Model((*models.Transaction)(nil)).
		Set("balance_after = balance_after + ?", models.NewMoney(delta)).
		Where("account_id = ?", accountID).
		Where("id <> ?", selfID).
		Where("(transaction_date > ? OR (transaction_date = ? AND id > ?))", lower.Date, lower.Date, lower.ID).
		Where("(transaction_date < ? OR (transaction_date = ? AND id < ?))", upper.Date, upper.Date, upper.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("shift chain of account %d around %d: %w", accountID, selfID, err)
	}
	return nil
}

func (c chain) adjustAccount(ctx context.Context, accountID int64, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	_, err := c.db.NewUpdate().
		Model((*models.Account)(nil)).
		Set("balance = balance + ?", models.NewMoney(delta)).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", accountID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("adjust balance of account %d: %w", accountID, err)
	}
	return nil
}

func (c chain) setSnapshot(ctx context.Context, id int64, balance decimal.Decimal) error {
	_, err := c.db.NewUpdate().
		Model((*models.Transaction)(nil)).
		Set("balance_after = ?", models.NewMoney(balance)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (c chain) addToSnapshot(ctx context.Context, id int64, delta decimal.Decimal) error {
	_, err := c.db.NewUpdate().
		Model((*models.Transaction)(nil)).
		Set("balance_after = balance_after + ?", models.NewMoney(delta)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// attach links a row that already exists in the account into the chain at key:
// its snapshot becomes predecessor + amount and everything after it, as well as
// the account balance, grows by amount.
func (c chain) attach(ctx context.Context, accountID int64, key chainKey, amount decimal.Decimal) (decimal.Decimal, error) {
	pred, err := c.predecessorBalance(ctx, accountID, key)
	if err != nil {
		return decimal.Zero, err
	}
	balance := pred.Add(amount)
	if err := c.setSnapshot(ctx, key.ID, balance); err != nil {
		return decimal.Zero, fmt.Errorf("set snapshot of %d: %w", key.ID, err)
	}
	if err := c.shiftAfter(ctx, accountID, key, amount); err != nil {
		return decimal.Zero, err
	}
	if err := c.adjustAccount(ctx, accountID, amount); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// detach removes the contribution of a row at key from the account chain.
// With cascade false the later snapshots are left untouched.
func (c chain) detach(ctx context.Context, accountID int64, key chainKey, amount decimal.Decimal, cascade bool) error {
	if cascade {
		if err := c.shiftAfter(ctx, accountID, key, amount.Neg()); err != nil {
			return err
		}
	}
	return c.adjustAccount(ctx, accountID, amount.Neg())
}

// editAmount applies an amount change of a row that stays at key.
func (c chain) editAmount(ctx context.Context, accountID int64, key chainKey, oldAmount, newAmount decimal.Decimal) error {
	delta := newAmount.Sub(oldAmount)
	if delta.IsZero() {
		return nil
	}
	if err := c.addToSnapshot(ctx, key.ID, delta); err != nil {
		return fmt.Errorf("update snapshot of %d: %w", key.ID, err)
	}
	if err := c.shiftAfter(ctx, accountID, key, delta); err != nil {
		return err
	}
	return c.adjustAccount(ctx, accountID, delta)
}

// move repositions a row within its account from oldKey to newKey.
// Rows passed over lose or regain amount and the moved row is re-snapshotted
// from its new predecessor. The account balance does not change.
func (c chain) move(ctx context.Context, accountID int64, oldKey, newKey chainKey, amount decimal.Decimal) error {
	switch {
	case oldKey.Before(newKey):
		if err := c.shiftBetween(ctx, accountID, oldKey, newKey, oldKey.ID, amount.Neg()); err != nil {
			return err
		}
	case newKey.Before(oldKey):
		if err := c.shiftBetween(ctx, accountID, newKey, oldKey, oldKey.ID, amount); err != nil {
			return err
		}
	default:
		return nil
	}
	pred, err := c.predecessorBalance(ctx, accountID, newKey)
	if err != nil {
		return err
	}
	if err := c.setSnapshot(ctx, newKey.ID, pred.Add(amount)); err != nil {
		return fmt.Errorf("set snapshot of %d: %w", newKey.ID, err)
	}
	return nil
}

// latestBalance is the snapshot of the newest row of the account, zero when it has none.
func (c chain) latestBalance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	var balance models.Money
	err := c.db.NewSelect().
		Model((*models.Transaction)(nil)).
		Column("balance_after").
		Where("account_id = ?", accountID).
		OrderExpr("transaction_date DESC, id DESC").
		Limit(1).
		Scan(ctx, &balance)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, nil
	}
	return balance.Decimal, err
}

// verify checks that the stored account balance matches the latest snapshot.
func (c chain) verify(ctx context.Context, accountID int64) error {
	latest, err := c.latestBalance(ctx, accountID)
	if err != nil {
		return err
	}
	var balance models.Money
	if err := c.db.NewSelect().
		Model((*models.Account)(nil)).
		Column("balance").
		Where("id = ?", accountID).
		Scan(ctx, &balance); err != nil {
		return err
	}
	if !balance.Equal(latest) {
		return &IntegrityError{
			AccountID: accountID,
			Message:   fmt.Sprintf("balance %s does not match latest snapshot %s", balance, latest),
		}
	}
	return nil
}

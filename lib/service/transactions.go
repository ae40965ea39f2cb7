package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/familyfin/ledgerhub/common"
	"github.com/familyfin/ledgerhub/db/models"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// CreateTransactionParams describes one new transaction. Amount is the
// absolute value, its sign follows from TransactionType.
type CreateTransactionParams struct {
	AccountID        int64
	RelatedAccountID int64
	CategoryID       int64
	Amount           decimal.Decimal
	TransactionType  string
	TransactionDate  time.Time
	Payee            string
	Payer            string
	Description      string
	Attachment       string
	Status           string
}

type CreatedTransaction struct {
	ID                   int64           `json:"id"`
	TransactionNo        string          `json:"transaction_no"`
	AccountID            int64           `json:"account_id"`
	Amount               decimal.Decimal `json:"amount" swaggertype:"string"`
	TransactionType      string          `json:"transaction_type"`
	BalanceAfter         decimal.Decimal `json:"balance_after" swaggertype:"string"`
	RelatedTransactionID int64           `json:"related_transaction_id,omitempty"`
}

// TransactionPatch lists the fields an edit may change. Nil fields are kept.
type TransactionPatch struct {
	AccountID        *int64
	RelatedAccountID *int64
	CategoryID       *int64
	Amount           *decimal.Decimal
	TransactionType  *string
	TransactionDate  *time.Time
	Payee            *string
	Payer            *string
	Description      *string
	Attachment       *string
	Status           *string
}

// applyShared copies the fields that do not depend on the leg of a transfer.
func (p *TransactionPatch) applyShared(t *models.Transaction) {
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.TransactionType != nil {
		t.TransactionType = *p.TransactionType
	}
	if p.TransactionDate != nil {
		t.TransactionDate = *p.TransactionDate
	}
	if p.Payee != nil {
		t.Payee = *p.Payee
	}
	if p.Payer != nil {
		t.Payer = *p.Payer
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Attachment != nil {
		t.Attachment = *p.Attachment
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}

// DeleteResult reports the removed rows. Cascaded is false when the later
// snapshots of a stale row were left untouched.
type DeleteResult struct {
	ID        int64 `json:"id"`
	RelatedID int64 `json:"related_id,omitempty"`
	Cascaded  bool  `json:"cascaded"`
}

var rowColumns = []string{
	"account_id",
	"related_account_id",
	"category_id",
	"amount",
	"transaction_type",
	"transaction_date",
	"payee",
	"payer",
	"description",
	"attachment",
	"status",
	"updated_at",
}

func newTransactionRow(p *CreateTransactionParams, transactionNo string, amount decimal.Decimal) *models.Transaction {
	now := time.Now().UTC()
	return &models.Transaction{
		TransactionNo:   transactionNo,
		AccountID:       p.AccountID,
		CategoryID:      p.CategoryID,
		Amount:          models.NewMoney(amount),
		TransactionType: p.TransactionType,
		TransactionDate: p.TransactionDate,
		BalanceAfter:    models.NewMoney(decimal.Zero),
		Payee:           p.Payee,
		Payer:           p.Payer,
		Description:     p.Description,
		Attachment:      p.Attachment,
		Status:          p.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// insertRow inserts the row to obtain its id, then places it on its chain.
func insertRow(ctx context.Context, tx bun.IDB, c chain, row *models.Transaction) error {
	if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
		return translateDBError(err, fmt.Sprintf("transaction number %s already exists", row.TransactionNo))
	}
	balance, err := c.attach(ctx, row.AccountID, keyOf(row), row.Amount.Decimal)
	if err != nil {
		return err
	}
	row.BalanceAfter = models.NewMoney(balance)
	return nil
}

func loadTransaction(ctx context.Context, db bun.IDB, id int64) (*models.Transaction, error) {
	transaction := new(models.Transaction)
	err := db.NewSelect().Model(transaction).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("transaction", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load transaction %d: %w", id, err)
	}
	return transaction, nil
}

// reloadLocked re-reads a row once its accounts are locked. A row that moved
// to an account outside the locked set was changed concurrently.
func reloadLocked(ctx context.Context, db bun.IDB, accounts map[int64]*models.Account, id int64) (*models.Transaction, error) {
	transaction, err := loadTransaction(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if _, ok := accounts[transaction.AccountID]; !ok {
		return nil, &ConflictError{Message: fmt.Sprintf("transaction %d was changed concurrently", id)}
	}
	return transaction, nil
}

// checkEditWindow rejects amount or account changes on rows outside the recent window.
func (svc *LedgerService) checkEditWindow(old, next *models.Transaction) error {
	if old.AccountID == next.AccountID && old.Amount.Equal(next.Amount.Decimal) {
		return nil
	}
	if svc.isStale(old.TransactionDate) || svc.isStale(next.TransactionDate) {
		return invalid("transaction_date", "amount or account of transactions older than %d month(s) cannot be changed", svc.Config.RecentWindowMonths)
	}
	return nil
}

// rewriteRow stores next over old and repairs the affected chains.
// An account change is a removal from one chain followed by an insertion
// into the other; within one account the row is moved first and its amount
// changed at the new position.
func rewriteRow(ctx context.Context, tx bun.IDB, c chain, old, next *models.Transaction) error {
	if _, err := tx.NewUpdate().Model(next).Column(rowColumns...).WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("update transaction %d: %w", old.ID, err)
	}
	oldKey, newKey := keyOf(old), keyOf(next)

	if old.AccountID != next.AccountID {
		if err := c.detach(ctx, old.AccountID, oldKey, old.Amount.Decimal, true); err != nil {
			return err
		}
		_, err := c.attach(ctx, next.AccountID, newKey, next.Amount.Decimal)
		return err
	}
	if !old.TransactionDate.Equal(next.TransactionDate) {
		if err := c.move(ctx, old.AccountID, oldKey, newKey, old.Amount.Decimal); err != nil {
			return err
		}
	}
	return c.editAmount(ctx, old.AccountID, newKey, old.Amount.Decimal, next.Amount.Decimal)
}

func withIndex(err error, index, total int) error {
	var ve *ValidationError
	if total > 1 && errors.As(err, &ve) {
		return &ValidationError{Field: fmt.Sprintf("transactions[%d].%s", index, ve.Field), Message: ve.Message}
	}
	return err
}

// CreateTransactions records one or more transactions as a single all-or-nothing unit.
func (svc *LedgerService) CreateTransactions(ctx context.Context, params []CreateTransactionParams) ([]CreatedTransaction, error) {
	if len(params) == 0 {
		return nil, invalid("transactions", "at least one transaction is required")
	}
	if len(params) > svc.Config.MaxBatchSize {
		return nil, invalid("transactions", "at most %d transactions can be created at once", svc.Config.MaxBatchSize)
	}
	accountIDs := make([]int64, 0, len(params)*2)
	for i := range params {
		if err := svc.validateCreate(&params[i]); err != nil {
			return nil, withIndex(err, i, len(params))
		}
		accountIDs = append(accountIDs, params[i].AccountID, params[i].RelatedAccountID)
	}

	created := make([]CreatedTransaction, 0, len(params))
	transactionIDs := make([]int64, 0, len(params))
	err := svc.runMutation(ctx, func(ctx context.Context, tx bun.Tx) error {
		accounts, err := lockAccounts(ctx, tx, accountIDs...)
		if err != nil {
			return err
		}
		c := newChain(tx)
		for i := range params {
			p := &params[i]
			if err := requireActive(accounts, "account_id", p.AccountID); err != nil {
				return withIndex(err, i, len(params))
			}
			if p.TransactionType == common.TransactionTypeTransfer {
				if err := requireActive(accounts, "related_account_id", p.RelatedAccountID); err != nil {
					return withIndex(err, i, len(params))
				}
			}
			if err := checkCategory(ctx, tx, p.CategoryID, p.TransactionType); err != nil {
				return withIndex(err, i, len(params))
			}
			transactionNo, err := nextTransactionNo(ctx, tx, svc.now())
			if err != nil {
				return err
			}

			if p.TransactionType == common.TransactionTypeTransfer {
				source, destination, err := createTransfer(ctx, tx, c, p, transactionNo)
				if err != nil {
					return err
				}
				created = append(created, CreatedTransaction{
					ID:                   source.ID,
					TransactionNo:        source.TransactionNo,
					AccountID:            source.AccountID,
					Amount:               source.Amount.Decimal,
					TransactionType:      source.TransactionType,
					BalanceAfter:         source.BalanceAfter.Decimal,
					RelatedTransactionID: destination.ID,
				})
				transactionIDs = append(transactionIDs, source.ID, destination.ID)
				continue
			}

			row := newTransactionRow(p, transactionNo, signedAmount(p.TransactionType, p.Amount))
			if err := insertRow(ctx, tx, c, row); err != nil {
				return err
			}
			created = append(created, CreatedTransaction{
				ID:              row.ID,
				TransactionNo:   row.TransactionNo,
				AccountID:       row.AccountID,
				Amount:          row.Amount.Decimal,
				TransactionType: row.TransactionType,
				BalanceAfter:    row.BalanceAfter.Decimal,
			})
			transactionIDs = append(transactionIDs, row.ID)
		}
		return svc.finishMutation(ctx, tx, accountIDs)
	})
	if err != nil {
		return nil, err
	}

	svc.notify(ctx, common.EventTransactionCreated, transactionIDs, accountIDs)
	return created, nil
}

// EditTransaction applies a patch to a transaction and repairs every chain it touches.
func (svc *LedgerService) EditTransaction(ctx context.Context, id int64, patch TransactionPatch) (*models.Transaction, error) {
	if err := svc.validatePatch(&patch); err != nil {
		return nil, err
	}

	var updated *models.Transaction
	var touched, transactionIDs []int64
	err := svc.runMutation(ctx, func(ctx context.Context, tx bun.Tx) error {
		current, err := loadTransaction(ctx, tx, id)
		if err != nil {
			return err
		}
		if current.IsTransfer {
			updated, touched, transactionIDs, err = svc.editTransfer(ctx, tx, current, &patch)
		} else {
			updated, touched, err = svc.editSingle(ctx, tx, current, &patch)
			transactionIDs = []int64{id}
		}
		if err != nil {
			return err
		}
		return svc.finishMutation(ctx, tx, touched)
	})
	if err != nil {
		return nil, err
	}

	svc.notify(ctx, common.EventTransactionUpdated, transactionIDs, touched)
	return updated, nil
}

func (svc *LedgerService) editSingle(ctx context.Context, tx bun.Tx, current *models.Transaction, patch *TransactionPatch) (*models.Transaction, []int64, error) {
	if patch.TransactionType != nil && *patch.TransactionType == common.TransactionTypeTransfer {
		return nil, nil, invalid("transaction_type", "an existing transaction cannot be turned into a transfer")
	}
	if patch.RelatedAccountID != nil && *patch.RelatedAccountID != 0 {
		return nil, nil, invalid("related_account_id", "is only allowed for transfers")
	}
	accountID := current.AccountID
	if patch.AccountID != nil {
		accountID = *patch.AccountID
	}

	accounts, err := lockAccounts(ctx, tx, current.AccountID, accountID)
	if err != nil {
		return nil, nil, err
	}
	current, err = reloadLocked(ctx, tx, accounts, current.ID)
	if err != nil {
		return nil, nil, err
	}

	next := *current
	patch.applyShared(&next)
	next.AccountID = accountID
	amount := current.Amount.Abs()
	if patch.Amount != nil {
		amount = *patch.Amount
	}
	next.Amount = models.NewMoney(signedAmount(next.TransactionType, amount))

	if next.AccountID != current.AccountID {
		if err := requireActive(accounts, "account_id", next.AccountID); err != nil {
			return nil, nil, err
		}
	}
	if next.CategoryID != current.CategoryID || next.TransactionType != current.TransactionType {
		if err := checkCategory(ctx, tx, next.CategoryID, next.TransactionType); err != nil {
			return nil, nil, err
		}
	}
	if err := svc.checkEditWindow(current, &next); err != nil {
		return nil, nil, err
	}

	if err := rewriteRow(ctx, tx, newChain(tx), current, &next); err != nil {
		return nil, nil, err
	}
	updated, err := loadTransaction(ctx, tx, current.ID)
	if err != nil {
		return nil, nil, err
	}
	return updated, []int64{current.AccountID, next.AccountID}, nil
}

// DeleteTransaction removes a transaction, and the other leg of a transfer,
// shifting every later snapshot of the affected accounts.
func (svc *LedgerService) DeleteTransaction(ctx context.Context, id int64) (*DeleteResult, error) {
	result := &DeleteResult{ID: id}
	var touched, transactionIDs []int64
	err := svc.runMutation(ctx, func(ctx context.Context, tx bun.Tx) error {
		current, err := loadTransaction(ctx, tx, id)
		if err != nil {
			return err
		}
		pair, err := findPair(ctx, tx, current)
		if err != nil {
			return err
		}
		legs := []*models.Transaction{current}
		if pair != nil {
			legs = append(legs, pair)
		}
		for _, leg := range legs {
			touched = append(touched, leg.AccountID)
		}

		accounts, err := lockAccounts(ctx, tx, touched...)
		if err != nil {
			return err
		}
		result.Cascaded = svc.Config.CascadeStaleDeletes || !svc.isStale(current.TransactionDate)
		c := newChain(tx)
		for i, leg := range legs {
			leg, err = reloadLocked(ctx, tx, accounts, leg.ID)
			if err != nil {
				return err
			}
			if err := c.detach(ctx, leg.AccountID, keyOf(leg), leg.Amount.Decimal, result.Cascaded); err != nil {
				return err
			}
			if _, err := tx.NewDelete().Model((*models.Transaction)(nil)).Where("id = ?", leg.ID).Exec(ctx); err != nil {
				return fmt.Errorf("delete transaction %d: %w", leg.ID, err)
			}
			if i > 0 {
				result.RelatedID = leg.ID
			}
			transactionIDs = append(transactionIDs, leg.ID)
		}
		return svc.finishMutation(ctx, tx, touched)
	})
	if err != nil {
		return nil, err
	}
	if !result.Cascaded {
		svc.Logger.Warnf("Deleted stale transaction %d without updating later balances", id)
	}

	svc.notify(ctx, common.EventTransactionDeleted, transactionIDs, touched)
	return result, nil
}

// SetStatus changes the status of a transaction, and of the other transfer leg.
// Balances are not affected.
func (svc *LedgerService) SetStatus(ctx context.Context, id int64, status string) (*models.Transaction, error) {
	if !common.IsValidTransactionStatus(status) {
		return nil, invalid("status", "must be one of pending, completed or cancelled")
	}
	var updated *models.Transaction
	var touched, transactionIDs []int64
	err := svc.runMutation(ctx, func(ctx context.Context, tx bun.Tx) error {
		current, err := loadTransaction(ctx, tx, id)
		if err != nil {
			return err
		}
		pair, err := findPair(ctx, tx, current)
		if err != nil {
			return err
		}
		transactionIDs = []int64{current.ID}
		touched = []int64{current.AccountID}
		if pair != nil {
			transactionIDs = append(transactionIDs, pair.ID)
			touched = append(touched, pair.AccountID)
		}
		if _, err := tx.NewUpdate().
			Model((*models.Transaction)(nil)).
			Set("status = ?", status).
			Set("updated_at = ?", time.Now().UTC()).
			Where("id IN (?)", bun.In(transactionIDs)).
			Exec(ctx); err != nil {
			return fmt.Errorf("update status of transaction %d: %w", id, err)
		}
		updated, err = loadTransaction(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	svc.notify(ctx, common.EventTransactionStatus, transactionIDs, touched)
	return updated, nil
}

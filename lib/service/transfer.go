package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/familyfin/ledgerhub/common"
	"github.com/familyfin/ledgerhub/db/models"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// transferLegAmounts returns the signed amounts of the source and destination legs.
func transferLegAmounts(amount decimal.Decimal) (source, destination decimal.Decimal) {
	return amount.Abs().Neg(), amount.Abs()
}

// createTransfer writes both legs of a transfer under one transaction number.
// Each leg is placed on its own account chain independently.
func createTransfer(ctx context.Context, tx bun.IDB, c chain, p *CreateTransactionParams, transactionNo string) (*models.Transaction, *models.Transaction, error) {
	sourceAmount, destinationAmount := transferLegAmounts(p.Amount)

	source := newTransactionRow(p, transactionNo, sourceAmount)
	source.RelatedAccountID = p.RelatedAccountID
	source.IsTransfer = true
	if err := insertRow(ctx, tx, c, source); err != nil {
		return nil, nil, err
	}

	destination := newTransactionRow(p, transactionNo+common.TransferLegSuffix, destinationAmount)
	destination.AccountID = p.RelatedAccountID
	destination.RelatedAccountID = p.AccountID
	destination.Payee, destination.Payer = p.Payer, p.Payee
	destination.IsTransfer = true
	if err := insertRow(ctx, tx, c, destination); err != nil {
		return nil, nil, err
	}
	return source, destination, nil
}

// findPair returns the other leg of a transfer, nil when it no longer exists.
func findPair(ctx context.Context, tx bun.IDB, leg *models.Transaction) (*models.Transaction, error) {
	if !leg.IsTransfer {
		return nil, nil
	}
	pair := new(models.Transaction)
	err := tx.NewSelect().
		Model(pair).
		Where("transaction_no = ?", leg.PairNo()).
		Where("id <> ?", leg.ID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load transfer pair of %d: %w", leg.ID, err)
	}
	return pair, nil
}

// editTransfer applies a patch to either leg and keeps the other leg in sync.
// account_id in the patch names the edited leg's account, related_account_id
// the counterpart's.
func (svc *LedgerService) editTransfer(ctx context.Context, tx bun.Tx, current *models.Transaction, patch *TransactionPatch) (*models.Transaction, []int64, []int64, error) {
	if patch.TransactionType != nil && *patch.TransactionType != common.TransactionTypeTransfer {
		return nil, nil, nil, invalid("transaction_type", "a transfer cannot change its type")
	}
	pair, err := findPair(ctx, tx, current)
	if err != nil {
		return nil, nil, nil, err
	}
	if pair == nil {
		return nil, nil, nil, &IntegrityError{AccountID: current.AccountID, Message: fmt.Sprintf("transfer %s has no counterpart leg", current.TransactionNo)}
	}

	editedAccount, otherAccount := current.AccountID, pair.AccountID
	if patch.AccountID != nil {
		editedAccount = *patch.AccountID
	}
	if patch.RelatedAccountID != nil {
		otherAccount = *patch.RelatedAccountID
	}
	if otherAccount <= 0 {
		return nil, nil, nil, invalid("related_account_id", "is required for transfers")
	}
	if editedAccount == otherAccount {
		return nil, nil, nil, invalid("related_account_id", "must differ from account_id")
	}

	accounts, err := lockAccounts(ctx, tx, current.AccountID, pair.AccountID, editedAccount, otherAccount)
	if err != nil {
		return nil, nil, nil, err
	}
	current, err = reloadLocked(ctx, tx, accounts, current.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	pair, err = reloadLocked(ctx, tx, accounts, pair.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	if editedAccount != current.AccountID {
		if err := requireActive(accounts, "account_id", editedAccount); err != nil {
			return nil, nil, nil, err
		}
	}
	if otherAccount != pair.AccountID {
		if err := requireActive(accounts, "related_account_id", otherAccount); err != nil {
			return nil, nil, nil, err
		}
	}
	if patch.CategoryID != nil && *patch.CategoryID != current.CategoryID {
		if err := checkCategory(ctx, tx, *patch.CategoryID, common.TransactionTypeTransfer); err != nil {
			return nil, nil, nil, err
		}
	}

	nextEdited, nextOther := *current, *pair
	patch.applyShared(&nextEdited)
	patch.applyShared(&nextOther)
	nextEdited.AccountID, nextEdited.RelatedAccountID = editedAccount, otherAccount
	nextOther.AccountID, nextOther.RelatedAccountID = otherAccount, editedAccount
	nextOther.Payee, nextOther.Payer = nextEdited.Payer, nextEdited.Payee

	amount := current.Amount.Abs()
	if patch.Amount != nil {
		amount = *patch.Amount
	}
	sourceAmount, destinationAmount := transferLegAmounts(amount)
	if current.IsDestinationLeg() {
		nextEdited.Amount, nextOther.Amount = models.NewMoney(destinationAmount), models.NewMoney(sourceAmount)
	} else {
		nextEdited.Amount, nextOther.Amount = models.NewMoney(sourceAmount), models.NewMoney(destinationAmount)
	}

	if err := svc.checkEditWindow(current, &nextEdited); err != nil {
		return nil, nil, nil, err
	}
	if err := svc.checkEditWindow(pair, &nextOther); err != nil {
		return nil, nil, nil, err
	}

	c := newChain(tx)
	if err := rewriteRow(ctx, tx, c, current, &nextEdited); err != nil {
		return nil, nil, nil, err
	}
	if err := rewriteRow(ctx, tx, c, pair, &nextOther); err != nil {
		return nil, nil, nil, err
	}

	updated, err := loadTransaction(ctx, tx, current.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	touched := []int64{current.AccountID, pair.AccountID, editedAccount, otherAccount}
	return updated, touched, []int64{current.ID, pair.ID}, nil
}

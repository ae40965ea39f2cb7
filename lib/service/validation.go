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

// normalizeDate stores every transaction date in UTC with second precision so
// ordering comparisons behave the same on every dialect.
func normalizeDate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// signedAmount applies the sign convention of the ledger to an absolute amount.
// Transfers are signed by leg, see transferLegAmounts.
func signedAmount(transactionType string, amount decimal.Decimal) decimal.Decimal {
	if transactionType == common.TransactionTypeExpense {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

func (svc *LedgerService) validateCreate(p *CreateTransactionParams) error {
	if p.AccountID <= 0 {
		return invalid("account_id", "is required")
	}
	if p.CategoryID <= 0 {
		return invalid("category_id", "is required")
	}
	if p.TransactionType == "" {
		return invalid("transaction_type", "is required")
	}
	if !common.IsValidTransactionType(p.TransactionType) {
		return invalid("transaction_type", "must be one of income, expense or transfer")
	}
	if !p.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	if !models.FitsMoneyScale(p.Amount) {
		return invalid("amount", "must have at most %d decimal places", models.MoneyScale)
	}
	if p.TransactionDate.IsZero() {
		return invalid("transaction_date", "is required")
	}
	if p.TransactionType == common.TransactionTypeTransfer {
		if p.RelatedAccountID <= 0 {
			return invalid("related_account_id", "is required for transfers")
		}
		if p.RelatedAccountID == p.AccountID {
			return invalid("related_account_id", "must differ from account_id")
		}
	} else if p.RelatedAccountID != 0 {
		return invalid("related_account_id", "is only allowed for transfers")
	}
	if p.Status == "" {
		p.Status = common.TransactionStatusCompleted
	}
	if !common.IsValidTransactionStatus(p.Status) {
		return invalid("status", "must be one of pending, completed or cancelled")
	}
	p.TransactionDate = normalizeDate(p.TransactionDate)
	if svc.isStale(p.TransactionDate) {
		return invalid("transaction_date", "transactions older than %d month(s) cannot be recorded", svc.Config.RecentWindowMonths)
	}
	return nil
}

func (svc *LedgerService) validatePatch(patch *TransactionPatch) error {
	if patch.AccountID != nil && *patch.AccountID <= 0 {
		return invalid("account_id", "must be a valid account id")
	}
	if patch.CategoryID != nil && *patch.CategoryID <= 0 {
		return invalid("category_id", "must be a valid category id")
	}
	if patch.Amount != nil && !patch.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	if patch.Amount != nil && !models.FitsMoneyScale(*patch.Amount) {
		return invalid("amount", "must have at most %d decimal places", models.MoneyScale)
	}
	if patch.TransactionType != nil && !common.IsValidTransactionType(*patch.TransactionType) {
		return invalid("transaction_type", "must be one of income, expense or transfer")
	}
	if patch.Status != nil && !common.IsValidTransactionStatus(*patch.Status) {
		return invalid("status", "must be one of pending, completed or cancelled")
	}
	if patch.TransactionDate != nil {
		if patch.TransactionDate.IsZero() {
			return invalid("transaction_date", "must be a valid date")
		}
		date := normalizeDate(*patch.TransactionDate)
		patch.TransactionDate = &date
	}
	return nil
}

// checkCategory verifies the category exists and, outside transfers, matches the transaction type.
func checkCategory(ctx context.Context, tx bun.IDB, categoryID int64, transactionType string) error {
	category := new(models.Category)
	err := tx.NewSelect().Model(category).Where("id = ?", categoryID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound("category", categoryID)
	}
	if err != nil {
		return fmt.Errorf("load category %d: %w", categoryID, err)
	}
	if transactionType != common.TransactionTypeTransfer && category.Type != transactionType {
		return invalid("category_id", "category %d is of type %s, not %s", categoryID, category.Type, transactionType)
	}
	return nil
}

// checkAccountLimits rejects a negative balance on accounts whose type does
// not allow an overdraft, and an overdraft beyond the credit limit otherwise.
func checkAccountLimits(ctx context.Context, tx bun.IDB, accountIDs []int64) error {
	for _, id := range uniqueSorted(accountIDs) {
		account := new(models.Account)
		if err := tx.NewSelect().
			Model(account).
			Relation("AccountType").
			Where("fa.id = ?", id).
			Scan(ctx); err != nil {
			return fmt.Errorf("load account %d: %w", id, err)
		}
		if !account.Balance.IsNegative() {
			continue
		}
		if account.AccountType == nil || !account.AccountType.CanOverdraft {
			return invalid("amount", "account %d cannot be overdrawn", id)
		}
		if account.CreditLimit.IsPositive() && account.Balance.Neg().GreaterThan(account.CreditLimit.Decimal) {
			return invalid("amount", "account %d would exceed its credit limit of %s", id, account.CreditLimit)
		}
	}
	return nil
}

// finishMutation runs the post-mutation checks configured for the service on the touched accounts.
func (svc *LedgerService) finishMutation(ctx context.Context, tx bun.IDB, accountIDs []int64) error {
	if svc.Config.EnforceOverdraft {
		if err := checkAccountLimits(ctx, tx, accountIDs); err != nil {
			return err
		}
	}
	if svc.Config.VerifyChainOnWrite {
		c := newChain(tx)
		for _, id := range uniqueSorted(accountIDs) {
			if err := c.verify(ctx, id); err != nil {
				return err
			}
		}
	}
	return nil
}

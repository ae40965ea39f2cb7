package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/familyfin/ledgerhub/db/models"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type AccountParams struct {
	AccountName   string
	AccountNumber string
	TypeID        int64
	Currency      string
	Institution   string
	CreditLimit   decimal.Decimal
	IsActive      *bool
	OpeningDate   *time.Time
	SortOrder     int
	Description   string
}

type AccountFilter struct {
	Keyword   string
	TypeID    int64
	IsActive  *bool
	SortField string
	SortDesc  bool
	Page      int
	PageSize  int
}

type AccountPage struct {
	List     []models.Account `json:"list"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

var accountSortFields = map[string]bool{
	"account_name": true,
	"balance":      true,
	"opening_date": true,
	"created_at":   true,
	"updated_at":   true,
}

func (svc *LedgerService) accountTypeExists(ctx context.Context, db bun.IDB, typeID int64) error {
	exists, err := db.NewSelect().Model((*models.AccountType)(nil)).Where("id = ?", typeID).Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return notFound("account type", typeID)
	}
	return nil
}

func validateCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return invalid("credit_limit", "must not be negative")
	}
	if !models.FitsMoneyScale(limit) {
		return invalid("credit_limit", "must have at most %d decimal places", models.MoneyScale)
	}
	return nil
}

// CreateAccount opens a new account. Its balance starts at zero and only
// changes through transactions.
func (svc *LedgerService) CreateAccount(ctx context.Context, params AccountParams) (*models.Account, error) {
	if strings.TrimSpace(params.AccountName) == "" {
		return nil, invalid("account_name", "is required")
	}
	if params.TypeID <= 0 {
		return nil, invalid("type_id", "is required")
	}
	if err := validateCreditLimit(params.CreditLimit); err != nil {
		return nil, err
	}
	if err := svc.accountTypeExists(ctx, svc.DB, params.TypeID); err != nil {
		return nil, err
	}
	account := &models.Account{
		AccountName:   strings.TrimSpace(params.AccountName),
		AccountNumber: params.AccountNumber,
		TypeID:        params.TypeID,
		Currency:      params.Currency,
		Institution:   params.Institution,
		Balance:       models.NewMoney(decimal.Zero),
		CreditLimit:   models.NewMoney(params.CreditLimit),
		IsActive:      true,
		SortOrder:     params.SortOrder,
		Description:   params.Description,
	}
	if account.Currency == "" {
		account.Currency = "CNY"
	}
	if params.IsActive != nil {
		account.IsActive = *params.IsActive
	}
	if params.OpeningDate != nil {
		account.OpeningDate = bun.NullTime{Time: params.OpeningDate.UTC()}
	}
	if _, err := svc.DB.NewInsert().Model(account).Exec(ctx); err != nil {
		return nil, translateDBError(err, fmt.Sprintf("account number %s already exists", params.AccountNumber))
	}
	return account, nil
}

func (svc *LedgerService) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	account := new(models.Account)
	err := svc.DB.NewSelect().Model(account).Relation("AccountType").Where("fa.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("account", id)
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (svc *LedgerService) ListAccounts(ctx context.Context, filter AccountFilter) (*AccountPage, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}
	accounts := []models.Account{}
	q := svc.DB.NewSelect().Model(&accounts).Relation("AccountType")
	if filter.Keyword != "" {
		keyword := "%" + strings.ToLower(filter.Keyword) + "%"
		q = q.Where("(LOWER(fa.account_name) LIKE ? OR LOWER(fa.account_number) LIKE ?)", keyword, keyword)
	}
	if filter.TypeID != 0 {
		q = q.Where("fa.type_id = ?", filter.TypeID)
	}
	if filter.IsActive != nil {
		q = q.Where("fa.is_active = ?", *filter.IsActive)
	}
	if accountSortFields[filter.SortField] {
		direction := "ASC"
		if filter.SortDesc {
			direction = "DESC"
		}
		q = q.OrderExpr(fmt.Sprintf("fa.%s %s", filter.SortField, direction))
	} else {
		q = q.OrderExpr("fa.sort_order ASC, fa.created_at DESC")
	}
	total, err := q.Limit(filter.PageSize).Offset((filter.Page - 1) * filter.PageSize).ScanAndCount(ctx)
	if err != nil {
		return nil, err
	}
	return &AccountPage{List: accounts, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

// UpdateAccount changes the descriptive fields of an account. The balance is
// never written here.
func (svc *LedgerService) UpdateAccount(ctx context.Context, id int64, params AccountParams) (*models.Account, error) {
	if err := validateCreditLimit(params.CreditLimit); err != nil {
		return nil, err
	}
	account, err := svc.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(params.AccountName); name != "" {
		account.AccountName = name
	}
	if params.AccountNumber != "" {
		account.AccountNumber = params.AccountNumber
	}
	if params.TypeID != 0 && params.TypeID != account.TypeID {
		if err := svc.accountTypeExists(ctx, svc.DB, params.TypeID); err != nil {
			return nil, err
		}
		account.TypeID = params.TypeID
	}
	if params.Currency != "" {
		account.Currency = params.Currency
	}
	if params.Institution != "" {
		account.Institution = params.Institution
	}
	if !params.CreditLimit.IsZero() {
		account.CreditLimit = models.NewMoney(params.CreditLimit)
	}
	if params.IsActive != nil {
		account.IsActive = *params.IsActive
	}
	if params.OpeningDate != nil {
		account.OpeningDate = bun.NullTime{Time: params.OpeningDate.UTC()}
	}
	if params.SortOrder != 0 {
		account.SortOrder = params.SortOrder
	}
	if params.Description != "" {
		account.Description = params.Description
	}

	if _, err := svc.DB.NewUpdate().
		Model(account).
		Column("account_name", "account_number", "type_id", "currency", "institution", "credit_limit",
			"is_active", "opening_date", "sort_order", "description", "updated_at").
		WherePK().
		Exec(ctx); err != nil {
		return nil, translateDBError(err, fmt.Sprintf("account number %s already exists", account.AccountNumber))
	}
	return svc.GetAccount(ctx, id)
}

// DeleteAccount removes an account that has never been used.
func (svc *LedgerService) DeleteAccount(ctx context.Context, id int64) error {
	return svc.runMutation(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := lockAccounts(ctx, tx, id); err != nil {
			return err
		}
		used, err := tx.NewSelect().
			Model((*models.Transaction)(nil)).
			Where("account_id = ? OR related_account_id = ?", id, id).
			Exists(ctx)
		if err != nil {
			return err
		}
		if used {
			return &ConflictError{Message: fmt.Sprintf("account %d has transactions and cannot be deleted", id)}
		}
		_, err = tx.NewDelete().Model((*models.Account)(nil)).Where("id = ?", id).Exec(ctx)
		return err
	})
}

func (svc *LedgerService) ListAccountTypes(ctx context.Context) ([]models.AccountType, error) {
	types := []models.AccountType{}
	err := svc.DB.NewSelect().Model(&types).OrderExpr("at.id ASC").Scan(ctx)
	return types, err
}

func (svc *LedgerService) CreateAccountType(ctx context.Context, accountType *models.AccountType) (*models.AccountType, error) {
	accountType.Name = strings.TrimSpace(accountType.Name)
	if accountType.Name == "" {
		return nil, invalid("name", "is required")
	}
	accountType.ID = 0
	if _, err := svc.DB.NewInsert().Model(accountType).Exec(ctx); err != nil {
		return nil, translateDBError(err, fmt.Sprintf("account type %s already exists", accountType.Name))
	}
	return accountType, nil
}

// DeleteAccountType removes a type no account uses.
func (svc *LedgerService) DeleteAccountType(ctx context.Context, id int64) error {
	used, err := svc.DB.NewSelect().Model((*models.Account)(nil)).Where("type_id = ?", id).Exists(ctx)
	if err != nil {
		return err
	}
	if used {
		return &ConflictError{Message: fmt.Sprintf("account type %d is used by accounts", id)}
	}
	res, err := svc.DB.NewDelete().Model((*models.AccountType)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("account type", id)
	}
	return nil
}

package service

import (
	"context"
	"time"

	"github.com/familyfin/ledgerhub/db/models"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type TransactionFilter struct {
	AccountID       int64
	CategoryID      int64
	TransactionType string
	Status          string
	StartTime       *time.Time
	EndTime         *time.Time
	MinAmount       *decimal.Decimal
	MaxAmount       *decimal.Decimal
	IsTransfer      *bool
	Page            int
	PageSize        int
}

type TransactionPage struct {
	List     []models.Transaction `json:"list"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

func (svc *LedgerService) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	return loadTransaction(ctx, svc.DB, id)
}

// ListTransactions returns the newest transactions first. A category filter
// also matches its direct subcategories.
func (svc *LedgerService) ListTransactions(ctx context.Context, filter TransactionFilter) (*TransactionPage, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}

	transactions := []models.Transaction{}
	q := svc.DB.NewSelect().Model(&transactions)
	if filter.AccountID != 0 {
		q = q.Where("t.account_id = ?", filter.AccountID)
	}
	if filter.CategoryID != 0 {
		q = q.Where("t.category_id IN (SELECT id FROM transaction_categories WHERE id = ? OR parent_id = ?)", filter.CategoryID, filter.CategoryID)
	}
	if filter.TransactionType != "" {
		q = q.Where("t.transaction_type = ?", filter.TransactionType)
	}
	if filter.Status != "" {
		q = q.Where("t.status = ?", filter.Status)
	}
	if filter.StartTime != nil {
		q = q.Where("t.transaction_date >= ?", normalizeDate(*filter.StartTime))
	}
	if filter.EndTime != nil {
		q = q.Where("t.transaction_date <= ?", normalizeDate(*filter.EndTime))
	}
	if filter.MinAmount != nil {
		q = q.Where("ABS(t.amount) >= ?", models.NewMoney(*filter.MinAmount))
	}
	if filter.MaxAmount != nil {
		q = q.Where("ABS(t.amount) <= ?", models.NewMoney(*filter.MaxAmount))
	}
	if filter.IsTransfer != nil {
		q = q.Where("t.is_transfer = ?", *filter.IsTransfer)
	}

	total, err := q.
		OrderExpr("t.transaction_date DESC, t.id DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		ScanAndCount(ctx)
	if err != nil {
		return nil, err
	}
	return &TransactionPage{
		List:     transactions,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// RelatedTransactions returns the other leg of a transfer, or nothing for
// regular transactions.
func (svc *LedgerService) RelatedTransactions(ctx context.Context, id int64) ([]models.Transaction, error) {
	current, err := loadTransaction(ctx, svc.DB, id)
	if err != nil {
		return nil, err
	}
	related := []models.Transaction{}
	if !current.IsTransfer {
		return related, nil
	}
	err = svc.DB.NewSelect().
		Model(&related).
		Where("t.transaction_no IN (?)", bun.In([]string{current.TransactionNo, current.PairNo()})).
		Where("t.id <> ?", current.ID).
		Scan(ctx)
	return related, err
}

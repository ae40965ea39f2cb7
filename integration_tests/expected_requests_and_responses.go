package integration_tests

import (
	"github.com/shopspring/decimal"
)

type ExpectedAddTransactionRequestBody struct {
	AccountID        int64  `json:"account_id"`
	RelatedAccountID int64  `json:"related_account_id,omitempty"`
	CategoryID       int64  `json:"category_id"`
	Amount           string `json:"amount"`
	TransactionType  string `json:"transaction_type"`
	TransactionDate  string `json:"transaction_date"`
	Description      string `json:"description,omitempty"`
	Status           string `json:"status,omitempty"`
}

type ExpectedCreatedTransaction struct {
	ID                   int64           `json:"id"`
	TransactionNo        string          `json:"transaction_no"`
	AccountID            int64           `json:"account_id"`
	Amount               decimal.Decimal `json:"amount"`
	TransactionType      string          `json:"transaction_type"`
	BalanceAfter         decimal.Decimal `json:"balance_after"`
	RelatedTransactionID int64           `json:"related_transaction_id"`
}

type ExpectedAddTransactionResponseBody struct {
	Transactions []ExpectedCreatedTransaction `json:"transactions"`
}

type ExpectedTransaction struct {
	ID               int64           `json:"id"`
	TransactionNo    string          `json:"transaction_no"`
	AccountID        int64           `json:"account_id"`
	RelatedAccountID int64           `json:"related_account_id"`
	CategoryID       int64           `json:"category_id"`
	Amount           decimal.Decimal `json:"amount"`
	TransactionType  string          `json:"transaction_type"`
	BalanceAfter     decimal.Decimal `json:"balance_after"`
	Description      string          `json:"description"`
	Status           string          `json:"status"`
	IsTransfer       bool            `json:"is_transfer"`
}

type ExpectedTransactionPage struct {
	List     []ExpectedTransaction `json:"list"`
	Total    int                   `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

type ExpectedDeleteResponseBody struct {
	ID        int64 `json:"id"`
	RelatedID int64 `json:"related_id"`
	Cascaded  bool  `json:"cascaded"`
}

type ExpectedAccountRequestBody struct {
	AccountName   string `json:"account_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	TypeID        int64  `json:"type_id,omitempty"`
	Description   string `json:"description,omitempty"`
	Balance       string `json:"balance,omitempty"`
}

type ExpectedAccountType struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CanOverdraft bool   `json:"can_overdraft"`
}

type ExpectedAccount struct {
	ID          int64                `json:"id"`
	AccountName string               `json:"account_name"`
	TypeID      int64                `json:"type_id"`
	AccountType *ExpectedAccountType `json:"account_type"`
	Balance     decimal.Decimal      `json:"balance"`
	IsActive    bool                 `json:"is_active"`
	Description string               `json:"description"`
}

type ExpectedAccountPage struct {
	List  []ExpectedAccount `json:"list"`
	Total int               `json:"total"`
}

type ExpectedChainReport struct {
	AccountID       int64           `json:"account_id"`
	Rows            int             `json:"rows"`
	StoredBalance   decimal.Decimal `json:"stored_balance"`
	ExpectedBalance decimal.Decimal `json:"expected_balance"`
	Mismatches      []struct {
		TransactionID int64 `json:"transaction_id"`
	} `json:"mismatches"`
}

type ExpectedCategoryRequestBody struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID int64  `json:"parent_id,omitempty"`
}

type ExpectedCategory struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID int64  `json:"parent_id"`
}

type ExpectedCategoryNode struct {
	ExpectedCategory
	Children []ExpectedCategory `json:"children"`
}

type ExpectedLedgerEventWrapper struct {
	Type  string `json:"type"`
	Event *struct {
		Type           string  `json:"type"`
		TransactionIDs []int64 `json:"transaction_ids"`
		AccountIDs     []int64 `json:"account_ids"`
	} `json:"event"`
}

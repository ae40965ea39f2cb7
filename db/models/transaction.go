package models

import (
	"context"
	"strings"
	"time"

	"github.com/familyfin/ledgerhub/common"
	"github.com/uptrace/bun"
)

// Transaction : Transaction Model
// Amount is signed: income and the destination leg of a transfer are
// positive, expense and the source leg of a transfer are negative.
// Both are stored in minor units, see Money.
// BalanceAfter is the running balance of the account right after this row in
// (transaction_date, id) order.
type Transaction struct {
	bun.BaseModel `bun:"table:transactions,alias:t"`

	ID               int64     `json:"id" bun:",pk,autoincrement"`
	TransactionNo    string    `json:"transaction_no" bun:",notnull,unique"`
	AccountID        int64     `json:"account_id" bun:",notnull"`
	Account          *Account  `json:"-" bun:"rel:belongs-to,join:account_id=id"`
	RelatedAccountID int64     `json:"related_account_id,omitempty" bun:",nullzero"`
	CategoryID       int64     `json:"category_id" bun:",notnull"`
	Category         *Category `json:"-" bun:"rel:belongs-to,join:category_id=id"`
	Amount           Money     `json:"amount" bun:"type:bigint,notnull" swaggertype:"string"`
	TransactionType  string    `json:"transaction_type" bun:",notnull"`
	TransactionDate  time.Time `json:"transaction_date" bun:",notnull"`
	BalanceAfter     Money     `json:"balance_after" bun:"type:bigint,notnull,default:0" swaggertype:"string"`
	Payee            string    `json:"payee,omitempty" bun:",nullzero"`
	Payer            string    `json:"payer,omitempty" bun:",nullzero"`
	Description      string    `json:"description,omitempty" bun:",nullzero"`
	Attachment       string    `json:"attachment,omitempty" bun:",nullzero"`
	Status           string    `json:"status" bun:",notnull,default:'completed'"`
	IsTransfer       bool      `json:"is_transfer" bun:",notnull"`
	CreatedAt        time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt        time.Time `json:"updated_at" bun:",nullzero,notnull,default:current_timestamp"`
}

func (t *Transaction) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		t.UpdatedAt = time.Now().UTC()
	}
	return nil
}

// IsDestinationLeg reports whether the row is the receiving side of a transfer.
func (t *Transaction) IsDestinationLeg() bool {
	return t.IsTransfer && strings.HasSuffix(t.TransactionNo, common.TransferLegSuffix)
}

// PairNo returns the transaction number of the other leg of a transfer.
func (t *Transaction) PairNo() string {
	if strings.HasSuffix(t.TransactionNo, common.TransferLegSuffix) {
		return strings.TrimSuffix(t.TransactionNo, common.TransferLegSuffix)
	}
	return t.TransactionNo + common.TransferLegSuffix
}

var _ bun.BeforeAppendModelHook = (*Transaction)(nil)

// TransactionNoSequence : per-day counter backing transaction numbers
type TransactionNoSequence struct {
	bun.BaseModel `bun:"table:transaction_no_sequences"`

	Day     string `bun:",pk"`
	LastSeq int64  `bun:",notnull,default:0"`
}

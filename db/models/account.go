package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// AccountType : Account Type Model
type AccountType struct {
	bun.BaseModel `bun:"table:account_types,alias:at"`

	ID           int64     `json:"id" bun:",pk,autoincrement"`
	Name         string    `json:"name" bun:",notnull,unique"`
	Icon         string    `json:"icon,omitempty" bun:",nullzero"`
	Color        string    `json:"color,omitempty" bun:",nullzero"`
	IsDigital    bool      `json:"is_digital" bun:",notnull"`
	CanOverdraft bool      `json:"can_overdraft" bun:",notnull"`
	Remark       string    `json:"remark,omitempty" bun:",nullzero"`
	CreatedAt    time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `json:"updated_at" bun:",nullzero,notnull,default:current_timestamp"`
}

// Account : Financial Account Model
// Balance is maintained by the ledger and always equals the balance_after of
// the account's latest transaction.
type Account struct {
	bun.BaseModel `bun:"table:financial_accounts,alias:fa"`

	ID            int64        `json:"id" bun:",pk,autoincrement"`
	AccountName   string       `json:"account_name" bun:",notnull"`
	AccountNumber string       `json:"account_number,omitempty" bun:",nullzero,unique"`
	TypeID        int64        `json:"type_id" bun:",notnull"`
	AccountType   *AccountType `json:"account_type,omitempty" bun:"rel:belongs-to,join:type_id=id"`
	Currency      string       `json:"currency" bun:",notnull,default:'CNY'"`
	Institution   string       `json:"institution,omitempty" bun:",nullzero"`
	Balance       Money        `json:"balance" bun:"type:bigint,notnull,default:0" swaggertype:"string"`
	CreditLimit   Money        `json:"credit_limit" bun:"type:bigint,notnull,default:0" swaggertype:"string"`
	IsActive      bool         `json:"is_active" bun:",notnull"`
	OpeningDate   bun.NullTime `json:"opening_date"`
	SortOrder     int          `json:"sort_order" bun:",notnull,default:0"`
	Description   string       `json:"description,omitempty" bun:",nullzero"`
	CreatedAt     time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time    `json:"updated_at" bun:",nullzero,notnull,default:current_timestamp"`
}

func (a *Account) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		a.UpdatedAt = time.Now().UTC()
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Account)(nil)

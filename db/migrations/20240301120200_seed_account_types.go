package migrations

import (
	"context"

	"github.com/familyfin/ledgerhub/db/models"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		types := []models.AccountType{
			{Name: "cash", Icon: "wallet"},
			{Name: "debit_card", Icon: "bank"},
			{Name: "credit_card", Icon: "credit-card", CanOverdraft: true},
			{Name: "e_wallet", Icon: "mobile", IsDigital: true},
			{Name: "investment", Icon: "chart"},
		}
		_, err := db.NewInsert().Model(&types).On("CONFLICT (name) DO NOTHING").Returning("NULL").Exec(ctx)
		return err
	}, nil)
}

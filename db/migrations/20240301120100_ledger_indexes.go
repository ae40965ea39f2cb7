package migrations

import (
	"context"
	"fmt"

	"github.com/familyfin/ledgerhub/db/models"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		// every chain walk filters by account and orders by (transaction_date, id)
		if _, err := db.NewCreateIndex().
			Model((*models.Transaction)(nil)).
			Index("transactions_account_chain_idx").
			Column("account_id", "transaction_date", "id").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateIndex().
			Model((*models.Transaction)(nil)).
			Index("transactions_category_idx").
			Column("category_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		sql := `
			-- transfers always move money between two different accounts
				ALTER TABLE transactions
				ADD CONSTRAINT check_transfer_not_same_account
				CHECK (related_account_id IS NULL OR related_account_id != account_id);

			-- only known transaction types and statuses
				ALTER TABLE transactions
				ADD CONSTRAINT check_transaction_type
				CHECK (transaction_type IN ('income', 'expense', 'transfer'));
				ALTER TABLE transactions
				ADD CONSTRAINT check_transaction_status
				CHECK (status IN ('pending', 'completed', 'cancelled'));
		`
		if _, err := db.Exec(sql); err != nil {
			return err
		}
		return nil
	}, nil)
}

package service_test

import (
	"math/rand"

	"github.com/familyfin/ledgerhub/common"
	"github.com/familyfin/ledgerhub/db/models"
	"github.com/familyfin/ledgerhub/lib/service"
	"github.com/shopspring/decimal"
)

// TestRandomMutationsKeepChainsConsistent drives a seeded mix of creates,
// edits and deletes and replays every chain after each step.
func (suite *LedgerTestSuite) TestRandomMutationsKeepChainsConsistent() {
	rnd := rand.New(rand.NewSource(20240120))
	accounts := []int64{suite.cash, suite.bank, suite.card}
	pick := func() int64 { return accounts[rnd.Intn(len(accounts))] }
	amount := func() decimal.Decimal { return decimal.New(int64(rnd.Intn(50000)+1), -2) }

	for step := 0; step < 120; step++ {
		ids := suite.liveTransactionIDs()
		op := rnd.Intn(10)
		if len(ids) == 0 {
			op = 0
		}

		var err error
		switch {
		case op < 5:
			transactionType := []string{
				common.TransactionTypeIncome,
				common.TransactionTypeExpense,
				common.TransactionTypeTransfer,
			}[rnd.Intn(3)]
			p := suite.params(pick(), transactionType, "1", day(rnd.Intn(19)+1))
			p.Amount = amount()
			if transactionType == common.TransactionTypeTransfer {
				for p.RelatedAccountID == 0 || p.RelatedAccountID == p.AccountID {
					p.RelatedAccountID = pick()
				}
			}
			_, err = suite.svc.CreateTransactions(suite.ctx, []service.CreateTransactionParams{p})
		case op < 8:
			patch := service.TransactionPatch{}
			if rnd.Intn(2) == 0 {
				value := amount()
				patch.Amount = &value
			}
			if rnd.Intn(2) == 0 {
				date := day(rnd.Intn(19) + 1)
				patch.TransactionDate = &date
			}
			if rnd.Intn(3) == 0 {
				account := pick()
				patch.AccountID = &account
			}
			_, err = suite.svc.EditTransaction(suite.ctx, ids[rnd.Intn(len(ids))], patch)
		default:
			_, err = suite.svc.DeleteTransaction(suite.ctx, ids[rnd.Intn(len(ids))])
		}
		// moving a transfer leg onto the other leg's account is refused
		if err != nil {
			suite.Require().True(service.IsValidation(err), "step %d: %v", step, err)
		}

		suite.assertConsistent(accounts...)
		suite.assertTransfersPaired()
	}
}

func (suite *LedgerTestSuite) liveTransactionIDs() []int64 {
	var ids []int64
	err := suite.svc.DB.NewSelect().
		Model((*models.Transaction)(nil)).
		Column("id").
		OrderExpr("id ASC").
		Scan(suite.ctx, &ids)
	suite.Require().NoError(err)
	return ids
}

// assertTransfersPaired expects every transfer leg to have exactly one
// counterpart with the negated amount and swapped accounts.
func (suite *LedgerTestSuite) assertTransfersPaired() {
	legs := []models.Transaction{}
	err := suite.svc.DB.NewSelect().Model(&legs).Where("t.is_transfer = ?", true).Scan(suite.ctx)
	suite.Require().NoError(err)

	byNo := make(map[string]models.Transaction, len(legs))
	for _, leg := range legs {
		byNo[leg.TransactionNo] = leg
	}
	for _, leg := range legs {
		pair, ok := byNo[leg.PairNo()]
		suite.Require().True(ok, "transaction %s has no pair", leg.TransactionNo)
		suite.True(leg.Amount.Neg().Equal(pair.Amount.Decimal), "%s and %s amounts differ", leg.TransactionNo, pair.TransactionNo)
		suite.Equal(leg.AccountID, pair.RelatedAccountID)
		suite.Equal(leg.RelatedAccountID, pair.AccountID)
		suite.True(leg.TransactionDate.Equal(pair.TransactionDate))
	}
}

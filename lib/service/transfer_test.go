package service_test

import (
	"github.com/familyfin/ledgerhub/common"
	"github.com/familyfin/ledgerhub/db/models"
	"github.com/familyfin/ledgerhub/lib/service"
)

func (suite *LedgerTestSuite) TestTransferCreatesBothLegs() {
	suite.income(suite.cash, "500", day(1))
	created := suite.transfer(suite.cash, suite.bank, "200", day(2))

	suite.assertDecimal("-200", created.Amount)
	suite.assertDecimal("300", created.BalanceAfter)
	suite.NotZero(created.RelatedTransactionID)

	source := suite.get(created.ID)
	destination := suite.get(created.RelatedTransactionID)
	suite.True(source.IsTransfer)
	suite.True(destination.IsTransfer)
	suite.Equal(source.TransactionNo+common.TransferLegSuffix, destination.TransactionNo)
	suite.True(destination.IsDestinationLeg())
	suite.Equal(suite.bank, destination.AccountID)
	suite.Equal(suite.cash, destination.RelatedAccountID)
	suite.Equal(suite.bank, source.RelatedAccountID)
	suite.assertDecimal("200", destination.Amount)
	suite.assertDecimal("200", destination.BalanceAfter)
	suite.assertBalance(suite.cash, "300")
	suite.assertBalance(suite.bank, "200")

	related, err := suite.svc.RelatedTransactions(suite.ctx, destination.ID)
	suite.Require().NoError(err)
	suite.Require().Len(related, 1)
	suite.Equal(source.ID, related[0].ID)
}

func (suite *LedgerTestSuite) TestDeletingEitherLegDeletesBoth() {
	suite.income(suite.cash, "500", day(1))
	first := suite.transfer(suite.cash, suite.bank, "200", day(2))
	second := suite.transfer(suite.cash, suite.bank, "50", day(3))

	// delete through the destination leg
	result, err := suite.svc.DeleteTransaction(suite.ctx, first.RelatedTransactionID)
	suite.Require().NoError(err)
	suite.Equal(first.ID, result.RelatedID)
	_, err = suite.svc.GetTransaction(suite.ctx, first.ID)
	suite.True(service.IsNotFound(err))
	suite.assertBalance(suite.cash, "450")
	suite.assertBalance(suite.bank, "50")
	suite.assertSnapshot(second.ID, "450")
	suite.assertSnapshot(second.RelatedTransactionID, "50")

	result, err = suite.svc.DeleteTransaction(suite.ctx, second.ID)
	suite.Require().NoError(err)
	suite.Equal(second.RelatedTransactionID, result.RelatedID)
	suite.assertBalance(suite.cash, "500")
	suite.assertBalance(suite.bank, "0")
	suite.assertConsistent(suite.cash, suite.bank)
}

func (suite *LedgerTestSuite) TestTransferEditCascadesToPair() {
	suite.income(suite.cash, "500", day(1))
	bankLater := suite.income(suite.bank, "10", day(8))
	created := suite.transfer(suite.cash, suite.bank, "200", day(5))

	amount := dec("120")
	date := day(3)
	payee := "Savings"
	updated, err := suite.svc.EditTransaction(suite.ctx, created.ID, service.TransactionPatch{
		Amount:          &amount,
		TransactionDate: &date,
		Payee:           &payee,
	})
	suite.Require().NoError(err)
	suite.assertDecimal("-120", updated.Amount)
	suite.assertDecimal("380", updated.BalanceAfter)

	pair := suite.get(created.RelatedTransactionID)
	suite.assertDecimal("120", pair.Amount)
	suite.True(pair.TransactionDate.Equal(date))
	suite.Equal("Savings", pair.Payer)
	suite.assertSnapshot(pair.ID, "120")
	suite.assertSnapshot(bankLater.ID, "130")
	suite.assertBalance(suite.cash, "380")
	suite.assertBalance(suite.bank, "130")

	// editing the destination leg keeps the signs of both legs
	amount = dec("75")
	_, err = suite.svc.EditTransaction(suite.ctx, pair.ID, service.TransactionPatch{Amount: &amount})
	suite.Require().NoError(err)
	suite.assertDecimal("75", suite.get(pair.ID).Amount)
	suite.assertDecimal("-75", suite.get(created.ID).Amount)
	suite.assertBalance(suite.cash, "425")
	suite.assertBalance(suite.bank, "85")
	suite.assertConsistent(suite.cash, suite.bank)
}

func (suite *LedgerTestSuite) TestTransferChangeAccounts() {
	suite.income(suite.cash, "500", day(1))
	created := suite.transfer(suite.cash, suite.bank, "200", day(2))

	// redirect the destination to the card
	card := suite.card
	_, err := suite.svc.EditTransaction(suite.ctx, created.ID, service.TransactionPatch{RelatedAccountID: &card})
	suite.Require().NoError(err)
	suite.assertBalance(suite.bank, "0")
	suite.assertBalance(suite.card, "200")
	suite.Equal(suite.card, suite.get(created.RelatedTransactionID).AccountID)
	suite.Equal(suite.card, suite.get(created.ID).RelatedAccountID)

	// swap the direction by exchanging both accounts
	cash := suite.cash
	_, err = suite.svc.EditTransaction(suite.ctx, created.ID, service.TransactionPatch{AccountID: &card, RelatedAccountID: &cash})
	suite.Require().NoError(err)
	suite.assertBalance(suite.card, "-200")
	suite.assertBalance(suite.cash, "700")
	suite.assertConsistent(suite.cash, suite.bank, suite.card)

	same := suite.cash
	_, err = suite.svc.EditTransaction(suite.ctx, created.ID, service.TransactionPatch{AccountID: &same, RelatedAccountID: &same})
	suite.True(service.IsValidation(err))

	expense := common.TransactionTypeExpense
	_, err = suite.svc.EditTransaction(suite.ctx, created.ID, service.TransactionPatch{TransactionType: &expense})
	suite.True(service.IsValidation(err))
}

func (suite *LedgerTestSuite) TestTransferStatusSyncsPair() {
	suite.income(suite.cash, "100", day(1))
	created := suite.transfer(suite.cash, suite.bank, "40", day(2))

	_, err := suite.svc.SetStatus(suite.ctx, created.ID, common.TransactionStatusPending)
	suite.Require().NoError(err)
	suite.Equal(common.TransactionStatusPending, suite.get(created.RelatedTransactionID).Status)
}

func (suite *LedgerTestSuite) TestTransferValidation() {
	p := suite.params(suite.cash, common.TransactionTypeTransfer, "10", day(2))
	_, err := suite.svc.CreateTransactions(suite.ctx, []service.CreateTransactionParams{p})
	suite.True(service.IsValidation(err))

	p.RelatedAccountID = suite.cash
	_, err = suite.svc.CreateTransactions(suite.ctx, []service.CreateTransactionParams{p})
	suite.True(service.IsValidation(err))

	p.RelatedAccountID = 9999
	_, err = suite.svc.CreateTransactions(suite.ctx, []service.CreateTransactionParams{p})
	suite.True(service.IsNotFound(err))
}

func (suite *LedgerTestSuite) TestOrphanLegIsAnIntegrityError() {
	suite.income(suite.cash, "100", day(1))
	created := suite.transfer(suite.cash, suite.bank, "40", day(2))

	// remove the pair behind the ledger's back
	_, err := suite.svc.DB.NewDelete().Model((*models.Transaction)(nil)).Where("id = ?", created.RelatedTransactionID).Exec(suite.ctx)
	suite.Require().NoError(err)

	amount := dec("50")
	_, err = suite.svc.EditTransaction(suite.ctx, created.ID, service.TransactionPatch{Amount: &amount})
	suite.True(service.IsIntegrity(err), "got %v", err)
}
